package analyze

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"codex/internal/summary"
)

// Static extracts summary content from source structure alone: tree-sitter
// queries find imports and top-level definitions, and relative imports are
// resolved against the workspace file set so internal dependency paths are
// directly usable as store keys.
type Static struct {
	registry *Registry
	files    map[string]bool // normalized workspace-relative paths
}

// NewStatic creates a Static analyzer. files is the set of workspace source
// paths used to resolve relative imports.
func NewStatic(registry *Registry, files []string) *Static {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[summary.NormalizeKey(f)] = true
	}
	return &Static{registry: registry, files: set}
}

type importRef struct {
	spec  string
	lines []int
}

type definition struct {
	name string
	kind string
	line int
	sig  string
}

// Analyze parses the file and assembles its summary content. Files without
// a registered grammar produce an error.
func (a *Static) Analyze(ctx context.Context, file string, src []byte) (*summary.Content, error) {
	key := summary.NormalizeKey(file)
	spec, lang := a.registry.Lookup(key)
	if spec == nil {
		return nil, fmt.Errorf("no grammar registered for %s", key)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(spec.Language)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	defer tree.Close()

	imports, err := a.collectImports(spec, tree, src)
	if err != nil {
		return nil, err
	}
	defs, err := a.collectDefinitions(spec, tree, src)
	if err != nil {
		return nil, err
	}

	content := &summary.Content{
		Purpose: describePurpose(key, lang, defs, imports),
	}
	for _, d := range defs {
		content.KeyComponents = append(content.KeyComponents, summary.Component{
			Name:        d.name,
			Description: fmt.Sprintf("%s defined at line %d", d.kind, d.line),
		})
		if exported(lang, d) {
			content.PublicAPI = append(content.PublicAPI, summary.APIEntry{Signature: d.sig})
		}
	}
	content.Dependencies = a.classifyImports(spec, key, imports)
	return content, nil
}

// collectImports runs the language's import query and groups results by
// import spec, keeping every originating line.
func (a *Static) collectImports(spec *LanguageSpec, tree *sitter.Tree, src []byte) ([]importRef, error) {
	caps, err := runQuery(spec.ImportQuery, spec.Language, tree, src, "path")
	if err != nil {
		return nil, fmt.Errorf("import query: %w", err)
	}

	bys := make(map[string]*importRef)
	var order []string
	for _, c := range caps {
		text := strings.Trim(c.text, `"'`)
		if text == "" {
			continue
		}
		ref, ok := bys[text]
		if !ok {
			ref = &importRef{spec: text}
			bys[text] = ref
			order = append(order, text)
		}
		ref.lines = append(ref.lines, c.line)
	}

	refs := make([]importRef, 0, len(order))
	for _, s := range order {
		refs = append(refs, *bys[s])
	}
	return refs, nil
}

// collectDefinitions runs the definition query and returns named top-level
// definitions in source order.
func (a *Static) collectDefinitions(spec *LanguageSpec, tree *sitter.Tree, src []byte) ([]definition, error) {
	q, err := sitter.NewQuery([]byte(spec.DefinitionQuery), spec.Language)
	if err != nil {
		return nil, fmt.Errorf("compile definition query: %w", err)
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	seen := make(map[string]int) // name → index into defs
	var defs []definition
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		var defNode *sitter.Node
		var name string
		for _, cap := range m.Captures {
			switch q.CaptureNameForId(cap.Index) {
			case "def":
				defNode = cap.Node
			case "name":
				name = cap.Node.Content(src)
			}
		}
		if defNode == nil || name == "" {
			continue
		}
		kindNode := defNode
		if defNode.Type() == "export_statement" {
			if inner := defNode.NamedChild(0); inner != nil {
				kindNode = inner
			}
		}
		d := definition{
			name: name,
			kind: strings.ReplaceAll(strings.TrimSuffix(kindNode.Type(), "_declaration"), "_", " "),
			line: int(defNode.StartPoint().Row) + 1,
			sig:  firstLine(defNode.Content(src)),
		}
		// An exported declaration matches both the bare and the
		// export-wrapped pattern; keep the wrapped one, whose signature
		// carries the export keyword.
		if i, dup := seen[name]; dup {
			if strings.HasPrefix(d.sig, "export") && !strings.HasPrefix(defs[i].sig, "export") {
				if defs[i].line < d.line {
					d.line = defs[i].line
				}
				d.kind = defs[i].kind
				defs[i] = d
			}
			continue
		}
		seen[name] = len(defs)
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].line < defs[j].line })
	return defs, nil
}

// classifyImports splits imports into internal and external dependencies.
// Relative imports that resolve to a workspace file become internal with the
// resolved path; unresolvable relative imports keep their best-guess path so
// the reference is not silently dropped.
func (a *Static) classifyImports(spec *LanguageSpec, key string, imports []importRef) summary.Dependencies {
	var deps summary.Dependencies
	dir := path.Dir(key)
	for _, imp := range imports {
		if spec.Relative != nil && spec.Relative(imp.spec) {
			candidates := spec.Candidates(dir, imp.spec)
			resolved := ""
			for _, cand := range candidates {
				cand = summary.NormalizeKey(path.Clean(cand))
				if a.files[cand] {
					resolved = cand
					break
				}
			}
			if resolved != "" {
				deps.Internal = append(deps.Internal, summary.InternalDep{
					Path:  resolved,
					Usage: fmt.Sprintf("imported as %q", imp.spec),
					Lines: imp.lines,
				})
				continue
			}
			if len(candidates) > 0 && looksRelative(imp.spec) {
				deps.Internal = append(deps.Internal, summary.InternalDep{
					Path:  summary.NormalizeKey(path.Clean(candidates[0])),
					Usage: fmt.Sprintf("imported as %q (unresolved)", imp.spec),
					Lines: imp.lines,
				})
				continue
			}
		}
		deps.External = append(deps.External, summary.ExternalDep{
			Name:  imp.spec,
			Usage: fmt.Sprintf("imported at line %s", joinLines(imp.lines)),
		})
	}
	return deps
}

// looksRelative reports a dot-prefixed import path. Dotted python module
// names that merely failed to resolve stay external.
func looksRelative(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../")
}

func describePurpose(key, lang string, defs []definition, imports []importRef) string {
	names := make([]string, 0, 3)
	for i, d := range defs {
		if i == 3 {
			break
		}
		names = append(names, d.name)
	}
	switch {
	case len(defs) == 0 && len(imports) == 0:
		return fmt.Sprintf("%s source file with no top-level definitions.", titleLang(lang))
	case len(defs) == 0:
		return fmt.Sprintf("%s source file wiring together %d imports.", titleLang(lang), len(imports))
	default:
		return fmt.Sprintf("%s source file defining %d top-level components, including %s.",
			titleLang(lang), len(defs), strings.Join(names, ", "))
	}
}

func titleLang(lang string) string {
	switch lang {
	case "go":
		return "Go"
	case "javascript":
		return "JavaScript"
	case "typescript":
		return "TypeScript"
	case "python":
		return "Python"
	}
	if lang == "" {
		return "Unknown"
	}
	return strings.ToUpper(lang[:1]) + lang[1:]
}

// exported applies a per-language visibility heuristic.
func exported(lang string, d definition) bool {
	switch lang {
	case "go":
		r := d.name[0]
		return r >= 'A' && r <= 'Z'
	case "python":
		return !strings.HasPrefix(d.name, "_")
	default: // js/ts: exported when the declaration carries the keyword
		return strings.Contains(d.sig, "export ")
	}
}

type captureResult struct {
	text string
	line int
}

// runQuery executes a query and returns the text and line of every capture
// with the given name.
func runQuery(query string, lang *sitter.Language, tree *sitter.Tree, src []byte, capName string) ([]captureResult, error) {
	q, err := sitter.NewQuery([]byte(query), lang)
	if err != nil {
		return nil, err
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	var results []captureResult
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, src)
		for _, cap := range m.Captures {
			if q.CaptureNameForId(cap.Index) != capName {
				continue
			}
			results = append(results, captureResult{
				text: cap.Node.Content(src),
				line: int(cap.Node.StartPoint().Row) + 1,
			})
		}
	}
	return results, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRight(strings.TrimSpace(s), "{ ")
}

func joinLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = fmt.Sprint(l)
	}
	return strings.Join(parts, ", ")
}
