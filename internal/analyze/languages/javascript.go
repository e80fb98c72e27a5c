package languages

import (
	"path"
	"strings"

	"codex/internal/analyze"

	"github.com/smacker/go-tree-sitter/javascript"
)

func RegisterJavaScript(r *analyze.Registry) {
	r.Register("javascript", &analyze.LanguageSpec{
		Language: javascript.GetLanguage(),
		ImportQuery: `
			(import_statement source: (string (string_fragment) @path))
			(export_statement source: (string (string_fragment) @path))
			(call_expression
				function: (identifier) @_fn
				arguments: (arguments (string (string_fragment) @path))
				(#eq? @_fn "require"))
		`,
		DefinitionQuery: `
			(function_declaration name: (identifier) @name) @def
			(class_declaration name: (identifier) @name) @def
			(lexical_declaration (variable_declarator name: (identifier) @name value: (arrow_function))) @def
			(export_statement (function_declaration name: (identifier) @name)) @def
			(export_statement (class_declaration name: (identifier) @name)) @def
		`,
		Extensions: []string{"js", "jsx", "mjs"},
		Relative:   relativeJS,
		Candidates: func(dir, spec string) []string {
			return jsCandidates(dir, spec, []string{".js", ".jsx", ".mjs", ".ts", ".tsx"})
		},
	})
}

func relativeJS(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../")
}

// jsCandidates expands a relative JS/TS import specifier into the workspace
// paths it could name: the specifier itself, the specifier with each
// extension appended, and an index file inside it as a directory.
func jsCandidates(dir, spec string, exts []string) []string {
	resolved := path.Join(dir, spec)
	candidates := []string{resolved}
	if path.Ext(resolved) == "" {
		for _, ext := range exts {
			candidates = append(candidates, resolved+ext)
		}
		for _, ext := range exts {
			candidates = append(candidates, path.Join(resolved, "index"+ext))
		}
	}
	return candidates
}
