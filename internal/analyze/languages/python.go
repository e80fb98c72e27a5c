package languages

import (
	"path"
	"strings"

	"codex/internal/analyze"

	"github.com/smacker/go-tree-sitter/python"
)

func RegisterPython(r *analyze.Registry) {
	r.Register("python", &analyze.LanguageSpec{
		Language: python.GetLanguage(),
		ImportQuery: `
			(import_statement name: (dotted_name) @path)
			(import_statement name: (aliased_import name: (dotted_name) @path))
			(import_from_statement module_name: (dotted_name) @path)
		`,
		DefinitionQuery: `
			(function_definition name: (identifier) @name) @def
			(class_definition name: (identifier) @name) @def
		`,
		Extensions: []string{"py"},
		// Dotted names can be workspace modules; the candidate probe
		// decides, so treat every import as potentially relative.
		Relative: func(spec string) bool { return true },
		Candidates: func(dir, spec string) []string {
			rel := strings.ReplaceAll(spec, ".", "/")
			return []string{
				rel + ".py",
				path.Join(rel, "__init__.py"),
				path.Join(dir, rel+".py"),
				path.Join(dir, rel, "__init__.py"),
			}
		},
	})
}
