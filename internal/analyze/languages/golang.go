package languages

import (
	"codex/internal/analyze"

	"github.com/smacker/go-tree-sitter/golang"
)

func RegisterGo(r *analyze.Registry) {
	r.Register("go", &analyze.LanguageSpec{
		Language: golang.GetLanguage(),
		ImportQuery: `
			(import_spec path: (interpreted_string_literal) @path)
		`,
		DefinitionQuery: `
			(function_declaration name: (identifier) @name) @def
			(method_declaration name: (field_identifier) @name) @def
			(type_declaration (type_spec name: (type_identifier) @name)) @def
		`,
		Extensions: []string{"go"},
		// Go imports name packages, not files; they are recorded as
		// external dependencies.
		Relative:   func(spec string) bool { return false },
		Candidates: func(dir, spec string) []string { return nil },
	})
}

// RegisterAll registers every built-in language.
func RegisterAll(r *analyze.Registry) {
	RegisterGo(r)
	RegisterJavaScript(r)
	RegisterTypeScript(r)
	RegisterPython(r)
}
