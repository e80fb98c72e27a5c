package languages

import (
	"codex/internal/analyze"

	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

func RegisterTypeScript(r *analyze.Registry) {
	r.Register("typescript", &analyze.LanguageSpec{
		Language: typescript.GetLanguage(),
		ImportQuery: `
			(import_statement source: (string (string_fragment) @path))
			(export_statement source: (string (string_fragment) @path))
		`,
		DefinitionQuery: `
			(function_declaration name: (identifier) @name) @def
			(class_declaration name: (type_identifier) @name) @def
			(export_statement (function_declaration name: (identifier) @name)) @def
			(export_statement (class_declaration name: (type_identifier) @name)) @def
			(lexical_declaration (variable_declarator name: (identifier) @name value: (arrow_function))) @def
			(interface_declaration name: (type_identifier) @name) @def
			(type_alias_declaration name: (type_identifier) @name) @def
		`,
		Extensions: []string{"ts", "tsx"},
		Relative:   relativeJS,
		Candidates: func(dir, spec string) []string {
			return jsCandidates(dir, spec, []string{".ts", ".tsx", ".js", ".jsx"})
		},
	})
}
