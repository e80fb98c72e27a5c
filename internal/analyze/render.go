package analyze

import (
	"fmt"
	"path"
	"strings"

	"codex/internal/summary"
)

// Render produces the markdown artifact for a summary. The section layout
// matches the structured payload one-to-one: both are generated together and
// persisted as a pair, so they can never drift apart.
func Render(file string, content *summary.Content) string {
	key := summary.NormalizeKey(file)
	stem := strings.TrimSuffix(path.Base(key), path.Ext(key))

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", stem)

	b.WriteString("## Purpose\n")
	b.WriteString(content.Purpose)
	b.WriteString("\n")

	if len(content.KeyComponents) > 0 {
		b.WriteString("\n## Key Components\n")
		for _, c := range content.KeyComponents {
			if c.Description != "" {
				fmt.Fprintf(&b, "- `%s`: %s\n", c.Name, c.Description)
			} else {
				fmt.Fprintf(&b, "- `%s`\n", c.Name)
			}
		}
	}

	deps := content.Dependencies
	if len(deps.Internal) > 0 || len(deps.External) > 0 {
		b.WriteString("\n## Dependencies\n")
		if len(deps.Internal) > 0 {
			b.WriteString("### Internal (from this codebase)\n")
			for _, d := range deps.Internal {
				if d.Usage != "" {
					fmt.Fprintf(&b, "- `%s` - %s\n", d.Path, d.Usage)
				} else {
					fmt.Fprintf(&b, "- `%s`\n", d.Path)
				}
			}
		}
		if len(deps.External) > 0 {
			b.WriteString("### External (libraries/packages)\n")
			for _, d := range deps.External {
				if d.Usage != "" {
					fmt.Fprintf(&b, "- `%s` - %s\n", d.Name, d.Usage)
				} else {
					fmt.Fprintf(&b, "- `%s`\n", d.Name)
				}
			}
		}
	}

	if len(content.PublicAPI) > 0 {
		b.WriteString("\n## Public API\n")
		for _, e := range content.PublicAPI {
			if e.Description != "" {
				fmt.Fprintf(&b, "- `%s`: %s\n", e.Signature, e.Description)
			} else {
				fmt.Fprintf(&b, "- `%s`\n", e.Signature)
			}
		}
	}

	if len(content.KeyComponents) > 0 {
		b.WriteString("\n## Code Links\n")
		for _, c := range content.KeyComponents {
			fmt.Fprintf(&b, "- [%s](code:%s#symbol=%s)\n", c.Name, key, c.Name)
		}
	}

	if content.Notes != "" {
		b.WriteString("\n## Implementation Notes\n")
		b.WriteString(content.Notes)
		b.WriteString("\n")
	}

	return b.String()
}
