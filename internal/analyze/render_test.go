package analyze_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"codex/internal/analyze"
	"codex/internal/summary"
)

func TestRender_FullSummary(t *testing.T) {
	content := &summary.Content{
		Purpose: "Handles session tokens.",
		KeyComponents: []summary.Component{
			{Name: "TokenManager", Description: "class defined at line 10"},
			{Name: "login", Description: "function defined at line 42"},
		},
		PublicAPI: []summary.APIEntry{
			{Signature: "export function login(user: string)", Description: "authenticate a user"},
			{Signature: "export class TokenManager"},
		},
		Dependencies: summary.Dependencies{
			Internal: []summary.InternalDep{
				{Path: "src/crypto.ts", Usage: `imported as "./crypto"`, Lines: []int{3}},
			},
			External: []summary.ExternalDep{
				{Name: "jsonwebtoken", Usage: "imported at line 4"},
			},
		},
		Notes: "Tokens rotate hourly.",
	}

	rendered := analyze.Render("src/auth.ts", content)

	// Regenerate with: go test ./internal/analyze -run TestRender_FullSummary -update
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "render_full", []byte(rendered))
}

func TestRender_MinimalSummary(t *testing.T) {
	rendered := analyze.Render("b.ts", &summary.Content{Purpose: "Nothing but purpose."})

	assert.Equal(t, "# b\n\n## Purpose\nNothing but purpose.\n", rendered)
	assert.NotContains(t, rendered, "## Key Components", "empty sections are omitted")
	assert.NotContains(t, rendered, "## Code Links", "no links without components")
}

func TestRender_CodeLinksFollowComponents(t *testing.T) {
	rendered := analyze.Render("src/util.ts", &summary.Content{
		Purpose: "Helpers.",
		KeyComponents: []summary.Component{
			{Name: "clamp", Description: "function defined at line 3"},
		},
	})

	assert.Contains(t, rendered, "## Code Links\n- [clamp](code:src/util.ts#symbol=clamp)\n")
}
