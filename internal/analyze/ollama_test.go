package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContent(t *testing.T) {
	reply := `{
		"purpose": "Does things.",
		"keyComponents": [{"name": "A", "description": "a thing"}],
		"dependencies": {
			"internal": [{"path": ".\\src\\b.ts", "usage": "helpers"}],
			"external": [{"name": "react"}]
		}
	}`

	content, err := parseContent(reply)
	require.NoError(t, err)
	assert.Equal(t, "Does things.", content.Purpose)
	require.Len(t, content.Dependencies.Internal, 1)
	assert.Equal(t, "src/b.ts", content.Dependencies.Internal[0].Path,
		"internal paths from the model are normalized to store keys")
}

func TestParseContent_StripsFences(t *testing.T) {
	reply := "```json\n{\"purpose\": \"Fenced.\", \"dependencies\": {}}\n```"
	content, err := parseContent(reply)
	require.NoError(t, err)
	assert.Equal(t, "Fenced.", content.Purpose)
}

func TestParseContent_Rejects(t *testing.T) {
	_, err := parseContent("not json at all")
	assert.Error(t, err)

	_, err = parseContent(`{"dependencies": {}}`)
	assert.Error(t, err, "a reply without a purpose is rejected")
}
