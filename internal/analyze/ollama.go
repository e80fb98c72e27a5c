package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codex/internal/summary"
)

const analysisPrompt = `Analyze this source file and return a JSON object describing it.

The object must have exactly these fields:
- "purpose": one concise paragraph explaining what the file does and why it exists
- "keyComponents": array of {"name", "description"} for the main classes, functions, or exports
- "publicAPI": array of {"signature", "description"} for what the file exposes to other files
- "dependencies": {"internal": [{"path", "usage"}], "external": [{"name", "usage"}]}
  where internal paths are workspace-relative with forward slashes
- "notes": important patterns, algorithms, or gotchas

Rules:
- ONLY describe what is directly visible in the code
- internal dependency paths must be spelled exactly as imported, resolved relative to the file
- Respond with the JSON object only, no markdown fences, no commentary

File: %s

` + "```\n%s\n```"

// Ollama is an LLM-backed analyzer calling an Ollama instance's /api/chat
// endpoint. It is slow and can fail; the generate pipeline reports failures
// per file and moves on.
type Ollama struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllama creates an analyzer targeting the given Ollama instance and model.
func NewOllama(baseURL, model string) *Ollama {
	return &Ollama{
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Analyze sends the file to the model and parses its JSON reply into
// summary content.
func (o *Ollama) Analyze(ctx context.Context, file string, src []byte) (*summary.Content, error) {
	prompt := fmt.Sprintf(analysisPrompt, summary.NormalizeKey(file), truncate(string(src), 32<<10))

	body, err := json.Marshal(chatRequest{
		Model:    o.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Format:   "json",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama chat returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}

	return parseContent(result.Message.Content)
}

// parseContent decodes the model's reply, tolerating stray markdown fences.
func parseContent(reply string) (*summary.Content, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")

	var content summary.Content
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), &content); err != nil {
		return nil, fmt.Errorf("parse model reply: %w", err)
	}
	if content.Purpose == "" {
		return nil, fmt.Errorf("model reply missing purpose")
	}
	for i, dep := range content.Dependencies.Internal {
		content.Dependencies.Internal[i].Path = summary.NormalizeKey(dep.Path)
	}
	return &content, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "\n...[truncated]"
}
