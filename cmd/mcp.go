package cmd

import (
	"context"
	"fmt"
	"strings"

	"codex/internal/graph"
	"codex/internal/summary"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing codebase summary tools",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	svc, repo, err := openService()
	if err != nil {
		return err
	}
	engine := graph.NewEngine(svc.Store())
	checker := summary.NewChecker(svc.Store(), repo)

	s := mcpserver.NewMCPServer("codex", "1.0.0", mcpserver.WithToolCapabilities(false))

	s.AddTool(getSummaryTool(), makeGetSummaryHandler(svc))
	s.AddTool(listSummariesTool(), makeListSummariesHandler(svc))
	s.AddTool(searchSummariesTool(), makeSearchSummariesHandler(svc))
	s.AddTool(dependencyGraphTool(), makeDependencyGraphHandler(engine))
	s.AddTool(checkStaleTool(), makeCheckStaleHandler(checker))

	return mcpserver.ServeStdio(s)
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// --- Tool schema builders ---

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func getSummaryTool() mcp.Tool {
	return mcp.NewTool("get_summary",
		mcp.WithDescription("Get the stored summary for a source file: purpose, key components, public API, and dependencies."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Workspace-relative path of the source file (e.g. 'src/auth/login.ts')"),
		),
	)
}

func listSummariesTool() mcp.Tool {
	return mcp.NewTool("list_summaries",
		mcp.WithDescription("List every file that has a stored summary, with generation timestamps."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}

func searchSummariesTool() mcp.Tool {
	return mcp.NewTool("search_summaries",
		mcp.WithDescription("Search stored summaries. Modes: 'keyword' matches whole records, 'dependency' matches dependency paths, 'component' matches component names, 'exports' matches public API signatures."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Whitespace-separated keywords, or a name/path fragment for the other modes"),
		),
		mcp.WithString("mode",
			mcp.Description("Search mode: keyword (default), dependency, component, or exports"),
		),
	)
}

func dependencyGraphTool() mcp.Tool {
	return mcp.NewTool("dependency_graph",
		mcp.WithDescription("Get the workspace dependency graph, or one file's dependencies and dependents. File lookup is fuzzy: exact path, path suffix, then bare filename."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("file",
			mcp.Description("Optional workspace-relative path; omit for the whole graph"),
		),
	)
}

func checkStaleTool() mcp.Tool {
	return mcp.NewTool("check_stale",
		mcp.WithDescription("Report summaries that are older than their source files, using git history with a modification-time fallback."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("file",
			mcp.Description("Optional workspace-relative path; omit to scan the whole workspace"),
		),
	)
}

// --- Handler factories ---

func makeGetSummaryHandler(svc *summary.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", "")
		if file == "" {
			return mcp.NewToolResultError("file is required"), nil
		}

		rec := svc.Get(file)
		if rec == nil {
			return mcp.NewToolResultError(fmt.Sprintf("no summary for %q — call list_summaries to see available files", file)), nil
		}
		return mcp.NewToolResultText(formatRecord(rec)), nil
	}
}

func makeListSummariesHandler(svc *summary.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := svc.List()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list summaries failed: %v", err)), nil
		}
		if len(entries) == 0 {
			return mcp.NewToolResultText("No summaries stored yet. Run 'codex generate' to create them."), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "## Summarized files (%d)\n\n", len(entries))
		for _, e := range entries {
			if e.GeneratedAt != "" {
				fmt.Fprintf(&sb, "- **%s** — generated %s\n", e.File, e.GeneratedAt)
			} else {
				fmt.Fprintf(&sb, "- **%s**\n", e.File)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func makeSearchSummariesHandler(svc *summary.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}
		mode, err := summary.ParseMode(req.GetString("mode", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		results, err := svc.Search(query, mode)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		return mcp.NewToolResultText(formatSearchResults(query, mode, results)), nil
	}
}

func makeDependencyGraphHandler(engine *graph.Engine) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", "")

		if file != "" {
			view, err := engine.Query(file)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("query graph failed: %v", err)), nil
			}
			if !view.Found() {
				return mcp.NewToolResultText(view.Diagnostic), nil
			}
			return mcp.NewToolResultText(formatFileView(view)), nil
		}

		g, err := engine.Build()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("build graph failed: %v", err)), nil
		}
		return mcp.NewToolResultText(formatGraph(g)), nil
	}
}

func makeCheckStaleHandler(checker *summary.Checker) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file := req.GetString("file", "")

		if file != "" {
			rec := checker.IsStale(file)
			state := "fresh"
			if rec.Stale {
				state = "STALE"
			}
			return mcp.NewToolResultText(fmt.Sprintf("**%s**: %s — %s", rec.File, state, rec.Reason)), nil
		}

		records, err := checker.ScanWorkspace()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("scan workspace failed: %v", err)), nil
		}
		if len(records) == 0 {
			return mcp.NewToolResultText("All summaries are up to date."), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "## Stale summaries (%d)\n\n", len(records))
		for _, rec := range records {
			fmt.Fprintf(&sb, "- **%s** — %s\n", rec.File, rec.Reason)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- Formatting helpers ---

func formatRecord(rec *summary.Record) string {
	var sb strings.Builder
	sb.WriteString(rec.Markdown)

	var meta []string
	if rec.GeneratedAt != "" {
		meta = append(meta, "generated "+rec.GeneratedAt)
	}
	if rec.GitBranch != "" {
		meta = append(meta, "branch "+rec.GitBranch)
	}
	if rec.GitCommit != "" {
		meta = append(meta, "commit "+rec.GitCommit)
	}
	if len(meta) > 0 {
		fmt.Fprintf(&sb, "\n---\n*%s*\n", strings.Join(meta, ", "))
	}
	return sb.String()
}

func formatSearchResults(query string, mode summary.SearchMode, results []summary.SearchResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results for %q (mode: %s)", query, mode)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Results for %q (%d files, mode: %s)\n\n", query, len(results), mode)
	for _, r := range results {
		if r.Total > 0 {
			fmt.Fprintf(&sb, "- **%s** — %d/%d keywords\n", r.File, r.Matched, r.Total)
		} else {
			fmt.Fprintf(&sb, "- **%s**\n", r.File)
		}
		for _, m := range r.Matches {
			fmt.Fprintf(&sb, "  - %s\n", m)
		}
	}
	return sb.String()
}

func formatFileView(view *graph.FileView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", view.File)
	if view.MatchTier != graph.MatchExact {
		fmt.Fprintf(&sb, "*(resolved by %s match)*\n\n", view.MatchTier)
	}
	if view.Purpose != "" {
		fmt.Fprintf(&sb, "%s\n\n", view.Purpose)
	}
	if len(view.Exports) > 0 {
		sb.WriteString("**Exports:**\n")
		for _, e := range view.Exports {
			fmt.Fprintf(&sb, "- `%s`\n", e.Signature)
		}
		sb.WriteString("\n")
	}
	if len(view.DependsOn) > 0 {
		sb.WriteString("**Depends on:**\n")
		for _, d := range view.DependsOn {
			if d.Usage != "" {
				fmt.Fprintf(&sb, "- `%s` — %s\n", d.Path, d.Usage)
			} else {
				fmt.Fprintf(&sb, "- `%s`\n", d.Path)
			}
		}
		sb.WriteString("\n")
	}
	if len(view.External) > 0 {
		sb.WriteString("**External:**\n")
		for _, d := range view.External {
			fmt.Fprintf(&sb, "- `%s`\n", d.Name)
		}
		sb.WriteString("\n")
	}
	if len(view.Dependents) > 0 {
		sb.WriteString("**Used by:**\n")
		for _, d := range view.Dependents {
			fmt.Fprintf(&sb, "- `%s`\n", d)
		}
	}
	return sb.String()
}

func formatGraph(g *graph.Graph) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Dependency graph (%d files, %d edges)\n\n", len(g.Nodes), len(g.Edges))
	for _, e := range g.Edges {
		if e.Usage != "" {
			fmt.Fprintf(&sb, "- `%s` → `%s` — %s\n", e.From, e.To, e.Usage)
		} else {
			fmt.Fprintf(&sb, "- `%s` → `%s`\n", e.From, e.To)
		}
	}
	return sb.String()
}
