package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all treesim MCP tools with the server using
// default dependencies.
func RegisterTools(s *server.MCPServer) {
	RegisterToolsWithHandlers(s, NewHandlerSet(nil))
}

// RegisterToolsWithHandlers registers all treesim MCP tools backed by the
// given handler set.
func RegisterToolsWithHandlers(s *server.MCPServer, h *HandlerSet) {
	// Tool 1: compare_trees - tree edit distance between two documents
	s.AddTool(mcp.NewTool("compare_trees",
		mcp.WithDescription("Compute the semantic tree edit distance between two tree documents (JSON or YAML nested mappings)"),
		mcp.WithString("tree_a",
			mcp.Required(),
			mcp.Description("Path to the first tree document")),
		mcp.WithString("tree_b",
			mcp.Required(),
			mcp.Description("Path to the second tree document")),
		mcp.WithBoolean("unordered",
			mcp.Description("Ignore sibling order (default: true)")),
		mcp.WithBoolean("use_context",
			mcp.Description("Prefix each label with its ancestor path before encoding (default: false)")),
		mcp.WithBoolean("normalize",
			mcp.Description("Rescale the distance into [0,1) (default: true)")),
		mcp.WithNumber("depth",
			mcp.Description("Truncate both trees to this depth before comparing, 0 = no limit (default: 0)")),
		mcp.WithString("encoder",
			mcp.Description("Sentence encoder: openai or lexical (default: lexical)")),
		mcp.WithString("distance",
			mcp.Description("Embedding distance: cosine or euclidean (default: cosine)")),
		mcp.WithString("model",
			mcp.Description("Embeddings model name (openai encoder)")),
	), h.HandleCompareTrees)

	// Tool 2: score_trees - depth-averaged similarity score
	s.AddTool(mcp.NewTool("score_trees",
		mcp.WithDescription("Score two tree documents by averaging the normalized edit distance over every truncation depth"),
		mcp.WithString("tree_a",
			mcp.Required(),
			mcp.Description("Path to the first tree document")),
		mcp.WithString("tree_b",
			mcp.Required(),
			mcp.Description("Path to the second tree document")),
		mcp.WithBoolean("unordered",
			mcp.Description("Ignore sibling order (default: true)")),
		mcp.WithBoolean("use_context",
			mcp.Description("Prefix each label with its ancestor path before encoding (default: false)")),
		mcp.WithNumber("max_depth",
			mcp.Description("Cap the depths averaged over, 0 = all depths (default: 0)")),
		mcp.WithString("encoder",
			mcp.Description("Sentence encoder: openai or lexical (default: lexical)")),
		mcp.WithString("distance",
			mcp.Description("Embedding distance: cosine or euclidean (default: cosine)")),
	), h.HandleScoreTrees)
}
