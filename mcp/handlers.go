package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/treesim/domain"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleCompareTrees handles the compare_trees tool
func (h *HandlerSet) HandleCompareTrees(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	req, errResult := h.requestFromArgs(args)
	if errResult != nil {
		return errResult, nil
	}

	if depth, ok := args["depth"].(float64); ok {
		req.Depth = int(depth)
	}
	if normalize, ok := args["normalize"].(bool); ok {
		req.Normalize = normalize
	}

	response, err := h.deps.BuildCompareService().Compare(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleScoreTrees handles the score_trees tool
func (h *HandlerSet) HandleScoreTrees(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	req, errResult := h.requestFromArgs(args)
	if errResult != nil {
		return errResult, nil
	}

	req.Averaged = true
	req.Normalize = true
	if maxDepth, ok := args["max_depth"].(float64); ok {
		req.Depth = int(maxDepth)
	}

	response, err := h.deps.BuildCompareService().Compare(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	scores := make([]map[string]interface{}, 0, len(response.Results))
	for _, r := range response.Results {
		scores = append(scores, map[string]interface{}{
			"file_a":       r.FileA,
			"file_b":       r.FileB,
			"score":        r.Distance,
			"depth_scores": r.DepthScores,
		})
	}

	jsonData, err := json.Marshal(map[string]interface{}{
		"scores":   scores,
		"summary":  response.Summary,
		"warnings": response.Warnings,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// requestFromArgs builds a request from config-file defaults plus the
// arguments shared by both tools. Returns a non-nil error result when a
// required argument is missing or a path does not exist.
func (h *HandlerSet) requestFromArgs(args map[string]interface{}) (*domain.CompareRequest, *mcp.CallToolResult) {
	pathA, ok := args["tree_a"].(string)
	if !ok {
		return nil, mcp.NewToolResultError("tree_a parameter is required and must be a string")
	}
	pathB, ok := args["tree_b"].(string)
	if !ok {
		return nil, mcp.NewToolResultError("tree_b parameter is required and must be a string")
	}
	for _, p := range []string{pathA, pathB} {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return nil, mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", p))
		}
	}

	req := h.deps.BaseRequest()
	req.PathA = pathA
	req.PathB = pathB
	req.OutputFormat = domain.OutputFormatJSON
	req.NoProgress = true

	if unordered, ok := args["unordered"].(bool); ok {
		req.Unordered = unordered
	}
	if useContext, ok := args["use_context"].(bool); ok {
		req.UseContext = useContext
	}
	if enc, ok := args["encoder"].(string); ok && enc != "" {
		req.Encoder = domain.EncoderType(enc)
	}
	if dist, ok := args["distance"].(string); ok && dist != "" {
		req.Distance = domain.DistanceType(dist)
	}
	if model, ok := args["model"].(string); ok && model != "" {
		req.Model = model
	}

	return req, nil
}
