// Package mcpadapter exposes the splitter as Model Context Protocol tools.
package mcpadapter

import (
	"context"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/freud/split-text-smartly/internal/core/domain"
	"github.com/freud/split-text-smartly/internal/core/ports"
)

const (
	toolSplitText    = "split_text"
	toolListProfiles = "list_profiles"
)

type Handler struct {
	splitUC ports.TextSplitService
	catalog ports.ProfileCatalog
}

func NewHandler(splitUC ports.TextSplitService, catalog ports.ProfileCatalog) *Handler {
	return &Handler{splitUC: splitUC, catalog: catalog}
}

func NewServer(h *Handler, version string) *server.MCPServer {
	s := server.NewMCPServer("split-text-smartly", version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool(toolSplitText,
		mcp.WithDescription("Wrap text into rows of at most max_row_length characters, breaking on whitespace."),
		mcp.WithString("text", mcp.Description("Text to split. Omit it to get an empty row list.")),
		mcp.WithNumber("max_row_length", mcp.Description("Maximum characters per row."), mcp.Min(1)),
		mcp.WithNumber("max_rows", mcp.Description("Maximum number of rows; extra text joins the last row."), mcp.Min(1)),
		mcp.WithBoolean("trim_sentence", mcp.Description("Trim surrounding whitespace first.")),
		mcp.WithBoolean("fulfill_empty_rows", mcp.Description("Pad with empty rows up to max_rows.")),
		mcp.WithString("profile", mcp.Description("Named option preset applied before the explicit options.")),
	), h.SplitText)

	s.AddTool(mcp.NewTool(toolListProfiles,
		mcp.WithDescription("List the named option presets."),
	), h.ListProfiles)

	return s
}

func (h *Handler) SplitText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	splitReq, err := splitRequestFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.splitUC.Split(ctx, splitReq)
	if err != nil {
		if domain.IsKind(err, domain.ErrTemporary) {
			return nil, err
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultJSON(result)
}

func (h *Handler) ListProfiles(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profiles := []domain.SplitProfile{}
	if h.catalog != nil {
		profiles = h.catalog.Profiles()
	}
	return mcp.NewToolResultJSON(map[string]any{"profiles": profiles})
}

// splitRequestFromArgs treats a missing or non-string text as absent, the
// same way the JSON API does.
func splitRequestFromArgs(args map[string]any) (domain.SplitRequest, error) {
	var req domain.SplitRequest
	if text, ok := args["text"].(string); ok {
		req.Text = domain.PresentText(text)
	}
	if profile, ok := args["profile"].(string); ok {
		req.Profile = profile
	}

	var err error
	if req.Options.MaxRowLength, err = intArg(args, "max_row_length"); err != nil {
		return req, err
	}
	if req.Options.MaxRows, err = intArg(args, "max_rows"); err != nil {
		return req, err
	}
	if req.Options.TrimSentence, err = boolArg(args, "trim_sentence"); err != nil {
		return req, err
	}
	if req.Options.FulfillEmptyRows, err = boolArg(args, "fulfill_empty_rows"); err != nil {
		return req, err
	}
	return req, nil
}

func intArg(args map[string]any, key string) (*int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	var n int
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return nil, fmt.Errorf("%s must be an integer", key)
		}
		n = int(v)
	case int:
		n = v
	default:
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &n, nil
}

func boolArg(args map[string]any, key string) (*bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return nil, fmt.Errorf("%s must be a boolean", key)
	}
	return &b, nil
}
