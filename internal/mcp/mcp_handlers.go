package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/wrapped/core"
	"github.com/huangsam/wrapped/core/numfmt"
	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/internal/loader"
	"github.com/huangsam/wrapped/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.SessionManager
}

// noData is returned instead of a tool error when nothing could be loaded.
type noData struct {
	Status  string `json:"status"`
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

// withArtifact resolves the artifact named by the request and hands it to fn.
// Inline artifact_json is registered as a blob for the duration of the call.
func (h *toolHandler) withArtifact(ctx context.Context, request mcp.CallToolRequest,
	fn func(cfg *contract.Config, b *core.Builder, res loader.Result) (any, error),
) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		if l > contract.MaxResultLimit {
			return mcp.NewToolResultError(fmt.Sprintf("limit cannot exceed %d", contract.MaxResultLimit)), nil
		}
		cfg.ResultLimit = l
	}
	if d := strings.TrimSpace(request.GetString("descriptor", "")); d != "" {
		cfg.Descriptor = d
	}
	if inline := request.GetString("artifact_json", ""); inline != "" {
		if !json.Valid([]byte(inline)) {
			return mcp.NewToolResultError("artifact_json is not valid JSON"), nil
		}
		handle := core.Blobs.Put([]byte(inline))
		defer core.Blobs.Release(handle)
		cfg.Descriptor = handle
	}

	ctx = core.WithSuppressHeader(ctx)
	if !request.GetBool("use_session", true) {
		ctx = core.WithSkipSession(ctx)
	}
	res, err := core.LoadArtifact(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	if res.Outcome != loader.Loaded {
		payload := noData{Status: "no_data", Outcome: res.Outcome.String()}
		if res.Err != nil && res.Outcome != loader.NoSelection {
			payload.Reason = res.Err.Error()
		}
		return jsonResult(payload)
	}

	out, err := fn(cfg, core.NewBuilder(cfg.Logger, cfg.ResultLimit), res)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(out)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.withArtifact(ctx, request, func(_ *contract.Config, b *core.Builder, res loader.Result) (any, error) {
		report, err := b.BuildReport(ctx, res.Artifact(), res.Source)
		if err != nil {
			return nil, fmt.Errorf("report failed: %w", err)
		}
		return report, nil
	})
}

func (h *toolHandler) handleTimeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metric := schema.TimelineMetric(request.GetString("metric", string(schema.MessagesTimeline)))
	if _, ok := schema.ValidTimelineMetrics[metric]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid metric '%s'. must be messages, emoji, chats", metric)), nil
	}
	hours := schema.HourMetric(request.GetString("hours", ""))
	if _, ok := schema.ValidHourMetrics[hours]; hours != "" && !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid hours metric '%s'. must be response, messages, words", hours)), nil
	}
	return h.withArtifact(ctx, request, func(_ *contract.Config, b *core.Builder, res loader.Result) (any, error) {
		if hours != "" {
			return b.Hours(res.Artifact(), hours), nil
		}
		return b.TimelineFor(res.Artifact(), metric), nil
	})
}

func (h *toolHandler) handleTop(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	metric := schema.TopMetric(request.GetString("metric", string(schema.EmojiTop)))
	if _, ok := schema.ValidTopMetrics[metric]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid metric '%s'. must be emoji, chats", metric)), nil
	}
	return h.withArtifact(ctx, request, func(cfg *contract.Config, b *core.Builder, res loader.Result) (any, error) {
		return b.TopSeries(res.Artifact(), metric, cfg.ResultLimit), nil
	})
}

// formatters are the number formatters exposed by wrapped_format.
var formatters = map[string]func(any) string{
	"grouped":   numfmt.GroupedInteger,
	"magnitude": numfmt.RoundedMagnitude,
	"count":     numfmt.CountOrMagnitude,
	"duration":  numfmt.DurationFromMinutes,
	"hour":      numfmt.HourLabelAny,
}

func (h *toolHandler) handleFormat(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := request.GetString("kind", "")
	format, ok := formatters[kind]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid kind '%s'. must be grouped, magnitude, count, duration, hour", kind)), nil
	}
	args := request.GetArguments()
	raw, present := args["value"]
	if !present {
		return mcp.NewToolResultError("value is required"), nil
	}
	return mcp.NewToolResultText(format(raw)), nil
}
