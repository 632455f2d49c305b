// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/wrapped/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// artifactOptions are shared by every tool that reads an artifact.
func artifactOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("descriptor", mcp.Description("Path, file:// URL or http(s) URL of the artifact. Defaults to the open session.")),
		mcp.WithString("artifact_json", mcp.Description("Inline artifact JSON. Takes precedence over descriptor.")),
		mcp.WithBoolean("use_session", mcp.Description("Fall back to the open session when no artifact is named. Defaults to true.")),
	}
}

// NewMCPServer initializes and configures the Wrapped MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.SessionManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Wrapped Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: wrapped_summary ---
	summaryOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Build the full wrapped report: headline metrics, timelines, hour series, rankings and chats."),
		mcp.WithNumber("limit", mcp.Description("Number of categories kept in top-N series.")),
	}, artifactOptions()...)
	s.AddTool(mcp.NewTool("wrapped_summary", summaryOpts...), h.handleSummary)

	// --- 2. Tool: wrapped_timeline ---
	timelineOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Bucketize a dated timeline, or an hour-of-day series when 'hours' is set."),
		mcp.WithString("metric", mcp.Description("Timeline to bucketize. Defaults to 'messages'."), mcp.Enum("messages", "emoji", "chats")),
		mcp.WithString("hours", mcp.Description("Hour-of-day series to return instead of a timeline."), mcp.Enum("response", "messages", "words")),
	}, artifactOptions()...)
	s.AddTool(mcp.NewTool("wrapped_timeline", timelineOpts...), h.handleTimeline)

	// --- 3. Tool: wrapped_top ---
	topOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Align the top-N emoji or chat categories into parallel series with totals."),
		mcp.WithString("metric", mcp.Description("Categories to rank. Defaults to 'emoji'."), mcp.Enum("emoji", "chats")),
		mcp.WithNumber("limit", mcp.Description("Number of categories to keep.")),
	}, artifactOptions()...)
	s.AddTool(mcp.NewTool("wrapped_top", topOpts...), h.handleTop)

	// --- 4. Tool: wrapped_format ---
	s.AddTool(mcp.NewTool("wrapped_format",
		mcp.WithDescription("Format a number the way wrapped reports display it."),
		mcp.WithString("kind", mcp.Description("Formatter to apply."), mcp.Required(), mcp.Enum("grouped", "magnitude", "count", "duration", "hour")),
		mcp.WithNumber("value", mcp.Description("The number to format. Durations are in minutes."), mcp.Required()),
	), h.handleFormat)

	return s
}

// StartMCPServer starts the Wrapped MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.SessionManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
