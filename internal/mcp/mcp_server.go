// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// windowOptions are the arguments every tool shares.
func windowOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("repos", mcp.Description("Comma separated repository paths or URLs. Defaults to the configured repositories.")),
		mcp.WithString("emails", mcp.Description("Comma separated emails of the user. Defaults to the configured emails.")),
		mcp.WithNumber("year", mcp.Description("Calendar year to report on.")),
		mcp.WithString("start", mcp.Description("Window start date (YYYY-MM-DD). Cannot be combined with year.")),
		mcp.WithString("end", mcp.Description("Window end date (YYYY-MM-DD), exclusive. Cannot be combined with year.")),
	}
}

func newTool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	all := append([]mcp.ToolOption{mcp.WithDescription(description)}, windowOptions()...)
	return mcp.NewTool(name, append(all, opts...)...)
}

// NewMCPServer initializes and configures the year2018 MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Year2018 Commit Statistics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
		mgr:     mgr,
	}

	s.AddTool(newTool("get_summary",
		"Summarize a year of git commits by the user: totals, most common repository, busiest day, latest commit and favorite language.",
	), h.handleGetSummary)

	s.AddTool(newTool("get_languages",
		"Rank the programming languages the user wrote by commits and changed lines.",
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetLanguages)

	s.AddTool(newTool("get_merges",
		"List the people the user merged work from or had work merged by.",
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetMerges)

	s.AddTool(newTool("get_activity",
		"Report when the user committed, per calendar day or per hour of the day.",
		mcp.WithString("granularity", mcp.Description("Bucket size. Defaults to 'days'."), mcp.Enum("days", "hours")),
	), h.handleGetActivity)

	return s
}

// StartMCPServer starts the year2018 MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, contract.NewLocalGitClient(), mgr)
	return server.ServeStdio(s)
}
