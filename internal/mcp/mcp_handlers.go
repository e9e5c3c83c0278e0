package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/baijiangliang/year2018/core"
	"github.com/baijiangliang/year2018/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
	mgr     contract.CacheManager
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// configFor applies the window arguments of a request to a copy of the base config.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if repos := splitList(request.GetString("repos", "")); len(repos) > 0 {
		cfg.Repos = repos
	}
	if emails := request.GetString("emails", ""); emails != "" {
		if err := contract.RevalidateIdentities(cfg, splitList(emails)); err != nil {
			return nil, err
		}
	}

	year := request.GetInt("year", 0)
	start := request.GetString("start", "")
	end := request.GetString("end", "")
	if year != 0 || start != "" || end != "" {
		if err := contract.RevalidateWindow(cfg, year, start, end); err != nil {
			return nil, err
		}
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.Limit = min(l, contract.MaxResultLimit)
	}
	return cfg, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func limited[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}

func (h *toolHandler) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	report, err := core.GetSummaryResults(core.WithSuppressProgress(ctx), cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleGetLanguages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	langs, err := core.GetLanguagesResults(core.WithSuppressProgress(ctx), cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(limited(langs, cfg.Limit))
}

func (h *toolHandler) handleGetMerges(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	mg, err := core.GetMergeGraph(core.WithSuppressProgress(ctx), cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(limited(core.Collaborators(mg), cfg.Limit))
}

func (h *toolHandler) handleGetActivity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	granularity := request.GetString("granularity", "days")
	if granularity != "days" && granularity != "hours" {
		return mcp.NewToolResultError(fmt.Sprintf("invalid granularity '%s'. must be days or hours", granularity)), nil
	}
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	ctx = core.WithSuppressProgress(ctx)
	if granularity == "hours" {
		hours, err := core.GetHoursResults(ctx, cfg, h.client, h.mgr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(hours)
	}
	days, err := core.GetDaysResults(ctx, cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(days)
}
