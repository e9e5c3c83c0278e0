package cmd

import (
	"github.com/baijiangliang/year2018/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the year2018 MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents query your commit statistics.

Tools: get_summary, get_languages, get_merges, get_activity.
Flags and the config file set the defaults that each tool call may override.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
