package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/tool-search-mcp/internal/config"
	"github.com/khanglvm/tool-search-mcp/internal/provider"
	"github.com/khanglvm/tool-search-mcp/internal/search"
)

// NewListCmd creates the 'list' command for listing every available tool.
func NewListCmd() *cobra.Command {
	var (
		serverName  string
		jsonOutput  bool
		showSchemas bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every tool from every configured MCP server",
		Long: `Query all configured MCP servers concurrently and print every tool
they expose. Servers that cannot be reached are reported as warnings
and do not fail the listing.`,
		Example: `  tool-search-mcp list
  tool-search-mcp ls --server github
  tool-search-mcp list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListTools(serverName, jsonOutput, showSchemas)
		},
	}

	cmd.Flags().StringVarP(&serverName, "server", "s", "", "Only list tools from this server")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().BoolVar(&showSchemas, "schemas", false, "Include input schemas in the output")

	return cmd
}

// runListTools lists all tools, optionally filtered to one server.
func runListTools(serverName string, jsonOutput, showSchemas bool) error {
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	servers := cfg.Servers
	if serverName != "" {
		srv := cfg.FindServer(serverName)
		if srv == nil {
			return fmt.Errorf("server '%s' not found", serverName)
		}
		servers = []config.Server{*srv}
	}

	if len(servers) == 0 {
		fmt.Println("No servers configured.")
		fmt.Println("Run 'tool-search-mcp add <name>' to register an MCP server.")
		return nil
	}

	searcher := search.NewSearcher(provider.NewClient())
	matches, warnings, err := searcher.ListAll(context.Background(), servers, search.OptionsFrom(cfg.Settings))
	if err != nil {
		return err
	}

	if jsonOutput {
		return printMatchesJSON(matches, warnings)
	}

	if len(matches) == 0 {
		fmt.Println("No tools available.")
	} else {
		fmt.Printf("Available tools (%d):\n\n", len(matches))
		current := ""
		for _, m := range matches {
			if m.Server != current {
				current = m.Server
				fmt.Printf("  %s:\n", current)
			}
			fmt.Printf("    • %s", m.ToolName())
			if m.Tool.Description != "" {
				fmt.Printf(": %s", m.Tool.Description)
			}
			fmt.Println()
			if showSchemas && len(m.Tool.InputSchema) > 0 {
				fmt.Printf("      schema: %v\n", m.Tool.InputSchema)
			}
		}
		fmt.Println()
	}

	printWarnings(warnings)
	return nil
}
