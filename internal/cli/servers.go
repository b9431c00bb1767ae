package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/tool-search-mcp/internal/config"
	"github.com/khanglvm/tool-search-mcp/internal/provider"
	"github.com/khanglvm/tool-search-mcp/internal/search"
)

// NewServersCmd creates the 'servers' command for listing registered
// MCP servers.
func NewServersCmd() *cobra.Command {
	var showStatus bool

	cmd := &cobra.Command{
		Use:   "servers",
		Short: "List all registered MCP servers",
		Long:  `Display all MCP servers registered in ~/.tool-search-mcp.json`,
		Example: `  tool-search-mcp servers
  tool-search-mcp servers --status  # test connections and show tool counts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServers(showStatus)
		},
	}

	cmd.Flags().BoolVarP(&showStatus, "status", "s", false, "Test connections and show tool counts")

	return cmd
}

// runServers displays all registered MCP servers.
func runServers(showStatus bool) error {
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(cfg.Servers) == 0 {
		fmt.Println("No servers configured.")
		fmt.Println("Run 'tool-search-mcp add <name>' to register an MCP server.")
		return nil
	}

	fmt.Printf("Registered MCP Servers (%d):\n\n", len(cfg.Servers))

	var client *provider.Client
	var opts search.Options
	if showStatus {
		client = provider.NewClient()
		opts = search.OptionsFrom(cfg.Settings)
	}

	for _, server := range cfg.Servers {
		fmt.Printf("  %s\n", server.Name)
		fmt.Printf("    Transport: %s\n", server.Transport.Type)
		switch server.Transport.Type {
		case config.TransportStdio:
			fmt.Printf("    Command:   %s %v\n", server.Transport.Command, server.Transport.Args)
			if len(server.Transport.Env) > 0 {
				fmt.Printf("    Env:       %d variables\n", len(server.Transport.Env))
			}
		case config.TransportSSE, config.TransportHTTP:
			fmt.Printf("    URL:       %s\n", server.Transport.URL)
		}

		// Check status if requested
		if showStatus {
			tools, err := probeServer(client, server, opts)
			if err != nil {
				fmt.Printf("    Status:    ✗ %s\n", err.Error())
			} else {
				fmt.Printf("    Status:    ✓ %d tools\n", len(tools))
			}
		}

		fmt.Println()
	}

	return nil
}

// probeServer lists one server's tools under the configured timeout.
func probeServer(client *provider.Client, server config.Server, opts search.Options) ([]search.Tool, error) {
	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	return client.ListTools(ctx, server)
}
