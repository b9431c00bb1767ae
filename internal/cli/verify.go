package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/tool-search-mcp/internal/config"
	"github.com/khanglvm/tool-search-mcp/internal/provider"
	"github.com/khanglvm/tool-search-mcp/internal/search"
)

// NewVerifyCmd creates the 'verify' command for verifying configuration.
func NewVerifyCmd() *cobra.Command {
	var connect bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify configuration and connections",
		Long: `Verify that the configuration is valid and optionally test
connections to registered MCP servers.`,
		Example: `  tool-search-mcp verify
  tool-search-mcp verify --connect  # also test each connection`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(connect)
		},
	}

	cmd.Flags().BoolVarP(&connect, "connect", "c", false, "Test connections to each server")

	return cmd
}

// runVerify validates the configuration.
func runVerify(connect bool) error {
	configPath, err := config.GetDefaultConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	fmt.Printf("✓ Config file: %s\n", configPath)
	fmt.Printf("✓ Servers registered: %d\n", len(cfg.Servers))

	var client *provider.Client
	var opts search.Options
	if connect {
		client = provider.NewClient()
		opts = search.OptionsFrom(cfg.Settings)
	}

	invalid := 0
	for _, server := range cfg.Servers {
		if err := server.Validate(); err != nil {
			fmt.Printf("✗ %s: %v\n", server.Name, err)
			invalid++
			continue
		}

		if connect {
			tools, err := probeServer(client, server, opts)
			if err != nil {
				fmt.Printf("✗ %s: %v\n", server.Name, err)
				invalid++
				continue
			}
			fmt.Printf("✓ %s: %d tools\n", server.Name, len(tools))
		} else {
			fmt.Printf("✓ %s: %s\n", server.Name, server.Transport.Type)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d server(s) failed verification", invalid)
	}
	return nil
}
