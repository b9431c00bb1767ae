package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/khanglvm/tool-search-mcp/internal/config"
	"github.com/khanglvm/tool-search-mcp/internal/mcp"
	"github.com/khanglvm/tool-search-mcp/internal/provider"
	"github.com/khanglvm/tool-search-mcp/internal/version"
)

// NewServeCmd creates the 'serve' command for running the MCP server.
//
// This exposes the search engine as 3 meta-tools via stdio transport:
// search_tools, list_tools, get_tool.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio transport)",
		Long: `Start the tool-search-mcp server using stdio transport.

This server exposes 3 meta-tools to AI clients:
  • search_tools - Search for tools across all configured servers
  • list_tools   - List every tool, optionally from a single server
  • get_tool     - Look up one tool by exact name

Configured servers are queried on-demand when a meta-tool is called.`,
		Example: `  # Run directly
  tool-search-mcp serve

  # Add to Claude Code
  claude mcp add tool-search -- tool-search-mcp serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	return cmd
}

// runServe starts the MCP server with stdio transport and signal handling.
func runServe() error {
	// Load configuration (creates empty config if missing)
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(cfg.Servers) == 0 {
		log.Printf("No servers configured; searches will return no results")
		log.Printf("Run 'tool-search-mcp add <name>' to register an MCP server")
	}

	server := mcp.NewServer(cfg, provider.NewClient())

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go checkForUpdates(ctx)

	// Run server in separate goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	// Wait for either signal or server exit
	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v, shutting down", sig)
		return nil

	case err := <-errChan:
		// Server.Run() returned (stdin closed or error)
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}

// checkForUpdates checks for a new version in the background.
func checkForUpdates(parentCtx context.Context) {
	select {
	case <-parentCtx.Done():
		return
	default:
	}

	ctx, cancel := context.WithTimeout(parentCtx, 10*time.Second)
	defer cancel()

	latest, err := version.CheckUpdate(ctx)
	if err != nil {
		log.Printf("Update check failed: %v", err)
		return
	}

	if latest != "" && latest != version.Version {
		log.Printf("Update available: %s (current: %s)", latest, version.Version)
		log.Printf("Download: https://github.com/%s/%s/releases/latest", version.RepoOwner, version.RepoName)
	}
}
