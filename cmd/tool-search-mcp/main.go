/*
Package main is the entry point for the tool-search-mcp CLI.

tool-search-mcp searches for tools across multiple MCP servers. It
queries every configured server concurrently, tolerates individual
server failures, and matches tools by substring, regex, keywords, or
whole-word queries.

Usage:
  tool-search-mcp [command]

Available Commands:
  search      Search for tools across all configured MCP servers
  list        List every tool from every configured MCP server
  servers     List all registered MCP servers
  add         Register an MCP server
  remove      Remove an MCP server
  verify      Verify configuration and connections
  serve       Run the MCP server (stdio transport)
  history     Show recent search history
  version     Show version information
  help        Help about any command

Examples:
  # Register a server and search it
  tool-search-mcp add github --command npx --arg "@github/mcp-server"
  tool-search-mcp search file

  # Run as an MCP server exposing search as meta-tools
  tool-search-mcp serve
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khanglvm/tool-search-mcp/internal/cli"
	"github.com/khanglvm/tool-search-mcp/internal/version"
)

// Version information (set via ldflags during build)
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

func main() {
	// Propagate ldflags values to the version package.
	if buildVersion != "dev" {
		version.Version = buildVersion
		version.Commit = buildCommit
		version.Date = buildDate
	}

	rootCmd := &cobra.Command{
		Use:   "tool-search-mcp",
		Short: "Search for tools across multiple MCP servers",
		Long: `tool-search-mcp finds tools across all your MCP (Model Context
Protocol) servers with one query.

It queries every configured server concurrently, keeps going when
individual servers are down, and matches tool names, titles, and
descriptions by substring, regex, keywords, or whole-word queries.
It can also run as an MCP server itself, exposing the search engine
as 3 meta-tools:
  • search_tools - Search for tools across all configured servers
  • list_tools   - List every tool, optionally from a single server
  • get_tool     - Look up one tool by exact name`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate),
	}

	// Add subcommands
	rootCmd.AddCommand(cli.NewSearchCmd())
	rootCmd.AddCommand(cli.NewListCmd())
	rootCmd.AddCommand(cli.NewServersCmd())
	rootCmd.AddCommand(cli.NewAddCmd())
	rootCmd.AddCommand(cli.NewRemoveCmd())
	rootCmd.AddCommand(cli.NewVerifyCmd())
	rootCmd.AddCommand(cli.NewServeCmd())
	rootCmd.AddCommand(cli.NewHistoryCmd())
	rootCmd.AddCommand(cli.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
