package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/tool-search-mcp/internal/config"
)

// NewAddCmd creates the 'add' command for registering MCP servers.
func NewAddCmd() *cobra.Command {
	var (
		transport string
		command   string
		args      []string
		envVars   []string
		url       string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register an MCP server",
		Long: `Register an MCP server in ~/.tool-search-mcp.json.

Stdio servers need a command (plus optional args and env vars); SSE and
HTTP servers need a URL. The transport is inferred from the flags when
--transport is not given. Adding a server with an existing name
replaces it.`,
		Example: `  # Stdio server (transport inferred from --command)
  tool-search-mcp add github --command npx --arg "-y" --arg "@github/mcp-server"

  # Stdio server with environment variables
  tool-search-mcp add jira --command npx --arg "@lvmk/jira-mcp" --env "JIRA_TOKEN=secret"

  # SSE server
  tool-search-mcp add events --transport sse --url https://example.com/sse

  # Streamable HTTP server
  tool-search-mcp add api --transport http --url https://example.com/mcp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positionalArgs []string) error {
			return runAdd(positionalArgs[0], transport, command, args, envVars, url)
		},
	}

	cmd.Flags().StringVarP(&transport, "transport", "t", "", "Transport type: stdio, sse, or http")
	cmd.Flags().StringVarP(&command, "command", "c", "", "Command to run the MCP server (stdio)")
	cmd.Flags().StringArrayVarP(&args, "arg", "a", nil, "Arguments for the command (repeatable)")
	cmd.Flags().StringArrayVarP(&envVars, "env", "e", nil, "Environment variables (KEY=VALUE, repeatable)")
	cmd.Flags().StringVarP(&url, "url", "u", "", "Server URL (sse/http)")

	return cmd
}

// runAdd registers or replaces one server descriptor.
func runAdd(name, transport, command string, args, envVars []string, url string) error {
	if transport == "" {
		switch {
		case command != "":
			transport = config.TransportStdio
		case url != "":
			transport = config.TransportSSE
		default:
			return fmt.Errorf("either --command or --url is required")
		}
	}

	env := make(map[string]string)
	for _, e := range envVars {
		key, value := parseEnvVar(e)
		if key != "" {
			env[key] = value
		}
	}
	if len(env) == 0 {
		env = nil
	}

	server := config.Server{
		Name: name,
		Transport: config.Transport{
			Type:    transport,
			Command: command,
			Args:    args,
			Env:     env,
			URL:     url,
		},
	}

	if err := server.Validate(); err != nil {
		return err
	}

	cfg, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	replaced := cfg.FindServer(name) != nil
	cfg.SetServer(server)

	configPath, err := config.GetDefaultConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if replaced {
		fmt.Printf("✓ Updated server '%s' in %s\n", name, configPath)
	} else {
		fmt.Printf("✓ Added server '%s' to %s\n", name, configPath)
	}
	return nil
}

// parseEnvVar splits "KEY=VALUE" into key and value.
func parseEnvVar(s string) (string, string) {
	for i, c := range s {
		if c == '=' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}
