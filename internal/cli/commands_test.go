package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// TestCommandConstructors verifies every command is constructed with a
// use line, descriptions, and a run function.
func TestCommandConstructors(t *testing.T) {
	tests := []struct {
		name string
		cmd  *cobra.Command
		use  string
	}{
		{"search", NewSearchCmd(), "search [query]"},
		{"list", NewListCmd(), "list"},
		{"servers", NewServersCmd(), "servers"},
		{"add", NewAddCmd(), "add <name>"},
		{"remove", NewRemoveCmd(), "remove <name>"},
		{"verify", NewVerifyCmd(), "verify"},
		{"serve", NewServeCmd(), "serve"},
		{"history", NewHistoryCmd(), "history"},
		{"version", NewVersionCmd(), "version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cmd == nil {
				t.Fatal("constructor returned nil")
			}
			if tt.cmd.Use != tt.use {
				t.Errorf("Expected Use=%q, got %q", tt.use, tt.cmd.Use)
			}
			if tt.cmd.Short == "" {
				t.Error("Command missing short description")
			}
			if tt.cmd.RunE == nil {
				t.Error("Command RunE function not set")
			}
		})
	}
}

func TestListCommandHelp(t *testing.T) {
	cmd := NewListCmd()
	cmd.SetArgs([]string{"--help"})

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() with --help failed: %v", err)
	}

	output := buf.String()

	expectedStrings := []string{
		"list",
		"--server",
		"--json",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Help output missing %q", expected)
		}
	}
}

func TestListCommandAlias(t *testing.T) {
	cmd := NewListCmd()

	aliases := cmd.Aliases
	if len(aliases) == 0 || aliases[0] != "ls" {
		t.Errorf("Expected alias 'ls', got %v", aliases)
	}
}

func TestRemoveCommandMissingName(t *testing.T) {
	cmd := NewRemoveCmd()
	cmd.SetArgs([]string{}) // No server name provided

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	err := cmd.Execute()

	// Should return error when no name provided
	if err == nil {
		t.Error("Expected error when no server name provided, got nil")
	}
}

func TestServeCommandHelp(t *testing.T) {
	cmd := NewServeCmd()
	cmd.SetArgs([]string{"--help"})

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() with --help failed: %v", err)
	}

	output := buf.String()

	expectedStrings := []string{
		"serve",
		"stdio",
		"search_tools",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Help output missing %q", expected)
		}
	}
}
