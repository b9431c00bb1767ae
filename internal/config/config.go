/*
Package config handles loading, saving, and validating tool-search-mcp
configuration.

Configuration is stored in ~/.tool-search-mcp.json:

	{
	  "servers": [
	    {
	      "name": "filesystem",
	      "transport": {
	        "type": "stdio",
	        "command": "npx",
	        "args": ["-y", "@modelcontextprotocol/server-filesystem", "/tmp"],
	        "env": {"KEY": "value"}
	      }
	    },
	    {
	      "name": "docs",
	      "transport": {"type": "http", "url": "https://docs.example.com/mcp"}
	    }
	  ],
	  "settings": {
	    "timeoutSeconds": 30,
	    "failFast": false,
	    "maxResults": 0
	  }
	}

Servers are an ordered list, not a map: duplicate names are legal and
search results simply carry the duplicated name.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Transport types for connecting to an MCP server.
const (
	// TransportStdio spawns a local process and speaks MCP over its pipes.
	TransportStdio = "stdio"
	// TransportSSE connects to an HTTP endpoint using server-sent events.
	TransportSSE = "sse"
	// TransportHTTP connects to a streamable HTTP endpoint.
	TransportHTTP = "http"
)

// Config is the root configuration structure.
type Config struct {
	// Servers is the ordered list of MCP servers to query.
	Servers []Server `json:"servers"`

	// Settings contains global options.
	Settings *Settings `json:"settings,omitempty"`
}

// Server describes one MCP server: a name plus how to reach it.
type Server struct {
	// Name identifies the server in search results. Uniqueness is not
	// enforced.
	Name string `json:"name"`

	// Transport describes how to connect.
	Transport Transport `json:"transport"`
}

// Transport describes the connection to an MCP server. Command/Args/Env
// apply to stdio transports; URL applies to sse and http transports.
type Transport struct {
	Type    string            `json:"type"`
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
}

// Settings contains global configuration options.
type Settings struct {
	// TimeoutSeconds is the per-server query timeout.
	TimeoutSeconds int `json:"timeoutSeconds,omitempty"`

	// FailFast aborts a search on the first server failure instead of
	// reporting it as a warning.
	FailFast bool `json:"failFast,omitempty"`

	// MaxResults caps the number of search results (0 = unlimited).
	MaxResults int `json:"maxResults,omitempty"`
}

// NewConfig creates an empty configuration with default settings.
func NewConfig() *Config {
	return &Config{
		Servers: []Server{},
		Settings: &Settings{
			TimeoutSeconds: 30,
		},
	}
}

// FindServer returns the first server with the given name, or nil.
func (c *Config) FindServer(name string) *Server {
	for i := range c.Servers {
		if c.Servers[i].Name == name {
			return &c.Servers[i]
		}
	}
	return nil
}

// SetServer replaces the first server with the same name, or appends.
func (c *Config) SetServer(srv Server) {
	for i := range c.Servers {
		if c.Servers[i].Name == srv.Name {
			c.Servers[i] = srv
			return
		}
	}
	c.Servers = append(c.Servers, srv)
}

// RemoveServer deletes every server with the given name and reports
// whether any was removed.
func (c *Config) RemoveServer(name string) bool {
	kept := c.Servers[:0]
	removed := false
	for _, srv := range c.Servers {
		if srv.Name == name {
			removed = true
			continue
		}
		kept = append(kept, srv)
	}
	c.Servers = kept
	return removed
}

// GetDefaultConfigPath returns the path to ~/.tool-search-mcp.json
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".tool-search-mcp.json"), nil
}
