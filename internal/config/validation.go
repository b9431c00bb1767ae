/*
Package config provides validation helpers for MCP server descriptors.

Validation is a local pre-flight check used by the search orchestrator
and CLI commands before any connection is attempted.
*/
package config

import (
	"fmt"
	"strings"
)

// Validate checks that the server descriptor is well formed: a non-empty
// name, a recognized transport type, and the transport-specific required
// fields. URL transports must use an http:// or https:// address.
func (s *Server) Validate() error {
	if s.Name == "" {
		return &ValidationError{Reason: "server name cannot be empty"}
	}

	switch s.Transport.Type {
	case TransportStdio:
		if s.Transport.Command == "" {
			return &ValidationError{Server: s.Name, Reason: "command cannot be empty for stdio transport"}
		}
	case TransportSSE, TransportHTTP:
		url := s.Transport.URL
		if url == "" {
			return &ValidationError{Server: s.Name, Reason: fmt.Sprintf("url cannot be empty for %s transport", s.Transport.Type)}
		}
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return &ValidationError{Server: s.Name, Reason: fmt.Sprintf("invalid url format: %s", url)}
		}
	case "":
		return &ValidationError{Server: s.Name, Reason: "transport type is required"}
	default:
		return &ValidationError{Server: s.Name, Reason: fmt.Sprintf("unknown transport type: %s", s.Transport.Type)}
	}

	return nil
}
