/*
Package provider implements the MCP client side of tool-search-mcp.

It connects to a configured server (spawning a stdio process or dialing
an SSE/streamable-HTTP endpoint), performs the initialize handshake, and
lists the server's tools, transparently following pagination cursors.
Connections are short-lived: one connection per listing call, closed
before returning.

The deadline on the supplied context bounds the whole call — connect,
handshake, and every listing page together, not each page separately.
*/
package provider

import (
	"context"
	"encoding/json"
	"fmt"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/khanglvm/tool-search-mcp/internal/config"
	"github.com/khanglvm/tool-search-mcp/internal/search"
	"github.com/khanglvm/tool-search-mcp/internal/version"
)

// Client lists tools from MCP servers. It implements search.Lister.
type Client struct{}

// NewClient creates a provider client.
func NewClient() *Client {
	return &Client{}
}

var _ search.Lister = (*Client)(nil)

// ListTools connects to the server, performs the MCP handshake, and
// returns its complete tool list across all pages.
func (c *Client) ListTools(ctx context.Context, srv config.Server) ([]search.Tool, error) {
	cli, err := connect(ctx, srv)
	if err != nil {
		return nil, err
	}
	defer cli.Close()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "tool-search-mcp",
		Version: version.Version,
	}
	if _, err := cli.Initialize(ctx, initReq); err != nil {
		return nil, wrapErr(srv.Name, KindProtocol, fmt.Errorf("initialize failed: %w", err))
	}

	// Page through tools/list until the server stops returning a cursor.
	var tools []search.Tool
	listReq := mcp.ListToolsRequest{}
	for {
		result, err := cli.ListTools(ctx, listReq)
		if err != nil {
			return nil, wrapErr(srv.Name, KindProtocol, fmt.Errorf("tools/list failed: %w", err))
		}
		for _, tool := range result.Tools {
			record, err := convertTool(tool)
			if err != nil {
				return nil, wrapErr(srv.Name, KindProtocol, fmt.Errorf("malformed tool definition: %w", err))
			}
			tools = append(tools, record)
		}
		if result.NextCursor == "" {
			break
		}
		listReq.Params.Cursor = result.NextCursor
	}

	return tools, nil
}

// connect builds and starts an MCP client for the server's transport.
func connect(ctx context.Context, srv config.Server) (*mcpclient.Client, error) {
	t := srv.Transport

	switch t.Type {
	case config.TransportStdio:
		env := make([]string, 0, len(t.Env))
		for key, value := range t.Env {
			env = append(env, fmt.Sprintf("%s=%s", key, value))
		}
		cli, err := mcpclient.NewStdioMCPClient(t.Command, env, t.Args...)
		if err != nil {
			return nil, wrapErr(srv.Name, KindConnection, fmt.Errorf("failed to spawn %q: %w", t.Command, err))
		}
		return cli, nil

	case config.TransportSSE:
		cli, err := mcpclient.NewSSEMCPClient(t.URL)
		if err != nil {
			return nil, wrapErr(srv.Name, KindConnection, fmt.Errorf("failed to create SSE client: %w", err))
		}
		if err := cli.Start(ctx); err != nil {
			cli.Close()
			return nil, wrapErr(srv.Name, KindConnection, fmt.Errorf("failed to connect to %s: %w", t.URL, err))
		}
		return cli, nil

	case config.TransportHTTP:
		cli, err := mcpclient.NewStreamableHttpClient(t.URL)
		if err != nil {
			return nil, wrapErr(srv.Name, KindConnection, fmt.Errorf("failed to create HTTP client: %w", err))
		}
		if err := cli.Start(ctx); err != nil {
			cli.Close()
			return nil, wrapErr(srv.Name, KindConnection, fmt.Errorf("failed to connect to %s: %w", t.URL, err))
		}
		return cli, nil

	default:
		return nil, &Error{
			Server: srv.Name,
			Kind:   KindUnsupported,
			Err:    fmt.Errorf("transport type %q", t.Type),
		}
	}
}

// convertTool maps a wire-level tool definition onto the search record.
// The JSON round trip keeps the schema document generic and tolerates
// fields this version of the protocol library does not model.
func convertTool(tool mcp.Tool) (search.Tool, error) {
	data, err := json.Marshal(tool)
	if err != nil {
		return search.Tool{}, err
	}
	var record search.Tool
	if err := json.Unmarshal(data, &record); err != nil {
		return search.Tool{}, err
	}
	return record, nil
}
