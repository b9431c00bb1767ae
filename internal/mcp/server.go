/*
Package mcp implements the MCP server that exposes the search engine.

The server uses stdio transport and exposes 3 meta-tools:
  - search_tools: search for tools across all configured servers
  - list_tools:   list every tool, optionally from a single server
  - get_tool:     look up one tool by exact name
*/
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/khanglvm/tool-search-mcp/internal/config"
	"github.com/khanglvm/tool-search-mcp/internal/search"
	"github.com/khanglvm/tool-search-mcp/internal/version"
)

// Server represents the tool-search-mcp MCP server.
type Server struct {
	config   *config.Config
	searcher *search.Searcher
}

// NewServer creates a new MCP server that answers meta-tool calls by
// querying the configured servers through the given lister.
func NewServer(cfg *config.Config, lister search.Lister) *Server {
	return &Server{
		config:   cfg,
		searcher: search.NewSearcher(lister),
	}
}

// Run starts the MCP server using stdio transport.
// This blocks until stdin is closed.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		response, err := s.handleRequest(line)
		if err != nil {
			s.sendError(err)
			continue
		}

		if response != nil {
			s.sendResponse(response)
		}
	}

	return scanner.Err()
}

// MCPRequest represents an incoming MCP JSON-RPC request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing MCP JSON-RPC response.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents an MCP error.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// handleRequest processes an incoming MCP request.
func (s *Server) handleRequest(data []byte) (*MCPResponse, error) {
	var req MCPRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON-RPC request: %w", err)
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(&req)
	case "notifications/initialized":
		// Notification, no response.
		return nil, nil
	case "tools/list":
		return s.handleToolsList(&req)
	case "tools/call":
		return s.handleToolsCall(&req)
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32601, Message: "Method not found"},
		}, nil
	}
}

// handleInitialize handles the MCP initialize request.
func (s *Server) handleInitialize(req *MCPRequest) (*MCPResponse, error) {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "tool-search-mcp",
				"version": version.Version,
			},
		},
	}, nil
}

// handleToolsList returns the meta-tool definitions.
func (s *Server) handleToolsList(req *MCPRequest) (*MCPResponse, error) {
	tools := []map[string]interface{}{
		{
			"name": "search_tools",
			"description": `Search for tools across all configured MCP servers.

The query is matched against tool names, titles, and descriptions.
Queries containing regex metacharacters are treated as regular
expressions; comma-separated queries match as keywords (all must be
present); anything else matches as a substring.`,
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Search query (substring, regex, or comma-separated keywords)",
					},
					"mode": map[string]interface{}{
						"type":        "string",
						"description": "Force a match mode instead of auto-detecting",
						"enum":        []string{"substring", "regex", "keywords", "word-boundary"},
					},
					"caseSensitive": map[string]interface{}{
						"type":        "boolean",
						"description": "Match case-sensitively",
					},
					"searchSchemas": map[string]interface{}{
						"type":        "boolean",
						"description": "Also search inside tool input schemas",
					},
					"limit": map[string]interface{}{
						"type":        "number",
						"description": "Maximum number of results",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			"name": "list_tools",
			"description": `List every tool from every configured MCP server, or from a
single server when the server argument is given.`,
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"server": map[string]interface{}{
						"type":        "string",
						"description": "Only list tools from this server",
					},
				},
			},
		},
		{
			"name": "get_tool",
			"description": `Look up a single tool by exact name (case-insensitive) and return
its full definition including the input schema.`,
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Exact tool name",
					},
				},
				"required": []string{"name"},
			},
		},
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": tools,
		},
	}, nil
}

// handleToolsCall handles meta-tool execution requests.
func (s *Server) handleToolsCall(req *MCPRequest) (*MCPResponse, error) {
	var params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	var result string
	var err error

	switch params.Name {
	case "search_tools":
		result, err = s.execSearchTools(params.Arguments)
	case "list_tools":
		server, _ := params.Arguments["server"].(string)
		result, err = s.execListTools(server)
	case "get_tool":
		name, _ := params.Arguments["name"].(string)
		result, err = s.execGetTool(name)
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32602, Message: fmt.Sprintf("Unknown tool: %s", params.Name)},
		}, nil
	}

	if err != nil {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32000, Message: err.Error()},
		}, nil
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": result,
				},
			},
		},
	}, nil
}

// execSearchTools runs a search across all configured servers.
func (s *Server) execSearchTools(args map[string]interface{}) (string, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return "", fmt.Errorf("query is required")
	}

	criteria := search.DetectCriteria(query)
	if mode, ok := args["mode"].(string); ok && mode != "" {
		forced, err := criteriaForMode(query, mode)
		if err != nil {
			return "", err
		}
		criteria = forced
	}
	if caseSensitive, _ := args["caseSensitive"].(bool); caseSensitive {
		criteria = criteria.WithCaseSensitive(true)
	}
	if searchSchemas, _ := args["searchSchemas"].(bool); searchSchemas {
		fields := search.DefaultFields()
		fields.InputSchema = true
		criteria = criteria.WithFields(fields)
	}

	opts := search.OptionsFrom(s.config.Settings)
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		opts.MaxResults = int(limit)
	}

	matches, warnings, err := s.searcher.Search(context.Background(), s.config.Servers, criteria, opts)
	if err != nil {
		return "", err
	}

	if len(matches) == 0 {
		return formatWithWarnings(fmt.Sprintf("No tools matched %q.", query), warnings), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d tool(s) matching %q:\n", len(matches), query)
	for _, m := range matches {
		sb.WriteString(formatMatch(m))
	}
	return formatWithWarnings(sb.String(), warnings), nil
}

// execListTools lists every tool, optionally from a single server.
func (s *Server) execListTools(serverName string) (string, error) {
	servers := s.config.Servers
	if serverName != "" {
		srv := s.config.FindServer(serverName)
		if srv == nil {
			return "", fmt.Errorf("server '%s' not found", serverName)
		}
		servers = []config.Server{*srv}
	}

	matches, warnings, err := s.searcher.ListAll(context.Background(), servers, search.OptionsFrom(s.config.Settings))
	if err != nil {
		return "", err
	}

	if len(matches) == 0 {
		return formatWithWarnings("No tools available.", warnings), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Available tools (%d):\n", len(matches))
	for _, m := range matches {
		sb.WriteString(formatMatch(m))
	}
	return formatWithWarnings(sb.String(), warnings), nil
}

// execGetTool looks up one tool by exact name and dumps its definition.
func (s *Server) execGetTool(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name is required")
	}

	criteria := search.NewNameCriteria(name)
	matches, warnings, err := s.searcher.Search(context.Background(), s.config.Servers, criteria, search.OptionsFrom(s.config.Settings))
	if err != nil {
		return "", err
	}

	if len(matches) == 0 {
		return formatWithWarnings(fmt.Sprintf("Tool %q not found on any server.", name), warnings), nil
	}

	var sb strings.Builder
	for _, m := range matches {
		definition, err := json.MarshalIndent(m.Tool, "", "  ")
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "Tool %q on server %q:\n%s\n", m.ToolName(), m.Server, definition)
	}
	return formatWithWarnings(sb.String(), warnings), nil
}

// criteriaForMode builds criteria for an explicitly requested match mode
// instead of auto-detecting one from the query.
func criteriaForMode(query, mode string) (*search.Criteria, error) {
	switch mode {
	case "substring":
		return search.NewQueryCriteria(query), nil
	case "regex":
		return search.NewRegexCriteria(query), nil
	case "keywords":
		var keywords []string
		for _, part := range strings.Split(query, ",") {
			if part = strings.TrimSpace(part); part != "" {
				keywords = append(keywords, part)
			}
		}
		return search.NewKeywordsCriteria(keywords), nil
	case "word-boundary":
		return search.NewQueryCriteria(query).WithMode(search.ModeWordBoundary), nil
	default:
		return nil, fmt.Errorf("unknown mode: %s", mode)
	}
}

// formatMatch renders one match as a bullet line.
func formatMatch(m search.Match) string {
	if m.Tool.Description != "" {
		return fmt.Sprintf("  • %s/%s: %s\n", m.Server, m.ToolName(), m.Tool.Description)
	}
	return fmt.Sprintf("  • %s/%s\n", m.Server, m.ToolName())
}

// formatWithWarnings appends unreachable-server diagnostics to a result,
// so partial results are never silently incomplete.
func formatWithWarnings(body string, warnings []search.Warning) string {
	if len(warnings) == 0 {
		return body
	}
	var sb strings.Builder
	sb.WriteString(body)
	fmt.Fprintf(&sb, "\nWarning: %d server(s) could not be queried:\n", len(warnings))
	for _, w := range warnings {
		fmt.Fprintf(&sb, "  ✗ %s: %v\n", w.Server, w.Err)
	}
	return sb.String()
}

// sendResponse writes a JSON-RPC response to stdout.
func (s *Server) sendResponse(resp *MCPResponse) {
	data, _ := json.Marshal(resp)
	fmt.Println(string(data))
}

// sendError writes an error response to stdout.
func (s *Server) sendError(err error) {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      nil,
		Error:   &MCPError{Code: -32700, Message: err.Error()},
	}
	s.sendResponse(resp)
}
