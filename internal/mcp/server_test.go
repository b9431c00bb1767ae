package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/khanglvm/tool-search-mcp/internal/config"
	"github.com/khanglvm/tool-search-mcp/internal/search"
)

// fakeLister serves canned tool lists per server name.
type fakeLister struct {
	tools map[string][]search.Tool
}

func (f *fakeLister) ListTools(ctx context.Context, srv config.Server) ([]search.Tool, error) {
	return f.tools[srv.Name], nil
}

func testServer() *Server {
	cfg := config.NewConfig()
	cfg.SetServer(config.Server{
		Name:      "files",
		Transport: config.Transport{Type: config.TransportStdio, Command: "echo"},
	})
	cfg.SetServer(config.Server{
		Name:      "web",
		Transport: config.Transport{Type: config.TransportStdio, Command: "echo"},
	})

	lister := &fakeLister{
		tools: map[string][]search.Tool{
			"files": {
				{Name: "read_file", Description: "Read a file from disk"},
				{Name: "write_file", Description: "Write a file to disk"},
			},
			"web": {
				{Name: "fetch_url", Description: "Fetch a URL"},
			},
		},
	}

	return NewServer(cfg, lister)
}

func callResult(t *testing.T, resp *MCPResponse) string {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error response: %+v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("Result is %T, want map", resp.Result)
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) == 0 {
		t.Fatalf("Unexpected content: %v", result["content"])
	}
	text, _ := content[0]["text"].(string)
	return text
}

func TestHandleInitialize(t *testing.T) {
	server := testServer()

	resp, err := server.handleRequest([]byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`))
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("Result is %T", resp.Result)
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion = %v", result["protocolVersion"])
	}

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok || serverInfo["name"] != "tool-search-mcp" {
		t.Errorf("Unexpected serverInfo: %v", result["serverInfo"])
	}
}

func TestHandleToolsList(t *testing.T) {
	server := testServer()

	resp, err := server.handleRequest([]byte(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`))
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}

	result := resp.Result.(map[string]interface{})
	tools, ok := result["tools"].([]map[string]interface{})
	if !ok {
		t.Fatalf("tools is %T", result["tools"])
	}

	names := make(map[string]bool)
	for _, tool := range tools {
		name, _ := tool["name"].(string)
		names[name] = true
	}

	for _, want := range []string{"search_tools", "list_tools", "get_tool"} {
		if !names[want] {
			t.Errorf("Meta-tool %q missing from tools/list", want)
		}
	}
}

func TestHandleUnknownMethod(t *testing.T) {
	server := testServer()

	resp, err := server.handleRequest([]byte(`{"jsonrpc":"2.0","id":3,"method":"bogus/method"}`))
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}

	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Errorf("Expected method-not-found error, got %+v", resp.Error)
	}
}

func TestNotificationProducesNoResponse(t *testing.T) {
	server := testServer()

	resp, err := server.handleRequest([]byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}
	if resp != nil {
		t.Errorf("Notification should produce no response, got %+v", resp)
	}
}

func TestSearchToolsCall(t *testing.T) {
	server := testServer()

	req := `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"search_tools","arguments":{"query":"file"}}}`
	resp, err := server.handleRequest([]byte(req))
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}

	text := callResult(t, resp)
	if !strings.Contains(text, "read_file") || !strings.Contains(text, "write_file") {
		t.Errorf("Expected file tools in result, got: %s", text)
	}
	if strings.Contains(text, "fetch_url") {
		t.Errorf("fetch_url should not match 'file': %s", text)
	}
}

func TestSearchToolsRegexMode(t *testing.T) {
	server := testServer()

	req := `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"search_tools","arguments":{"query":"^(read|fetch)"}}}`
	resp, err := server.handleRequest([]byte(req))
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}

	text := callResult(t, resp)
	if !strings.Contains(text, "read_file") || !strings.Contains(text, "fetch_url") {
		t.Errorf("Expected regex matches, got: %s", text)
	}
	if strings.Contains(text, "write_file") {
		t.Errorf("write_file should not match the anchored pattern: %s", text)
	}
}

func TestSearchToolsLimit(t *testing.T) {
	server := testServer()

	req := `{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"search_tools","arguments":{"query":"file","limit":1}}}`
	resp, err := server.handleRequest([]byte(req))
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}

	text := callResult(t, resp)
	if !strings.Contains(text, "Found 1 tool(s)") {
		t.Errorf("Expected a single result, got: %s", text)
	}
}

func TestSearchToolsMissingQuery(t *testing.T) {
	server := testServer()

	req := `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"search_tools","arguments":{}}}`
	resp, err := server.handleRequest([]byte(req))
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}

	if resp.Error == nil {
		t.Error("Expected error for missing query")
	}
}

func TestListToolsCall(t *testing.T) {
	server := testServer()

	req := `{"jsonrpc":"2.0","id":8,"method":"tools/call","params":{"name":"list_tools","arguments":{}}}`
	resp, err := server.handleRequest([]byte(req))
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}

	text := callResult(t, resp)
	for _, want := range []string{"read_file", "write_file", "fetch_url"} {
		if !strings.Contains(text, want) {
			t.Errorf("list_tools output missing %q: %s", want, text)
		}
	}
}

func TestListToolsServerFilter(t *testing.T) {
	server := testServer()

	req := `{"jsonrpc":"2.0","id":9,"method":"tools/call","params":{"name":"list_tools","arguments":{"server":"web"}}}`
	resp, err := server.handleRequest([]byte(req))
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}

	text := callResult(t, resp)
	if !strings.Contains(text, "fetch_url") {
		t.Errorf("Expected web tools, got: %s", text)
	}
	if strings.Contains(text, "read_file") {
		t.Errorf("Files tools should be filtered out: %s", text)
	}
}

func TestListToolsUnknownServer(t *testing.T) {
	server := testServer()

	req := `{"jsonrpc":"2.0","id":10,"method":"tools/call","params":{"name":"list_tools","arguments":{"server":"nope"}}}`
	resp, err := server.handleRequest([]byte(req))
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}

	if resp.Error == nil || !strings.Contains(resp.Error.Message, "not found") {
		t.Errorf("Expected not-found error, got %+v", resp.Error)
	}
}

func TestGetToolCall(t *testing.T) {
	server := testServer()

	req := `{"jsonrpc":"2.0","id":11,"method":"tools/call","params":{"name":"get_tool","arguments":{"name":"READ_FILE"}}}`
	resp, err := server.handleRequest([]byte(req))
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}

	// Exact name lookup is case-insensitive.
	text := callResult(t, resp)
	if !strings.Contains(text, "read_file") || !strings.Contains(text, "files") {
		t.Errorf("Expected tool definition, got: %s", text)
	}
	if strings.Contains(text, "write_file") {
		t.Errorf("Only the exact-name tool should appear: %s", text)
	}
}

func TestUnknownToolCall(t *testing.T) {
	server := testServer()

	req := `{"jsonrpc":"2.0","id":12,"method":"tools/call","params":{"name":"bogus_tool","arguments":{}}}`
	resp, err := server.handleRequest([]byte(req))
	if err != nil {
		t.Fatalf("handleRequest failed: %v", err)
	}

	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("Expected invalid-params error, got %+v", resp.Error)
	}
}

func TestMalformedRequest(t *testing.T) {
	server := testServer()

	_, err := server.handleRequest([]byte(`{not json`))
	if err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestResponseSerialization(t *testing.T) {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      float64(1),
		Result:  map[string]interface{}{"ok": true},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded["jsonrpc"] != "2.0" {
		t.Errorf("jsonrpc = %v", decoded["jsonrpc"])
	}
	if _, hasErr := decoded["error"]; hasErr {
		t.Error("error field should be omitted when nil")
	}
}
