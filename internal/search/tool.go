/*
Package search implements the tool search engine for tool-search-mcp.

It provides the tool data model, flexible match criteria (substring, regex,
keyword, and word-boundary modes over selectable fields), and a concurrent
orchestrator that fans a listing query out to every configured MCP server,
filters the returned tools, and merges the results into one sorted list.

The package talks to servers only through the Lister interface; the MCP
wire protocol lives in internal/provider.
*/
package search

import (
	"sort"
	"strings"
)

// Tool is a single tool definition returned by an MCP server.
//
// InputSchema and OutputSchema are JSON value trees (objects, arrays,
// strings, numbers, booleans) kept as generic maps so that arbitrary
// schema shapes survive the round trip from the wire.
type Tool struct {
	Name         string         `json:"name"`
	Title        string         `json:"title,omitempty"`
	Description  string         `json:"description,omitempty"`
	InputSchema  map[string]any `json:"inputSchema,omitempty"`
	OutputSchema map[string]any `json:"outputSchema,omitempty"`
	Annotations  map[string]any `json:"annotations,omitempty"`
}

// Match is one search result: a tool and the server it came from.
//
// Two servers may expose identically-named tools; both appear as
// separate matches. Duplicate server names are not rejected either —
// results simply carry the duplicated name.
type Match struct {
	Server string `json:"server"`
	Tool   Tool   `json:"tool"`
}

// ToolName returns the name of the matched tool.
func (m Match) ToolName() string {
	return m.Tool.Name
}

// extractSchemaText flattens a schema document into a searchable string.
//
// For every object node it appends all key names, the node's own
// "description" value if present, the recursively extracted text of every
// nested object value, and every string value at that level. Other leaf
// values contribute nothing. Keys are visited in sorted order so the
// output is deterministic. A nil or empty document yields "".
//
// No depth limit is enforced; schemas are trees in practice, and a cyclic
// document is the caller's problem.
func extractSchemaText(doc map[string]any) string {
	var sb strings.Builder
	writeSchemaText(&sb, doc)
	return sb.String()
}

func writeSchemaText(sb *strings.Builder, obj map[string]any) {
	if len(obj) == 0 {
		return
	}

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteByte(' ')
	}

	if desc, ok := obj["description"].(string); ok {
		sb.WriteString(desc)
		sb.WriteByte(' ')
	}

	for _, key := range keys {
		switch value := obj[key].(type) {
		case map[string]any:
			writeSchemaText(sb, value)
		case string:
			sb.WriteString(value)
			sb.WriteByte(' ')
		}
	}
}
