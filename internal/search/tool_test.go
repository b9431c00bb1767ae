package search

import (
	"strings"
	"testing"
)

func TestExtractSchemaText(t *testing.T) {
	doc := map[string]any{
		"type":        "object",
		"description": "Read a file from disk",
		"properties": map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "Absolute path",
			},
			"limit": map[string]any{
				"type": "number",
			},
		},
		"required": []any{"path"},
	}

	text := extractSchemaText(doc)

	// Key names at every level
	for _, want := range []string{"type", "description", "properties", "required", "path", "limit"} {
		if !strings.Contains(text, want) {
			t.Errorf("Schema text missing key %q: %q", want, text)
		}
	}

	// Description values at every level
	for _, want := range []string{"Read a file from disk", "Absolute path"} {
		if !strings.Contains(text, want) {
			t.Errorf("Schema text missing description %q: %q", want, text)
		}
	}

	// String scalar values
	if !strings.Contains(text, "object") || !strings.Contains(text, "string") {
		t.Errorf("Schema text missing string values: %q", text)
	}
}

func TestExtractSchemaTextEmpty(t *testing.T) {
	if got := extractSchemaText(nil); got != "" {
		t.Errorf("Expected empty text for nil doc, got %q", got)
	}

	if got := extractSchemaText(map[string]any{}); got != "" {
		t.Errorf("Expected empty text for empty doc, got %q", got)
	}
}

func TestExtractSchemaTextDeterministic(t *testing.T) {
	doc := map[string]any{
		"b": "two",
		"a": "one",
		"c": map[string]any{"z": "last", "y": "first"},
	}

	first := extractSchemaText(doc)
	for i := 0; i < 10; i++ {
		if got := extractSchemaText(doc); got != first {
			t.Fatalf("Schema text not deterministic: %q vs %q", first, got)
		}
	}

	// Keys appear in sorted order.
	if strings.Index(first, "a") > strings.Index(first, "b") {
		t.Errorf("Keys not sorted in %q", first)
	}
}

func TestExtractSchemaTextIgnoresNonStringLeaves(t *testing.T) {
	doc := map[string]any{
		"count":   float64(42),
		"enabled": true,
		"tags":    []any{"alpha", "beta"},
	}

	text := extractSchemaText(doc)

	// Arrays and non-string scalars contribute nothing beyond their keys.
	if strings.Contains(text, "42") || strings.Contains(text, "true") ||
		strings.Contains(text, "alpha") {
		t.Errorf("Non-string leaves leaked into schema text: %q", text)
	}
	if !strings.Contains(text, "count") || !strings.Contains(text, "tags") {
		t.Errorf("Key names missing from schema text: %q", text)
	}
}

func TestMatchToolName(t *testing.T) {
	m := Match{Server: "files", Tool: Tool{Name: "read_file"}}
	if m.ToolName() != "read_file" {
		t.Errorf("ToolName() = %q, want %q", m.ToolName(), "read_file")
	}
}
