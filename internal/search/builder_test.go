package search

import (
	"context"
	"testing"
	"time"

	"github.com/khanglvm/tool-search-mcp/internal/config"
)

func TestDetectCriteria(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantMode Mode
	}{
		{"plain word", "file", ModeSubstring},
		{"caret", "^read", ModeRegex},
		{"alternation", "get|set", ModeRegex},
		{"character class", "[rw]ead", ModeRegex},
		{"star", "rea*d", ModeRegex},
		{"comma list", "file, read", ModeKeywords},
		{"single trailing comma", "file,", ModeKeywords},
		// Regex detection wins over keyword detection.
		{"comma and metachar", "^get, read", ModeRegex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := DetectCriteria(tt.query)
			if criteria.Mode != tt.wantMode {
				t.Errorf("DetectCriteria(%q).Mode = %v, want %v", tt.query, criteria.Mode, tt.wantMode)
			}
		})
	}
}

func TestDetectCriteriaKeywordSplitting(t *testing.T) {
	criteria := DetectCriteria("file, read, ,  disk ")

	want := []string{"file", "read", "disk"}
	if len(criteria.Keywords) != len(want) {
		t.Fatalf("Expected keywords %v, got %v", want, criteria.Keywords)
	}
	for i, w := range want {
		if criteria.Keywords[i] != w {
			t.Errorf("Keyword %d = %q, want %q", i, criteria.Keywords[i], w)
		}
	}
}

func TestBuilderRun(t *testing.T) {
	lister := &fakeLister{
		tools: map[string][]Tool{
			"alpha": {
				{Name: "read_file"},
				{Name: "write_file"},
				{Name: "list_dir"},
			},
		},
	}
	searcher := NewSearcher(lister)
	servers := testServers()

	matches, warnings, err := searcher.NewBuilder(servers).
		Query("file").
		Limit(1).
		SortByTool().
		Timeout(time.Second).
		Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", warnings)
	}
	if len(matches) != 1 || matches[0].ToolName() != "read_file" {
		t.Errorf("Expected read_file (first by tool order), got %+v", matches)
	}
}

func TestBuilderKeywordsClearsQuery(t *testing.T) {
	lister := &fakeLister{
		tools: map[string][]Tool{
			"alpha": {
				{Name: "read_file", Description: "Reads file contents"},
				{Name: "write_file"},
			},
		},
	}
	searcher := NewSearcher(lister)

	matches, _, err := searcher.NewBuilder(testServers()).
		Query("write").
		Keywords("read", "contents").
		Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Keywords replace the earlier query entirely.
	if len(matches) != 1 || matches[0].ToolName() != "read_file" {
		t.Errorf("Expected keywords to override query, got %+v", matches)
	}
}

func TestBuilderMatchAllWhenEmpty(t *testing.T) {
	lister := &fakeLister{
		tools: map[string][]Tool{
			"alpha": {{Name: "a"}, {Name: "b"}},
		},
	}
	searcher := NewSearcher(lister)

	matches, _, err := searcher.NewBuilder(testServers()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected all tools with no query, got %d", len(matches))
	}
}

func testServers() []config.Server {
	return []config.Server{stdioServer("alpha")}
}
