/*
Package cli implements the cobra commands for tool-search-mcp.

Each command lives in its own file and is constructed by a NewXxxCmd
function wired into the root command in cmd/tool-search-mcp.
*/
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/khanglvm/tool-search-mcp/internal/config"
	"github.com/khanglvm/tool-search-mcp/internal/provider"
	"github.com/khanglvm/tool-search-mcp/internal/search"
	"github.com/khanglvm/tool-search-mcp/internal/storage"
)

// NewSearchCmd creates the 'search' command for finding tools across
// all configured MCP servers.
func NewSearchCmd() *cobra.Command {
	var (
		regexMode     bool
		keywordsMode  bool
		wordBoundary  bool
		exactName     string
		caseSensitive bool
		fields        []string
		minDesc       int
		limit         int
		sortOrder     string
		timeout       time.Duration
		failFast      bool
		jsonOutput    bool
		showSchemas   bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search for tools across all configured MCP servers",
		Long: `Search every configured MCP server concurrently and print the tools
whose name, title, or description matches the query.

Without a mode flag the query is auto-detected: regex metacharacters
select regex mode, commas select keywords mode, and anything else
matches as a case-insensitive substring.`,
		Example: `  # Substring search (auto-detected)
  tool-search-mcp search file

  # Regex search (auto-detected from metacharacters)
  tool-search-mcp search '^(get|read)'

  # Keywords: every keyword must be present
  tool-search-mcp search "file, read"

  # Whole-word match: finds read_file but not bread
  tool-search-mcp search read --word-boundary

  # Exact name lookup
  tool-search-mcp search --name read_file

  # Include input schemas in the searched text
  tool-search-mcp search path --schemas`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			if query == "" && exactName == "" {
				return fmt.Errorf("a query or --name is required")
			}

			criteria, err := buildCriteria(query, exactName, regexMode, keywordsMode, wordBoundary)
			if err != nil {
				return err
			}
			if caseSensitive {
				criteria = criteria.WithCaseSensitive(true)
			}
			if minDesc > 0 {
				criteria = criteria.WithMinDescriptionLength(minDesc)
			}
			fieldMask, err := parseFields(fields, showSchemas)
			if err != nil {
				return err
			}
			criteria = criteria.WithFields(fieldMask)

			opts, err := buildOptions(limit, sortOrder, timeout, failFast)
			if err != nil {
				return err
			}

			return runSearch(query, criteria, opts, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&regexMode, "regex", "r", false, "Treat the query as a regular expression")
	cmd.Flags().BoolVarP(&keywordsMode, "keywords", "k", false, "Treat the query as comma-separated keywords (all must match)")
	cmd.Flags().BoolVarP(&wordBoundary, "word-boundary", "w", false, "Match the query as a whole word")
	cmd.Flags().StringVarP(&exactName, "name", "n", "", "Look up a tool by exact name")
	cmd.Flags().BoolVarP(&caseSensitive, "case-sensitive", "c", false, "Match case-sensitively")
	cmd.Flags().StringSliceVarP(&fields, "fields", "f", nil, "Fields to search (name,title,description,schema)")
	cmd.Flags().IntVar(&minDesc, "min-description", 0, "Only match tools whose description has at least this many characters")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of results (0 = unlimited)")
	cmd.Flags().StringVarP(&sortOrder, "sort", "s", "server", "Sort order: server, tool, or none")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "Per-server timeout (0 = use config setting)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Abort on the first server failure")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().BoolVar(&showSchemas, "schemas", false, "Also search inside tool input schemas")

	return cmd
}

// buildCriteria resolves the mode flags into search criteria.
// With no mode flag the query's mode is auto-detected.
func buildCriteria(query, exactName string, regexMode, keywordsMode, wordBoundary bool) (*search.Criteria, error) {
	modeFlags := 0
	for _, set := range []bool{regexMode, keywordsMode, wordBoundary} {
		if set {
			modeFlags++
		}
	}
	if modeFlags > 1 {
		return nil, fmt.Errorf("at most one of --regex, --keywords, --word-boundary may be given")
	}

	if exactName != "" {
		if modeFlags > 0 || query != "" {
			return nil, fmt.Errorf("--name cannot be combined with a query or mode flags")
		}
		return search.NewNameCriteria(exactName), nil
	}

	switch {
	case regexMode:
		return search.NewRegexCriteria(query), nil
	case keywordsMode:
		keywords := splitKeywords(query)
		if len(keywords) == 0 {
			return nil, fmt.Errorf("--keywords requires at least one keyword")
		}
		return search.NewKeywordsCriteria(keywords), nil
	case wordBoundary:
		return search.NewQueryCriteria(query).WithMode(search.ModeWordBoundary), nil
	default:
		return search.DetectCriteria(query), nil
	}
}

// splitKeywords splits on commas, trims whitespace, and drops empties.
func splitKeywords(query string) []string {
	var keywords []string
	for _, part := range strings.Split(query, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// parseFields resolves the --fields flag into a field mask.
func parseFields(fields []string, showSchemas bool) (search.Fields, error) {
	mask := search.DefaultFields()
	if len(fields) > 0 {
		mask = search.Fields{}
		for _, field := range fields {
			switch strings.ToLower(strings.TrimSpace(field)) {
			case "name":
				mask.Name = true
			case "title":
				mask.Title = true
			case "description":
				mask.Description = true
			case "schema":
				mask.InputSchema = true
			default:
				return mask, fmt.Errorf("unknown field %q (valid: name, title, description, schema)", field)
			}
		}
	}
	if showSchemas {
		mask.InputSchema = true
	}
	return mask, nil
}

// buildOptions resolves flags into search options, starting from the
// config file's settings.
func buildOptions(limit int, sortOrder string, timeout time.Duration, failFast bool) (search.Options, error) {
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return search.Options{}, fmt.Errorf("failed to load config: %w", err)
	}

	opts := search.OptionsFrom(cfg.Settings)
	if limit > 0 {
		opts.MaxResults = limit
	}
	if timeout > 0 {
		opts.Timeout = timeout
	}
	if failFast {
		opts.ContinueOnError = false
	}

	switch sortOrder {
	case "server":
		opts.SortOrder = search.SortServerThenTool
	case "tool":
		opts.SortOrder = search.SortToolThenServer
	case "none":
		opts.SortOrder = search.SortNone
	default:
		return opts, fmt.Errorf("unknown sort order %q (valid: server, tool, none)", sortOrder)
	}

	return opts, nil
}

// runSearch executes the search and prints results.
func runSearch(query string, criteria *search.Criteria, opts search.Options, jsonOutput bool) error {
	cfg, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(cfg.Servers) == 0 {
		fmt.Println("No servers configured.")
		fmt.Println("Run 'tool-search-mcp add <name>' to register an MCP server.")
		return nil
	}

	searcher := search.NewSearcher(provider.NewClient())

	start := time.Now()
	matches, warnings, err := searcher.Search(context.Background(), cfg.Servers, criteria, opts)
	if err != nil {
		return err
	}

	recordSearchHistory(query, criteria, len(matches), len(cfg.Servers), len(warnings), time.Since(start))

	if jsonOutput {
		return printMatchesJSON(matches, warnings)
	}
	return printMatches(query, matches, warnings)
}

// recordSearchHistory persists one search to the analytics database.
// Failures are logged inside storage and never surface to the user.
func recordSearchHistory(query string, criteria *search.Criteria, resultCount, serverCount, errorCount int, elapsed time.Duration) {
	store := storage.NewStorage()
	if err := store.Init(); err != nil {
		return
	}
	defer store.Close()

	_ = store.RecordSearch(storage.SearchRecord{
		SearchID:    uuid.New().String(),
		QueryHash:   storage.HashQuery(query),
		Mode:        criteria.Mode.String(),
		Timestamp:   time.Now(),
		ResultCount: resultCount,
		ServerCount: serverCount,
		ErrorCount:  errorCount,
		DurationMs:  elapsed.Milliseconds(),
	})
}

// printMatches renders matches for humans.
func printMatches(query string, matches []search.Match, warnings []search.Warning) error {
	if len(matches) == 0 {
		if query != "" {
			fmt.Printf("No tools matched %q.\n", query)
		} else {
			fmt.Println("No tools matched.")
		}
	} else {
		fmt.Printf("Found %d tool(s):\n\n", len(matches))
		for _, m := range matches {
			fmt.Printf("  %s/%s\n", m.Server, m.ToolName())
			if m.Tool.Title != "" && m.Tool.Title != m.ToolName() {
				fmt.Printf("    Title: %s\n", m.Tool.Title)
			}
			if m.Tool.Description != "" {
				fmt.Printf("    %s\n", m.Tool.Description)
			}
			fmt.Println()
		}
	}

	printWarnings(warnings)
	return nil
}

// printMatchesJSON renders matches as JSON for scripting.
func printMatchesJSON(matches []search.Match, warnings []search.Warning) error {
	type warning struct {
		Server string `json:"server"`
		Error  string `json:"error"`
	}
	output := struct {
		Matches  []search.Match `json:"matches"`
		Warnings []warning      `json:"warnings,omitempty"`
	}{
		Matches: matches,
	}
	for _, w := range warnings {
		output.Warnings = append(output.Warnings, warning{Server: w.Server, Error: w.Err.Error()})
	}
	if output.Matches == nil {
		output.Matches = []search.Match{}
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// printWarnings reports servers that could not be queried.
func printWarnings(warnings []search.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Printf("Warning: %d server(s) could not be queried:\n", len(warnings))
	for _, w := range warnings {
		fmt.Printf("  ✗ %s: %v\n", w.Server, w.Err)
	}
}
