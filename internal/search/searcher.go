package search

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/khanglvm/tool-search-mcp/internal/config"
)

// Lister queries one MCP server for its tool list. Implementations must
// respect the context across connection, handshake, and every listing
// page, and must transparently follow pagination cursors.
//
// internal/provider supplies the production implementation; tests use
// in-package fakes.
type Lister interface {
	ListTools(ctx context.Context, srv config.Server) ([]Tool, error)
}

// Warning is a recoverable per-server failure surfaced alongside results
// when ContinueOnError is set.
type Warning struct {
	Server string
	Err    error
}

// Searcher runs searches across a set of MCP servers.
type Searcher struct {
	lister Lister
}

// NewSearcher creates a Searcher that queries servers through the
// given lister.
func NewSearcher(lister Lister) *Searcher {
	return &Searcher{lister: lister}
}

// listOutcome is the settled result of one server query.
type listOutcome struct {
	server string
	tools  []Tool
	err    error
}

// Search queries every configured server concurrently, filters the
// returned tools through the criteria, and merges the matches into one
// sorted, optionally truncated list.
//
// Invalid server descriptors and unreachable servers are skipped and
// reported as warnings when opts.ContinueOnError is set; otherwise the
// first such failure aborts the whole call and partial results are
// discarded. Warnings are always returned to the caller — results are
// never silently incomplete.
func (s *Searcher) Search(ctx context.Context, servers []config.Server, criteria *Criteria, opts Options) ([]Match, []Warning, error) {
	var warnings []Warning

	valid := make([]config.Server, 0, len(servers))
	for _, srv := range servers {
		if err := srv.Validate(); err != nil {
			if !opts.ContinueOnError {
				return nil, nil, &SearchError{Server: srv.Name, Err: err}
			}
			log.Printf("Warning: skipping invalid server %q: %v", srv.Name, err)
			warnings = append(warnings, Warning{Server: srv.Name, Err: err})
			continue
		}
		valid = append(valid, srv)
	}

	// Fan out one query per server and join on all of them. Each query
	// gets its own timeout; a slow server never cancels its siblings.
	outcomes := make(chan listOutcome, len(valid))
	var wg sync.WaitGroup
	for _, srv := range valid {
		wg.Add(1)
		go func(srv config.Server) {
			defer wg.Done()

			queryCtx := ctx
			cancel := context.CancelFunc(func() {})
			if opts.Timeout > 0 {
				queryCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
			}
			defer cancel()

			tools, err := s.lister.ListTools(queryCtx, srv)
			outcomes <- listOutcome{server: srv.Name, tools: tools, err: err}
		}(srv)
	}
	wg.Wait()
	close(outcomes)

	// Filter in completion order; this is the order SortNone preserves.
	var matches []Match
	for outcome := range outcomes {
		if outcome.err != nil {
			if !opts.ContinueOnError {
				return nil, nil, &SearchError{Server: outcome.server, Err: outcome.err}
			}
			log.Printf("Warning: server %q unreachable: %v", outcome.server, outcome.err)
			warnings = append(warnings, Warning{Server: outcome.server, Err: outcome.err})
			continue
		}
		for _, tool := range outcome.tools {
			if criteria.Matches(tool) {
				matches = append(matches, Match{Server: outcome.server, Tool: tool})
			}
		}
	}

	sortMatches(matches, opts.SortOrder)

	// Truncate only after sorting so every match participates in ordering.
	if opts.MaxResults > 0 && len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}

	return matches, warnings, nil
}

// ListAll returns every tool from every server, unfiltered.
func (s *Searcher) ListAll(ctx context.Context, servers []config.Server, opts Options) ([]Match, []Warning, error) {
	return s.Search(ctx, servers, MatchAll(), opts)
}

// SearchQuery searches with substring criteria and default options.
func (s *Searcher) SearchQuery(ctx context.Context, servers []config.Server, query string) ([]Match, []Warning, error) {
	return s.Search(ctx, servers, NewQueryCriteria(query), DefaultOptions())
}

// SearchRegex searches with regex criteria and default options.
func (s *Searcher) SearchRegex(ctx context.Context, servers []config.Server, pattern string) ([]Match, []Warning, error) {
	return s.Search(ctx, servers, NewRegexCriteria(pattern), DefaultOptions())
}

// SearchKeywords searches with keyword criteria and default options.
func (s *Searcher) SearchKeywords(ctx context.Context, servers []config.Server, keywords []string) ([]Match, []Warning, error) {
	return s.Search(ctx, servers, NewKeywordsCriteria(keywords), DefaultOptions())
}

func sortMatches(matches []Match, order SortOrder) {
	switch order {
	case SortServerThenTool:
		sort.Slice(matches, func(i, j int) bool {
			if matches[i].Server != matches[j].Server {
				return matches[i].Server < matches[j].Server
			}
			return matches[i].ToolName() < matches[j].ToolName()
		})
	case SortToolThenServer:
		sort.Slice(matches, func(i, j int) bool {
			if matches[i].ToolName() != matches[j].ToolName() {
				return matches[i].ToolName() < matches[j].ToolName()
			}
			return matches[i].Server < matches[j].Server
		})
	case SortNone:
		// Keep completion order.
	}
}
