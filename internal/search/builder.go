package search

import (
	"context"
	"strings"
	"time"

	"github.com/khanglvm/tool-search-mcp/internal/config"
)

// Builder is a convenience layer for common searches. It infers the match
// mode from a single free-form query string and delegates to the Searcher.
//
//	matches, warnings, err := searcher.NewBuilder(servers).
//		Query("read,file").
//		Limit(10).
//		SortByTool().
//		Run(ctx)
type Builder struct {
	searcher *Searcher
	servers  []config.Server
	query    string
	keywords []string
	opts     Options
}

// NewBuilder starts a builder over the given servers with default options.
func (s *Searcher) NewBuilder(servers []config.Server) *Builder {
	return &Builder{
		searcher: s,
		servers:  servers,
		opts:     DefaultOptions(),
	}
}

// Query sets the free-form query string. The match mode is auto-detected
// when the search runs; see DetectCriteria.
func (b *Builder) Query(query string) *Builder {
	b.query = query
	return b
}

// Keywords forces keyword matching (all must be present) and clears any
// previously set query.
func (b *Builder) Keywords(keywords ...string) *Builder {
	b.keywords = keywords
	b.query = ""
	return b
}

// Limit caps the number of results.
func (b *Builder) Limit(max int) *Builder {
	b.opts.MaxResults = max
	return b
}

// Timeout sets the per-server query timeout.
func (b *Builder) Timeout(d time.Duration) *Builder {
	b.opts.Timeout = d
	return b
}

// SortByTool orders results by tool name first, then server.
func (b *Builder) SortByTool() *Builder {
	b.opts.SortOrder = SortToolThenServer
	return b
}

// SortByServer orders results by server name first, then tool (default).
func (b *Builder) SortByServer() *Builder {
	b.opts.SortOrder = SortServerThenTool
	return b
}

// FailFast aborts the search on the first server failure instead of
// collecting warnings.
func (b *Builder) FailFast() *Builder {
	b.opts.ContinueOnError = false
	return b
}

// Run executes the search.
func (b *Builder) Run(ctx context.Context) ([]Match, []Warning, error) {
	var criteria *Criteria
	switch {
	case len(b.keywords) > 0:
		criteria = NewKeywordsCriteria(b.keywords)
	case b.query != "":
		criteria = DetectCriteria(b.query)
	default:
		criteria = MatchAll()
	}
	return b.searcher.Search(ctx, b.servers, criteria, b.opts)
}

// DetectCriteria builds criteria from a free-form query string. A query
// containing regex metacharacters is treated as a regex; one containing
// commas is split into keywords; anything else is a plain substring.
func DetectCriteria(query string) *Criteria {
	if likelyRegex(query) {
		return NewRegexCriteria(query)
	}
	if strings.Contains(query, ",") {
		var keywords []string
		for _, part := range strings.Split(query, ",") {
			if part = strings.TrimSpace(part); part != "" {
				keywords = append(keywords, part)
			}
		}
		return NewKeywordsCriteria(keywords)
	}
	return NewQueryCriteria(query)
}

// likelyRegex reports whether the query contains characters that suggest
// a regular expression.
func likelyRegex(query string) bool {
	return strings.ContainsAny(query, "^$*+?|[(")
}
