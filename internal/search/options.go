package search

import (
	"time"

	"github.com/khanglvm/tool-search-mcp/internal/config"
)

// SortOrder controls the ordering of merged results.
type SortOrder int

const (
	// SortServerThenTool orders by server name, then tool name.
	SortServerThenTool SortOrder = iota
	// SortToolThenServer orders by tool name, then server name.
	SortToolThenServer
	// SortNone keeps the arbitrary completion order of the fan-out.
	SortNone
)

// Options configure one search call.
type Options struct {
	// Timeout bounds each server query individually, covering connection,
	// handshake, and every listing page. There is no global deadline
	// spanning all servers. Zero means no timeout.
	Timeout time.Duration

	// SortOrder for the merged result list.
	SortOrder SortOrder

	// ContinueOnError keeps the search going when a server is invalid or
	// unreachable, reporting the failure as a warning instead of aborting.
	ContinueOnError bool

	// MaxResults truncates the sorted result list. Zero means unlimited.
	// Truncation happens after sorting, never before.
	MaxResults int
}

// DefaultOptions returns the options used when the caller specifies none:
// 30 second per-server timeout, server-then-tool ordering, continue on
// error, unlimited results.
func DefaultOptions() Options {
	return Options{
		Timeout:         30 * time.Second,
		SortOrder:       SortServerThenTool,
		ContinueOnError: true,
	}
}

// OptionsFrom derives search options from configuration settings,
// falling back to defaults for unset values.
func OptionsFrom(settings *config.Settings) Options {
	opts := DefaultOptions()
	if settings == nil {
		return opts
	}
	if settings.TimeoutSeconds > 0 {
		opts.Timeout = time.Duration(settings.TimeoutSeconds) * time.Second
	}
	if settings.FailFast {
		opts.ContinueOnError = false
	}
	if settings.MaxResults > 0 {
		opts.MaxResults = settings.MaxResults
	}
	return opts
}
