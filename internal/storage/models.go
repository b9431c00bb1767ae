package storage

import "time"

// SearchRecord represents one completed search for analytics.
type SearchRecord struct {
	// SearchID is a unique identifier for this search (UUID).
	SearchID string `json:"search_id"`

	// QueryHash is the SHA256 hash of the search query for privacy.
	QueryHash string `json:"query_hash"`

	// Mode is the match mode the search ran with.
	Mode string `json:"mode"`

	// Timestamp is when the search was performed.
	Timestamp time.Time `json:"timestamp"`

	// ResultCount is the number of matches returned.
	ResultCount int `json:"result_count"`

	// ServerCount is the number of servers queried.
	ServerCount int `json:"server_count"`

	// ErrorCount is the number of servers that failed.
	ErrorCount int `json:"error_count"`

	// DurationMs is the wall-clock duration of the search in milliseconds.
	DurationMs int64 `json:"duration_ms"`
}
