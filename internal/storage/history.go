package storage

import (
	"fmt"
	"time"
)

// RecordSearch records a search query for analytics.
//
// This is a no-op if storage is disabled.
func (s *SQLiteStorage) RecordSearch(record SearchRecord) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	query := `
		INSERT INTO search_history
			(search_id, query_hash, mode, timestamp, result_count, server_count, error_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		record.SearchID,
		record.QueryHash,
		record.Mode,
		record.Timestamp.UTC().Format(time.RFC3339),
		record.ResultCount,
		record.ServerCount,
		record.ErrorCount,
		record.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}

	return nil
}

// RecentSearches retrieves the most recent searches, newest first.
//
// Returns nil if storage is disabled. A limit <= 0 means no limit.
func (s *SQLiteStorage) RecentSearches(limit int) ([]SearchRecord, error) {
	if !s.enabled || s.db == nil {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT search_id, query_hash, mode, timestamp, result_count, server_count, error_count, duration_ms
		FROM search_history
		ORDER BY timestamp DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	defer rows.Close()

	var records []SearchRecord
	for rows.Next() {
		var record SearchRecord
		var timestamp string
		if err := rows.Scan(
			&record.SearchID,
			&record.QueryHash,
			&record.Mode,
			&timestamp,
			&record.ResultCount,
			&record.ServerCount,
			&record.ErrorCount,
			&record.DurationMs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan search record: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, timestamp); err == nil {
			record.Timestamp = parsed
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Cleanup removes records older than the retention period.
//
// This is a no-op if storage is disabled.
func (s *SQLiteStorage) Cleanup(retention time.Duration) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-retention).UTC().Format(time.RFC3339)

	if _, err := s.db.Exec("DELETE FROM search_history WHERE timestamp < ?", cutoff); err != nil {
		return fmt.Errorf("failed to clean up search history: %w", err)
	}

	return nil
}
