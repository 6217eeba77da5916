package storage

import (
	"fmt"
)

// DailyStats represents statistics for a single day
type DailyStats struct {
	Date         string
	Total        int
	SuccessCount int
	FailureCount int
	SlowCount    int
}

// ActionStats represents statistics grouped by binding
type ActionStats struct {
	Binding       string
	Action        string
	Total         int
	FailureCount  int
	AvgDurationMs float64
	MaxDurationMs float64
}

// OverallStats represents overall statistics
type OverallStats struct {
	Total         int
	SuccessCount  int
	FailureCount  int
	SlowCount     int
	AvgDurationMs float64
}

// GetDailyStats retrieves statistics grouped by date for the last N days
func (db *DB) GetDailyStats(days int) ([]DailyStats, error) {
	query := `
		SELECT
			DATE(timestamp) as date,
			COUNT(*) as total,
			SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END) as success_count,
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END) as failure_count,
			SUM(CASE WHEN slow = 1 THEN 1 ELSE 0 END) as slow_count
		FROM invocations
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY DATE(timestamp)
		ORDER BY date DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DailyStats
	for rows.Next() {
		var s DailyStats
		err := rows.Scan(&s.Date, &s.Total, &s.SuccessCount, &s.FailureCount, &s.SlowCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetActionStats retrieves statistics grouped by binding for the last N days
func (db *DB) GetActionStats(days int) ([]ActionStats, error) {
	query := `
		SELECT
			binding,
			MAX(action) as action,
			COUNT(*) as total,
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END) as failure_count,
			AVG(duration_us) / 1000.0 as avg_duration_ms,
			MAX(duration_us) / 1000.0 as max_duration_ms
		FROM invocations
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY binding
		ORDER BY total DESC, binding ASC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query action stats: %w", err)
	}
	defer rows.Close()

	var stats []ActionStats
	for rows.Next() {
		var s ActionStats
		err := rows.Scan(&s.Binding, &s.Action, &s.Total, &s.FailureCount, &s.AvgDurationMs, &s.MaxDurationMs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetOverallStats retrieves overall statistics for the last N days
func (db *DB) GetOverallStats(days int) (*OverallStats, error) {
	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END), 0) as success_count,
			COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0) as failure_count,
			COALESCE(SUM(CASE WHEN slow = 1 THEN 1 ELSE 0 END), 0) as slow_count,
			COALESCE(AVG(duration_us) / 1000.0, 0) as avg_duration_ms
		FROM invocations
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
	`

	var stats OverallStats
	err := db.conn.QueryRow(query, days).Scan(
		&stats.Total,
		&stats.SuccessCount,
		&stats.FailureCount,
		&stats.SlowCount,
		&stats.AvgDurationMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall stats: %w", err)
	}

	return &stats, nil
}
