package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("invocation not found")

// timestampLayout matches SQLite's CURRENT_TIMESTAMP so date functions and
// string comparisons against datetime('now') agree.
const timestampLayout = "2006-01-02 15:04:05"

// Invocation is one fired binding.
type Invocation struct {
	ID           int64
	Timestamp    time.Time
	Binding      string
	Action       string
	Trigger      string
	DurationUs   int64
	Slow         bool
	Success      bool
	ErrorMessage string
}

// SaveInvocation saves an invocation to the database
func (db *DB) SaveInvocation(inv *Invocation) error {
	ts := inv.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query := `
		INSERT INTO invocations (
			timestamp, binding, action, trigger_keys, duration_us, slow, success, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.conn.Exec(query,
		ts.UTC().Format(timestampLayout), inv.Binding, inv.Action, inv.Trigger,
		inv.DurationUs, inv.Slow, inv.Success, inv.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to save invocation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	inv.ID = id
	return nil
}

// GetInvocations retrieves invocations with pagination, newest first
func (db *DB) GetInvocations(limit, offset int) ([]Invocation, error) {
	query := `
		SELECT id, timestamp, binding, action, trigger_keys, duration_us, slow, success, error_message
		FROM invocations
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.conn.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query invocations: %w", err)
	}
	defer rows.Close()

	var invocations []Invocation
	for rows.Next() {
		var inv Invocation
		var errorMessage sql.NullString

		err := rows.Scan(
			&inv.ID, &inv.Timestamp, &inv.Binding, &inv.Action, &inv.Trigger,
			&inv.DurationUs, &inv.Slow, &inv.Success, &errorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invocation: %w", err)
		}

		if errorMessage.Valid {
			inv.ErrorMessage = errorMessage.String
		}

		invocations = append(invocations, inv)
	}

	return invocations, rows.Err()
}

// DeleteInvocation deletes an invocation by ID
func (db *DB) DeleteInvocation(id int64) error {
	result, err := db.conn.Exec(`DELETE FROM invocations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete invocation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	return nil
}

// ClearInvocations deletes the whole history and returns the number of rows
// removed.
func (db *DB) ClearInvocations() (int64, error) {
	result, err := db.conn.Exec(`DELETE FROM invocations`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear invocations: %w", err)
	}
	return result.RowsAffected()
}

// GetInvocationCount returns the total number of invocations
func (db *DB) GetInvocationCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM invocations").Scan(&count)
	return count, err
}
