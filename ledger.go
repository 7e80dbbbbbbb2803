package main

import (
	"database/sql"
	"fmt"
	"time"
)

// CreatedEvent is a row of the created_events ledger.
type CreatedEvent struct {
	Key        string
	CalendarID string
	EventID    string
	SourceFile string
	StartTime  string
	Summary    string
	CreatedAt  string
}

func recordCreatedEvent(db *sql.DB, entry CreatedEvent) error {
	if entry.CreatedAt == "" {
		entry.CreatedAt = time.Now().Format(time.RFC3339)
	}
	_, err := db.Exec(`INSERT OR REPLACE INTO created_events
		(event_key, calendar_id, event_id, source_file, start_time, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Key, entry.CalendarID, entry.EventID, entry.SourceFile, entry.StartTime, entry.Summary, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("error recording created event %s: %w", entry.Key, err)
	}
	return nil
}

// createdEvents lists ledger rows ordered by start time; an empty sourceFile lists all.
func createdEvents(db *sql.DB, sourceFile string) ([]CreatedEvent, error) {
	query := `SELECT event_key, calendar_id, event_id, source_file, start_time, summary, created_at
		FROM created_events`
	var args []interface{}
	if sourceFile != "" {
		query += " WHERE source_file = ?"
		args = append(args, sourceFile)
	}
	query += " ORDER BY source_file, calendar_id, start_time, summary"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving created events from database: %w", err)
	}
	defer rows.Close()

	var entries []CreatedEvent
	for rows.Next() {
		var e CreatedEvent
		if err := rows.Scan(&e.Key, &e.CalendarID, &e.EventID, &e.SourceFile, &e.StartTime, &e.Summary, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning created event row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func deleteCreatedEvent(db *sql.DB, calendarID, eventID string) error {
	_, err := db.Exec("DELETE FROM created_events WHERE calendar_id = ? AND event_id = ?", calendarID, eventID)
	if err != nil {
		return fmt.Errorf("error deleting created event from database: %w", err)
	}
	return nil
}
