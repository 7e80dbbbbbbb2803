package main

import (
	"database/sql"
	"fmt"
)

const schemaVersion = 2

func dbInit(db *sql.DB) error {
	var dbVersion int
	err := db.QueryRow("SELECT version FROM db_version WHERE name='quickevent'").Scan(&dbVersion)
	if err != nil {
		_, err = db.Exec(`CREATE TABLE IF NOT EXISTS db_version (
			name TEXT PRIMARY KEY,
			version INTEGER
		)`)
		if err != nil {
			return fmt.Errorf("error creating db_version table: %w", err)
		}
		_, err = db.Exec(`INSERT OR IGNORE INTO db_version (name, version) VALUES ('quickevent', 0)`)
		if err != nil {
			return fmt.Errorf("error initializing db_version table: %w", err)
		}
		dbVersion = 0
	}

	if dbVersion < 1 {
		_, err = db.Exec(`CREATE TABLE IF NOT EXISTS tokens (
		account_name TEXT PRIMARY KEY,
		token TEXT)`)
		if err != nil {
			return fmt.Errorf("error creating tokens table: %w", err)
		}

		_, err = db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		name TEXT PRIMARY KEY,
		value TEXT)`)
		if err != nil {
			return fmt.Errorf("error creating settings table: %w", err)
		}
	}

	if dbVersion < 2 {
		_, err = db.Exec(`CREATE TABLE IF NOT EXISTS created_events (
			event_key TEXT,
			calendar_id TEXT,
			event_id TEXT,
			source_file TEXT,
			start_time TEXT,
			summary TEXT,
			created_at TEXT,
			PRIMARY KEY (calendar_id, event_id)
		)`)
		if err != nil {
			return fmt.Errorf("error creating created_events table: %w", err)
		}
	}

	if dbVersion < schemaVersion {
		_, err = db.Exec(`UPDATE db_version SET version = ? WHERE name = 'quickevent'`, schemaVersion)
		if err != nil {
			return fmt.Errorf("error updating db_version table: %w", err)
		}
	}
	return nil
}

func getSetting(db *sql.DB, name string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE name = ?", name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func saveSetting(db *sql.DB, name, value string) error {
	_, err := db.Exec("INSERT OR REPLACE INTO settings (name, value) VALUES (?, ?)", name, value)
	return err
}
