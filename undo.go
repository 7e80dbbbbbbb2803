package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

func undoEvents(ctx context.Context, opts options) {
	config, err := loadConfig()
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	sourceFile, err := filepath.Abs(opts.eventsFile)
	if err != nil {
		log.Fatalf("Error resolving events file path: %v", err)
	}

	db, err := openDB(config.dbPath())
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	entries, err := createdEvents(db, sourceFile)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if opts.calendarID != "" {
		entries = filterByCalendar(entries, opts.calendarID)
	}
	if len(entries) == 0 {
		fmt.Printf("❌ No recorded events were created from %s\n", sourceFile)
		return
	}

	if !opts.assumeYes && !confirm(os.Stdin, os.Stdout, fmt.Sprintf("⚠️  Delete %d events created from %s? (y/N): ", len(entries), sourceFile)) {
		fmt.Println("❌ Undo cancelled")
		return
	}

	factory := NewCalendarFactory(ctx, config, db, opts.secretPath, os.Stdin, os.Stdout)
	provider, err := factory.DefaultProvider()
	if err != nil {
		log.Fatalf("Error initializing calendar provider: %v", err)
	}

	printVerbosely(os.Stdout, 3, "🚀 Deleting events created from %s...\n", sourceFile)
	deleted := removeCreatedEvents(provider, db, entries, os.Stdout)
	printVerbosely(os.Stdout, 1, "✅ %d of %d events deleted\n", deleted, len(entries))
}

// removeCreatedEvents deletes each ledger entry from its calendar and then from the
// ledger. Events already gone from the calendar are dropped from the ledger too; other
// failures leave the entry so a later undo can retry it.
func removeCreatedEvents(provider CalendarProvider, db *sql.DB, entries []CreatedEvent, out io.Writer) int {
	deleted := 0
	for _, entry := range entries {
		err := provider.DeleteEvent(entry.CalendarID, entry.EventID)
		if err != nil {
			if !isNotFound(err) {
				log.Printf("❌ Error deleting event %s: %v", entry.Summary, err)
				continue
			}
			printVerbosely(out, 3, "  ⚠️ Event not found in calendar: %s\n", entry.Summary)
		} else {
			printVerbosely(out, 2, "  ✅ Event deleted: %s (%s)\n", entry.Summary, entry.StartTime)
			deleted++
		}

		if err := deleteCreatedEvent(db, entry.CalendarID, entry.EventID); err != nil {
			log.Printf("❌ %v", err)
		}
	}
	return deleted
}

func filterByCalendar(entries []CreatedEvent, calendarID string) []CreatedEvent {
	var filtered []CreatedEvent
	for _, e := range entries {
		if e.CalendarID == calendarID {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "404") || strings.Contains(msg, "410")
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}
