package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

func listCreatedEvents(opts options) {
	config, err := loadConfig()
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	db, err := openDB(config.dbPath())
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	sourceFile := ""
	if opts.eventsFile != "" {
		sourceFile, err = filepath.Abs(opts.eventsFile)
		if err != nil {
			log.Fatalf("Error resolving events file path: %v", err)
		}
	}

	entries, err := createdEvents(db, sourceFile)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	printCreatedEvents(os.Stdout, entries)
}

// printCreatedEvents groups ledger entries by source file and calendar.
func printCreatedEvents(w io.Writer, entries []CreatedEvent) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "📋 No events have been created yet")
		return
	}

	fmt.Fprintln(w, "📋 Here's the list of events created so far:")
	var lastFile, lastCalendar string
	for _, e := range entries {
		if e.SourceFile != lastFile || e.CalendarID != lastCalendar {
			fmt.Fprintf(w, "  📄 %s (📅 %s)\n", e.SourceFile, e.CalendarID)
			lastFile, lastCalendar = e.SourceFile, e.CalendarID
		}
		fmt.Fprintf(w, "    %s  %s  %s\n", e.Key, e.StartTime, e.Summary)
	}
}
