package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bobuk/quickevent/shorthand"
)

// Submitter sends generated events to one calendar, skipping duplicates and recording
// each created event in the ledger.
type Submitter struct {
	provider   CalendarProvider
	db         *sql.DB
	calendarID string
	sourceFile string
	out        io.Writer
}

type submitResult struct {
	Created int
	Skipped int
	Failed  int
}

// Submit creates events one at a time. A failure on one event is reported and the run
// moves on to the next.
func (s *Submitter) Submit(events []shorthand.Event) submitResult {
	var result submitResult

	for _, ev := range events {
		event, err := toProviderEvent(ev)
		if err != nil {
			log.Printf("❌ Error preparing event %s: %v", ev.Summary, err)
			result.Failed++
			continue
		}

		duplicate, err := isDuplicate(s.provider, s.calendarID, event)
		if err != nil {
			log.Printf("❌ %v", err)
			result.Failed++
			continue
		}
		if duplicate {
			printVerbosely(s.out, 3, "  ⚠️ Skipping duplicate event: %s (%s)\n", event.Summary, ev.Start.DateTime)
			result.Skipped++
			continue
		}

		eventID, err := s.provider.AddEvent(s.calendarID, event)
		if err != nil {
			log.Printf("❌ Error creating event %s: %v", event.Summary, err)
			result.Failed++
			continue
		}
		printVerbosely(s.out, 2, "  ➕ Event created: %s (%s)\n", event.Summary, ev.Start.DateTime)
		result.Created++

		err = recordCreatedEvent(s.db, CreatedEvent{
			Key:        ev.Key(),
			CalendarID: s.calendarID,
			EventID:    eventID,
			SourceFile: s.sourceFile,
			StartTime:  ev.Start.DateTime,
			Summary:    event.Summary,
		})
		if err != nil {
			log.Printf("❌ %v", err)
		}
	}

	return result
}

func createEvents(ctx context.Context, opts options) {
	config, err := loadConfig()
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	sourceFile, events, err := generate(config, opts)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	db, err := openDB(config.dbPath())
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	calendarID := opts.calendarID
	if calendarID == "" {
		calendarID = config.CalendarID
	}

	factory := NewCalendarFactory(ctx, config, db, opts.secretPath, os.Stdin, os.Stdout)
	provider, err := factory.DefaultProvider()
	if err != nil {
		log.Fatalf("Error initializing calendar provider: %v", err)
	}
	if err := factory.ValidateCalendarAccess(provider, calendarID); err != nil {
		log.Fatalf("❌ Unable to access calendar %s: %v", calendarID, err)
	}

	printVerbosely(os.Stdout, 3, "🚀 Creating %d events in calendar %s...\n", len(events), calendarID)

	submitter := &Submitter{
		provider:   provider,
		db:         db,
		calendarID: calendarID,
		sourceFile: sourceFile,
		out:        os.Stdout,
	}
	result := submitter.Submit(events)

	printVerbosely(os.Stdout, 1, "✅ Done: %d created, %d skipped as duplicates, %d failed\n",
		result.Created, result.Skipped, result.Failed)
}

// generate loads the events file named in opts and builds its events in the
// configured time zone. It returns the absolute path of the file.
func generate(config *Config, opts options) (string, []shorthand.Event, error) {
	file, err := shorthand.Load(opts.eventsFile)
	if err != nil {
		return "", nil, err
	}

	zone, err := eventZone(config)
	if err != nil {
		return "", nil, err
	}

	events, err := file.GenerateEvents(opts.year, opts.month, zone)
	if err != nil {
		return "", nil, err
	}

	sourceFile, err := filepath.Abs(opts.eventsFile)
	if err != nil {
		return "", nil, fmt.Errorf("error resolving events file path: %w", err)
	}
	return sourceFile, events, nil
}
