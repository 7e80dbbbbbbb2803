package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bobuk/quickevent/shorthand"
)

func generateTestEvents(t *testing.T, contents string) []shorthand.Event {
	t.Helper()
	file, err := shorthand.Parse(contents)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	events, err := file.GenerateEvents(2024, 3, "UTC")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return events
}

func TestSubmitCreatesAndRecords(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	provider := newFakeProvider()
	var out bytes.Buffer
	s := &Submitter{provider: provider, db: db, calendarID: "primary", sourceFile: "/tmp/march.txt", out: &out}

	events := generateTestEvents(t, "Meeting\n10 9a 10a\n11 9a 1030a standup")
	result := s.Submit(events)

	if result.Created != 2 || result.Skipped != 0 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(provider.events["primary"]) != 2 {
		t.Fatalf("expected 2 events in calendar, got %d", len(provider.events["primary"]))
	}

	created := provider.events["primary"][0]
	wantStart := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	if !created.Start.Equal(wantStart) {
		t.Fatalf("start mismatch: %v", created.Start)
	}
	if created.Summary != "Meeting [ 1.00 hr]" {
		t.Fatalf("summary mismatch: %q", created.Summary)
	}

	entries, err := createdEvents(db, "/tmp/march.txt")
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(entries))
	}
	if entries[0].Key != events[0].Key() || entries[0].EventID != "evt1" || entries[0].CalendarID != "primary" {
		t.Fatalf("unexpected ledger entry: %+v", entries[0])
	}
	if entries[0].StartTime != "2024-03-10T09:00:00" {
		t.Fatalf("ledger start mismatch: %q", entries[0].StartTime)
	}
}

func TestSubmitSkipsDuplicates(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	provider := newFakeProvider()
	var out bytes.Buffer
	s := &Submitter{provider: provider, db: db, calendarID: "primary", sourceFile: "/tmp/march.txt", out: &out}

	events := generateTestEvents(t, "Meeting\n10 9a 10a")
	if result := s.Submit(events); result.Created != 1 {
		t.Fatalf("first run: %+v", result)
	}

	result := s.Submit(events)
	if result.Created != 0 || result.Skipped != 1 {
		t.Fatalf("second run: %+v", result)
	}
	if len(provider.events["primary"]) != 1 {
		t.Fatalf("duplicate was created: %d events", len(provider.events["primary"]))
	}
	if verbosityLevel >= 3 && !strings.Contains(out.String(), "Skipping duplicate event") {
		t.Fatalf("missing skip notice: %q", out.String())
	}
}

func TestSubmitDifferentSummaryIsNotDuplicate(t *testing.T) {
	t.Parallel()

	provider := newFakeProvider()
	events := generateTestEvents(t, "Meeting\n10 9a 10a\n10 9a 10a | Lunch")

	first, err := toProviderEvent(events[0])
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, err := provider.AddEvent("primary", first); err != nil {
		t.Fatalf("add: %v", err)
	}

	second, err := toProviderEvent(events[1])
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	dup, err := isDuplicate(provider, "primary", second)
	if err != nil {
		t.Fatalf("isDuplicate: %v", err)
	}
	if dup {
		t.Fatalf("event with another summary reported as duplicate")
	}

	dup, err = isDuplicate(provider, "primary", first)
	if err != nil {
		t.Fatalf("isDuplicate: %v", err)
	}
	if !dup {
		t.Fatalf("identical event not reported as duplicate")
	}
}

func TestSubmitFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	provider := newFakeProvider()
	provider.failAdd["Meeting [ 1.00 hr]"] = true
	var out bytes.Buffer
	s := &Submitter{provider: provider, db: db, calendarID: "primary", sourceFile: "/tmp/march.txt", out: &out}

	events := generateTestEvents(t, "Meeting\n10 9a 10a\n11 9a 1030a")
	result := s.Submit(events)

	if result.Failed != 1 || result.Created != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	entries, err := createdEvents(db, "")
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	if len(entries) != 1 || entries[0].Summary != "Meeting [ 1.50 hrs]" {
		t.Fatalf("ledger should only hold the created event: %+v", entries)
	}
}

func TestSubmitListFailureCountsAsFailed(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	provider := newFakeProvider()
	provider.failList = true
	s := &Submitter{provider: provider, db: db, calendarID: "primary", out: &bytes.Buffer{}}

	result := s.Submit(generateTestEvents(t, "Meeting\n10 9a 10a"))
	if result.Failed != 1 || result.Created != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
