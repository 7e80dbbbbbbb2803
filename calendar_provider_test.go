package main

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeProvider is an in-memory calendar.
type fakeProvider struct {
	events    map[string][]*Event
	failAdd   map[string]bool
	failList  bool
	deleteErr map[string]error
	nextID    int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		events:    map[string][]*Event{},
		failAdd:   map[string]bool{},
		deleteErr: map[string]error{},
	}
}

func (f *fakeProvider) GetCalendar(calendarID string) error {
	return nil
}

func (f *fakeProvider) AddEvent(calendarID string, event *Event) (string, error) {
	if f.failAdd[event.Summary] {
		return "", fmt.Errorf("failed to create event: %w", errors.New("backend error"))
	}
	f.nextID++
	stored := *event
	stored.ID = fmt.Sprintf("evt%d", f.nextID)
	f.events[calendarID] = append(f.events[calendarID], &stored)
	return stored.ID, nil
}

func (f *fakeProvider) DeleteEvent(calendarID string, eventID string) error {
	if err, ok := f.deleteErr[eventID]; ok {
		return err
	}
	kept := f.events[calendarID][:0]
	for _, e := range f.events[calendarID] {
		if e.ID != eventID {
			kept = append(kept, e)
		}
	}
	f.events[calendarID] = kept
	return nil
}

func (f *fakeProvider) ListEvents(calendarID string, timeMin, timeMax time.Time) ([]*Event, error) {
	if f.failList {
		return nil, errors.New("failed to list events: backend error")
	}
	var result []*Event
	for _, e := range f.events[calendarID] {
		if e.End.After(timeMin) && e.Start.Before(timeMax) {
			result = append(result, e)
		}
	}
	return result, nil
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := dbInit(db); err != nil {
		t.Fatalf("init db: %v", err)
	}
	return db
}
