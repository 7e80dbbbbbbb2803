package main

import (
	"testing"
	"time"
)

func TestToGoogleEvent(t *testing.T) {
	t.Parallel()

	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Skipf("zoneinfo unavailable: %v", err)
	}

	event := &Event{
		Summary:     "Meeting [ 1.00 hr]",
		Description: "room 4",
		ColorID:     "5",
		Start:       time.Date(2024, 3, 10, 9, 0, 0, 0, chicago),
		End:         time.Date(2024, 3, 10, 10, 0, 0, 0, chicago),
		TimeZone:    "America/Chicago",
	}

	g := &GoogleCalendarProvider{disableReminders: true, visibility: "private"}
	got := g.toGoogleEvent(event)

	if got.ColorId != "5" || got.Visibility != "private" {
		t.Fatalf("unexpected event: %+v", got)
	}
	if got.Start.DateTime != "2024-03-10T09:00:00" || got.Start.TimeZone != "America/Chicago" {
		t.Fatalf("start mismatch: %+v", got.Start)
	}
	if got.End.DateTime != "2024-03-10T10:00:00" {
		t.Fatalf("end mismatch: %+v", got.End)
	}
	if got.Reminders == nil || got.Reminders.UseDefault || len(got.Reminders.ForceSendFields) != 1 {
		t.Fatalf("reminders not disabled: %+v", got.Reminders)
	}
}

func TestToGoogleEventDefaultColor(t *testing.T) {
	t.Parallel()

	event := &Event{
		Summary:  "Meeting [ 1.00 hr]",
		ColorID:  "0",
		Start:    time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC),
		TimeZone: "UTC",
	}

	got := (&GoogleCalendarProvider{}).toGoogleEvent(event)
	if got.ColorId != "" {
		t.Fatalf("color 0 should be left to the calendar, got %q", got.ColorId)
	}
	if got.Reminders != nil {
		t.Fatalf("reminders should keep the calendar default")
	}
}

func TestEventDateTimeWithoutZone(t *testing.T) {
	t.Parallel()

	got := eventDateTime(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), "")
	if got.DateTime != "2024-03-10T09:00:00Z" || got.TimeZone != "" {
		t.Fatalf("unexpected date time: %+v", got)
	}
}
