package main

import (
	"testing"
	"time"

	"github.com/emersion/go-ical"
)

func TestToICalCalendarRoundTrip(t *testing.T) {
	t.Parallel()

	event := &Event{
		Summary:     "Meeting [ 1.00 hr]",
		Description: "room 4",
		ColorID:     "11",
		Start:       time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC),
		TimeZone:    "UTC",
	}

	cal, err := toICalCalendar("quickevent-abc", event)
	if err != nil {
		t.Fatalf("toICalCalendar: %v", err)
	}
	if getTextProp(cal.Props, ical.PropVersion) != "2.0" || getTextProp(cal.Props, ical.PropProductID) != productID {
		t.Fatalf("calendar header missing: %+v", cal.Props)
	}
	if len(cal.Children) != 1 {
		t.Fatalf("expected one component, got %d", len(cal.Children))
	}

	comp := cal.Children[0]
	if comp.Name != ical.CompEvent {
		t.Fatalf("component name = %q", comp.Name)
	}
	if getTextProp(comp.Props, "COLOR") != "tomato" {
		t.Fatalf("color mismatch: %q", getTextProp(comp.Props, "COLOR"))
	}
	if comp.Props.Get(ical.PropDateTimeStamp) == nil {
		t.Fatalf("DTSTAMP missing")
	}

	got := fromICalEvent(comp)
	if got.ID != "quickevent-abc" || got.Summary != event.Summary || got.Description != "room 4" {
		t.Fatalf("unexpected event: %+v", got)
	}
	if !got.Start.Equal(event.Start) || !got.End.Equal(event.End) {
		t.Fatalf("times mismatch: %v - %v", got.Start, got.End)
	}
	if got.Status != "confirmed" {
		t.Fatalf("status = %q", got.Status)
	}
}

func TestToICalCalendarInvalidZone(t *testing.T) {
	t.Parallel()

	event := &Event{Summary: "x", TimeZone: "Not/AZone"}
	if _, err := toICalCalendar("uid", event); err == nil {
		t.Fatalf("expected error for invalid zone")
	}
}

func TestCalendarPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"https://dav.example.com/calendars/me/home/": "/calendars/me/home",
		"/calendars/me/work":                         "/calendars/me/work",
	}
	for in, want := range tests {
		got, err := calendarPath(in)
		if err != nil || got != want {
			t.Fatalf("calendarPath(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
}
