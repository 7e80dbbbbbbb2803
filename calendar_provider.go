package main

import (
	"time"
)

type CalendarProvider interface {
	GetCalendar(calendarID string) error
	AddEvent(calendarID string, event *Event) (string, error)
	DeleteEvent(calendarID string, eventID string) error
	ListEvents(calendarID string, timeMin, timeMax time.Time) ([]*Event, error)
}

type Event struct {
	ID          string
	Summary     string
	Description string
	ColorID     string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Status      string
}
