package main

import (
	"fmt"

	"github.com/bobuk/quickevent/shorthand"
)

// toProviderEvent resolves a generated event into absolute start and end instants.
func toProviderEvent(ev shorthand.Event) (*Event, error) {
	start, err := ev.Start.Time()
	if err != nil {
		return nil, err
	}
	end, err := ev.End.Time()
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:          ev.Key(),
		Summary:     ev.Summary,
		Description: ev.Description,
		ColorID:     ev.ColorID,
		Start:       start,
		End:         end,
		TimeZone:    ev.Start.TimeZone,
		Status:      "confirmed",
	}, nil
}

// isDuplicate reports whether the calendar already holds an event with the same start,
// end and summary.
func isDuplicate(provider CalendarProvider, calendarID string, event *Event) (bool, error) {
	existing, err := provider.ListEvents(calendarID, event.Start, event.End)
	if err != nil {
		return false, fmt.Errorf("error checking for duplicates: %w", err)
	}
	for _, other := range existing {
		if other.Start.Equal(event.Start) && other.End.Equal(event.End) && other.Summary == event.Summary {
			return true, nil
		}
	}
	return false, nil
}
