package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// localDateTime is the zone-less layout Google accepts together with a timeZone field.
const localDateTime = "2006-01-02T15:04:05"

type GoogleCalendarProvider struct {
	service *calendar.Service
	ctx     context.Context

	disableReminders bool
	visibility       string
}

func NewGoogleCalendarProvider(ctx context.Context, client *http.Client, general GeneralConfig) (*GoogleCalendarProvider, error) {
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleCalendarProvider{
		service:          service,
		ctx:              ctx,
		disableReminders: general.DisableReminders,
		visibility:       general.EventVisibility,
	}, nil
}

func (g *GoogleCalendarProvider) GetCalendar(calendarID string) error {
	_, err := g.service.CalendarList.Get(calendarID).Context(g.ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get calendar: %w", err)
	}
	return nil
}

func (g *GoogleCalendarProvider) AddEvent(calendarID string, event *Event) (string, error) {
	createdEvent, err := g.service.Events.Insert(calendarID, g.toGoogleEvent(event)).Context(g.ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}

	return createdEvent.Id, nil
}

func (g *GoogleCalendarProvider) toGoogleEvent(event *Event) *calendar.Event {
	googleEvent := &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       eventDateTime(event.Start, event.TimeZone),
		End:         eventDateTime(event.End, event.TimeZone),
		Visibility:  g.visibility,
	}
	// Google palette IDs start at 1; 0 means the calendar's own color.
	if event.ColorID != "" && event.ColorID != "0" {
		googleEvent.ColorId = event.ColorID
	}
	if g.disableReminders {
		googleEvent.Reminders = &calendar.EventReminders{
			UseDefault:      false,
			ForceSendFields: []string{"UseDefault"},
		}
	}
	return googleEvent
}

func eventDateTime(t time.Time, zone string) *calendar.EventDateTime {
	if zone == "" {
		return &calendar.EventDateTime{DateTime: t.Format(time.RFC3339)}
	}
	return &calendar.EventDateTime{
		DateTime: t.Format(localDateTime),
		TimeZone: zone,
	}
}

func (g *GoogleCalendarProvider) DeleteEvent(calendarID string, eventID string) error {
	err := g.service.Events.Delete(calendarID, eventID).Context(g.ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (g *GoogleCalendarProvider) ListEvents(calendarID string, timeMin, timeMax time.Time) ([]*Event, error) {
	var result []*Event
	pageToken := ""

	for {
		events, err := g.service.Events.List(calendarID).
			TimeMin(timeMin.Format(time.RFC3339)).
			TimeMax(timeMax.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			PageToken(pageToken).
			Context(g.ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}

		for _, item := range events.Items {
			// All-day entries carry Date instead of DateTime and never match a timed event.
			if item.Start == nil || item.End == nil || item.Start.DateTime == "" {
				continue
			}
			start, _ := time.Parse(time.RFC3339, item.Start.DateTime)
			end, _ := time.Parse(time.RFC3339, item.End.DateTime)

			result = append(result, &Event{
				ID:          item.Id,
				Summary:     item.Summary,
				Description: item.Description,
				ColorID:     item.ColorId,
				Start:       start,
				End:         end,
				TimeZone:    item.Start.TimeZone,
				Status:      item.Status,
			})
		}

		pageToken = events.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return result, nil
}
