package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
)

const productID = "-//bobuk//quickevent//EN"

// caldavColors maps Google palette IDs onto CSS color names for the RFC 7986 COLOR property.
var caldavColors = map[string]string{
	"1":  "lavender",
	"2":  "darkseagreen",
	"3":  "purple",
	"4":  "lightcoral",
	"5":  "gold",
	"6":  "orange",
	"7":  "deepskyblue",
	"8":  "gray",
	"9":  "royalblue",
	"10": "green",
	"11": "tomato",
}

type CalDAVProvider struct {
	client    *caldav.Client
	ctx       context.Context
	serverURL string
}

func NewCalDAVProvider(ctx context.Context, serverURL, username, password string) (*CalDAVProvider, error) {
	baseURL, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid CalDAV server URL: %w", err)
	}

	var httpClient webdav.HTTPClient = http.DefaultClient
	if username != "" && password != "" {
		httpClient = webdav.HTTPClientWithBasicAuth(httpClient, username, password)
	}

	c, err := caldav.NewClient(httpClient, baseURL.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create CalDAV client: %w", err)
	}

	if _, err := c.FindCalendars(ctx, ""); err != nil {
		return nil, fmt.Errorf("failed to connect to CalDAV server: %w", err)
	}

	return &CalDAVProvider{
		client:    c,
		ctx:       ctx,
		serverURL: serverURL,
	}, nil
}

func calendarPath(calendarID string) (string, error) {
	calURL, err := url.Parse(calendarID)
	if err != nil {
		return "", fmt.Errorf("invalid calendar URL: %w", err)
	}
	return strings.TrimRight(calURL.Path, "/"), nil
}

func (c *CalDAVProvider) GetCalendar(calendarID string) error {
	calPath, err := calendarPath(calendarID)
	if err != nil {
		return err
	}

	calendars, err := c.client.FindCalendars(c.ctx, path.Dir(calPath))
	if err != nil {
		return fmt.Errorf("failed to find calendars: %w", err)
	}

	for _, cal := range calendars {
		if strings.TrimRight(cal.Path, "/") == calPath {
			return nil
		}
	}

	return fmt.Errorf("calendar not found at path: %s", calPath)
}

func (c *CalDAVProvider) AddEvent(calendarID string, event *Event) (string, error) {
	calPath, err := calendarPath(calendarID)
	if err != nil {
		return "", err
	}

	eventUID := event.ID
	if eventUID == "" {
		eventUID = time.Now().UTC().Format("20060102T150405Z")
	}
	eventUID = "quickevent-" + eventUID

	calendar, err := toICalCalendar(eventUID, event)
	if err != nil {
		return "", err
	}

	_, err = c.client.PutCalendarObject(c.ctx, calPath+"/"+eventUID+".ics", calendar)
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}

	return eventUID, nil
}

// toICalCalendar wraps event in a VCALENDAR; wall times are written with the event's TZID.
func toICalCalendar(uid string, event *Event) (*ical.Calendar, error) {
	start, end := event.Start, event.End
	if event.TimeZone != "" {
		loc, err := time.LoadLocation(event.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid event timezone %q: %w", event.TimeZone, err)
		}
		start, end = start.In(loc), end.In(loc)
	}

	icalEvent := ical.NewEvent()
	icalEvent.Props.SetText(ical.PropUID, uid)
	icalEvent.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	icalEvent.Props.SetText(ical.PropSummary, event.Summary)
	if event.Description != "" {
		icalEvent.Props.SetText(ical.PropDescription, event.Description)
	}
	icalEvent.Props.SetDateTime(ical.PropDateTimeStart, start)
	icalEvent.Props.SetDateTime(ical.PropDateTimeEnd, end)
	icalEvent.Props.SetText(ical.PropStatus, "CONFIRMED")
	if color, ok := caldavColors[event.ColorID]; ok {
		icalEvent.Props.SetText("COLOR", color)
	}

	calendar := ical.NewCalendar()
	calendar.Props.SetText(ical.PropVersion, "2.0")
	calendar.Props.SetText(ical.PropProductID, productID)
	calendar.Children = append(calendar.Children, icalEvent.Component)
	return calendar, nil
}

func (c *CalDAVProvider) DeleteEvent(calendarID string, eventID string) error {
	calPath, err := calendarPath(calendarID)
	if err != nil {
		return err
	}

	if err := c.client.RemoveAll(c.ctx, calPath+"/"+eventID+".ics"); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

func (c *CalDAVProvider) ListEvents(calendarID string, timeMin, timeMax time.Time) ([]*Event, error) {
	calPath, err := calendarPath(calendarID)
	if err != nil {
		return nil, err
	}

	query := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name:     "VCALENDAR",
			AllProps: true,
			Comps: []caldav.CalendarCompRequest{{
				Name:     "VEVENT",
				AllProps: true,
			}},
		},
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{{
				Name:  "VEVENT",
				Start: timeMin,
				End:   timeMax,
			}},
		},
	}

	objects, err := c.client.QueryCalendar(c.ctx, calPath, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var result []*Event
	for _, obj := range objects {
		if obj.Data == nil {
			continue
		}
		for _, comp := range obj.Data.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			result = append(result, fromICalEvent(comp))
		}
	}

	return result, nil
}

func fromICalEvent(comp *ical.Component) *Event {
	status := strings.ToLower(getTextProp(comp.Props, ical.PropStatus))
	if status == "" {
		status = "confirmed"
	}

	start, _ := comp.Props.DateTime(ical.PropDateTimeStart, time.UTC)
	end, _ := comp.Props.DateTime(ical.PropDateTimeEnd, time.UTC)

	zone := ""
	if prop := comp.Props.Get(ical.PropDateTimeStart); prop != nil {
		zone = prop.Params.Get(ical.ParamTimezoneID)
	}

	return &Event{
		ID:          getTextProp(comp.Props, ical.PropUID),
		Summary:     getTextProp(comp.Props, ical.PropSummary),
		Description: getTextProp(comp.Props, ical.PropDescription),
		Start:       start,
		End:         end,
		TimeZone:    zone,
		Status:      status,
	}
}

func getTextProp(props ical.Props, name string) string {
	prop := props.Get(name)
	if prop == nil {
		return ""
	}
	return prop.Value
}
