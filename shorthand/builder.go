package shorthand

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// DateTime is a local ISO date-time (2024-03-10T09:00:00) paired with its IANA zone,
// the shape the calendar API expects.
type DateTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Time resolves the local date-time in its zone.
func (d DateTime) Time() (time.Time, error) {
	loc, err := time.LoadLocation(d.TimeZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("unknown time zone %q: %w", d.TimeZone, err)
	}
	return time.ParseInLocation(localLayout, d.DateTime, loc)
}

const localLayout = "2006-01-02T15:04:05"

// Event is a finalized event ready to be handed to a calendar.
type Event struct {
	ColorID     string   `json:"colorId"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Start       DateTime `json:"start"`
	End         DateTime `json:"end"`
}

// Key identifies the event by its summary and start/end date-times.
func (e Event) Key() string {
	sum := sha1.Sum([]byte(e.Summary + e.Start.DateTime + e.End.DateTime))
	return hex.EncodeToString(sum[:])[:15]
}

// Builder accumulates event fields. Setters return a modified copy, so a Builder can be
// shared as a template without one event leaking into another. Errors from Start and
// End are held until Prepare.
type Builder struct {
	colorID     string
	summary     *string
	description string
	day         *int
	month       *int
	year        *int
	start       *Time
	end         *Time
	zone        string
	err         error
}

func NewBuilder() Builder {
	return Builder{}
}

func (b Builder) Color(color int) Builder {
	b.colorID = strconv.Itoa(color)
	return b
}

func (b Builder) Summary(summary string) Builder {
	b.summary = &summary
	return b
}

func (b Builder) Description(desc string) Builder {
	b.description = desc
	return b
}

func (b Builder) Day(day int) Builder {
	b.day = &day
	return b
}

func (b Builder) Month(month int) Builder {
	b.month = &month
	return b
}

func (b Builder) Year(year int) Builder {
	b.year = &year
	return b
}

// Zone sets the IANA time zone attached to the start and end date-times.
func (b Builder) Zone(zone string) Builder {
	b.zone = zone
	return b
}

// Start sets the start time from shorthand (930a, 7p, 1330).
func (b Builder) Start(token string) Builder {
	t, err := ParseTime(token)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	b.start = &t
	return b
}

// End sets the end time from shorthand.
func (b Builder) End(token string) Builder {
	t, err := ParseTime(token)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	b.end = &t
	return b
}

// Prepare validates the draft and produces the finalized event. The end date moves to
// the next day for overnight spans, rolling over month and year as needed, and the
// summary is annotated with the event length.
func (b Builder) Prepare() (Event, error) {
	if b.err != nil {
		return Event{}, b.err
	}
	switch {
	case b.day == nil:
		return Event{}, fmt.Errorf("%w: day", ErrMissingField)
	case b.month == nil:
		return Event{}, fmt.Errorf("%w: month", ErrMissingField)
	case b.year == nil:
		return Event{}, fmt.Errorf("%w: year", ErrMissingField)
	case b.start == nil:
		return Event{}, fmt.Errorf("%w: start", ErrMissingField)
	case b.end == nil:
		return Event{}, fmt.Errorf("%w: end", ErrMissingField)
	case b.summary == nil:
		return Event{}, fmt.Errorf("%w: summary", ErrMissingField)
	}

	day, month, year := *b.day, *b.month, *b.year
	if month < 1 || month > 12 {
		return Event{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > 31 {
		return Event{}, fmt.Errorf("%w: day %d", ErrInvalidDate, day)
	}

	hours, daySpan := Length(*b.start, *b.end)
	if hours < 0 {
		return Event{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidDate, b.end, b.start)
	}

	startString := fmt.Sprintf("%d-%02d-%02dT%s", year, month, day, b.start.Normalized)

	endDay, endMonth, endYear := day+daySpan, month, year
	if endDay > daysIn(year, month) {
		endDay = 1
		endMonth++
	}
	if endMonth > 12 {
		endMonth = 1
		endYear++
	}
	endString := fmt.Sprintf("%d-%02d-%02dT%s", endYear, endMonth, endDay, b.end.Normalized)

	colorID := b.colorID
	if colorID == "" {
		colorID = "0"
	}
	zone := b.zone
	if zone == "" {
		zone = "UTC"
	}

	return Event{
		ColorID:     colorID,
		Summary:     annotate(*b.summary, hours),
		Description: b.description,
		Start:       DateTime{DateTime: startString, TimeZone: zone},
		End:         DateTime{DateTime: endString, TimeZone: zone},
	}, nil
}

// annotate appends the length, e.g. "Meeting [ 1.50 hrs]".
func annotate(summary string, hours float64) string {
	unit := "hr"
	if hours > 1 {
		unit = "hrs"
	}
	return fmt.Sprintf("%s [%5.2f %s]", summary, hours, unit)
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
