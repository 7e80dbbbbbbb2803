package shorthand

import (
	"fmt"
	"strconv"
	"strings"
)

// Time is a parsed time-of-day token such as 930a, 7p or 1330.
type Time struct {
	Normalized string // HH:MM:SS
	Hour       int
	Minute     int
}

func (t Time) String() string {
	return t.Normalized
}

// timeParts holds the raw pieces of a time token as written.
type timeParts struct {
	hour     string
	minute   string
	meridian byte // 0, 'a' or 'p'
	suffixM  bool
}

// scanTime splits a token of the form H, HH, HMM, HHMM, H:MM or HH:MM followed by an
// optional a/p and an optional m. It accepts a trailing m without a meridian, which the
// event-line grammar allows; ParseTime rejects it.
func scanTime(token string) (timeParts, bool) {
	var p timeParts

	i := 0
	for i < len(token) && isDigit(token[i]) {
		i++
	}
	digits, rest := token[:i], token[i:]

	if strings.HasPrefix(rest, ":") {
		if len(digits) < 1 || len(digits) > 2 || len(rest) < 3 || !isDigit(rest[1]) || !isDigit(rest[2]) {
			return p, false
		}
		p.hour, p.minute = digits, rest[1:3]
		rest = rest[3:]
	} else {
		switch len(digits) {
		case 1, 2:
			p.hour = digits
		case 3:
			p.hour, p.minute = digits[:1], digits[1:]
		case 4:
			p.hour, p.minute = digits[:2], digits[2:]
		default:
			return p, false
		}
	}

	if rest != "" && (rest[0] == 'a' || rest[0] == 'p') {
		p.meridian = rest[0]
		rest = rest[1:]
	}
	if rest == "m" {
		p.suffixM = true
		rest = ""
	}
	return p, rest == ""
}

// ParseTime converts a shorthand time token into a 24-hour Time.
//
// Without an a/p marker the token must carry all four digits of a military time
// (0900, 13:30), so a bare 9 is rejected as ambiguous.
func ParseTime(token string) (Time, error) {
	p, ok := scanTime(token)
	if !ok || (p.suffixM && p.meridian == 0) {
		return Time{}, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, token)
	}
	if p.meridian == 0 && len(p.hour)+len(p.minute) < 4 {
		return Time{}, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, token)
	}

	hour, _ := strconv.Atoi(p.hour)
	minute := 0
	if p.minute != "" {
		minute, _ = strconv.Atoi(p.minute)
	}

	// Two minute digits never reach 120, so one pass is enough.
	if minute >= 60 {
		minute -= 60
		hour++
	}
	if hour < 12 && p.meridian == 'p' {
		hour += 12
	}
	if hour == 12 && p.meridian == 'a' {
		hour = 0
	}
	if hour > 23 {
		return Time{}, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, token)
	}

	return Time{
		Normalized: fmt.Sprintf("%02d:%02d:00", hour, minute),
		Hour:       hour,
		Minute:     minute,
	}, nil
}

// Length returns the duration between start and end in fractional hours, and 1 as the
// day span when end falls on the following day.
//
// An end identical to the start counts as a full 24 hour span.
func Length(start, end Time) (hours float64, daySpan int) {
	if start.Hour > end.Hour || (start.Hour == end.Hour && start.Minute == end.Minute) {
		daySpan = 1
	}

	switch {
	case daySpan == 1:
		hours = float64(24 - start.Hour + end.Hour)
	case start.Hour < end.Hour:
		hours = float64(end.Hour - start.Hour)
	}

	if start.Minute != end.Minute {
		hours += float64(end.Minute-start.Minute) / 60
	}
	return hours, daySpan
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
