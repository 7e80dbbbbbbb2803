package shorthand

import (
	"fmt"
	"strconv"
	"strings"
)

// Line is one event line of a shorthand file:
//
//	<day> <start> <end>[ <description>][ | <summary>][ << <month>]
type Line struct {
	Raw         string
	Day         int
	Start       string
	End         string
	Description string
	Summary     string // empty unless overridden
	Month       int    // 0 unless overridden
}

const (
	summaryDelim = " | "
	monthDelim   = " << "
)

// ParseLine tokenizes an event line. It checks syntax only; time tokens are validated
// further when the event is built.
func ParseLine(raw string) (Line, error) {
	line := Line{Raw: raw}
	fail := func() (Line, error) {
		return Line{}, fmt.Errorf("%w: %s", ErrEventFormat, raw)
	}

	dayTok, rest, ok := strings.Cut(raw, " ")
	if !ok || !isNumber(dayTok, 2) {
		return fail()
	}
	line.Day, _ = strconv.Atoi(dayTok)

	startTok, rest, ok := strings.Cut(rest, " ")
	if !ok || !isTimeToken(startTok) {
		return fail()
	}
	line.Start = startTok

	endTok, tail, hasTail := strings.Cut(rest, " ")
	if !isTimeToken(endTok) {
		return fail()
	}
	line.End = endTok
	if !hasTail {
		return line, nil
	}
	tail = " " + tail

	if i := strings.LastIndex(tail, monthDelim); i >= 0 {
		month := tail[i+len(monthDelim):]
		if !isNumber(month, 2) {
			return fail()
		}
		line.Month, _ = strconv.Atoi(month)
		tail = tail[:i]
	}

	if i := strings.Index(tail, summaryDelim); i >= 0 {
		line.Summary = tail[i+len(summaryDelim):]
		if !isFreeText(line.Summary) {
			return fail()
		}
		tail = tail[:i]
	}

	if tail != "" {
		line.Description = tail[1:]
		if !isFreeText(line.Description) {
			return fail()
		}
	}
	return line, nil
}

// isTimeToken matches the looser time shape the line grammar accepts.
func isTimeToken(s string) bool {
	_, ok := scanTime(s)
	return ok
}

// isNumber reports whether s is 1 to max digits.
func isNumber(s string, max int) bool {
	if len(s) < 1 || len(s) > max {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// isFreeText reports whether s is non-empty and free of the | and < delimiters.
func isFreeText(s string) bool {
	return s != "" && !strings.ContainsAny(s, "|<")
}
