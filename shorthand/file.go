// Package shorthand turns a terse events file (one "day start end" line per event)
// into calendar-ready events.
package shorthand

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// File is a parsed shorthand events file:
//
//	<global summary>
//	[color <n>]
//	<event line>
//	...
type File struct {
	Summary string
	Color   int
	Lines   []Line
}

// Load reads and parses the events file at path.
func Load(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileLoad, path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileLoad, err)
	}
	return Parse(string(data))
}

// Parse parses the full contents of an events file. Every event line is checked up
// front so that a malformed file is rejected before anything is created.
func Parse(contents string) (*File, error) {
	var lines []string
	for _, line := range strings.Split(contents, "\n") {
		line = strings.ReplaceAll(line, "\r", "")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: missing summary line", ErrFileFormat)
	}

	f := &File{Summary: lines[0]}
	if _, ok := colorHeader(f.Summary); ok {
		return nil, fmt.Errorf("%w: first line must be the summary, got %q", ErrFileFormat, f.Summary)
	}
	if _, err := ParseLine(f.Summary); err == nil {
		return nil, fmt.Errorf("%w: first line must be the summary, got %q", ErrFileFormat, f.Summary)
	}
	lines = lines[1:]

	if len(lines) > 0 {
		if color, ok := colorHeader(lines[0]); ok {
			f.Color = color
			lines = lines[1:]
		}
	}

	f.Lines = make([]Line, 0, len(lines))
	for _, raw := range lines {
		line, err := ParseLine(raw)
		if err != nil {
			return nil, err
		}
		f.Lines = append(f.Lines, line)
	}
	return f, nil
}

// GenerateEvents builds one event per line for the given year and month. A line's
// month override replaces month; the year is always the one given.
func (f *File) GenerateEvents(year, month int, zone string) ([]Event, error) {
	template := NewBuilder().
		Color(f.Color).
		Year(year).
		Zone(zone)

	events := make([]Event, 0, len(f.Lines))
	for _, line := range f.Lines {
		m := month
		if strings.Contains(line.Raw, monthDelim) {
			if line.Month < 1 || line.Month > 12 {
				return nil, fmt.Errorf("%w: %s", ErrInvalidMonthOverride, line.Raw)
			}
			m = line.Month
		}
		summary := f.Summary
		if line.Summary != "" {
			summary = line.Summary
		}

		event, err := template.
			Summary(summary).
			Description(line.Description).
			Day(line.Day).
			Month(m).
			Start(line.Start).
			End(line.End).
			Prepare()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", line.Raw, err)
		}
		events = append(events, event)
	}
	return events, nil
}

// colorHeader matches a "color <n>" line.
func colorHeader(line string) (int, bool) {
	n, ok := strings.CutPrefix(line, "color ")
	if !ok || !isNumber(n, 2) {
		return 0, false
	}
	color, _ := strconv.Atoi(n)
	return color, true
}
