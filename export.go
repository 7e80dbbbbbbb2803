package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/bobuk/quickevent/shorthand"
)

func exportEvents(opts options) {
	if opts.output == "" {
		log.Fatalf("❌ An output file must be given with -o")
	}

	config, err := loadConfig()
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	_, events, err := generate(config, opts)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		log.Fatalf("Error creating %s: %v", opts.output, err)
	}
	if err := writeICS(f, events, time.Now()); err != nil {
		f.Close()
		log.Fatalf("Error writing %s: %v", opts.output, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Error writing %s: %v", opts.output, err)
	}

	printVerbosely(os.Stdout, 1, "📤 Exported %d events to %s\n", len(events), opts.output)
}

// writeICS writes events as a single VCALENDAR. Each event's UID is derived from its key,
// so re-importing an export does not duplicate events.
func writeICS(w io.Writer, events []shorthand.Event, stamp time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for _, ev := range events {
		event, err := toProviderEvent(ev)
		if err != nil {
			return fmt.Errorf("%s: %w", ev.Summary, err)
		}

		vevent := cal.AddEvent(event.ID + "@quickevent")
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(event.Start)
		vevent.SetEndAt(event.End)
		vevent.SetSummary(event.Summary)
		if event.Description != "" {
			vevent.SetDescription(event.Description)
		}
		if color, ok := caldavColors[event.ColorID]; ok {
			vevent.SetProperty(ics.ComponentProperty("COLOR"), color)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}
