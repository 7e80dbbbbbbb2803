package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/bobuk/quickevent/shorthand"
)

func checkEvents(opts options) {
	config, err := loadConfig()
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	printVerbosely(os.Stdout, 1, "🔍 Checking events file for syntax errors...\n")
	_, events, err := generate(config, opts)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	if err := writeEventTable(os.Stdout, events); err != nil {
		log.Fatalf("Error writing event table: %v", err)
	}
	printVerbosely(os.Stdout, 1, "✅ %d events ready to be created\n", len(events))
}

// writeEventTable prints one aligned row per event.
func writeEventTable(w io.Writer, events []shorthand.Event) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDAY\tSTART\tEND\tTITLE\tDESCRIPTION\tLENGTH")

	for _, ev := range events {
		start, err := ev.Start.Time()
		if err != nil {
			return err
		}
		end, err := ev.End.Time()
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\n",
			ev.Key(),
			start.Format("Mon Jan 2"),
			start.Format("15:04"),
			end.Format("15:04"),
			ev.Summary,
			ev.Description,
			end.Sub(start).Hours(),
		)
	}
	return tw.Flush()
}
