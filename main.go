package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

const usage = `Usage: quickevent [create|check|export|list|undo] [flags]

  quickevent [create] -f FILE [-s SECRET] [-y YEAR] [-m MONTH] [-c CALENDAR]
  quickevent check    -f FILE [-y YEAR] [-m MONTH]
  quickevent export   -f FILE [-y YEAR] [-m MONTH] -o OUT.ics
  quickevent list     [-f FILE]
  quickevent undo     -f FILE [-s SECRET] [-c CALENDAR] [--yes]
`

type options struct {
	eventsFile string
	secretPath string
	calendarID string
	output     string
	year       int
	month      int
	assumeYes  bool
}

func main() {
	command, opts, err := parseArgs(os.Args[1:], time.Now(), os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprint(os.Stderr, usage)
		log.Fatalf("❌ %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch command {
	case "create":
		createEvents(ctx, opts)
	case "check":
		checkEvents(opts)
	case "export":
		exportEvents(opts)
	case "list":
		listCreatedEvents(opts)
	case "undo":
		undoEvents(ctx, opts)
	}
}

// parseArgs splits off the command and parses its flags. Without a command, or when the
// first argument is a flag, the command is create. Year and month default to now.
func parseArgs(args []string, now time.Time, errOut io.Writer) (string, options, error) {
	command := "create"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	switch command {
	case "create", "check", "export", "list", "undo":
	default:
		return "", options{}, fmt.Errorf("unknown command: %s", command)
	}

	opts := options{year: now.Year(), month: int(now.Month())}
	fs := pflag.NewFlagSet("quickevent "+command, pflag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.SortFlags = true
	fs.StringVarP(&opts.eventsFile, "file", "f", "", "events file")
	switch command {
	case "create", "undo":
		fs.StringVarP(&opts.secretPath, "secret", "s", "", "client secret JSON file (remembered after first use)")
		fs.StringVarP(&opts.calendarID, "calendar", "c", "", "calendar ID (defaults to calendar_id from the config)")
	}
	switch command {
	case "create", "check", "export":
		fs.IntVarP(&opts.year, "year", "y", opts.year, "year of the events")
		fs.IntVarP(&opts.month, "month", "m", opts.month, "month of the events")
	}
	switch command {
	case "export":
		fs.StringVarP(&opts.output, "output", "o", "", "iCalendar file to write")
	case "undo":
		fs.BoolVar(&opts.assumeYes, "yes", false, "do not ask for confirmation")
	}

	if err := fs.Parse(args); err != nil {
		return "", options{}, err
	}
	if fs.NArg() > 0 {
		return "", options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if command != "list" && opts.eventsFile == "" {
		return "", options{}, errors.New("an events file must be given with -f")
	}
	if opts.month < 1 || opts.month > 12 {
		return "", options{}, errors.New("provided month is not valid, month must be between 1 and 12")
	}
	if opts.year < 1000 || opts.year > 9999 {
		return "", options{}, errors.New("provided year is not valid, year must be 4 digits")
	}

	return command, opts, nil
}
