// Command tempo formats, parses and compares dates from the shell using the
// tempo engine.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrymomot/tempo/pkg/logger"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	case "--version", "-v", "version":
		fmt.Fprintln(stdout, "tempo", version)
		return 0
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "tempo: %v\n", err)
		return 1
	}
	a, err := newApp(cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "tempo: %v\n", err)
		return 1
	}

	ctx := logger.WithCommand(context.Background(), args[0])
	ctx = logger.WithLocale(ctx, cfg.Locale)

	cmd, ok := a.commands()[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "tempo: unknown command %q\n", args[0])
		fmt.Fprintln(stderr, "Run 'tempo --help' for usage.")
		return 1
	}
	return cmd(ctx, args[1:])
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `tempo - locale-aware dates from the shell

Usage:
  tempo <command> [flags] [args]

Commands:
  format [--at T] PATTERN        Render an instant with a format pattern
  parse [--format F]... TEXT     Parse text and print the instant
  tz [--at T] [--country CC] NAME...
                                 Show offsets and abbreviations of zones
  guess                          Guess the host timezone
  diff [--unit U] [--float] A B  Difference A - B in a unit
  add [--at T] [--subtract] DURATION
                                 Move an instant by an ISO-8601 duration
  humanize [--suffix] DURATION   Describe a duration in words
  from [--to T] TEXT             Describe an instant relative to another
  calendar [--to T] TEXT         Calendar phrase ("Tomorrow at 9:00 AM")

Most commands accept --locale and --zone.

Environment:
  TEMPO_LOCALE        Default locale tag (default: en)
  TEMPO_TIMEZONE      Default zone name (default: host local time)
  TEMPO_LOCALES_DIR   Directory of extra YAML/JSON locale files
  TEMPO_LOG_LEVEL     debug, info, warn or error (default: warn)
  SENTRY_DSN          Forward errors to Sentry
  SENTRY_ENVIRONMENT  Sentry environment (default: production)
`)
}
