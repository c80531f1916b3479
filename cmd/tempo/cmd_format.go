package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/tempo"
)

func (a *app) cmdFormat(ctx context.Context, args []string) int {
	flags, tag, zone := a.flagSet("format")
	at := flags.String("at", "", "instant to format; default now")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	i, err := a.instant(*at, *zone, *tag)
	if err != nil {
		return a.fail(ctx, "format", err)
	}
	fmt.Fprintln(a.stdout, i.Format(strings.Join(flags.Args(), " ")))
	return 0
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

type parsed struct {
	ISO    string `json:"iso"`
	Local  string `json:"local"`
	Zone   string `json:"zone"`
	Offset int    `json:"offset"`
	Unix   int64  `json:"unix_ms"`
}

func (a *app) cmdParse(ctx context.Context, args []string) int {
	flags, tag, zone := a.flagSet("parse")
	var formats stringList
	flags.Var(&formats, "format", "format pattern; repeat to try several")
	strict := flags.Bool("strict", false, "require an exact match")
	keep := flags.Bool("keep-offset", false, "keep the offset found in the input")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	text := strings.Join(flags.Args(), " ")
	if text == "" {
		return a.fail(ctx, "parse", errors.New("nothing to parse"))
	}
	if *zone != "" {
		if _, err := a.engine.Timezones().MustZone(*zone); err != nil {
			return a.fail(ctx, "parse", err)
		}
	}

	opts := []tempo.ParseOption{tempo.ParseLocale(*tag)}
	if *zone != "" {
		opts = append(opts, tempo.ParseIn(*zone))
	}
	if *strict {
		opts = append(opts, tempo.ParseStrict())
	}
	if *keep {
		opts = append(opts, tempo.ParseZone())
	}

	var (
		i   tempo.Instant
		err error
	)
	switch len(formats) {
	case 0:
		i, err = a.engine.Parse(text, opts...)
	case 1:
		i, err = a.engine.ParseFormat(text, formats[0], opts...)
	default:
		i, err = a.engine.ParseFormats(text, formats, opts...)
	}
	if err != nil {
		return a.fail(ctx, "parse", err)
	}

	if *jsonOut {
		a.printJSON(parsed{
			ISO:    i.ISOString(),
			Local:  i.Format(""),
			Zone:   i.ZoneName(),
			Offset: i.UTCOffset(),
			Unix:   i.UnixMilli(),
		})
		return 0
	}
	fmt.Fprintln(a.stdout, i.Format(""))
	return 0
}
