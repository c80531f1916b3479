package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrymomot/tempo"
)

// parseSpan reads "P1DT2H", "1.02:00:00" or an amount and a unit such as
// "3 days".
func parseSpan(args []string) (tempo.Duration, error) {
	switch len(args) {
	case 1:
		return tempo.ParseDuration(args[0])
	case 2:
		n, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return tempo.Duration{}, fmt.Errorf("%w: amount %q", tempo.ErrInvalidDuration, args[0])
		}
		unit, err := tempo.ParseUnit(args[1])
		if err != nil {
			return tempo.Duration{}, err
		}
		return tempo.DurationOf(n, unit), nil
	}
	return tempo.Duration{}, errors.New("expected a duration or an amount and a unit")
}

func (a *app) cmdDiff(ctx context.Context, args []string) int {
	flags, tag, zone := a.flagSet("diff")
	unitName := flags.String("unit", "ms", "unit: y, Q, M, w, d, h, m, s, ms or a long name")
	asFloat := flags.Bool("float", false, "keep the fractional part")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 || flags.NArg() > 2 {
		return a.fail(ctx, "diff", errors.New("expected one or two instants"))
	}

	unit, err := tempo.ParseUnit(*unitName)
	if err != nil {
		return a.fail(ctx, "diff", err)
	}
	from, err := a.instant(flags.Arg(0), *zone, *tag)
	if err != nil {
		return a.fail(ctx, "diff", err)
	}
	to, err := a.instant(flags.Arg(1), *zone, *tag)
	if err != nil {
		return a.fail(ctx, "diff", err)
	}
	fmt.Fprintln(a.stdout, strconv.FormatFloat(from.Diff(to, unit, *asFloat), 'f', -1, 64))
	return 0
}

func (a *app) cmdAdd(ctx context.Context, args []string) int {
	flags, tag, zone := a.flagSet("add")
	at := flags.String("at", "", "starting instant; default now")
	subtract := flags.Bool("subtract", false, "move backwards")
	pattern := flags.String("format", "", "output pattern")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	d, err := parseSpan(flags.Args())
	if err != nil {
		return a.fail(ctx, "add", err)
	}
	i, err := a.instant(*at, *zone, *tag)
	if err != nil {
		return a.fail(ctx, "add", err)
	}
	if *subtract {
		i = i.Subtract(d)
	} else {
		i = i.Add(d)
	}
	fmt.Fprintln(a.stdout, i.Format(*pattern))
	return 0
}

func (a *app) cmdHumanize(ctx context.Context, args []string) int {
	flags, tag, _ := a.flagSet("humanize")
	suffix := flags.Bool("suffix", false, `add "in" or "ago"`)
	if err := flags.Parse(args); err != nil {
		return 1
	}

	d, err := parseSpan(flags.Args())
	if err != nil {
		return a.fail(ctx, "humanize", err)
	}
	fmt.Fprintln(a.stdout, a.engine.Humanize(d, *suffix, *tag))
	return 0
}

func (a *app) cmdFrom(ctx context.Context, args []string) int {
	i, ref, code := a.pair(ctx, "from", args)
	if code != 0 {
		return code
	}
	fmt.Fprintln(a.stdout, i.From(ref, false))
	return 0
}

func (a *app) cmdCalendar(ctx context.Context, args []string) int {
	i, ref, code := a.pair(ctx, "calendar", args)
	if code != 0 {
		return code
	}
	fmt.Fprintln(a.stdout, i.Calendar(ref, nil))
	return 0
}

// pair reads an instant from the arguments and a reference instant from
// --to, which defaults to now.
func (a *app) pair(ctx context.Context, name string, args []string) (i, ref tempo.Instant, code int) {
	flags, tag, zone := a.flagSet(name)
	to := flags.String("to", "", "reference instant; default now")
	if err := flags.Parse(args); err != nil {
		return i, ref, 1
	}
	text := strings.Join(flags.Args(), " ")
	if text == "" {
		return i, ref, a.fail(ctx, name, errors.New("expected an instant"))
	}

	i, err := a.instant(text, *zone, *tag)
	if err != nil {
		return i, ref, a.fail(ctx, name, err)
	}
	ref, err = a.instant(*to, *zone, *tag)
	if err != nil {
		return i, ref, a.fail(ctx, name, err)
	}
	return i, ref, 0
}
