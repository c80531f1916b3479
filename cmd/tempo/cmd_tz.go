package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

func (a *app) cmdTz(ctx context.Context, args []string) int {
	flags, tag, _ := a.flagSet("tz")
	at := flags.String("at", "", "instant to resolve offsets at; default now")
	country := flags.String("country", "", "list the zones of an ISO 3166 country code")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	db := a.engine.Timezones()
	names := flags.Args()
	switch {
	case len(names) > 0:
	case *country != "":
		names = db.ZonesForCountry(*country)
		if len(names) == 0 {
			return a.fail(ctx, "tz", fmt.Errorf("no zones for country %q", *country))
		}
	default:
		names = db.Names()
	}

	base, err := a.instant(*at, "", *tag)
	if err != nil {
		return a.fail(ctx, "tz", err)
	}
	for _, name := range names {
		z, err := db.MustZone(name)
		if err != nil {
			return a.fail(ctx, "tz", err)
		}
		i := base.In(name)
		line := fmt.Sprintf("%-32s %-6s %s %s", name, i.ZoneAbbr(), i.Format("Z"), strings.Join(db.CountriesForZone(z.Name), ","))
		fmt.Fprintln(a.stdout, strings.TrimSpace(line))
	}
	return 0
}

func (a *app) cmdGuess(ctx context.Context, args []string) int {
	flags, _, _ := a.flagSet("guess")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	z, ok := a.engine.Guess()
	if !ok {
		return a.fail(ctx, "guess", errors.New("no timezone data loaded"))
	}
	fmt.Fprintln(a.stdout, z.Name)
	return 0
}
