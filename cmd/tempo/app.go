package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/tempo"
	"github.com/dmitrymomot/tempo/pkg/locale"
	"github.com/dmitrymomot/tempo/pkg/logger"
)

// app holds the engine and defaults shared by all subcommands.
type app struct {
	engine *tempo.Engine
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer
	cfg    config
}

// newApp builds the logger, the locale registry (with any locale files from
// TEMPO_LOCALES_DIR) and the engine. Extra engine options come last.
func newApp(cfg config, stdout, stderr io.Writer, opts ...tempo.Option) (*app, error) {
	log := logger.NewWithSentry(cfg.Sentry,
		logger.WithWriter(stderr),
		logger.WithText(),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithExtractors(logger.CommandExtractor, logger.LocaleExtractor),
	)

	reg := locale.NewRegistry(locale.WithLogger(log))
	if cfg.LocalesDir != "" {
		if err := reg.LoadFS(os.DirFS(cfg.LocalesDir)); err != nil {
			return nil, fmt.Errorf("load locales from %s: %w", cfg.LocalesDir, err)
		}
	}

	base := []tempo.Option{
		tempo.WithLogger(log),
		tempo.WithLocales(reg),
		tempo.WithLocale(cfg.Locale),
	}
	e, err := tempo.New(append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	if cfg.Timezone != "" {
		if _, err := e.Timezones().MustZone(cfg.Timezone); err != nil {
			return nil, fmt.Errorf("TEMPO_TIMEZONE: %w", err)
		}
	}

	return &app{
		engine: e,
		log:    log,
		stdout: stdout,
		stderr: stderr,
		cfg:    cfg,
	}, nil
}

type command func(ctx context.Context, args []string) int

func (a *app) commands() map[string]command {
	return map[string]command{
		"format":   a.cmdFormat,
		"parse":    a.cmdParse,
		"tz":       a.cmdTz,
		"guess":    a.cmdGuess,
		"diff":     a.cmdDiff,
		"add":      a.cmdAdd,
		"humanize": a.cmdHumanize,
		"from":     a.cmdFrom,
		"calendar": a.cmdCalendar,
	}
}

// flagSet returns a flag set with the --locale and --zone flags every
// command shares.
func (a *app) flagSet(name string) (fs *flag.FlagSet, tag, zone *string) {
	fs = flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	tag = fs.String("locale", a.cfg.Locale, "locale tag")
	zone = fs.String("zone", a.cfg.Timezone, "zone name; empty for host local time")
	return fs, tag, zone
}

// instant parses text, or takes the current time when text is empty, and
// binds the result to zone and the locale tag.
func (a *app) instant(text, zone, tag string) (tempo.Instant, error) {
	if zone != "" {
		if _, err := a.engine.Timezones().MustZone(zone); err != nil {
			return tempo.Instant{}, err
		}
	}

	var (
		i   tempo.Instant
		err error
	)
	switch {
	case text == "":
		i = a.engine.Now()
	case zone != "":
		i, err = a.engine.Parse(text, tempo.ParseLocale(tag), tempo.ParseIn(zone))
	default:
		i, err = a.engine.Parse(text, tempo.ParseLocale(tag))
	}
	if err != nil {
		return i, err
	}
	if zone != "" {
		i = i.In(zone)
	}
	return i.WithLocale(tag), nil
}

func (a *app) fail(ctx context.Context, cmd string, err error) int {
	a.log.DebugContext(ctx, "command failed", slog.String("error", err.Error()))
	fmt.Fprintf(a.stderr, "tempo: %s: %v\n", cmd, err)
	return 1
}

func (a *app) printJSON(v any) {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
