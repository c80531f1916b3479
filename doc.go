// Package tempo is a locale-aware date and time engine: an immutable,
// zone-aware Instant with calendar arithmetic, a three-bucket Duration, and
// an Engine tying together parsing, formatting, timezones and locales.
//
// # Quick Start
//
//	engine, err := tempo.New(tempo.WithLocale("en"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	t, err := engine.Parse("2024-03-15T14:05:09Z")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ny := t.In("America/New_York")
//	fmt.Println(ny.Format("LLLL z"))                     // Friday, March 15, 2024 10:05 AM EDT
//	fmt.Println(ny.AddUnit(1, tempo.Month).Format("L")) // 04/15/2024
//
// # Instants
//
// An Instant is a Unix millisecond timestamp read through a frame: host
// local time, UTC, a fixed offset or a named zone from the timezone
// database. Fields are always computed for that frame. Months are
// zero-based and weekdays start at 0 for Sunday.
//
// Every operation returns a new Instant. Set, Add and StartOf work on the
// wall clock of the frame, so adding a day across a DST switch keeps the
// time of day while adding 24 hours does not:
//
//	d := t.In("America/New_York").Set(tempo.Month, 2).Set(tempo.Date, 9)
//	d.AddUnit(1, tempo.Day)   // same wall time next day
//	d.AddUnit(24, tempo.Hour) // one hour later on the wall clock
//
// # Durations
//
// A Duration keeps months, days and milliseconds apart because only the
// last has a fixed length. Between measures whole calendar months plus the
// remainder, and Humanize turns a Duration into a phrase such as "in 3
// days" using Thresholds.
//
// # Parsing
//
// Engine.Parse accepts ISO-8601, RFC 2822 and ASP.NET JSON dates, and
// without ParseStrict falls back to a heuristic reading of common English
// layouts. ParseFormat and ParseFormats match explicit patterns in any
// registered locale. Failures wrap ErrInvalidInput; the returned Instant is
// invalid and renders as the locale's invalid date text.
//
// # Concurrency
//
// Engines, registries and databases are safe for concurrent use. Instants
// and Durations are values.
package tempo
