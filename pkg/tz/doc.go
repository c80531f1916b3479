// Package tz is a named timezone database built from compact packed records.
//
// Each zone is a list of offset periods: an abbreviation, a UTC offset in
// minutes east of UTC, and the instant at which the period ends. Looking up
// the offset for an instant is a linear scan over the period ends, which is
// fast because zones carry few transitions.
//
// # Loading
//
// A [Database] starts empty. [Database.Load] merges a [Packed] dataset and
// can be called repeatedly; [NewEmbedded] returns a database loaded with the
// dataset compiled into the package (IANA 2025b, 1970 through 2037):
//
//	db, err := tz.NewEmbedded()
//	if err != nil {
//		return err
//	}
//	ny, ok := db.Zone("America/New_York")
//	if !ok {
//		return tz.ErrUnknownTimezone
//	}
//	ny.OffsetAt(ms) // -300 in January, -240 in July
//
// Names are matched case-insensitively with "/" and "_" treated alike.
// Links (aliases such as "US/Eastern") resolve through a single
// indirection. Records are decoded on first access and memoized.
//
// # Wall Clock Conversion
//
// [Zone.WallToUTC] maps a local reading to an instant. Readings inside a
// spring-forward gap are moved forward past the gap; readings repeated by
// a fall-back transition resolve to the first occurrence.
//
// # Guessing
//
// [Database.Guess] picks the zone that best matches a *time.Location. It
// prefers a zone name reported by the host and falls back to sampling
// offsets. The sampling result is a heuristic, not an authority.
//
// # Packed Format
//
// See [Packed] for the record layout. [Unpack] decodes a record, [Pack]
// encodes one, and [FilterYears] trims a zone to a range of years.
package tz
