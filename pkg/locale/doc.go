// Package locale stores the per-language tables used to format and parse
// dates: month and weekday names, ordinals, meridiem markers, long date
// formats, calendar and relative-time phrases, eras and week rules.
//
// # Registry
//
// A [Registry] owns a set of locales and a current locale. It is created
// explicitly and holds no global state:
//
//	reg := locale.NewRegistry(locale.WithLogger(log))
//	fr := reg.Resolve("fr-CA", "fr") // falls back to "fr"
//
// [Registry.Define] merges a [Config] onto its parent (or the base English
// config) and makes the result current. [Registry.Update] patches a
// registered locale and remembers the definition it replaced; updating
// with a nil config restores it.
//
// Readers load an immutable snapshot, so lookups never block behind
// definitions.
//
// # Resolution
//
// Tags are normalized to lowercase with "_" replaced by "-". Each candidate
// is tried with progressively fewer subtags ("zh-hant-tw", "zh-hant",
// "zh"); the search moves to the next candidate early when that candidate
// shares a longer prefix. If nothing matches, Resolve logs a warning and
// returns the current locale.
//
// # Loading
//
// [Registry.LoadFS] reads YAML or JSON locale files. Name lists may be
// written as plain sequences and phrases as plain strings:
//
//	parent: fr
//	long_date_format:
//	  L: YYYY-MM-DD
//	relative_time:
//	  ss:
//	    forms:
//	      one: "%d seconde"
//	      other: "%d secondes"
//
// [ParseAcceptLanguage] turns an Accept-Language header into candidate
// tags for [Registry.Resolve].
package locale
