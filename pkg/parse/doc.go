// Package parse extracts calendar field vectors from text.
//
// The input shape selects the strategy once, at the API boundary:
//
//	p := parse.New()
//	r, err := p.Parse(parse.Text("2024-03-15T14:05:09Z"), parse.Options{Locale: loc})
//	r, err = p.Parse(parse.Layout{Text: "15th March 2024", Format: "Do MMMM YYYY"}, opts)
//	r, err = p.Parse(parse.Layouts{Text: in, Formats: []string{"L", "LL", parse.ISO8601}}, opts)
//	r, err = p.Parse(parse.Fields{parse.Year: 2024, parse.Month: 1}, opts)
//
// # Strategies
//
// Text is tried as an ASP.NET JSON date, then ISO-8601 (calendar, week and
// ordinal dates in extended and basic form, with optional time and offset),
// then RFC 2822. When none applies and Strict is not set, a free-form
// fallback recognises a few common English layouts. The fallback is a
// heuristic and logs a warning every time it is used.
//
// Layout matches the input against an explicit format. Every token is
// matched with its own pattern; input the pattern skips and tokens that
// found nothing are recorded on the Result.
//
// Layouts runs Layout for each candidate. The first valid result wins.
// Otherwise the candidate with the lowest Score is returned, earliest first
// on ties.
//
// # Normalization
//
// Leading fields the input omits come from Options.Now and trailing ones
// take their minimum. 24:00:00.000 reads as midnight with Result.NextDay
// set, meridiem markers adjust the hour, era years become calendar years
// and week dates are resolved with the locale's week rule (or ISO rules for
// W, E and GGGG). The result is then checked for overflowing fields.
//
// # Errors
//
// Every failure is an *Error wrapping ErrInvalidInput. Error.Field names the
// first offending field when the failure is field related. A failed parse
// still returns the fields that were read.
package parse
