// Package layout renders wall-clock values with moment-style format
// patterns.
//
// A pattern is a sequence of field tokens (YYYY, MM, Do, dddd, HH, A, Z, ...)
// and literal text. Text inside square brackets is always literal and a
// backslash escapes the following token:
//
//	f := layout.New()
//	f.Format(v, "dddd, MMMM Do YYYY [at] h:mm A", loc)
//	// Friday, March 15th 2024 at 2:30 PM
//
// YYYY writes four digits for years 0 to 9999 and a signed number outside
// that range ("-0043", "+12345"), which the parser reads back with the same
// token.
//
// # Long formats
//
// The locale macros LT, LTS, L, LL, LLL and LLLL (plus the lowercase short
// forms l, ll, lll, llll) are expanded from the locale before compilation.
// Expansion is repeated for macros that reference other macros and stops
// after a fixed number of passes, so a self-referencing locale cannot loop.
//
// # Caching
//
// Compiled patterns are memoized per Formatter in a bounded LRU cache and
// concurrent compiles of the same pattern are collapsed. Rendering is a pure
// function of the value and the locale.
//
// Invalid values never fail: they render the locale's invalid date text.
package layout
