// Package calendar implements proleptic Gregorian calendar arithmetic on plain
// integers: leap years, month lengths, conversion between civil dates and day
// numbers counted from the Unix epoch, and week numbering under arbitrary
// first-day-of-week rules.
//
// The functions are pure and allocation free. They are the building blocks
// for the tempo instant type, the formatter and the parser, which all work on
// wall-clock fields rather than on time.Time.
//
// # Conventions
//
// Months are zero-based (0 = January). Weekdays are 0 (Sunday) through 6
// (Saturday). Day numbers are days since 1970-01-01 and may be negative.
//
// Functions that accept a month or a day tolerate out-of-range values and
// carry the overflow into the next larger unit:
//
//	calendar.DaysFromCivil(2024, 12, 1) == calendar.DaysFromCivil(2025, 0, 1)
//	calendar.DaysFromCivil(2024, 1, 30) == calendar.DaysFromCivil(2024, 2, 1)
//
// # Week numbering
//
// Week numbers follow the locale model: dow is the first day of the week and
// doy pins which January day is always in week one. ISO-8601 weeks use
// ISODow and ISODoy.
package calendar
