package tempo

import (
	"fmt"
	"strings"
)

// Unit names a calendar or clock unit.
type Unit string

// Units accepted by arithmetic, truncation, comparison and diff.
const (
	Year        Unit = "year"
	Quarter     Unit = "quarter"
	Month       Unit = "month"
	Week        Unit = "week"
	ISOWeek     Unit = "isoWeek"
	Day         Unit = "day"
	Hour        Unit = "hour"
	Minute      Unit = "minute"
	Second      Unit = "second"
	Millisecond Unit = "millisecond"
)

// Units accepted by Set only. Day used with Set selects the weekday.
const (
	Date       Unit = "date"
	DayOfYear  Unit = "dayOfYear"
	Weekday    Unit = "weekday"
	ISOWeekday Unit = "isoWeekday"
)

var unitAliases = map[string]Unit{
	"y":   Year,
	"Q":   Quarter,
	"M":   Month,
	"w":   Week,
	"W":   ISOWeek,
	"d":   Day,
	"D":   Date,
	"h":   Hour,
	"m":   Minute,
	"s":   Second,
	"ms":  Millisecond,
	"DDD": DayOfYear,
	"e":   Weekday,
	"E":   ISOWeekday,
}

var unitNames = map[string]Unit{
	"year":        Year,
	"quarter":     Quarter,
	"month":       Month,
	"week":        Week,
	"isoweek":     ISOWeek,
	"day":         Day,
	"date":        Date,
	"hour":        Hour,
	"minute":      Minute,
	"second":      Second,
	"millisecond": Millisecond,
	"dayofyear":   DayOfYear,
	"weekday":     Weekday,
	"isoweekday":  ISOWeekday,
}

// ParseUnit resolves a unit name. Short aliases are case sensitive ("M" is
// month, "m" is minute); long names may be plural and in any case.
func ParseUnit(s string) (Unit, error) {
	if u, ok := unitAliases[s]; ok {
		return u, nil
	}
	name := strings.ToLower(strings.TrimSpace(s))
	if u, ok := unitNames[name]; ok {
		return u, nil
	}
	if u, ok := unitNames[strings.TrimSuffix(name, "s")]; ok {
		return u, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
}
