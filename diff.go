package tempo

import (
	"fmt"
	"math"

	"github.com/dmitrymomot/tempo/pkg/calendar"
)

// Diff returns i minus other in the given unit. Years, quarters and months
// are counted on the calendar, interpolating the partial month between its
// boundaries. Days and weeks discount the change in UTC offset between the
// two instants so a DST switch does not skew the count. Without asFloat the
// result is truncated toward zero. Invalid operands give NaN.
func (i Instant) Diff(other Instant, unit Unit, asFloat bool) float64 {
	if !i.Valid() || !other.Valid() {
		return math.NaN()
	}
	that := other
	that.frame = i.frame
	delta := float64(i.ms - that.ms)
	zoneDelta := float64(that.UTCOffset()-i.UTCOffset()) * float64(calendar.MillisPerMinute)

	var out float64
	switch unit {
	case Year:
		out = monthDiff(i, that) / 12
	case Quarter:
		out = monthDiff(i, that) / 3
	case Month:
		out = monthDiff(i, that)
	case Week:
		out = (delta - zoneDelta) / float64(7*calendar.MillisPerDay)
	case Day, Date:
		out = (delta - zoneDelta) / float64(calendar.MillisPerDay)
	case Hour:
		out = delta / float64(calendar.MillisPerHour)
	case Minute:
		out = delta / float64(calendar.MillisPerMinute)
	case Second:
		out = delta / float64(calendar.MillisPerSecond)
	default:
		out = delta
	}
	if !asFloat {
		out = math.Trunc(out)
	}
	return out + 0 // folds -0
}

// monthDiff returns a minus b in months. Both must share a frame.
func monthDiff(a, b Instant) float64 {
	if a.Date() < b.Date() {
		return -monthDiff(b, a)
	}
	whole := (b.Year()-a.Year())*12 + b.Month() - a.Month()
	anchor := a.addMonths(whole)

	var adjust float64
	if b.ms < anchor.ms {
		prev := a.addMonths(whole - 1)
		adjust = float64(b.ms-anchor.ms) / float64(anchor.ms-prev.ms)
	} else {
		next := a.addMonths(whole + 1)
		adjust = float64(b.ms-anchor.ms) / float64(next.ms-anchor.ms)
	}
	if r := -(float64(whole) + adjust); r != 0 {
		return r
	}
	return 0
}

// IsBefore reports whether i ends before other starts at unit granularity.
// An empty unit or Millisecond compares exact instants.
func (i Instant) IsBefore(other Instant, unit Unit) bool {
	if !i.Valid() || !other.Valid() {
		return false
	}
	if exact(unit) {
		return i.ms < other.ms
	}
	return i.EndOf(unit).ms < other.ms
}

// IsAfter reports whether i starts after other at unit granularity.
func (i Instant) IsAfter(other Instant, unit Unit) bool {
	if !i.Valid() || !other.Valid() {
		return false
	}
	if exact(unit) {
		return i.ms > other.ms
	}
	return other.ms < i.StartOf(unit).ms
}

// IsSame reports whether other falls in the same unit as i, measured in
// i's frame.
func (i Instant) IsSame(other Instant, unit Unit) bool {
	if !i.Valid() || !other.Valid() {
		return false
	}
	if exact(unit) {
		return i.ms == other.ms
	}
	return i.StartOf(unit).ms <= other.ms && other.ms <= i.EndOf(unit).ms
}

// IsSameOrBefore is IsSame or IsBefore.
func (i Instant) IsSameOrBefore(other Instant, unit Unit) bool {
	return i.IsSame(other, unit) || i.IsBefore(other, unit)
}

// IsSameOrAfter is IsSame or IsAfter.
func (i Instant) IsSameOrAfter(other Instant, unit Unit) bool {
	return i.IsSame(other, unit) || i.IsAfter(other, unit)
}

// IsBetween reports whether i lies between from and to. bounds is one of
// "()", "[]", "[)" or "(]"; a square bracket includes that end. An empty
// bounds string means "()".
func (i Instant) IsBetween(from, to Instant, unit Unit, bounds string) bool {
	if bounds == "" {
		bounds = "()"
	}
	if len(bounds) != 2 {
		return false
	}
	lower := i.IsAfter(from, unit)
	if bounds[0] == '[' {
		lower = from.Valid() && i.Valid() && !i.IsBefore(from, unit)
	}
	upper := i.IsBefore(to, unit)
	if bounds[1] == ']' {
		upper = to.Valid() && i.Valid() && !i.IsAfter(to, unit)
	}
	return lower && upper
}

func exact(unit Unit) bool { return unit == "" || unit == Millisecond }

// Min returns the earliest instant. An invalid argument is returned as is;
// no arguments give an invalid Instant.
func Min(instants ...Instant) Instant {
	return pick(instants, Instant.IsBefore)
}

// Max returns the latest instant, with the same rules as Min.
func Max(instants ...Instant) Instant {
	return pick(instants, Instant.IsAfter)
}

func pick(instants []Instant, better func(Instant, Instant, Unit) bool) Instant {
	if len(instants) == 0 {
		return Instant{err: fmt.Errorf("%w: no instants to compare", ErrInvalidInput)}
	}
	res := instants[0]
	for _, in := range instants[1:] {
		if !in.Valid() || better(in, res, Millisecond) {
			res = in
		}
	}
	return res
}
