package tempo

import (
	"math"

	"github.com/dmitrymomot/tempo/pkg/locale"
)

// Thresholds decide which relative-time phrase a span rounds to. Each
// field is the exclusive upper bound for counting in that unit before
// moving to the next one.
type Thresholds struct {
	// FewSeconds is the largest number of seconds shown as "a few seconds".
	FewSeconds int
	Seconds    int
	Minutes    int
	Hours      int
	Days       int
	// Weeks enables week phrases when positive.
	Weeks  int
	Months int
}

// DefaultThresholds: 44 seconds or less is "a few seconds", 45 seconds is
// a minute, 45 minutes an hour, 22 hours a day, 26 days a month and 11
// months a year. Weeks are off.
var DefaultThresholds = Thresholds{
	FewSeconds: 44,
	Seconds:    45,
	Minutes:    45,
	Hours:      22,
	Days:       26,
	Months:     11,
}

// With returns t with one threshold changed. Keys are "ss", "s", "m", "h",
// "d", "w" and "M". Setting "s" also moves "ss" to one below it. The
// boolean is false for unknown keys.
func (t Thresholds) With(key string, limit int) (Thresholds, bool) {
	switch key {
	case "ss":
		t.FewSeconds = limit
	case "s":
		t.Seconds = limit
		t.FewSeconds = limit - 1
	case "m":
		t.Minutes = limit
	case "h":
		t.Hours = limit
	case "d":
		t.Days = limit
	case "w":
		t.Weeks = limit
	case "M":
		t.Months = limit
	default:
		return t, false
	}
	return t, true
}

// Humanize renders the Duration as a relative-time phrase of loc, such as
// "a minute" or, withSuffix, "in a minute" and "a minute ago". The first
// Thresholds given replace DefaultThresholds. A nil loc uses the default
// engine's current locale.
func (d Duration) Humanize(loc *locale.Locale, withSuffix bool, thresholds ...Thresholds) string {
	if loc == nil {
		loc = defaultEngine().Locale()
	}
	if d.invalid {
		return loc.InvalidDate()
	}
	t := DefaultThresholds
	if len(thresholds) > 0 {
		t = thresholds[0]
	}

	key, n := d.Abs().relativeKey(t)
	if n == 0 {
		n = 1
	}
	future := d.value() > 0
	out := loc.RelativeTime(n, !withSuffix, key, future)
	if withSuffix {
		out = loc.PastFuture(future, out)
	}
	return out
}

// relativeKey picks the phrase key and count for a non-negative span.
func (d Duration) relativeKey(t Thresholds) (string, int) {
	round := func(u Unit) int { return int(math.Floor(d.As(u) + 0.5)) }
	seconds := round(Second)
	minutes := round(Minute)
	hours := round(Hour)
	days := round(Day)
	weeks := round(Week)
	months := round(Month)
	years := round(Year)

	switch {
	case seconds <= t.FewSeconds:
		return "s", seconds
	case seconds < t.Seconds:
		return "ss", seconds
	case minutes <= 1:
		return "m", 1
	case minutes < t.Minutes:
		return "mm", minutes
	case hours <= 1:
		return "h", 1
	case hours < t.Hours:
		return "hh", hours
	case days <= 1:
		return "d", 1
	case days < t.Days:
		return "dd", days
	case t.Weeks > 0 && weeks <= 1:
		return "w", 1
	case t.Weeks > 0 && weeks < t.Weeks:
		return "ww", weeks
	case months <= 1:
		return "M", 1
	case months < t.Months:
		return "MM", months
	case years <= 1:
		return "y", 1
	}
	return "yy", years
}
