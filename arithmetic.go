package tempo

import (
	"math"

	"github.com/dmitrymomot/tempo/pkg/calendar"
)

// Add returns i moved forward by d. Months are applied first (clamping the
// day of the month), then days on the wall clock, then the exact
// milliseconds. An invalid duration leaves i unchanged.
func (i Instant) Add(d Duration) Instant { return i.addSubtract(d, 1) }

// Subtract returns i moved back by d, in the same order as Add.
func (i Instant) Subtract(d Duration) Instant { return i.addSubtract(d, -1) }

// AddUnit returns i moved by n units.
func (i Instant) AddUnit(n float64, unit Unit) Instant { return i.Add(DurationOf(n, unit)) }

// SubtractUnit returns i moved back by n units.
func (i Instant) SubtractUnit(n float64, unit Unit) Instant {
	return i.Subtract(DurationOf(n, unit))
}

func (i Instant) addSubtract(d Duration, sign int) Instant {
	if !i.Valid() || !d.Valid() {
		return i
	}
	if months := int(math.Round(d.months)); months != 0 {
		i = i.Set(Month, i.Month()+months*sign)
	}
	if days := int(math.Round(d.days)); days != 0 {
		i = i.addDays(days * sign)
	}
	if d.millis != 0 {
		i.ms += int64(math.Round(d.millis)) * int64(sign)
	}
	return i
}

func (i Instant) addMonths(n int) Instant {
	if n == 0 {
		return i
	}
	return i.Set(Month, i.Month()+n)
}

// StartOf returns the first millisecond of the unit containing i. Day and
// longer units rebuild the calendar date in i's frame; shorter units
// truncate the timestamp.
func (i Instant) StartOf(unit Unit) Instant {
	if !i.Valid() {
		return i
	}
	y, m, d := i.civil()
	switch unit {
	case Year:
		return i.atMidnight(y, 0, 1)
	case Quarter:
		return i.atMidnight(y, m-m%3, 1)
	case Month:
		return i.atMidnight(y, m, 1)
	case Week:
		return i.atMidnight(y, m, d-i.Weekday())
	case ISOWeek:
		return i.atMidnight(y, m, d-(i.ISOWeekday()-1))
	case Day, Date:
		return i.atMidnight(y, m, d)
	case Hour:
		i.ms -= calendar.Mod64(i.wall(), calendar.MillisPerHour)
	case Minute:
		i.ms -= calendar.Mod64(i.ms, calendar.MillisPerMinute)
	case Second:
		i.ms -= calendar.Mod64(i.ms, calendar.MillisPerSecond)
	}
	return i
}

// EndOf returns the last millisecond of the unit containing i.
func (i Instant) EndOf(unit Unit) Instant {
	if !i.Valid() {
		return i
	}
	y, m, d := i.civil()
	switch unit {
	case Year:
		return i.atMidnight(y+1, 0, 1).minus1()
	case Quarter:
		return i.atMidnight(y, m-m%3+3, 1).minus1()
	case Month:
		return i.atMidnight(y, m+1, 1).minus1()
	case Week:
		return i.atMidnight(y, m, d-i.Weekday()+7).minus1()
	case ISOWeek:
		return i.atMidnight(y, m, d-(i.ISOWeekday()-1)+7).minus1()
	case Day, Date:
		return i.atMidnight(y, m, d+1).minus1()
	case Hour:
		i.ms += calendar.MillisPerHour - calendar.Mod64(i.wall(), calendar.MillisPerHour) - 1
	case Minute:
		i.ms += calendar.MillisPerMinute - calendar.Mod64(i.ms, calendar.MillisPerMinute) - 1
	case Second:
		i.ms += calendar.MillisPerSecond - calendar.Mod64(i.ms, calendar.MillisPerSecond) - 1
	}
	return i
}

func (i Instant) atMidnight(year, month, day int) Instant {
	days := calendar.DaysFromCivil(year, month, 1) + int64(day-1)
	return i.atWall(days * calendar.MillisPerDay)
}

func (i Instant) minus1() Instant {
	i.ms--
	return i
}
