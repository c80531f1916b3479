package tempo

import (
	"github.com/dmitrymomot/tempo/pkg/calendar"
)

// Set returns i with one field replaced. Values outside the natural range
// roll over into the neighbouring unit, except that changing the year or
// month clamps the day of the month to the new month's length. Day sets the
// day of the week (0 = Sunday) within the current week. Unknown units and
// invalid instants return i unchanged.
func (i Instant) Set(unit Unit, v int) Instant {
	if !i.Valid() {
		return i
	}
	y, m, d := i.civil()
	switch unit {
	case Year:
		if m == 1 && d == 29 && !calendar.IsLeap(v) {
			d = 28
		}
		return i.atDate(v, m, d)
	case Quarter:
		return i.Set(Month, (v-1)*3+m%3)
	case Month:
		ny, nm := calendar.NormalizeMonth(y, v)
		return i.atDate(ny, nm, min(d, calendar.DaysInMonth(ny, nm)))
	case Date:
		return i.atDate(y, m, v)
	case Day:
		return i.addDays(v - i.Day())
	case Weekday:
		return i.addDays(v - i.Weekday())
	case ISOWeekday:
		return i.addDays(v - i.ISOWeekday())
	case DayOfYear:
		return i.addDays(v - i.DayOfYear())
	case Week:
		return i.addDays((v - i.Week()) * 7)
	case ISOWeek:
		return i.addDays((v - i.ISOWeek()) * 7)
	case Hour:
		return i.atClock(v, i.Minute(), i.Second(), i.Millisecond())
	case Minute:
		return i.atClock(i.Hour(), v, i.Second(), i.Millisecond())
	case Second:
		return i.atClock(i.Hour(), i.Minute(), v, i.Millisecond())
	case Millisecond:
		return i.atClock(i.Hour(), i.Minute(), i.Second(), v)
	}
	return i
}

// SetYear is shorthand for Set(Year, v).
func (i Instant) SetYear(v int) Instant { return i.Set(Year, v) }

// SetMonth is shorthand for Set(Month, v).
func (i Instant) SetMonth(v int) Instant { return i.Set(Month, v) }

// SetDate is shorthand for Set(Date, v).
func (i Instant) SetDate(v int) Instant { return i.Set(Date, v) }

// SetDay is shorthand for Set(Day, v).
func (i Instant) SetDay(v int) Instant { return i.Set(Day, v) }

// SetHour is shorthand for Set(Hour, v).
func (i Instant) SetHour(v int) Instant { return i.Set(Hour, v) }

// SetMinute is shorthand for Set(Minute, v).
func (i Instant) SetMinute(v int) Instant { return i.Set(Minute, v) }

// SetSecond is shorthand for Set(Second, v).
func (i Instant) SetSecond(v int) Instant { return i.Set(Second, v) }

// SetMillisecond is shorthand for Set(Millisecond, v).
func (i Instant) SetMillisecond(v int) Instant { return i.Set(Millisecond, v) }

// atDate moves to a calendar date keeping the time of day. Month and day
// may overflow.
func (i Instant) atDate(year, month, day int) Instant {
	days := calendar.DaysFromCivil(year, month, 1) + int64(day-1)
	return i.atWall(days*calendar.MillisPerDay + i.timeOfDay())
}

func (i Instant) atClock(hour, minute, second, ms int) Instant {
	wall := i.days()*calendar.MillisPerDay +
		int64(hour)*calendar.MillisPerHour +
		int64(minute)*calendar.MillisPerMinute +
		int64(second)*calendar.MillisPerSecond +
		int64(ms)
	return i.atWall(wall)
}

func (i Instant) addDays(n int) Instant {
	y, m, d := i.civil()
	return i.atDate(y, m, d+n)
}

// atWall resolves a wall-clock reading in i's frame.
func (i Instant) atWall(wall int64) Instant {
	i.ms = i.frame.toUTC(wall)
	return i
}
