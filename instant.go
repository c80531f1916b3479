package tempo

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/tempo/pkg/calendar"
	"github.com/dmitrymomot/tempo/pkg/layout"
	"github.com/dmitrymomot/tempo/pkg/locale"
	"github.com/dmitrymomot/tempo/pkg/tz"
)

// Instant is an immutable point in time read through a zone frame (host
// local time, UTC, a fixed offset or a named zone) and a locale.
//
// Months are zero-based and weekdays run from 0 (Sunday) to 6. Every method
// that changes a field returns a new Instant.
//
// The zero Instant is the Unix epoch in host local time, bound to a lazily
// created default Engine.
type Instant struct {
	err    error
	loc    *locale.Locale
	engine *Engine
	frame  frame
	ms     int64
}

var _ layout.Value = Instant{}

func (i Instant) eng() *Engine {
	if i.engine != nil {
		return i.engine
	}
	return defaultEngine()
}

// Valid reports whether the instant describes a real point in time.
func (i Instant) Valid() bool { return i.err == nil }

// Err returns the reason the instant is invalid, or nil.
func (i Instant) Err() error { return i.err }

// Clone returns i. Instants are values; it exists for symmetry with code
// that expects an explicit copy.
func (i Instant) Clone() Instant { return i }

// Locale returns the locale used for names and phrases.
func (i Instant) Locale() *locale.Locale {
	if i.loc != nil {
		return i.loc
	}
	return i.eng().Locale()
}

// WithLocale returns i bound to the best match for tags.
func (i Instant) WithLocale(tags ...string) Instant {
	i.loc = i.eng().Locale(tags...)
	return i
}

// UnixMilli returns the instant as milliseconds since the Unix epoch.
func (i Instant) UnixMilli() int64 { return i.ms }

// Unix returns the instant as whole seconds since the Unix epoch.
func (i Instant) Unix() int64 { return calendar.FloorDiv64(i.ms, calendar.MillisPerSecond) }

// UTCOffset returns the offset of the frame at the instant, in minutes
// east of UTC.
func (i Instant) UTCOffset() int { return i.frame.offsetAt(i.ms) }

func (i Instant) wall() int64 {
	return i.ms + int64(i.UTCOffset())*calendar.MillisPerMinute
}

func (i Instant) days() int64 {
	return calendar.FloorDiv64(i.wall(), calendar.MillisPerDay)
}

func (i Instant) timeOfDay() int64 {
	return calendar.Mod64(i.wall(), calendar.MillisPerDay)
}

func (i Instant) civil() (year, month, day int) {
	return calendar.CivilFromDays(i.days())
}

// Year returns the calendar year. Year 0 is 1 BC.
func (i Instant) Year() int {
	y, _, _ := i.civil()
	return y
}

// Month returns the zero-based month.
func (i Instant) Month() int {
	_, m, _ := i.civil()
	return m
}

// Date returns the day of the month.
func (i Instant) Date() int {
	_, _, d := i.civil()
	return d
}

// Day returns the day of the week, 0 for Sunday.
func (i Instant) Day() int { return calendar.Weekday(i.days()) }

// Weekday returns the day of the week counted from the locale's first
// day of the week.
func (i Instant) Weekday() int {
	return calendar.Mod(i.Day()-i.Locale().Week().Dow, 7)
}

// ISOWeekday returns the ISO day of the week, 1 for Monday to 7 for Sunday.
func (i Instant) ISOWeekday() int {
	if d := i.Day(); d != 0 {
		return d
	}
	return 7
}

// DayOfYear returns the one-based day of the year.
func (i Instant) DayOfYear() int {
	return calendar.DayOfYear(i.civil())
}

// Week returns the week of the year under the locale's week rule.
func (i Instant) Week() int {
	w, _ := i.localeWeek()
	return w
}

// WeekYear returns the year the locale week belongs to.
func (i Instant) WeekYear() int {
	_, y := i.localeWeek()
	return y
}

func (i Instant) localeWeek() (int, int) {
	y, m, d := i.civil()
	rule := i.Locale().Week()
	return calendar.WeekOfYear(y, m, d, rule.Dow, rule.Doy)
}

// ISOWeek returns the ISO-8601 week number.
func (i Instant) ISOWeek() int {
	w, _ := calendar.ISOWeek(i.civil())
	return w
}

// ISOWeekYear returns the ISO-8601 week-numbering year.
func (i Instant) ISOWeekYear() int {
	_, y := calendar.ISOWeek(i.civil())
	return y
}

// WeeksInYear returns the number of locale weeks in the instant's year.
func (i Instant) WeeksInYear() int {
	rule := i.Locale().Week()
	return calendar.WeeksInYear(i.Year(), rule.Dow, rule.Doy)
}

// ISOWeeksInYear returns the number of ISO weeks in the instant's year.
func (i Instant) ISOWeeksInYear() int {
	return calendar.WeeksInYear(i.Year(), calendar.ISODow, calendar.ISODoy)
}

// Quarter returns the quarter of the year, 1 to 4.
func (i Instant) Quarter() int { return i.Month()/3 + 1 }

// Hour returns the hour of the day.
func (i Instant) Hour() int { return int(i.timeOfDay() / calendar.MillisPerHour) }

// Minute returns the minute of the hour.
func (i Instant) Minute() int {
	return int(i.timeOfDay() % calendar.MillisPerHour / calendar.MillisPerMinute)
}

// Second returns the second of the minute.
func (i Instant) Second() int {
	return int(i.timeOfDay() % calendar.MillisPerMinute / calendar.MillisPerSecond)
}

// Millisecond returns the millisecond of the second.
func (i Instant) Millisecond() int { return int(i.timeOfDay() % calendar.MillisPerSecond) }

// DaysInMonth returns the length of the instant's month.
func (i Instant) DaysInMonth() int {
	y, m, _ := i.civil()
	return calendar.DaysInMonth(y, m)
}

// IsLeapYear reports whether the instant's year is a leap year.
func (i Instant) IsLeapYear() bool { return calendar.IsLeap(i.Year()) }

// IsDST reports whether the offset at the instant is larger than the
// offset in January or June of the same year.
func (i Instant) IsDST() bool {
	if i.frame.mode == modeUTC || i.frame.mode == modeFixed {
		return false
	}
	off := i.UTCOffset()
	jan := i.Set(Month, 0).UTCOffset()
	jun := i.Set(Month, 5).UTCOffset()
	return off > jan || off > jun
}

// UTC returns i read in UTC.
func (i Instant) UTC() Instant {
	i.frame = utcFrame()
	return i
}

// Local returns i read in the engine's host location.
func (i Instant) Local() Instant {
	i.frame = localFrame(i.eng().host)
	return i
}

// WithOffset returns i read at a fixed offset in minutes east of UTC. With
// keepLocal the wall clock is kept and the point in time moves instead.
func (i Instant) WithOffset(minutes int, keepLocal bool) Instant {
	wall := i.wall()
	i.frame = fixedFrame(minutes)
	if keepLocal {
		i.ms = wall - int64(minutes)*calendar.MillisPerMinute
	}
	return i
}

// In returns i read in the named zone. An unknown zone name is logged and
// leaves i unchanged.
func (i Instant) In(name string) Instant {
	e := i.eng()
	z, ok := e.zones.Zone(name)
	if !ok {
		e.logger.Warn("unknown timezone, instant left unchanged",
			slog.String("zone", name),
		)
		return i
	}
	i.frame = namedFrame(z)
	return i
}

// Zone returns the named zone i is bound to, or nil.
func (i Instant) Zone() *tz.Zone { return i.frame.zone }

// ZoneName returns the zone name: an IANA name, "UTC", the host location
// name, or an empty string for fixed offsets.
func (i Instant) ZoneName() string { return i.frame.name() }

// ZoneAbbr returns the zone abbreviation active at the instant.
func (i Instant) ZoneAbbr() string { return i.frame.abbrAt(i.ms) }

// IsUTC reports whether i is read in UTC.
func (i Instant) IsUTC() bool { return i.frame.mode == modeUTC }

// Format renders i with a pattern in its locale. An empty pattern uses
// layout.DefaultFormat. Invalid instants render the locale's invalid date
// text.
func (i Instant) Format(pattern string) string {
	if pattern == "" {
		pattern = layout.DefaultFormat
		if i.IsUTC() {
			pattern = layout.DefaultFormatUTC
		}
	}
	return i.eng().formatter.Format(i, pattern, i.Locale())
}

// ISOString renders i in UTC as YYYY-MM-DDTHH:mm:ss.SSSZ, switching to a
// signed six digit year outside 0..9999. Invalid instants render as an
// empty string.
func (i Instant) ISOString() string {
	if !i.Valid() {
		return ""
	}
	u := i.UTC()
	pattern := layout.ISO8601
	if y := u.Year(); y < 0 || y > 9999 {
		pattern = "YYYYYY-MM-DD[T]HH:mm:ss.SSS[Z]"
	}
	return i.eng().formatter.Compile(pattern).Render(u, i.Locale())
}

// String returns ISOString, or the locale's invalid date text.
func (i Instant) String() string {
	if !i.Valid() {
		return i.Locale().InvalidDate()
	}
	return i.ISOString()
}

// Time converts i to a time.Time. Named zones and fixed offsets become
// fixed zones carrying the active abbreviation.
func (i Instant) Time() time.Time {
	t := time.UnixMilli(i.ms)
	switch i.frame.mode {
	case modeUTC:
		return t.UTC()
	case modeLocal:
		return t.In(i.frame.location())
	}
	return t.In(time.FixedZone(i.ZoneAbbr(), i.UTCOffset()*60))
}
