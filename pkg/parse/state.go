package parse

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrymomot/tempo/pkg/calendar"
	"github.com/dmitrymomot/tempo/pkg/locale"
)

// state accumulates everything a strategy extracts before normalization.
type state struct {
	loc    *locale.Locale
	strict bool
	now    time.Time
	input  string
	format string

	a   [7]int
	set [7]bool

	week      map[string]int
	dayOfYear int
	hasDOY    bool

	meridiem    string
	hasMeridiem bool
	era         *locale.Era

	offset    int
	hasOffset bool
	unix      int64
	hasUnix   bool

	bigHour bool
	empty   bool
	nextDay bool

	invalidMonth    string
	invalidWeekday  string
	invalidEra      string
	weekdayMismatch bool

	overflowDOY     bool
	overflowWeeks   bool
	overflowWeekday bool

	charsLeftOver int
	unusedTokens  []string
	unusedInput   []string
}

func newState(s string, o Options) *state {
	return &state{loc: o.Locale, strict: o.Strict, now: o.Now, input: s, empty: true}
}

func (st *state) put(f Field, v int) {
	st.a[f] = v
	st.set[f] = true
}

func (st *state) setWeek(key string, v int) {
	if st.week == nil {
		st.week = make(map[string]int)
	}
	st.week[key] = v
}

func (st *state) today() (int, int, int) {
	y, m, d := st.now.Date()
	return y, int(m) - 1, d
}

// build fills the field vector: week and ordinal dates are resolved, leading
// gaps come from today, trailing gaps are zeroed and 24:00 is recognised.
func (st *state) build() {
	if st.hasUnix {
		return
	}
	if st.week != nil && !st.set[Day] && !st.set[Month] {
		st.fromWeeks()
	}

	ty, tm, td := st.today()
	if st.hasDOY {
		year := ty
		if st.set[Year] {
			year = st.a[Year]
		}
		if st.dayOfYear > calendar.DaysInYear(year) || st.dayOfYear == 0 {
			st.overflowDOY = true
		}
		_, m, d := calendar.CivilFromDays(calendar.DaysFromCivil(year, 0, st.dayOfYear))
		st.put(Month, m)
		st.put(Day, d)
	}

	today := [3]int{ty, tm, td}
	i := 0
	for ; i < 3 && !st.set[i]; i++ {
		st.a[i] = today[i]
	}
	for ; i < 7; i++ {
		if !st.set[i] {
			st.a[i] = 0
			if Field(i) == Day {
				st.a[i] = 1
			}
		}
	}

	if st.a[Hour] == 24 && st.a[Minute] == 0 && st.a[Second] == 0 && st.a[Millisecond] == 0 {
		st.nextDay = true
	}

	if d, ok := st.week["d"]; ok {
		day := calendar.DaysFromCivil(st.a[Year], st.a[Month], st.a[Day])
		if st.nextDay {
			day++
		}
		if calendar.Weekday(day) != d {
			st.weekdayMismatch = true
		}
	}
}

// fromWeeks derives year and day of year from week fields.
func (st *state) fromWeeks() {
	w := st.week
	var dow, doy, weekYear, week, weekday int
	weekdayOverflow := false
	ty, tm, td := st.today()

	_, isoE := w["E"]
	_, isoW := w["W"]
	_, isoG := w["GG"]
	if isoG || isoW || isoE {
		dow, doy = calendar.ISODow, calendar.ISODoy
		_, curYear := calendar.ISOWeek(ty, tm, td)
		weekYear = pick(w, "GG", st.yearOr(curYear))
		week = pick(w, "W", 1)
		weekday = pick(w, "E", 1)
		if weekday < 1 || weekday > 7 {
			weekdayOverflow = true
		}
	} else {
		lw := st.loc.Week()
		dow, doy = lw.Dow, lw.Doy
		curWeek, curYear := calendar.WeekOfYear(ty, tm, td, dow, doy)
		weekYear = pick(w, "gg", st.yearOr(curYear))
		week = pick(w, "w", curWeek)
		switch {
		case has(w, "d"):
			weekday = w["d"]
			if weekday < 0 || weekday > 6 {
				weekdayOverflow = true
			}
		case has(w, "e"):
			weekday = w["e"] + dow
			if w["e"] < 0 || w["e"] > 6 {
				weekdayOverflow = true
			}
		default:
			weekday = dow
		}
	}

	switch {
	case week < 1 || week > calendar.WeeksInYear(weekYear, dow, doy):
		st.overflowWeeks = true
	case weekdayOverflow:
		st.overflowWeekday = true
	default:
		year, dayOfYear := calendar.DayOfYearFromWeeks(weekYear, week, weekday, dow, doy)
		st.put(Year, year)
		st.dayOfYear, st.hasDOY = dayOfYear, true
	}
}

func (st *state) yearOr(fallback int) int {
	if st.set[Year] {
		return st.a[Year]
	}
	return fallback
}

func pick(m map[string]int, key string, fallback int) int {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

func has(m map[string]int, key string) bool {
	_, ok := m[key]
	return ok
}

// overflow returns the first field outside its natural range.
func (st *state) overflow() Field {
	a := st.a
	f := NoField
	switch {
	case a[Month] < 0 || a[Month] > 11:
		f = Month
	case a[Day] < 1 || a[Day] > calendar.DaysInMonth(a[Year], a[Month]):
		f = Day
	case a[Hour] < 0 || a[Hour] > 24 || (a[Hour] == 24 && (a[Minute] != 0 || a[Second] != 0 || a[Millisecond] != 0)):
		f = Hour
	case a[Minute] < 0 || a[Minute] > 59:
		f = Minute
	case a[Second] < 0 || a[Second] > 59:
		f = Second
	case a[Millisecond] < 0 || a[Millisecond] > 999:
		f = Millisecond
	}
	if st.overflowDOY && (f < Year || f > Day) {
		f = Day
	}
	if st.overflowWeeks && f == NoField {
		f = Week
	}
	if st.overflowWeekday && f == NoField {
		f = Weekday
	}
	return f
}

// validate reports the first reason the state does not describe a valid
// instant.
func (st *state) validate() error {
	fail := func(f Field, format string, args ...any) error {
		return &Error{Input: st.input, Format: st.format, Field: f, Reason: fmt.Sprintf(format, args...)}
	}

	if !st.hasUnix {
		if f := st.overflow(); f != NoField {
			return fail(f, "%s out of range", f)
		}
	}
	switch {
	case st.empty:
		return fail(NoField, "no fields matched")
	case st.invalidEra != "":
		return fail(Year, "unknown era %q", st.invalidEra)
	case st.invalidMonth != "":
		return fail(Month, "unknown month %q", st.invalidMonth)
	case st.invalidWeekday != "":
		return fail(Weekday, "unknown weekday %q", st.invalidWeekday)
	case st.weekdayMismatch:
		return fail(Weekday, "weekday does not match the date")
	case st.hasMeridiem && !st.anyParsed():
		return fail(Hour, "meridiem without a time")
	}
	if st.strict {
		switch {
		case st.charsLeftOver > 0:
			return fail(NoField, "%d unparsed characters", st.charsLeftOver)
		case len(st.unusedTokens) > 0:
			return fail(NoField, "unmatched tokens %v", st.unusedTokens)
		case st.bigHour:
			return fail(Hour, "hour out of range for a 12-hour clock")
		}
	}
	return nil
}

// anyParsed reports whether the input supplied at least one date or time
// field before defaults were applied.
func (st *state) anyParsed() bool {
	for _, ok := range st.set {
		if ok {
			return true
		}
	}
	return false
}

func (st *state) result(s Strategy) Result {
	r := Result{
		Year: st.a[Year], Month: st.a[Month], Day: st.a[Day],
		Hour: st.a[Hour], Minute: st.a[Minute], Second: st.a[Second], Millisecond: st.a[Millisecond],
		Offset:        st.offset,
		HasOffset:     st.hasOffset,
		UnixMilli:     st.unix,
		HasUnix:       st.hasUnix,
		NextDay:       st.nextDay,
		Strategy:      s,
		Format:        st.format,
		CharsLeftOver: st.charsLeftOver,
		UnusedTokens:  st.unusedTokens,
		UnusedInput:   st.unusedInput,
	}
	if r.NextDay {
		r.Hour = 0
	}
	return r
}

// finish normalizes the state and converts it to a result.
func (st *state) finish(s Strategy) (Result, error) {
	st.build()
	err := st.validate()
	return st.result(s), err
}

// toInt reads a signed decimal number, ignoring a leading '+'. Invalid input
// reads as zero.
func toInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// twoDigitYear maps 00-68 to 2000-2068 and 69-99 to 1969-1999.
func twoDigitYear(s string) int {
	n := toInt(s)
	if n > 68 {
		return n + 1900
	}
	return n + 2000
}
