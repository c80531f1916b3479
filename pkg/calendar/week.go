package calendar

// Week numbering is parameterised by dow (the first day of the week, 0 =
// Sunday) and doy (dow + 7 - doy is the January day that always falls in
// week one). ISO-8601 uses dow=1, doy=4.
const (
	ISODow = 1
	ISODoy = 4
)

// FirstWeekOffset returns the offset, in days relative to January 1st, of
// the first day of week one of year. The result is zero or negative.
func FirstWeekOffset(year, dow, doy int) int {
	fwd := 7 + dow - doy
	fwdlw := (7 + Weekday(DaysFromCivil(year, 0, fwd)) - dow) % 7
	return -fwdlw + fwd - 1
}

// WeeksInYear returns the number of weeks in year under the given rules.
func WeeksInYear(year, dow, doy int) int {
	offset := FirstWeekOffset(year, dow, doy)
	next := FirstWeekOffset(year+1, dow, doy)
	return (DaysInYear(year) - offset + next) / 7
}

// WeekOfYear returns the week number of a date and the week-numbering year
// it belongs to, which differs from year around New Year.
func WeekOfYear(year, month, day, dow, doy int) (week, weekYear int) {
	offset := FirstWeekOffset(year, dow, doy)
	week = floorDiv(DayOfYear(year, month, day)-offset-1, 7) + 1

	switch {
	case week < 1:
		weekYear = year - 1
		week += WeeksInYear(weekYear, dow, doy)
	case week > WeeksInYear(year, dow, doy):
		week -= WeeksInYear(year, dow, doy)
		weekYear = year + 1
	default:
		weekYear = year
	}
	return week, weekYear
}

// DayOfYearFromWeeks resolves a (week year, week, weekday) triple to a
// calendar year and one-based day of that year.
func DayOfYearFromWeeks(weekYear, week, weekday, dow, doy int) (year, dayOfYear int) {
	localWeekday := (7 + weekday - dow) % 7
	offset := FirstWeekOffset(weekYear, dow, doy)
	dayOfYear = 1 + 7*(week-1) + localWeekday + offset

	switch {
	case dayOfYear <= 0:
		year = weekYear - 1
		dayOfYear += DaysInYear(year)
	case dayOfYear > DaysInYear(weekYear):
		year = weekYear + 1
		dayOfYear -= DaysInYear(weekYear)
	default:
		year = weekYear
	}
	return year, dayOfYear
}

// ISOWeek returns the ISO-8601 week number and week year of a date.
func ISOWeek(year, month, day int) (week, weekYear int) {
	return WeekOfYear(year, month, day, ISODow, ISODoy)
}

func floorDiv(a, b int) int {
	return int(FloorDiv64(int64(a), int64(b)))
}
