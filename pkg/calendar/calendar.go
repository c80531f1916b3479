package calendar

// Months are zero-based throughout this package (0 = January, 11 = December)
// and weekdays run from 0 (Sunday) to 6 (Saturday).

const (
	// MillisPerSecond is the number of milliseconds in a second.
	MillisPerSecond int64 = 1000
	// MillisPerMinute is the number of milliseconds in a minute.
	MillisPerMinute = 60 * MillisPerSecond
	// MillisPerHour is the number of milliseconds in an hour.
	MillisPerHour = 60 * MillisPerMinute
	// MillisPerDay is the number of milliseconds in a civil day.
	MillisPerDay = 24 * MillisPerHour
)

// IsLeap reports whether year is a leap year in the proleptic Gregorian calendar.
func IsLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the length of month in year. Out-of-range months
// roll into neighbouring years, so DaysInMonth(2023, 13) is February 2024.
func DaysInMonth(year, month int) int {
	year, month = NormalizeMonth(year, month)
	if month == 1 {
		if IsLeap(year) {
			return 29
		}
		return 28
	}
	return 31 - (month%7)%2
}

// NormalizeMonth folds an out-of-range month into [0, 11], carrying whole
// years into year.
func NormalizeMonth(year, month int) (int, int) {
	m := Mod(month, 12)
	return year + (month-m)/12, m
}

// DaysFromCivil returns the number of days between 1970-01-01 and the given
// date. Month and day may be out of range and overflow naturally.
func DaysFromCivil(year, month, day int) int64 {
	year, month = NormalizeMonth(year, month)
	y := int64(year)
	m := int64(month) + 1
	if m <= 2 {
		y--
	}
	era := FloorDiv64(y, 400)
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp + 2) / 5
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468 + int64(day) - 1
}

// CivilFromDays is the inverse of DaysFromCivil.
func CivilFromDays(days int64) (year, month, day int) {
	z := days + 719468
	era := FloorDiv64(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if m > 12 {
		m -= 12
	}
	if m <= 2 {
		y++
	}
	return int(y), int(m) - 1, int(d)
}

// Weekday returns the day of the week for a day number produced by DaysFromCivil.
func Weekday(days int64) int {
	// 1970-01-01 was a Thursday.
	return int(Mod64(days+4, 7))
}

// DayOfYear returns the one-based ordinal day of the date within its year.
func DayOfYear(year, month, day int) int {
	return int(DaysFromCivil(year, month, day)-DaysFromCivil(year, 0, 1)) + 1
}

// Mod returns the non-negative remainder of a divided by b.
func Mod(a, b int) int {
	return ((a % b) + b) % b
}

// Mod64 is Mod for int64 operands.
func Mod64(a, b int64) int64 {
	return ((a % b) + b) % b
}

// FloorDiv64 divides rounding toward negative infinity.
func FloorDiv64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
