package parse

import (
	"regexp"
	"slices"
	"strings"
)

var (
	rfc2822 = regexp.MustCompile(`^(?:(Mon|Tue|Wed|Thu|Fri|Sat|Sun),?\s)?(\d{1,2})\s(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s(\d{2,4})\s(\d\d):(\d\d)(?::(\d\d))?\s(?:(UT|GMT|[ECMP][SD]T)|([Zz])|([+-]\d{4}))$`)

	rfcComments = regexp.MustCompile(`\([^()]*\)|[\n\t]`)
	rfcSpaces   = regexp.MustCompile(`\s\s+`)

	rfcMonths   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	rfcWeekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
)

// obsoleteZones are the RFC 822 North American zone names, in minutes east.
var obsoleteZones = map[string]int{
	"UT":  0,
	"GMT": 0,
	"EDT": -4 * 60,
	"EST": -5 * 60,
	"CDT": -5 * 60,
	"CST": -6 * 60,
	"MDT": -6 * 60,
	"MST": -7 * 60,
	"PDT": -7 * 60,
	"PST": -8 * 60,
}

// untruncateYear expands two and three digit RFC 2822 years.
func untruncateYear(s string) int {
	y := toInt(s)
	switch {
	case y <= 49:
		return 2000 + y
	case y <= 999:
		return 1900 + y
	}
	return y
}

// parseRFC2822 reports ok when s has the RFC 2822 shape. A weekday that
// disagrees with the date is a hard failure.
func parseRFC2822(s string) (Result, bool, error) {
	clean := rfcComments.ReplaceAllString(s, " ")
	clean = strings.TrimSpace(rfcSpaces.ReplaceAllString(clean, " "))
	m := rfc2822.FindStringSubmatch(clean)
	if m == nil {
		return Result{}, false, nil
	}

	st := newState(s, Options{})
	st.empty = false
	st.put(Year, untruncateYear(m[4]))
	st.put(Month, slices.Index(rfcMonths, m[3]))
	st.put(Day, toInt(m[2]))
	st.put(Hour, toInt(m[5]))
	st.put(Minute, toInt(m[6]))
	if m[7] != "" {
		st.put(Second, toInt(m[7]))
	}

	if m[1] != "" {
		if slices.Index(rfcWeekdays, m[1]) != weekdayOf(st.a[Year], st.a[Month], st.a[Day]) {
			st.weekdayMismatch = true
		}
	}

	switch {
	case m[8] != "":
		st.offset = obsoleteZones[m[8]]
	case m[9] != "":
		st.offset = 0
	default:
		hm := toInt(m[10])
		st.offset = hm/100*60 + hm%100
	}
	st.hasOffset = true

	err := st.validate()
	return st.result(StrategyRFC2822), true, err
}
