package tempo

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrymomot/tempo/pkg/calendar"
)

const (
	msPerDay   = float64(calendar.MillisPerDay)
	msPerMonth = 2592e6  // 30 days
	msPerYear  = 31536e6 // 365 days
)

// Units is a span expressed in named units. Values may be negative. Only
// the smallest non-zero unit may carry a fraction.
type Units struct {
	Years        float64
	Quarters     float64
	Months       float64
	Weeks        float64
	Days         float64
	Hours        float64
	Minutes      float64
	Seconds      float64
	Milliseconds float64
}

func (u Units) valid() bool {
	fraction := false
	for _, v := range []float64{
		u.Years, u.Quarters, u.Months, u.Weeks, u.Days,
		u.Hours, u.Minutes, u.Seconds, u.Milliseconds,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		if v == 0 {
			continue
		}
		if fraction {
			return false
		}
		fraction = v != math.Trunc(v)
	}
	return true
}

// Duration is an immutable span kept in three buckets: months (years,
// quarters and months), days (weeks and days) and milliseconds (everything
// shorter). Months and days have no fixed length and are applied on the
// calendar; milliseconds are exact.
//
// The zero Duration is a valid empty span.
type Duration struct {
	months  float64
	days    float64
	millis  float64
	parts   parts
	invalid bool
}

// parts holds the bubbled components.
type parts struct {
	years, months, days, hours, minutes, seconds, millis float64
}

// DurationFromUnits builds a Duration from named units.
func DurationFromUnits(u Units) Duration {
	d := Duration{
		months:  u.Months + u.Quarters*3 + u.Years*12,
		days:    u.Days + u.Weeks*7,
		millis:  u.Milliseconds + u.Seconds*1e3 + u.Minutes*6e4 + u.Hours*36e5,
		invalid: !u.valid(),
	}
	d.bubble()
	return d
}

// DurationOf builds a Duration of amount units. Unknown units give an
// invalid Duration.
func DurationOf(amount float64, unit Unit) Duration {
	var u Units
	switch unit {
	case Year:
		u.Years = amount
	case Quarter:
		u.Quarters = amount
	case Month:
		u.Months = amount
	case Week, ISOWeek:
		u.Weeks = amount
	case Day, Date:
		u.Days = amount
	case Hour:
		u.Hours = amount
	case Minute:
		u.Minutes = amount
	case Second:
		u.Seconds = amount
	case Millisecond, "":
		u.Milliseconds = amount
	default:
		return Duration{invalid: true}
	}
	return DurationFromUnits(u)
}

// Milliseconds returns an exact Duration of ms milliseconds.
func Milliseconds(ms int64) Duration {
	return DurationFromUnits(Units{Milliseconds: float64(ms)})
}

var (
	isoDuration = regexp.MustCompile(`^(-|\+)?P(?:([-+]?[0-9,.]*)Y)?(?:([-+]?[0-9,.]*)M)?(?:([-+]?[0-9,.]*)W)?(?:([-+]?[0-9,.]*)D)?(?:T(?:([-+]?[0-9,.]*)H)?(?:([-+]?[0-9,.]*)M)?(?:([-+]?[0-9,.]*)S)?)?$`)
	clockSpan   = regexp.MustCompile(`^(-|\+)?(?:(\d*)[. ])?(\d+):(\d+)(?::(\d+)(\.\d*)?)?$`)
)

// ParseDuration reads an ISO-8601 duration ("P1Y2M3W4DT5H6M7.5S", signed,
// with "," or "." as decimal mark) or a clock span ("[-]d.hh:mm:ss.fff").
func ParseDuration(s string) (Duration, error) {
	if m := clockSpan.FindStringSubmatch(s); m != nil {
		sign := spanSign(m[1])
		frac, _ := strconv.ParseFloat("0"+m[6], 64)
		return DurationFromUnits(Units{
			Days:         sign * atof(m[2]),
			Hours:        sign * atof(m[3]),
			Minutes:      sign * atof(m[4]),
			Seconds:      sign * atof(m[5]),
			Milliseconds: sign * math.Round(frac*1000),
		}), nil
	}
	if m := isoDuration.FindStringSubmatch(s); m != nil && s != "P" && s != "PT" {
		sign := spanSign(m[1])
		d := DurationFromUnits(Units{
			Years:   sign * isoNumber(m[2]),
			Months:  sign * isoNumber(m[3]),
			Weeks:   sign * isoNumber(m[4]),
			Days:    sign * isoNumber(m[5]),
			Hours:   sign * isoNumber(m[6]),
			Minutes: sign * isoNumber(m[7]),
			Seconds: sign * isoNumber(m[8]),
		})
		if !d.Valid() {
			return d, fmt.Errorf("%w: only the smallest unit may have a fraction: %q", ErrInvalidDuration, s)
		}
		return d, nil
	}
	return Duration{invalid: true}, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
}

func spanSign(s string) float64 {
	if s == "-" {
		return -1
	}
	return 1
}

func atof(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func isoNumber(s string) float64 {
	return atof(strings.Replace(s, ",", ".", 1))
}

// Between returns the span from one instant to another: whole calendar
// months plus the remaining milliseconds, read in from's frame. It is
// negative when to is before from.
func Between(from, to Instant) Duration {
	if !from.Valid() || !to.Valid() {
		return Duration{invalid: true}
	}
	to.frame = from.frame
	if from.ms < to.ms {
		return positiveBetween(from, to)
	}
	return positiveBetween(to, from).Negate()
}

func positiveBetween(base, other Instant) Duration {
	months := other.Month() - base.Month() + (other.Year()-base.Year())*12
	if base.addMonths(months).ms > other.ms {
		months--
	}
	return DurationFromUnits(Units{
		Months:       float64(months),
		Milliseconds: float64(other.ms - base.addMonths(months).ms),
	})
}

func (d *Duration) bubble() {
	ms, days, months := d.millis, d.days, d.months

	// Mixed signs collapse into milliseconds so the parts agree.
	if !((ms >= 0 && days >= 0 && months >= 0) || (ms <= 0 && days <= 0 && months <= 0)) {
		ms += absCeil(monthsToDays(months)+days) * msPerDay
		days, months = 0, 0
	}

	p := &d.parts
	p.millis = math.Mod(ms, 1000)
	seconds := math.Trunc(ms / 1000)
	p.seconds = math.Mod(seconds, 60)
	minutes := math.Trunc(seconds / 60)
	p.minutes = math.Mod(minutes, 60)
	hours := math.Trunc(minutes / 60)
	p.hours = math.Mod(hours, 24)

	days += math.Trunc(hours / 24)
	monthsFromDays := math.Trunc(daysToMonths(days))
	months += monthsFromDays
	days -= absCeil(monthsToDays(monthsFromDays))

	p.years = math.Trunc(months / 12)
	p.months = math.Mod(months, 12)
	p.days = days
}

// 400 years have 146097 days and 4800 months.
func daysToMonths(days float64) float64   { return days * 4800 / 146097 }
func monthsToDays(months float64) float64 { return months * 146097 / 4800 }

func absCeil(x float64) float64 {
	if x < 0 {
		return math.Floor(x)
	}
	return math.Ceil(x)
}

// Valid reports whether the Duration was built from acceptable units.
func (d Duration) Valid() bool { return !d.invalid }

// Years returns the years component.
func (d Duration) Years() float64 { return d.parts.years }

// Months returns the months component, below 12.
func (d Duration) Months() float64 { return d.parts.months }

// Weeks returns the whole weeks in the days component.
func (d Duration) Weeks() float64 { return math.Trunc(d.parts.days / 7) }

// Days returns the days component.
func (d Duration) Days() float64 { return d.parts.days }

// Hours returns the hours component, below 24.
func (d Duration) Hours() float64 { return d.parts.hours }

// Minutes returns the minutes component, below 60.
func (d Duration) Minutes() float64 { return d.parts.minutes }

// Seconds returns the seconds component, below 60.
func (d Duration) Seconds() float64 { return d.parts.seconds }

// Milliseconds returns the milliseconds component, below 1000.
func (d Duration) Milliseconds() float64 { return d.parts.millis }

// As returns the whole Duration in one unit. Converting between months and
// days uses the mean Gregorian month. Invalid durations and unknown units
// give NaN.
func (d Duration) As(unit Unit) float64 {
	if d.invalid {
		return math.NaN()
	}
	switch unit {
	case Year, Quarter, Month:
		months := d.months + daysToMonths(d.days+d.millis/msPerDay)
		switch unit {
		case Year:
			return months / 12
		case Quarter:
			return months / 3
		}
		return months
	}

	days := d.days + math.Round(monthsToDays(d.months))
	switch unit {
	case Week, ISOWeek:
		return days/7 + d.millis/(7*msPerDay)
	case Day, Date:
		return days + d.millis/msPerDay
	case Hour:
		return days*24 + d.millis/36e5
	case Minute:
		return days*1440 + d.millis/6e4
	case Second:
		return days*86400 + d.millis/1000
	case Millisecond, "":
		return math.Floor(days*msPerDay) + d.millis
	}
	return math.NaN()
}

// value approximates the Duration in milliseconds with 30 day months and
// 365 day years. Only its sign matters to callers.
func (d Duration) value() float64 {
	return d.millis + d.days*msPerDay + math.Mod(d.months, 12)*msPerMonth + math.Trunc(d.months/12)*msPerYear
}

// Add returns the bucket-wise sum.
func (d Duration) Add(o Duration) Duration {
	d.months += o.months
	d.days += o.days
	d.millis += o.millis
	d.invalid = d.invalid || o.invalid
	d.bubble()
	return d
}

// Sub returns the bucket-wise difference.
func (d Duration) Sub(o Duration) Duration { return d.Add(o.Negate()) }

// Negate flips the sign of every bucket.
func (d Duration) Negate() Duration {
	d.months, d.days, d.millis = -d.months, -d.days, -d.millis
	d.bubble()
	return d
}

// Abs returns the Duration with every bucket made non-negative.
func (d Duration) Abs() Duration {
	d.months, d.days, d.millis = math.Abs(d.months), math.Abs(d.days), math.Abs(d.millis)
	d.bubble()
	return d
}

// ISOString renders the Duration as ISO-8601, for example "P1Y2M3DT4H5M6.5S".
// Weeks are folded into days and an empty Duration is "P0D".
func (d Duration) ISOString() string {
	if d.invalid {
		return ""
	}
	total := d.As(Second)
	if total == 0 {
		return "P0D"
	}

	seconds := math.Abs(d.millis) / 1000
	days := math.Abs(d.days)
	months := math.Abs(d.months)
	minutes := math.Trunc(seconds / 60)
	hours := math.Trunc(minutes / 60)
	seconds = math.Mod(seconds, 60)
	minutes = math.Mod(minutes, 60)
	years := math.Trunc(months / 12)
	months = math.Mod(months, 12)

	ymSign := signPrefix(d.months, total)
	daySign := signPrefix(d.days, total)
	hmsSign := signPrefix(d.millis, total)

	var b strings.Builder
	if total < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	writePart(&b, ymSign, years, "Y")
	writePart(&b, ymSign, months, "M")
	writePart(&b, daySign, days, "D")
	if hours != 0 || minutes != 0 || seconds != 0 {
		b.WriteByte('T')
	}
	writePart(&b, hmsSign, hours, "H")
	writePart(&b, hmsSign, minutes, "M")
	if seconds != 0 {
		s := strconv.FormatFloat(seconds, 'f', 3, 64)
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		b.WriteString(hmsSign + s + "S")
	}
	return b.String()
}

// String returns ISOString.
func (d Duration) String() string { return d.ISOString() }

func writePart(b *strings.Builder, sign string, v float64, designator string) {
	if v == 0 {
		return
	}
	b.WriteString(sign + strconv.FormatFloat(v, 'f', -1, 64) + designator)
}

func signPrefix(bucket, total float64) string {
	if sign(bucket) != sign(total) {
		return "-"
	}
	return ""
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
