package locale

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrymomot/tempo/pkg/calendar"
)

// Era is a named span of the calendar such as AD, BC or a Japanese imperial
// era. Since and Until are YYYY-MM-DD dates; Until may be empty or "+inf"
// for an open end, or "-inf" for an era counted backwards. The first year
// of the era is numbered Offset.
type Era struct {
	Since  string `yaml:"since" json:"since"`
	Until  string `yaml:"until,omitempty" json:"until,omitempty"`
	Offset int    `yaml:"offset" json:"offset"`
	Name   string `yaml:"name" json:"name"`
	Narrow string `yaml:"narrow,omitempty" json:"narrow,omitempty"`
	Abbr   string `yaml:"abbr,omitempty" json:"abbr,omitempty"`

	sinceDay  int64
	untilDay  int64
	sinceYear int
}

func (e *Era) resolve() error {
	day, year, err := parseEraDate(e.Since)
	if err != nil {
		return fmt.Errorf("%w: era %q since: %s", ErrInvalidConfig, e.Name, err)
	}
	e.sinceDay, e.sinceYear = day, year

	switch strings.ToLower(e.Until) {
	case "", "+inf", "inf", "infinity":
		e.untilDay = math.MaxInt64
	case "-inf", "-infinity":
		e.untilDay = math.MinInt64
	default:
		if e.untilDay, _, err = parseEraDate(e.Until); err != nil {
			return fmt.Errorf("%w: era %q until: %s", ErrInvalidConfig, e.Name, err)
		}
	}
	return nil
}

func parseEraDate(s string) (int64, int, error) {
	neg := strings.HasPrefix(s, "-")
	parts := strings.Split(strings.TrimPrefix(s, "-"), "-")
	if len(parts) != 3 {
		return 0, 0, fmt.Errorf("date %q is not YYYY-MM-DD", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, fmt.Errorf("date %q: %w", s, err)
		}
		nums[i] = n
	}
	if neg {
		nums[0] = -nums[0]
	}
	return calendar.DaysFromCivil(nums[0], nums[1]-1, nums[2]), nums[0], nil
}

func (e Era) direction() int {
	if e.sinceDay <= e.untilDay {
		return 1
	}
	return -1
}

// Contains reports whether the day number (days since 1970-01-01) falls
// inside the era.
func (e Era) Contains(day int64) bool {
	return (e.sinceDay <= day && day <= e.untilDay) || (e.untilDay <= day && day <= e.sinceDay)
}

// SinceYear is the calendar year the era starts in.
func (e Era) SinceYear() int { return e.sinceYear }

// Year converts a calendar year to the year of this era.
func (e Era) Year(year int) int {
	return (year-e.sinceYear)*e.direction() + e.Offset
}

// CalendarYear converts a year of this era back to a calendar year.
func (e Era) CalendarYear(eraYear int) int {
	return e.sinceYear + (eraYear-e.Offset)*e.direction()
}
