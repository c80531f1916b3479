package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tempo/pkg/calendar"
)

func TestIsLeap(t *testing.T) {
	t.Parallel()

	require.True(t, calendar.IsLeap(2024))
	require.True(t, calendar.IsLeap(2000))
	require.False(t, calendar.IsLeap(1900))
	require.False(t, calendar.IsLeap(2023))
	require.True(t, calendar.IsLeap(0))
}

func TestDaysInMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		year, month, want int
	}{
		{2024, 1, 29},
		{2023, 1, 28},
		{2023, 0, 31},
		{2023, 3, 30},
		{2023, 6, 31},
		{2023, 7, 31},
		{2023, 10, 30},
		{2023, 11, 31},
		{2023, 13, 29}, // February 2024
		{2024, -1, 31}, // December 2023
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, calendar.DaysInMonth(tt.year, tt.month), "year=%d month=%d", tt.year, tt.month)
	}
}

func TestDaysFromCivil(t *testing.T) {
	t.Parallel()

	t.Run("matches the standard library", func(t *testing.T) {
		t.Parallel()
		for _, d := range []time.Time{
			time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
		} {
			want := d.Unix() / 86400
			got := calendar.DaysFromCivil(d.Year(), int(d.Month())-1, d.Day())
			require.Equal(t, want, got, d.String())

			y, m, day := calendar.CivilFromDays(got)
			require.Equal(t, d.Year(), y)
			require.Equal(t, int(d.Month())-1, m)
			require.Equal(t, d.Day(), day)
		}
	})

	t.Run("carries overflowing fields", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, calendar.DaysFromCivil(2025, 0, 1), calendar.DaysFromCivil(2024, 12, 1))
		require.Equal(t, calendar.DaysFromCivil(2024, 2, 1), calendar.DaysFromCivil(2024, 1, 30))
		require.Equal(t, calendar.DaysFromCivil(2023, 11, 31), calendar.DaysFromCivil(2024, 0, 0))
	})
}

func TestWeekday(t *testing.T) {
	t.Parallel()

	// 1970-01-01 was a Thursday.
	require.Equal(t, 4, calendar.Weekday(0))
	require.Equal(t, 3, calendar.Weekday(-1))
	require.Equal(t, 1, calendar.Weekday(calendar.DaysFromCivil(2024, 0, 1)))
	require.Equal(t, 0, calendar.Weekday(calendar.DaysFromCivil(2024, 2, 10)))
}

func TestDayOfYear(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, calendar.DayOfYear(2024, 0, 1))
	require.Equal(t, 60, calendar.DayOfYear(2024, 1, 29))
	require.Equal(t, 366, calendar.DayOfYear(2024, 11, 31))
	require.Equal(t, 365, calendar.DayOfYear(2023, 11, 31))
}

func TestISOWeek(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		year, month, day int
		week, weekYear   int
	}{
		{"new year in previous week year", 2021, 0, 1, 53, 2020},
		{"late december in next week year", 2024, 11, 30, 1, 2025},
		{"mid year", 2024, 6, 15, 29, 2024},
		{"first monday", 2024, 0, 1, 1, 2024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			week, weekYear := calendar.ISOWeek(tt.year, tt.month, tt.day)
			require.Equal(t, tt.week, week)
			require.Equal(t, tt.weekYear, weekYear)

			_, isoWeek := time.Date(tt.year, time.Month(tt.month+1), tt.day, 0, 0, 0, 0, time.UTC).ISOWeek()
			require.Equal(t, isoWeek, week)
		})
	}
}

func TestLocaleWeeks(t *testing.T) {
	t.Parallel()

	// Sunday-first weeks where January 1st is always in week one.
	week, weekYear := calendar.WeekOfYear(2023, 11, 31, 0, 6)
	require.Equal(t, 1, week)
	require.Equal(t, 2024, weekYear)

	require.Equal(t, 52, calendar.WeeksInYear(2023, 0, 6))
	require.Equal(t, 53, calendar.WeeksInYear(2020, calendar.ISODow, calendar.ISODoy))
}

func TestDayOfYearFromWeeks(t *testing.T) {
	t.Parallel()

	year, doy := calendar.DayOfYearFromWeeks(2020, 53, 5, calendar.ISODow, calendar.ISODoy)
	require.Equal(t, 2021, year)
	require.Equal(t, 1, doy)

	year, doy = calendar.DayOfYearFromWeeks(2025, 1, 1, calendar.ISODow, calendar.ISODoy)
	require.Equal(t, 2024, year)
	require.Equal(t, 365, doy)

	year, doy = calendar.DayOfYearFromWeeks(2024, 29, 1, calendar.ISODow, calendar.ISODoy)
	require.Equal(t, 2024, year)
	require.Equal(t, calendar.DayOfYear(2024, 6, 15), doy)
}

func TestFloorDiv64(t *testing.T) {
	t.Parallel()

	require.Equal(t, int64(-1), calendar.FloorDiv64(-1, 7))
	require.Equal(t, int64(0), calendar.FloorDiv64(6, 7))
	require.Equal(t, int64(-2), calendar.FloorDiv64(-8, 7))
	require.Equal(t, int64(6), calendar.Mod64(-1, 7))
	require.Equal(t, 11, calendar.Mod(-1, 12))
}
