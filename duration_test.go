package tempo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tempo"
)

func TestDurationFromUnits(t *testing.T) {
	t.Parallel()

	t.Run("bubbles into larger units", func(t *testing.T) {
		t.Parallel()

		d := tempo.DurationFromUnits(tempo.Units{Minutes: 90})
		require.Equal(t, 1.0, d.Hours())
		require.Equal(t, 30.0, d.Minutes())

		d = tempo.DurationFromUnits(tempo.Units{Hours: 36})
		require.Equal(t, 1.0, d.Days())
		require.Equal(t, 12.0, d.Hours())

		d = tempo.DurationFromUnits(tempo.Units{Days: 45})
		require.Equal(t, 1.0, d.Months())
		require.Equal(t, 14.0, d.Days())
		require.Equal(t, 2.0, d.Weeks())

		d = tempo.DurationFromUnits(tempo.Units{Months: 27})
		require.Equal(t, 2.0, d.Years())
		require.Equal(t, 3.0, d.Months())

		d = tempo.Milliseconds(3_723_004)
		require.Equal(t, 1.0, d.Hours())
		require.Equal(t, 2.0, d.Minutes())
		require.Equal(t, 3.0, d.Seconds())
		require.Equal(t, 4.0, d.Milliseconds())
	})

	t.Run("mixed signs collapse", func(t *testing.T) {
		t.Parallel()

		d := tempo.DurationFromUnits(tempo.Units{Days: 1, Hours: -1})
		require.Equal(t, 0.0, d.Days())
		require.Equal(t, 23.0, d.Hours())
	})

	t.Run("fractions", func(t *testing.T) {
		t.Parallel()

		require.True(t, tempo.DurationFromUnits(tempo.Units{Days: 1.5}).Valid())
		require.True(t, tempo.DurationFromUnits(tempo.Units{Hours: 1, Minutes: 30.5}).Valid())
		require.False(t, tempo.DurationFromUnits(tempo.Units{Hours: 1.5, Minutes: 30}).Valid())
		require.False(t, tempo.DurationOf(1, tempo.Unit("fortnight")).Valid())
	})
}

func TestDuration_As(t *testing.T) {
	t.Parallel()

	require.Equal(t, 24.0, tempo.DurationOf(1, tempo.Day).As(tempo.Hour))
	require.Equal(t, 1.5, tempo.DurationOf(90, tempo.Minute).As(tempo.Hour))
	require.Equal(t, 1.5, tempo.DurationOf(36, tempo.Hour).As(tempo.Day))
	require.Equal(t, 14.0, tempo.DurationOf(2, tempo.Week).As(tempo.Day))
	require.Equal(t, 12.0, tempo.DurationOf(1, tempo.Year).As(tempo.Month))
	require.Equal(t, 4.0, tempo.DurationOf(1, tempo.Year).As(tempo.Quarter))
	require.Equal(t, 30.0, tempo.DurationOf(1, tempo.Month).As(tempo.Day))
	require.InDelta(t, 30*4800.0/146097, tempo.DurationOf(30, tempo.Day).As(tempo.Month), 1e-12)
	require.Equal(t, 1500.0, tempo.DurationOf(1.5, tempo.Second).As(tempo.Millisecond))
	require.True(t, math.IsNaN(tempo.DurationOf(1, tempo.Day).As("fortnight")))
}

func TestDuration_Arithmetic(t *testing.T) {
	t.Parallel()

	a := tempo.DurationOf(1, tempo.Day)
	b := tempo.DurationOf(6, tempo.Hour)

	require.Equal(t, 30.0, a.Add(b).As(tempo.Hour))
	require.Equal(t, 18.0, a.Sub(b).As(tempo.Hour))
	require.Equal(t, -24.0, a.Negate().As(tempo.Hour))
	require.Equal(t, 24.0, a.Negate().Abs().As(tempo.Hour))
	require.False(t, a.Add(tempo.DurationOf(1, "fortnight")).Valid())
}

func TestParseDuration(t *testing.T) {
	t.Parallel()

	t.Run("iso", func(t *testing.T) {
		t.Parallel()

		d, err := tempo.ParseDuration("P1Y2M3W4DT5H6M7.5S")
		require.NoError(t, err)
		require.Equal(t, 1.0, d.Years())
		require.Equal(t, 2.0, d.Months())
		require.Equal(t, 25.0, d.Days())
		require.Equal(t, 5.0, d.Hours())
		require.Equal(t, 6.0, d.Minutes())
		require.Equal(t, 7.0, d.Seconds())
		require.Equal(t, 500.0, d.Milliseconds())
		require.Equal(t, "P1Y2M25DT5H6M7.5S", d.ISOString())
	})

	t.Run("negative", func(t *testing.T) {
		t.Parallel()

		d, err := tempo.ParseDuration("-P1D")
		require.NoError(t, err)
		require.Equal(t, -1.0, d.As(tempo.Day))
		require.Equal(t, "-P1D", d.String())
	})

	t.Run("comma decimal", func(t *testing.T) {
		t.Parallel()

		d, err := tempo.ParseDuration("PT1,5H")
		require.NoError(t, err)
		require.Equal(t, 90.0, d.As(tempo.Minute))
		require.Equal(t, "PT1H30M", d.ISOString())
	})

	t.Run("clock span", func(t *testing.T) {
		t.Parallel()

		d, err := tempo.ParseDuration("1.02:03:04.5")
		require.NoError(t, err)
		require.Equal(t, 1.0, d.Days())
		require.Equal(t, 2.0, d.Hours())
		require.Equal(t, 3.0, d.Minutes())
		require.Equal(t, 4.0, d.Seconds())
		require.Equal(t, 500.0, d.Milliseconds())

		d, err = tempo.ParseDuration("-02:30")
		require.NoError(t, err)
		require.Equal(t, -150.0, d.As(tempo.Minute))
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		d, err := tempo.ParseDuration("P0D")
		require.NoError(t, err)
		require.Equal(t, "P0D", d.ISOString())
		require.Equal(t, "P0D", tempo.Duration{}.ISOString())
	})

	t.Run("mixed sign buckets", func(t *testing.T) {
		t.Parallel()

		d := tempo.DurationFromUnits(tempo.Units{Months: 1})
		d = d.Add(tempo.DurationOf(-1, tempo.Day))
		require.Equal(t, "P1M-1D", d.ISOString())
	})

	for _, bad := range []string{"bogus", "P", "PT", "P1.5Y2M", "1:2:3:4", ""} {
		t.Run("invalid "+bad, func(t *testing.T) {
			t.Parallel()

			d, err := tempo.ParseDuration(bad)
			require.ErrorIs(t, err, tempo.ErrInvalidDuration)
			require.False(t, d.Valid())
			require.Empty(t, d.ISOString())
		})
	}
}

func TestBetween(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	from := utc(t, e, "2024-01-31")
	to := utc(t, e, "2024-03-01")

	d := tempo.Between(from, to)
	require.Equal(t, 1.0, d.Months())
	require.Equal(t, 1.0, d.Days())
	require.Equal(t, to.UnixMilli(), from.Add(d).UnixMilli())

	back := tempo.Between(to, from)
	require.Equal(t, -1.0, back.Months())
	require.Equal(t, -1.0, back.Days())

	bad, _ := e.Parse("garbage", tempo.ParseStrict())
	require.False(t, tempo.Between(from, bad).Valid())
}

func TestDuration_Humanize(t *testing.T) {
	t.Parallel()

	e := newEngine(t)

	tests := []struct {
		d    tempo.Duration
		want string
	}{
		{tempo.Duration{}, "a few seconds"},
		{tempo.DurationOf(44, tempo.Second), "a few seconds"},
		{tempo.DurationOf(45, tempo.Second), "a minute"},
		{tempo.DurationOf(89, tempo.Second), "a minute"},
		{tempo.DurationOf(90, tempo.Second), "2 minutes"},
		{tempo.DurationOf(44, tempo.Minute), "44 minutes"},
		{tempo.DurationOf(45, tempo.Minute), "an hour"},
		{tempo.DurationOf(21, tempo.Hour), "21 hours"},
		{tempo.DurationOf(22, tempo.Hour), "a day"},
		{tempo.DurationOf(25, tempo.Day), "25 days"},
		{tempo.DurationOf(26, tempo.Day), "a month"},
		{tempo.DurationOf(10, tempo.Month), "10 months"},
		{tempo.DurationOf(11, tempo.Month), "a year"},
		{tempo.DurationOf(18, tempo.Month), "2 years"},
		{tempo.DurationOf(-3, tempo.Year), "3 years"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, e.Humanize(tt.d, false, "en"))
		})
	}

	t.Run("suffix", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "in a minute", e.Humanize(tempo.DurationOf(45, tempo.Second), true, ""))
		require.Equal(t, "a minute ago", e.Humanize(tempo.DurationOf(-45, tempo.Second), true, ""))
		require.Equal(t, "a few seconds ago", e.Humanize(tempo.Duration{}, true, ""))
	})

	t.Run("locales", func(t *testing.T) {
		t.Parallel()

		threeDays := tempo.DurationOf(3, tempo.Day)
		require.Equal(t, "dans 3 jours", e.Humanize(threeDays, true, "fr"))
		require.Equal(t, "il y a 3 jours", e.Humanize(threeDays.Negate(), true, "fr"))
		require.Equal(t, "3 Tage", e.Humanize(threeDays, false, "de"))
		require.Equal(t, "vor 3 Tagen", e.Humanize(threeDays.Negate(), true, "de"))
		require.Equal(t, "2 часа", e.Humanize(tempo.DurationOf(2, tempo.Hour), false, "ru"))
		require.Equal(t, "5 часов", e.Humanize(tempo.DurationOf(5, tempo.Hour), false, "ru"))
		require.Equal(t, "21 час", e.Humanize(tempo.DurationOf(21, tempo.Hour), false, "ru"))
		require.Equal(t, "5 часов назад", e.Humanize(tempo.DurationOf(-5, tempo.Hour), true, "ru"))
	})

	t.Run("thresholds", func(t *testing.T) {
		t.Parallel()

		weeks, ok := tempo.DefaultThresholds.With("d", 7)
		require.True(t, ok)
		weeks, ok = weeks.With("w", 4)
		require.True(t, ok)

		en := e.Locale("en")
		require.Equal(t, "a week", tempo.DurationOf(10, tempo.Day).Humanize(en, false, weeks))
		require.Equal(t, "3 weeks", tempo.DurationOf(20, tempo.Day).Humanize(en, false, weeks))
		require.Equal(t, "a month", tempo.DurationOf(30, tempo.Day).Humanize(en, false, weeks))

		seconds, ok := tempo.DefaultThresholds.With("s", 10)
		require.True(t, ok)
		require.Equal(t, 9, seconds.FewSeconds)
		require.Equal(t, "a few seconds", tempo.DurationOf(9, tempo.Second).Humanize(en, false, seconds))
		require.Equal(t, "a minute", tempo.DurationOf(10, tempo.Second).Humanize(en, false, seconds))

		few, _ := tempo.DefaultThresholds.With("ss", 5)
		require.Equal(t, "20 seconds", tempo.DurationOf(20, tempo.Second).Humanize(en, false, few))

		_, ok = tempo.DefaultThresholds.With("x", 1)
		require.False(t, ok)
	})

	t.Run("engine thresholds", func(t *testing.T) {
		t.Parallel()

		se := newEngine(t, tempo.WithThreshold("ss", 5), tempo.WithThreshold("bogus", 1))
		require.Equal(t, 5, se.Thresholds().FewSeconds)
		require.Equal(t, tempo.DefaultThresholds.Minutes, se.Thresholds().Minutes)
		require.Equal(t, "20 seconds", se.Humanize(tempo.DurationOf(20, tempo.Second), false, ""))
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "Invalid date", e.Humanize(tempo.DurationOf(1, "fortnight"), false, ""))
	})

	t.Run("nil locale", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "a minute", tempo.DurationOf(1, tempo.Minute).Humanize(nil, false))
	})
}

func TestParseUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want tempo.Unit
	}{
		{"M", tempo.Month},
		{"m", tempo.Minute},
		{"ms", tempo.Millisecond},
		{"W", tempo.ISOWeek},
		{"days", tempo.Day},
		{"Hours", tempo.Hour},
		{"isoWeek", tempo.ISOWeek},
		{"DDD", tempo.DayOfYear},
		{" year ", tempo.Year},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := tempo.ParseUnit(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := tempo.ParseUnit("fortnight")
	require.ErrorIs(t, err, tempo.ErrInvalidUnit)
}
