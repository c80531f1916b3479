package parse_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tempo/pkg/locale"
	"github.com/dmitrymomot/tempo/pkg/parse"
)

var now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func options(t *testing.T, tag string, strict bool) parse.Options {
	t.Helper()
	loc, ok := locale.NewRegistry().Get(tag)
	require.True(t, ok, tag)
	return parse.Options{Locale: loc, Strict: strict, Now: now}
}

type civil struct {
	year, month, day, hour, minute, second, ms int
}

func fieldsOf(r parse.Result) civil {
	return civil{r.Year, r.Month, r.Day, r.Hour, r.Minute, r.Second, r.Millisecond}
}

func requireField(t *testing.T, err error, field parse.Field) {
	t.Helper()
	require.ErrorIs(t, err, parse.ErrInvalidInput)
	var perr *parse.Error
	require.True(t, errors.As(err, &perr))
	require.Equal(t, field, perr.Field, perr.Error())
}

func TestParse_ISO8601(t *testing.T) {
	t.Parallel()

	p := parse.New()
	opts := options(t, "en", true)

	tests := []struct {
		in     string
		want   civil
		offset int
		zoned  bool
	}{
		{"2024-03-15", civil{2024, 2, 15, 0, 0, 0, 0}, 0, false},
		{"2024-02-29T10:00:00Z", civil{2024, 1, 29, 10, 0, 0, 0}, 0, true},
		{"2024-03-15T14:05:09.042+05:30", civil{2024, 2, 15, 14, 5, 9, 42}, 330, true},
		{"2024-03-15 14:05", civil{2024, 2, 15, 14, 5, 0, 0}, 0, false},
		{"20240315T1405", civil{2024, 2, 15, 14, 5, 0, 0}, 0, false},
		{"2024-W11-5", civil{2024, 2, 15, 0, 0, 0, 0}, 0, false},
		{"2024W115", civil{2024, 2, 15, 0, 0, 0, 0}, 0, false},
		{"2024-075", civil{2024, 2, 15, 0, 0, 0, 0}, 0, false},
		{"2024-03", civil{2024, 2, 1, 0, 0, 0, 0}, 0, false},
		{"+002024-03-15", civil{2024, 2, 15, 0, 0, 0, 0}, 0, false},
		{"2024-03-15T14:05:09,5-0800", civil{2024, 2, 15, 14, 5, 9, 500}, -480, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			r, err := p.Parse(parse.Text(tt.in), opts)
			require.NoError(t, err)
			require.Equal(t, parse.StrategyISO8601, r.Strategy)
			require.Equal(t, tt.want, fieldsOf(r))
			require.Equal(t, tt.zoned, r.HasOffset)
			require.Equal(t, tt.offset, r.Offset)
		})
	}
}

func TestParse_ISO8601Invalid(t *testing.T) {
	t.Parallel()

	p := parse.New()

	t.Run("february 29th outside a leap year", func(t *testing.T) {
		t.Parallel()
		_, err := p.Parse(parse.Text("2023-02-29T10:00:00Z"), options(t, "en", true))
		requireField(t, err, parse.Day)
	})

	t.Run("month overflow", func(t *testing.T) {
		t.Parallel()
		_, err := p.Parse(parse.Text("2024-13-01"), options(t, "en", false))
		requireField(t, err, parse.Month)
	})

	t.Run("time after a month-only date", func(t *testing.T) {
		t.Parallel()
		_, err := p.Parse(parse.Text("2024-03T10:00"), options(t, "en", true))
		require.ErrorIs(t, err, parse.ErrInvalidInput)
	})

	t.Run("week out of range", func(t *testing.T) {
		t.Parallel()
		_, err := p.Parse(parse.Text("2024-W54-1"), options(t, "en", true))
		requireField(t, err, parse.Week)
	})
}

func TestParse_Midnight(t *testing.T) {
	t.Parallel()

	r, err := parse.New().Parse(parse.Text("2024-03-15T24:00:00.000"), options(t, "en", true))
	require.NoError(t, err)
	require.True(t, r.NextDay)
	require.Equal(t, civil{2024, 2, 15, 0, 0, 0, 0}, fieldsOf(r))

	_, err = parse.New().Parse(parse.Text("2024-03-15T24:00:01"), options(t, "en", true))
	requireField(t, err, parse.Hour)
}

func TestParse_RFC2822(t *testing.T) {
	t.Parallel()

	p := parse.New()
	opts := options(t, "en", true)

	t.Run("numeric offset", func(t *testing.T) {
		t.Parallel()
		r, err := p.Parse(parse.Text("Fri, 15 Mar 2024 14:05:09 -0400"), opts)
		require.NoError(t, err)
		require.Equal(t, parse.StrategyRFC2822, r.Strategy)
		require.Equal(t, civil{2024, 2, 15, 14, 5, 9, 0}, fieldsOf(r))
		require.Equal(t, -240, r.Offset)
	})

	t.Run("obsolete zone and short year", func(t *testing.T) {
		t.Parallel()
		r, err := p.Parse(parse.Text("15 Mar 24 14:05 EST"), opts)
		require.NoError(t, err)
		require.Equal(t, 2024, r.Year)
		require.Equal(t, -300, r.Offset)
	})

	t.Run("comments are ignored", func(t *testing.T) {
		t.Parallel()
		r, err := p.Parse(parse.Text("Fri, 15 Mar 2024 (spring)  14:05:09 +0530"), opts)
		require.NoError(t, err)
		require.Equal(t, 330, r.Offset)
	})

	t.Run("weekday mismatch is invalid", func(t *testing.T) {
		t.Parallel()
		_, err := p.Parse(parse.Text("Thu, 15 Mar 2024 14:05:09 GMT"), opts)
		requireField(t, err, parse.Weekday)
	})

	t.Run("explicit format name", func(t *testing.T) {
		t.Parallel()
		r, err := p.Parse(parse.Layout{Text: "Fri, 15 Mar 2024 14:05:09 Z", Format: parse.RFC2822}, opts)
		require.NoError(t, err)
		require.True(t, r.HasOffset)
		require.Zero(t, r.Offset)
	})
}

func TestParse_Layout(t *testing.T) {
	t.Parallel()

	p := parse.New()

	tests := []struct {
		name   string
		tag    string
		text   string
		format string
		want   civil
	}{
		{"ordinal day and meridiem", "en", "15th March 2024 2:05 pm", "Do MMMM YYYY h:mm a", civil{2024, 2, 15, 14, 5, 0, 0}},
		{"short month", "en", "Mar 15, 2024", "MMM D, YYYY", civil{2024, 2, 15, 0, 0, 0, 0}},
		{"twelve am", "en", "12:30 AM", "hh:mm A", civil{2024, 2, 15, 0, 30, 0, 0}},
		{"long date macro", "en", "03/15/2024", "L", civil{2024, 2, 15, 0, 0, 0, 0}},
		{"german month", "de", "15. März 2024", "D. MMMM YYYY", civil{2024, 2, 15, 0, 0, 0, 0}},
		{"russian genitive month", "ru", "15 марта 2024", "D MMMM YYYY", civil{2024, 2, 15, 0, 0, 0, 0}},
		{"quarter", "en", "2024 Q3", "YYYY [Q]Q", civil{2024, 6, 1, 0, 0, 0, 0}},
		{"day of year", "en", "2024 075", "YYYY DDDD", civil{2024, 2, 15, 0, 0, 0, 0}},
		{"locale week", "en", "2024 11 5", "gggg w d", civil{2024, 2, 15, 0, 0, 0, 0}},
		{"time only defaults to today", "en", "10:30", "HH:mm", civil{2024, 2, 15, 10, 30, 0, 0}},
		{"year only", "en", "2019", "YYYY", civil{2019, 0, 1, 0, 0, 0, 0}},
		{"two digit year", "en", "15/03/69", "DD/MM/YY", civil{1969, 2, 15, 0, 0, 0, 0}},
		{"compact time", "en", "1405", "Hmm", civil{2024, 2, 15, 14, 5, 0, 0}},
		{"japanese era", "ja", "令和元年5月1日", "NNNNyoM月D日", civil{2019, 4, 1, 0, 0, 0, 0}},
		{"english era", "en", "44 BC", "y N", civil{-43, 0, 1, 0, 0, 0, 0}},
		{"fractional seconds", "en", "09.5", "ss.S", civil{2024, 2, 15, 0, 0, 9, 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := p.Parse(parse.Layout{Text: tt.text, Format: tt.format}, options(t, tt.tag, false))
			require.NoError(t, err)
			require.Equal(t, parse.StrategyFormat, r.Strategy)
			require.Equal(t, tt.want, fieldsOf(r))
		})
	}
}

func TestParse_LayoutStrictness(t *testing.T) {
	t.Parallel()

	p := parse.New()

	t.Run("leftover input is recorded", func(t *testing.T) {
		t.Parallel()
		r, err := p.Parse(parse.Layout{Text: "2024-03-15 trailing", Format: "YYYY-MM-DD"}, options(t, "en", false))
		require.NoError(t, err)
		require.Equal(t, 9, r.CharsLeftOver)
		require.Equal(t, []string{" trailing"}, r.UnusedInput)

		_, err = p.Parse(parse.Layout{Text: "2024-03-15 trailing", Format: "YYYY-MM-DD"}, options(t, "en", true))
		require.ErrorIs(t, err, parse.ErrInvalidInput)
	})

	t.Run("unmatched tokens", func(t *testing.T) {
		t.Parallel()
		r, err := p.Parse(parse.Layout{Text: "2024-03", Format: "YYYY-MM-DD"}, options(t, "en", false))
		require.NoError(t, err)
		require.Equal(t, []string{"DD"}, r.UnusedTokens)
		require.Equal(t, 10, r.Score())
	})

	t.Run("strict widths", func(t *testing.T) {
		t.Parallel()
		_, err := p.Parse(parse.Layout{Text: "2024-3-15", Format: "YYYY-MM-DD"}, options(t, "en", true))
		require.ErrorIs(t, err, parse.ErrInvalidInput)

		_, err = p.Parse(parse.Layout{Text: "2024-3-15", Format: "YYYY-M-D"}, options(t, "en", true))
		require.NoError(t, err)
	})

	t.Run("twelve hour clock overflow", func(t *testing.T) {
		t.Parallel()
		_, err := p.Parse(parse.Layout{Text: "13:00", Format: "hh:mm"}, options(t, "en", true))
		requireField(t, err, parse.Hour)

		r, err := p.Parse(parse.Layout{Text: "13:00", Format: "hh:mm"}, options(t, "en", false))
		require.NoError(t, err)
		require.Equal(t, 13, r.Hour)
	})

	t.Run("unknown month name", func(t *testing.T) {
		t.Parallel()
		_, err := p.Parse(parse.Layout{Text: "15 Mar 2024", Format: "D MMMM YYYY"}, options(t, "en", true))
		require.ErrorIs(t, err, parse.ErrInvalidInput)
	})

	t.Run("weekday must match the date", func(t *testing.T) {
		t.Parallel()
		_, err := p.Parse(parse.Layout{Text: "Thursday, March 15 2024", Format: "dddd, MMMM D YYYY"}, options(t, "en", false))
		requireField(t, err, parse.Weekday)

		_, err = p.Parse(parse.Layout{Text: "Friday, March 15 2024", Format: "dddd, MMMM D YYYY"}, options(t, "en", true))
		require.NoError(t, err)
	})

	t.Run("signed years", func(t *testing.T) {
		t.Parallel()
		for text, year := range map[string]int{
			"-0005-02-01":  -5,
			"+12345-02-01": 12345,
			"-12345-02-01": -12345,
			"0042-02-01":   42,
		} {
			r, err := p.Parse(parse.Layout{Text: text, Format: "YYYY-MM-DD"}, options(t, "en", true))
			require.NoError(t, err, text)
			require.Equal(t, civil{year: year, month: 1, day: 1}, fieldsOf(r), text)
		}

		_, err := p.Parse(parse.Layout{Text: "12345-02-01", Format: "YYYY-MM-DD"}, options(t, "en", true))
		require.ErrorIs(t, err, parse.ErrInvalidInput)
	})

	t.Run("nothing matched", func(t *testing.T) {
		t.Parallel()
		_, err := p.Parse(parse.Layout{Text: "hello", Format: "YYYY"}, options(t, "en", false))
		require.ErrorIs(t, err, parse.ErrInvalidInput)
	})
}

func TestParse_Timestamps(t *testing.T) {
	t.Parallel()

	p := parse.New()
	opts := options(t, "en", false)

	r, err := p.Parse(parse.Layout{Text: "1710525909.042", Format: "X"}, opts)
	require.NoError(t, err)
	require.True(t, r.HasUnix)
	require.Equal(t, int64(1710525909042), r.UnixMilli)

	r, err = p.Parse(parse.Layout{Text: "-1000", Format: "x"}, opts)
	require.NoError(t, err)
	require.Equal(t, int64(-1000), r.UnixMilli)

	r, err = p.Parse(parse.Text("/Date(1710525909042)/"), opts)
	require.NoError(t, err)
	require.Equal(t, parse.StrategyASPNet, r.Strategy)
	require.Equal(t, int64(1710525909042), r.UnixMilli)
}

func TestParse_Layouts(t *testing.T) {
	t.Parallel()

	p := parse.New()

	t.Run("first valid candidate wins", func(t *testing.T) {
		t.Parallel()
		r, err := p.Parse(parse.Layouts{Text: "2024-03-15", Formats: []string{"MM-DD-YYYY", "YYYY-MM-DD"}}, options(t, "en", false))
		require.NoError(t, err)
		require.Equal(t, "YYYY-MM-DD", r.Format)
		require.Equal(t, civil{2024, 2, 15, 0, 0, 0, 0}, fieldsOf(r))
	})

	t.Run("validity beats score", func(t *testing.T) {
		t.Parallel()
		r, err := p.Parse(parse.Layouts{Text: "2024-03-15", Formats: []string{"YYYY", "YYYY-MM-DD"}}, options(t, "en", false))
		require.NoError(t, err)
		require.Equal(t, "YYYY", r.Format)
		require.Equal(t, 6, r.CharsLeftOver)

		r, err = p.Parse(parse.Layouts{Text: "2024-03-15", Formats: []string{"YYYY", "YYYY-MM-DD"}}, options(t, "en", true))
		require.NoError(t, err)
		require.Equal(t, "YYYY-MM-DD", r.Format)
	})

	t.Run("ties go to the earliest candidate", func(t *testing.T) {
		t.Parallel()
		r, err := p.Parse(parse.Layouts{Text: "2024-13-45", Formats: []string{"YYYY-MM-DD", "YYYY-DD-MM"}}, options(t, "en", false))
		requireField(t, err, parse.Month)
		require.Equal(t, "YYYY-MM-DD", r.Format)
	})

	t.Run("special format names", func(t *testing.T) {
		t.Parallel()
		r, err := p.Parse(parse.Layouts{Text: "2024-03-15T10:00:00Z", Formats: []string{"L", parse.ISO8601}}, options(t, "en", true))
		require.NoError(t, err)
		require.Equal(t, parse.StrategyISO8601, r.Strategy)
	})

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()
		_, err := p.Parse(parse.Layouts{Text: "2024"}, options(t, "en", false))
		require.ErrorIs(t, err, parse.ErrNoFormats)
		require.ErrorIs(t, err, parse.ErrInvalidInput)
	})
}

func TestParse_Fields(t *testing.T) {
	t.Parallel()

	p := parse.New()
	opts := options(t, "en", false)

	r, err := p.Parse(parse.Fields{parse.Year: 2024, parse.Month: 1, parse.Day: 29}, opts)
	require.NoError(t, err)
	require.Equal(t, civil{2024, 1, 29, 0, 0, 0, 0}, fieldsOf(r))

	r, err = p.Parse(parse.Fields{parse.Hour: 10}, opts)
	require.NoError(t, err)
	require.Equal(t, civil{2024, 2, 15, 10, 0, 0, 0}, fieldsOf(r))

	_, err = p.Parse(parse.Fields{parse.Year: 2023, parse.Month: 1, parse.Day: 29}, opts)
	requireField(t, err, parse.Day)

	_, err = p.Parse(parse.Fields{parse.Week: 3}, opts)
	require.ErrorIs(t, err, parse.ErrInvalidInput)
}

func TestParse_FreeForm(t *testing.T) {
	t.Parallel()

	p := parse.New()
	opts := options(t, "en", false)

	tests := []struct {
		in     string
		want   civil
		offset int
		zoned  bool
	}{
		{"March 15, 2024 2:05 PM EST", civil{2024, 2, 15, 14, 5, 0, 0}, -300, true},
		{"Fri Mar 15 2024 14:05:09 GMT-0400 (Eastern Daylight Time)", civil{2024, 2, 15, 14, 5, 9, 0}, -240, true},
		{"Friday, 15th March 2024 at 9:30 am", civil{2024, 2, 15, 9, 30, 0, 0}, 0, false},
		{"3/15/2024", civil{2024, 2, 15, 0, 0, 0, 0}, 0, false},
		{"2024/03/15 14:05:09 UTC", civil{2024, 2, 15, 14, 5, 9, 0}, 0, true},
		{"15 March 2024 10:00 JST", civil{2024, 2, 15, 10, 0, 0, 0}, 540, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			r, err := p.Parse(parse.Text(tt.in), opts)
			require.NoError(t, err)
			require.Equal(t, parse.StrategyFreeForm, r.Strategy)
			require.Equal(t, tt.want, fieldsOf(r))
			require.Equal(t, tt.zoned, r.HasOffset)
			require.Equal(t, tt.offset, r.Offset)
		})
	}

	t.Run("strict mode disables the fallback", func(t *testing.T) {
		t.Parallel()
		_, err := p.Parse(parse.Text("March 15, 2024"), options(t, "en", true))
		require.ErrorIs(t, err, parse.ErrInvalidInput)
	})

	t.Run("unrecognised text", func(t *testing.T) {
		t.Parallel()
		_, err := p.Parse(parse.Text("next tuesday-ish"), opts)
		require.ErrorIs(t, err, parse.ErrInvalidInput)
	})
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := parse.New().Parse(parse.Text("2024-03-15"), parse.Options{})
	require.ErrorIs(t, err, parse.ErrNoLocale)

	e := &parse.Error{Input: "x", Format: "YYYY", Field: parse.Month, Reason: "month out of range"}
	require.Equal(t, `parse: invalid input "x" for format "YYYY": month out of range (month)`, e.Error())
	require.ErrorIs(t, e, parse.ErrInvalidInput)
}

func TestISOFormat(t *testing.T) {
	t.Parallel()

	f, ok := parse.ISOFormat("2024-03-15T14:05:09.042Z")
	require.True(t, ok)
	require.Equal(t, "YYYY-MM-DDTHH:mm:ss.SSSSZ", f)

	f, ok = parse.ISOFormat("2024-W11 10:00")
	require.False(t, ok, f)
}
