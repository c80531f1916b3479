package tempo_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tempo"
	"github.com/dmitrymomot/tempo/pkg/locale"
	"github.com/dmitrymomot/tempo/pkg/logger"
	"github.com/dmitrymomot/tempo/pkg/parse"
)

// fixedNow is Friday, 2024-03-15 14:05:09.042 UTC.
var fixedNow = time.Date(2024, time.March, 15, 14, 5, 9, 42_000_000, time.UTC)

func newEngine(t *testing.T, opts ...tempo.Option) *tempo.Engine {
	t.Helper()
	base := []tempo.Option{
		tempo.WithHost(time.UTC),
		tempo.WithClock(func() time.Time { return fixedNow }),
	}
	e, err := tempo.New(append(base, opts...)...)
	require.NoError(t, err)
	return e
}

func utc(t *testing.T, e *tempo.Engine, text string) tempo.Instant {
	t.Helper()
	i, err := e.Parse(text, tempo.ParseUTC(), tempo.ParseStrict())
	require.NoError(t, err)
	return i
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("unknown default locale", func(t *testing.T) {
		t.Parallel()

		_, err := tempo.New(tempo.WithLocale("xx-yy"))
		require.ErrorIs(t, err, locale.ErrUnknownLocale)
	})

	t.Run("default locale applies to new instants", func(t *testing.T) {
		t.Parallel()

		e := newEngine(t, tempo.WithLocale("FR"))
		require.Equal(t, "fr", e.Now().Locale().Tag())
		require.Equal(t, "vendredi 15 mars 2024 14:05", e.Now().Format("LLLL"))
	})

	t.Run("now uses the clock", func(t *testing.T) {
		t.Parallel()

		e := newEngine(t)
		require.Equal(t, fixedNow.UnixMilli(), e.Now().UnixMilli())
		require.Equal(t, "UTC", e.Now().ZoneName())
	})
}

func TestEngine_Locale(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	require.Equal(t, "fr", e.Locale("fr-CA", "fr").Tag())
	require.Equal(t, "en-gb", e.Locale("en_GB").Tag())
	require.Equal(t, "de", e.Locale("xx", "de-AT").Tag())
	require.Equal(t, locale.BaseTag, e.Locale().Tag())
	require.Equal(t, "15. März 2024", e.Format(e.FromTime(fixedNow), "LL", "de"))
	require.Equal(t, "2024-03-15T14:05:09Z", e.Format(e.FromTime(fixedNow), "", ""))
}

func TestEngine_FromTime(t *testing.T) {
	t.Parallel()

	e := newEngine(t)

	t.Run("utc", func(t *testing.T) {
		t.Parallel()

		i := e.FromTime(fixedNow)
		require.True(t, i.IsUTC())
		require.Equal(t, fixedNow.UnixMilli(), i.UnixMilli())
	})

	t.Run("named location", func(t *testing.T) {
		t.Parallel()

		loc := time.FixedZone("America/New_York", -4*3600)
		i := e.FromTime(fixedNow.In(loc))
		require.NotNil(t, i.Zone())
		require.Equal(t, "America/New_York", i.ZoneName())
		require.Equal(t, -240, i.UTCOffset())
		require.Equal(t, "EDT", i.ZoneAbbr())
	})

	t.Run("fixed offset", func(t *testing.T) {
		t.Parallel()

		i := e.FromTime(fixedNow.In(time.FixedZone("", 90*60)))
		require.Nil(t, i.Zone())
		require.Empty(t, i.ZoneName())
		require.Equal(t, 90, i.UTCOffset())
		require.Equal(t, 15, i.Hour())
		require.Equal(t, 35, i.Minute())
	})
}

func TestEngine_Parse(t *testing.T) {
	t.Parallel()

	e := newEngine(t)

	t.Run("iso in utc", func(t *testing.T) {
		t.Parallel()

		i, err := e.Parse("2024-02-29T10:00:00Z")
		require.NoError(t, err)
		require.True(t, i.Valid())
		require.Equal(t, "2024-02-29T10:00:00.000Z", i.ISOString())
	})

	t.Run("invalid date", func(t *testing.T) {
		t.Parallel()

		i, err := e.Parse("2023-02-29T10:00:00Z", tempo.ParseStrict())
		require.ErrorIs(t, err, tempo.ErrInvalidInput)
		require.False(t, i.Valid())
		require.ErrorIs(t, i.Err(), tempo.ErrInvalidInput)

		var perr *parse.Error
		require.ErrorAs(t, i.Err(), &perr)
		require.Equal(t, parse.Day, perr.Field)

		require.Equal(t, "Invalid date", i.Format("YYYY"))
		require.Equal(t, "Invalid date", i.String())
		require.Empty(t, i.ISOString())
	})

	t.Run("localized format", func(t *testing.T) {
		t.Parallel()

		i, err := e.ParseFormat("15 mars 2024", "D MMMM YYYY", tempo.ParseLocale("fr"), tempo.ParseUTC())
		require.NoError(t, err)
		require.Equal(t, "2024-03-15T00:00:00.000Z", i.ISOString())
		require.Equal(t, "fr", i.Locale().Tag())
	})

	t.Run("wall clock in named zone", func(t *testing.T) {
		t.Parallel()

		i, err := e.ParseFormat("2024-07-04 09:00", "YYYY-MM-DD HH:mm", tempo.ParseIn("America/New_York"))
		require.NoError(t, err)
		require.Equal(t, -240, i.UTCOffset())
		require.Equal(t, 9, i.Hour())
		require.Equal(t, "2024-07-04T13:00:00.000Z", i.ISOString())
	})

	t.Run("wall clock in a gap moves forward", func(t *testing.T) {
		t.Parallel()

		i, err := e.ParseFormat("1970-04-26 02:30", "YYYY-MM-DD HH:mm", tempo.ParseIn("America/New_York"))
		require.NoError(t, err)
		require.Equal(t, "03:30 EDT", i.Format("HH:mm z"))
		require.Equal(t, "1970-04-26T07:30:00.000Z", i.ISOString())

		i, err = e.ParseFormat("2024-03-10 02:30", "YYYY-MM-DD HH:mm", tempo.ParseIn("America/New_York"))
		require.NoError(t, err)
		require.Equal(t, "03:30 EDT", i.Format("HH:mm z"))
	})

	t.Run("offset kept on request", func(t *testing.T) {
		t.Parallel()

		kept, err := e.Parse("2024-03-15T14:05:09+05:30", tempo.ParseZone())
		require.NoError(t, err)
		require.Equal(t, 330, kept.UTCOffset())
		require.Equal(t, 14, kept.Hour())

		host, err := e.Parse("2024-03-15T14:05:09+05:30")
		require.NoError(t, err)
		require.Equal(t, 0, host.UTCOffset())
		require.Equal(t, 8, host.Hour())
		require.Equal(t, 35, host.Minute())
		require.Equal(t, kept.UnixMilli(), host.UnixMilli())
	})

	t.Run("end of day midnight", func(t *testing.T) {
		t.Parallel()

		i := utc(t, e, "2024-03-15T24:00")
		require.Equal(t, "2024-03-16T00:00:00.000Z", i.ISOString())
	})

	t.Run("fields", func(t *testing.T) {
		t.Parallel()

		i, err := e.FromFields(parse.Fields{parse.Year: 2024, parse.Month: 1, parse.Day: 29}, tempo.ParseUTC())
		require.NoError(t, err)
		require.Equal(t, "2024-02-29T00:00:00.000Z", i.ISOString())

		_, err = e.FromFields(parse.Fields{parse.Year: 2023, parse.Month: 1, parse.Day: 29})
		require.ErrorIs(t, err, tempo.ErrInvalidInput)
	})

	t.Run("first valid format wins", func(t *testing.T) {
		t.Parallel()

		i, err := e.ParseFormats("2024-03-15", []string{"MM-DD-YYYY", "YYYY-MM-DD"}, tempo.ParseUTC())
		require.NoError(t, err)
		require.Equal(t, "2024-03-15T00:00:00.000Z", i.ISOString())
	})

	t.Run("unknown zone parses in local time", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		le := newEngine(t, tempo.WithLogger(logger.New(logger.WithWriter(&buf))))
		i, err := le.ParseFormat("2024-03-15 10:00", "YYYY-MM-DD HH:mm", tempo.ParseIn("Mars/Olympus"))
		require.NoError(t, err)
		require.Equal(t, "2024-03-15T10:00:00.000Z", i.ISOString())
		require.Contains(t, buf.String(), "Mars/Olympus")
	})
}

func TestEngine_DateRoundTrip(t *testing.T) {
	t.Parallel()

	e := newEngine(t)
	for _, year := range []int{-5, 0, 1600, 1969, 1970, 1999, 2000, 2023, 2024, 2100, 9999, 12345} {
		for month := range 12 {
			for _, day := range []int{1, 15, 28, 29, 30, 31} {
				i, err := e.FromFields(parse.Fields{parse.Year: year, parse.Month: month, parse.Day: day}, tempo.ParseUTC())
				if err != nil {
					continue
				}
				text := i.Format("YYYY-MM-DD")
				back, err := e.ParseFormat(text, "YYYY-MM-DD", tempo.ParseUTC(), tempo.ParseStrict())
				require.NoError(t, err, text)
				require.Equal(t, i.UnixMilli(), back.UnixMilli(), text)
			}
		}
	}
}

func TestEngine_Guess(t *testing.T) {
	t.Parallel()

	e := newEngine(t, tempo.WithHost(time.FixedZone("Asia/Tokyo", 9*3600)))
	z, ok := e.Guess()
	require.True(t, ok)
	require.Equal(t, "Asia/Tokyo", z.Name)
}

func TestInstant_JSON(t *testing.T) {
	t.Parallel()

	e := newEngine(t)

	type event struct {
		At tempo.Instant `json:"at"`
	}

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(event{At: e.FromTime(fixedNow)})
		require.NoError(t, err)
		require.JSONEq(t, `{"at":"2024-03-15T14:05:09.042Z"}`, string(b))

		var got event
		require.NoError(t, json.Unmarshal(b, &got))
		require.Equal(t, fixedNow.UnixMilli(), got.At.UnixMilli())
		require.True(t, got.At.IsUTC())
	})

	t.Run("keeps offset", func(t *testing.T) {
		t.Parallel()

		var got event
		require.NoError(t, json.Unmarshal([]byte(`{"at":"2024-03-15T19:35:09.042+05:30"}`), &got))
		require.Equal(t, 330, got.At.UTCOffset())
		require.Equal(t, fixedNow.UnixMilli(), got.At.UnixMilli())
	})

	t.Run("invalid encodes as null", func(t *testing.T) {
		t.Parallel()

		bad, err := e.Parse("nope", tempo.ParseStrict())
		require.Error(t, err)

		b, err := json.Marshal(event{At: bad})
		require.NoError(t, err)
		require.JSONEq(t, `{"at":null}`, string(b))

		_, err = bad.MarshalText()
		require.Error(t, err)
	})

	t.Run("null leaves value", func(t *testing.T) {
		t.Parallel()

		got := event{At: e.FromTime(fixedNow)}
		require.NoError(t, json.Unmarshal([]byte(`{"at":null}`), &got))
		require.Equal(t, fixedNow.UnixMilli(), got.At.UnixMilli())
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		var got event
		err := json.Unmarshal([]byte(`{"at":"next tuesday"}`), &got)
		require.ErrorIs(t, err, tempo.ErrInvalidInput)
	})
}
