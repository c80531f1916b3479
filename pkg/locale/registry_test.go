package locale_test

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tempo/pkg/locale"
	"github.com/dmitrymomot/tempo/pkg/logger"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	t.Run("registers builtins with english current", func(t *testing.T) {
		t.Parallel()
		reg := locale.NewRegistry()
		require.Equal(t, []string{"de", "en", "en-gb", "es", "fr", "ja", "ru"}, reg.Tags())
		require.Equal(t, "en", reg.Current().Tag())
	})

	t.Run("without builtins keeps the base locale", func(t *testing.T) {
		t.Parallel()
		reg := locale.NewRegistry(locale.WithoutBuiltins())
		require.Equal(t, []string{"en"}, reg.Tags())
	})
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	reg := locale.NewRegistry()

	tests := []struct {
		name string
		tags []string
		want string
	}{
		{"exact", []string{"de"}, "de"},
		{"region falls back to language", []string{"fr-CA", "fr"}, "fr"},
		{"underscore and case", []string{"EN_gb"}, "en-gb"},
		{"single candidate truncates", []string{"en-AU"}, "en"},
		{"next candidate with shared prefix wins", []string{"en-AU", "en-GB"}, "en-gb"},
		{"first registered candidate", []string{"xx", "ja-JP"}, "ja"},
		{"script subtags", []string{"ru-Cyrl-RU"}, "ru"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, reg.Resolve(tt.tags...).Tag())
		})
	}

	t.Run("unknown falls back to current and warns", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		reg := locale.NewRegistry(locale.WithLogger(logger.New(logger.WithWriter(&buf))))
		require.Equal(t, "en", reg.Resolve("zh-hant-tw").Tag())
		require.Contains(t, buf.String(), "unknown locale")
		require.Contains(t, buf.String(), "zh-hant-tw")
	})

	t.Run("no tags returns current silently", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "en", locale.NewRegistry().Resolve().Tag())
	})

	t.Run("accept language header", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "de", reg.ResolveAcceptLanguage("pl;q=0.9, de-AT;q=0.8, en;q=0.1").Tag())
	})
}

func TestRegistry_Define(t *testing.T) {
	t.Parallel()

	t.Run("merges onto the parent and becomes current", func(t *testing.T) {
		t.Parallel()

		reg := locale.NewRegistry()
		loc, err := reg.Define("en-pirate", &locale.Config{
			Parent:       "en",
			RelativeTime: map[string]locale.Phrase{"future": locale.Text("in %s, arr")},
		})
		require.NoError(t, err)
		require.Equal(t, "en-pirate", reg.Current().Tag())
		require.Equal(t, "en", loc.Parent())
		require.Equal(t, "in 2 days, arr", loc.PastFuture(true, "2 days"))
		require.Equal(t, "2 days ago", loc.PastFuture(false, "2 days"))
		require.Equal(t, "1st", loc.Ordinal(1, "D"))
	})

	t.Run("without parent inherits the base config", func(t *testing.T) {
		t.Parallel()

		reg := locale.NewRegistry()
		loc, err := reg.Define("x-min", &locale.Config{InvalidDate: "nope"})
		require.NoError(t, err)
		require.Equal(t, "January", loc.MonthName(0, locale.Long, ""))
		require.Equal(t, "nope", loc.InvalidDate())
	})

	t.Run("redefinition merges onto the existing locale", func(t *testing.T) {
		t.Parallel()

		reg := locale.NewRegistry()
		_, err := reg.Define("de", &locale.Config{InvalidDate: "kaputt"})
		require.NoError(t, err)

		de, ok := reg.Get("de")
		require.True(t, ok)
		require.Equal(t, "kaputt", de.InvalidDate())
		require.Equal(t, "Januar", de.MonthName(0, locale.Long, ""))
	})

	t.Run("queues children until the parent arrives", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		reg := locale.NewRegistry(locale.WithLogger(logger.New(logger.WithWriter(&buf))))

		_, err := reg.Define("tlh-x", &locale.Config{Parent: "tlh", InvalidDate: "child"})
		require.ErrorIs(t, err, locale.ErrParentNotLoaded)
		require.Contains(t, buf.String(), "parent not loaded")
		require.Equal(t, []string{"tlh-x"}, reg.Pending())
		_, ok := reg.Get("tlh-x")
		require.False(t, ok)

		_, err = reg.Define("tlh", &locale.Config{Ordinal: "%d-DIch"})
		require.NoError(t, err)
		require.Empty(t, reg.Pending())
		require.Equal(t, "tlh", reg.Current().Tag())

		child, ok := reg.Get("tlh-x")
		require.True(t, ok)
		require.Equal(t, "child", child.InvalidDate())
		require.Equal(t, "3-DIch", child.Ordinal(3, "D"))
	})

	t.Run("nil config removes the locale", func(t *testing.T) {
		t.Parallel()

		reg := locale.NewRegistry()
		_, err := reg.Use("fr")
		require.NoError(t, err)

		_, err = reg.Define("fr", nil)
		require.NoError(t, err)
		_, ok := reg.Get("fr")
		require.False(t, ok)
		require.Equal(t, "en", reg.Current().Tag())

		_, err = reg.Define("en", nil)
		require.ErrorIs(t, err, locale.ErrInvalidConfig)
	})

	t.Run("rejects malformed configs", func(t *testing.T) {
		t.Parallel()

		reg := locale.NewRegistry()
		_, err := reg.Define("bad", &locale.Config{Months: locale.Names("one", "two")})
		require.ErrorIs(t, err, locale.ErrInvalidConfig)

		_, err = reg.Define("bad", &locale.Config{Eras: []locale.Era{{Since: "yesterday", Name: "x"}}})
		require.ErrorIs(t, err, locale.ErrInvalidConfig)

		_, err = reg.Define("bad", &locale.Config{OrdinalParse: "("})
		require.ErrorIs(t, err, locale.ErrInvalidConfig)

		_, err = reg.Define(" ", &locale.Config{})
		require.ErrorIs(t, err, locale.ErrInvalidConfig)

		_, ok := reg.Get("bad")
		require.False(t, ok)
	})
}

func TestRegistry_Update(t *testing.T) {
	t.Parallel()

	t.Run("patches and restores", func(t *testing.T) {
		t.Parallel()

		reg := locale.NewRegistry()
		_, err := reg.Update("en", &locale.Config{InvalidDate: "Bad date"})
		require.NoError(t, err)
		_, err = reg.Update("en", &locale.Config{Calendar: map[string]string{"sameDay": "[Now] LT"}})
		require.NoError(t, err)

		en := reg.Current()
		require.Equal(t, "Bad date", en.InvalidDate())
		require.Equal(t, "[Now] LT", en.CalendarFormat("sameDay", 0))
		require.Equal(t, "[Tomorrow at] LT", en.CalendarFormat("nextDay", 0))

		restored, err := reg.Update("en", nil)
		require.NoError(t, err)
		require.Equal(t, "Invalid date", restored.InvalidDate())
		require.Equal(t, "[Today at] LT", restored.CalendarFormat("sameDay", 0))
	})

	t.Run("locale created by update is removed by unset", func(t *testing.T) {
		t.Parallel()

		reg := locale.NewRegistry()
		loc, err := reg.Update("x-new", &locale.Config{Parent: "fr", InvalidDate: "?"})
		require.NoError(t, err)
		require.Equal(t, "janvier", loc.MonthName(0, locale.Long, ""))

		loc, err = reg.Update("x-new", nil)
		require.NoError(t, err)
		require.Nil(t, loc)
		_, ok := reg.Get("x-new")
		require.False(t, ok)
	})

	t.Run("partial update keeps the parent", func(t *testing.T) {
		t.Parallel()

		reg := locale.NewRegistry()
		_, err := reg.Define("fr-ca", &locale.Config{Parent: "fr", LongDateFormat: map[string]string{"L": "YYYY-MM-DD"}})
		require.NoError(t, err)

		loc, err := reg.Update("fr-ca", &locale.Config{InvalidDate: "Date invalide"})
		require.NoError(t, err)
		require.Equal(t, "fr", loc.Parent())
		require.Equal(t, "Date invalide", loc.InvalidDate())

		loc, err = reg.Update("fr-ca", &locale.Config{InvalidDate: "?"})
		require.NoError(t, err)
		require.Equal(t, "fr", loc.Parent())
		require.Equal(t, "fr", loc.Config().Parent)
	})

	t.Run("unset keeps another current locale", func(t *testing.T) {
		t.Parallel()

		reg := locale.NewRegistry()
		_, err := reg.Update("de", &locale.Config{InvalidDate: "x"})
		require.NoError(t, err)
		_, err = reg.Use("ja")
		require.NoError(t, err)

		_, err = reg.Update("de", nil)
		require.NoError(t, err)
		require.Equal(t, "ja", reg.Current().Tag())
	})
}

func TestRegistry_Use(t *testing.T) {
	t.Parallel()

	reg := locale.NewRegistry()

	loc, err := reg.Use("es-MX")
	require.NoError(t, err)
	require.Equal(t, "es", loc.Tag())
	require.Equal(t, "es", reg.Current().Tag())

	_, err = reg.Use("tlh")
	require.ErrorIs(t, err, locale.ErrUnknownLocale)
	require.Equal(t, "es", reg.Current().Tag())
}

func TestRegistry_Concurrency(t *testing.T) {
	t.Parallel()

	reg := locale.NewRegistry()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := reg.Define(fmt.Sprintf("x-%d", i), &locale.Config{Parent: "fr"})
			require.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			for range 50 {
				require.Equal(t, "fr", reg.Resolve("fr-CA", "fr").Tag())
				_ = reg.Current().MonthName(0, locale.Long, "")
			}
		}()
	}
	wg.Wait()

	require.Len(t, reg.Tags(), 15)
}
