package tz

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/tempo/pkg/calendar"
)

// GuessOption configures Guess.
type GuessOption func(*guessConfig)

type guessConfig struct {
	host      *time.Location
	now       time.Time
	localtime string
	hints     bool
}

// WithHost sets the location whose behaviour is matched. Default: time.Local.
func WithHost(loc *time.Location) GuessOption {
	return func(c *guessConfig) {
		if loc != nil {
			c.host = loc
		}
	}
}

// WithNow sets the reference instant for the sampling window. Default: time.Now.
func WithNow(now time.Time) GuessOption {
	return func(c *guessConfig) {
		c.now = now
	}
}

// WithoutHints disables name hints from the host location, the TZ
// variable and /etc/localtime, leaving only offset sampling.
func WithoutHints() GuessOption {
	return func(c *guessConfig) {
		c.hints = false
	}
}

// Guess returns the zone that best matches the host's local time.
//
// It is a best-effort heuristic. A zone name reported by the host (the
// location name, the TZ environment variable or the /etc/localtime link)
// is used when it resolves. Otherwise the host offset is sampled on the
// first of every month over a four year window starting two years back,
// transitions between samples are located to the minute, and every zone
// is scored against the samples. The lowest offset error wins, then the
// fewest abbreviation mismatches, then the larger population, then the
// name that sorts last.
func (db *Database) Guess(opts ...GuessOption) (*Zone, bool) {
	cfg := guessConfig{
		host:      time.Local,
		now:       time.Now(),
		localtime: "/etc/localtime",
		hints:     true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.hints {
		for _, name := range hostZoneNames(cfg) {
			if z, ok := db.Zone(name); ok {
				db.logger.Debug("timezone guessed from host name", slog.String("zone", z.Name))
				return z, true
			}
		}
	}

	samples := sampleOffsets(cfg.host, cfg.now.In(cfg.host).Year()-2)

	var best *zoneScore
	for _, name := range db.ZoneNames() {
		z, ok := db.Zone(name)
		if !ok {
			continue
		}
		s := scoreZone(z, samples)
		if best == nil || s.less(best) {
			best = s
		}
	}
	if best == nil {
		return nil, false
	}

	db.logger.Debug("timezone guessed from offsets",
		slog.String("zone", best.zone.Name),
		slog.Int("offset_score", best.offset),
		slog.Int("abbr_score", best.abbr),
	)
	return best.zone, true
}

func hostZoneNames(cfg guessConfig) []string {
	var names []string
	if n := cfg.host.String(); n != "" && n != "Local" {
		names = append(names, n)
	}
	if cfg.host == time.Local {
		if env := strings.TrimPrefix(os.Getenv("TZ"), ":"); env != "" {
			names = append(names, env)
		}
		if target, err := os.Readlink(cfg.localtime); err == nil {
			if _, name, ok := strings.Cut(filepath.ToSlash(target), "zoneinfo/"); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

type offsetSample struct {
	abbr   string
	at     int64
	offset int
}

func sampleAt(host *time.Location, ms int64) offsetSample {
	abbr, secs := time.UnixMilli(ms).In(host).Zone()
	return offsetSample{at: ms, offset: secs / 60, abbr: upperOnly(abbr)}
}

func sampleOffsets(host *time.Location, startYear int) []offsetSample {
	monthStart := func(month int) int64 {
		y, m := calendar.NormalizeMonth(startYear, month)
		return time.Date(y, time.Month(m+1), 1, 0, 0, 0, 0, host).UnixMilli()
	}

	last := sampleAt(host, monthStart(0))
	out := []offsetSample{last}
	for i := 1; i < 48; i++ {
		next := sampleAt(host, monthStart(i))
		if next.offset != last.offset {
			change := findChange(host, last, next)
			out = append(out, change, sampleAt(host, change.at+calendar.MillisPerMinute))
		}
		last = next
	}
	for i := range 4 {
		out = append(out,
			sampleAt(host, time.Date(startYear+i, time.January, 1, 0, 0, 0, 0, host).UnixMilli()),
			sampleAt(host, time.Date(startYear+i, time.July, 1, 0, 0, 0, 0, host).UnixMilli()),
		)
	}
	return out
}

// findChange narrows (low, high) to the last minute before the offset changes.
func findChange(host *time.Location, low, high offsetSample) offsetSample {
	for {
		diff := (high.at - low.at) / (2 * calendar.MillisPerMinute) * calendar.MillisPerMinute
		if diff == 0 {
			return low
		}
		mid := sampleAt(host, low.at+diff)
		if mid.offset == low.offset {
			low = mid
		} else {
			high = mid
		}
	}
}

type zoneScore struct {
	zone   *Zone
	offset int
	abbr   int
}

func scoreZone(z *Zone, samples []offsetSample) *zoneScore {
	s := &zoneScore{zone: z}
	for _, sample := range samples {
		d := z.OffsetAt(sample.at) - sample.offset
		if d < 0 {
			d = -d
		}
		s.offset += d
		if upperOnly(z.AbbrAt(sample.at)) != sample.abbr {
			s.abbr++
		}
	}
	return s
}

func (s *zoneScore) less(o *zoneScore) bool {
	if s.offset != o.offset {
		return s.offset < o.offset
	}
	if s.abbr != o.abbr {
		return s.abbr < o.abbr
	}
	if s.zone.Population != o.zone.Population {
		return s.zone.Population > o.zone.Population
	}
	return s.zone.Name > o.zone.Name
}

func upperOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, s)
}

// ZonesWithOffset returns the names of zones whose offset at ms equals
// offset minutes, sorted.
func (db *Database) ZonesWithOffset(ms int64, offset int) []string {
	var out []string
	for _, name := range db.ZoneNames() {
		if z, ok := db.Zone(name); ok && z.OffsetAt(ms) == offset {
			out = append(out, z.Name)
		}
	}
	slices.Sort(out)
	return out
}
