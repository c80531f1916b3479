package tz

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/tempo/pkg/cache"
	"github.com/dmitrymomot/tempo/pkg/logger"
)

// Database maps zone names to packed zone records, resolves links, and
// unpacks records lazily on first access.
//
// All methods are safe for concurrent use. Loading is additive and
// idempotent.
type Database struct {
	logger    *slog.Logger
	unpacked  cache.Cache[*Zone]
	group     singleflight.Group
	zones     map[string]string   // normalized name -> packed record
	names     map[string]string   // normalized name -> canonical name
	links     map[string]string   // normalized alias -> normalized target
	countries map[string][]string // country code -> canonical zone names
	versions  []string
	mu        sync.RWMutex
}

// Option configures a Database.
type Option func(*Database)

// WithLogger sets the logger. Default: a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(db *Database) {
		if l != nil {
			db.logger = l
		}
	}
}

// WithCache replaces the memo used for unpacked zones.
func WithCache(c cache.Cache[*Zone]) Option {
	return func(db *Database) {
		if c != nil {
			db.unpacked = c
		}
	}
}

// New creates an empty database.
func New(opts ...Option) *Database {
	db := &Database{
		logger:    logger.NewNope(),
		zones:     make(map[string]string),
		names:     make(map[string]string),
		links:     make(map[string]string),
		countries: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(db)
	}
	if db.unpacked == nil {
		db.unpacked = cache.NewMemory[*Zone]()
	}
	return db
}

// Normalize lowercases a zone name and replaces slashes with underscores.
func Normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "/", "_"))
}

// Load merges a packed dataset into the database. Zone records are only
// validated for shape here; full decoding happens on first access.
func (db *Database) Load(p Packed) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var errs []error
	for _, record := range p.Zones {
		name, _, ok := strings.Cut(record, "|")
		if !ok || name == "" {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidPacked, truncate(record)))
			continue
		}
		key := Normalize(name)
		if old, ok := db.zones[key]; ok && old != record {
			_ = db.unpacked.Delete(key)
		}
		db.zones[key] = record
		db.names[key] = name
	}

	for _, link := range p.Links {
		a, b, ok := strings.Cut(link, "|")
		if !ok {
			errs = append(errs, fmt.Errorf("%w: link %q", ErrInvalidPacked, link))
			continue
		}
		ka, kb := Normalize(a), Normalize(b)
		// Links are bidirectional: whichever side has a record is the target.
		db.links[ka] = kb
		db.links[kb] = ka
		db.names[ka] = a
		db.names[kb] = b
	}

	for _, entry := range p.Countries {
		cc, list, ok := strings.Cut(entry, "|")
		if !ok {
			errs = append(errs, fmt.Errorf("%w: country %q", ErrInvalidPacked, entry))
			continue
		}
		cc = strings.ToUpper(cc)
		for _, zone := range strings.Fields(list) {
			if !slices.Contains(db.countries[cc], zone) {
				db.countries[cc] = append(db.countries[cc], zone)
			}
		}
	}

	if p.Version != "" && !slices.Contains(db.versions, p.Version) {
		db.versions = append(db.versions, p.Version)
	}

	db.logger.Debug("timezone data loaded",
		slog.String("version", p.Version),
		slog.Int("zones", len(p.Zones)),
		slog.Int("links", len(p.Links)),
	)
	return errors.Join(errs...)
}

// Zone returns the zone registered under name or reachable from it through
// one link. The second result is false for unknown names.
func (db *Database) Zone(name string) (*Zone, bool) {
	key, record, ok := db.resolve(name)
	if !ok {
		return nil, false
	}

	z, err := cache.GetOrSet(db.unpacked, &db.group, key, func() (*Zone, error) {
		return Unpack(record)
	})
	if err != nil {
		db.logger.Error("unpack zone", slog.String("zone", name), slog.String("error", err.Error()))
		return nil, false
	}
	return z, true
}

// MustZone is like Zone but returns ErrUnknownTimezone for unknown names.
func (db *Database) MustZone(name string) (*Zone, error) {
	z, ok := db.Zone(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return z, nil
}

func (db *Database) resolve(name string) (string, string, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	key := Normalize(name)
	if record, ok := db.zones[key]; ok {
		return key, record, true
	}
	// A single indirection: links never chain, so cycles cannot loop.
	if target, ok := db.links[key]; ok {
		if record, ok := db.zones[target]; ok {
			return target, record, true
		}
	}
	return "", "", false
}

// Has reports whether name resolves to a zone.
func (db *Database) Has(name string) bool {
	_, _, ok := db.resolve(name)
	return ok
}

// Names returns the canonical names of all zones and links, sorted.
func (db *Database) Names() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]string, 0, len(db.names))
	for key, name := range db.names {
		if _, ok := db.zones[key]; ok {
			out = append(out, name)
			continue
		}
		if target, ok := db.links[key]; ok {
			if _, ok := db.zones[target]; ok {
				out = append(out, name)
			}
		}
	}
	slices.Sort(out)
	return out
}

// ZoneNames returns the canonical names of zones with records, sorted.
func (db *Database) ZoneNames() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]string, 0, len(db.zones))
	for key := range db.zones {
		out = append(out, db.names[key])
	}
	slices.Sort(out)
	return out
}

// Countries returns the known country codes, sorted.
func (db *Database) Countries() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]string, 0, len(db.countries))
	for cc := range db.countries {
		out = append(out, cc)
	}
	slices.Sort(out)
	return out
}

// ZonesForCountry returns the zones of an ISO 3166 country code.
func (db *Database) ZonesForCountry(cc string) []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return slices.Clone(db.countries[strings.ToUpper(cc)])
}

// CountriesForZone returns the country codes that list the zone.
func (db *Database) CountriesForZone(name string) []string {
	key, _, ok := db.resolve(name)
	if !ok {
		return nil
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	var out []string
	for cc, zones := range db.countries {
		for _, z := range zones {
			if Normalize(z) == key {
				out = append(out, cc)
				break
			}
		}
	}
	slices.Sort(out)
	return out
}

// Versions returns the data versions loaded so far.
func (db *Database) Versions() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return slices.Clone(db.versions)
}
