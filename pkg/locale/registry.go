package locale

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/tempo/pkg/logger"
)

// BaseTag is the tag of the base locale every other locale derives from.
const BaseTag = "en"

// Registry stores locales and resolves tags to them. Reads load an
// immutable snapshot and never block; writes are serialized.
type Registry struct {
	logger   *slog.Logger
	state    atomic.Pointer[snapshot]
	pending  map[string][]pendingDefinition
	builtins bool
	mu       sync.Mutex
}

type snapshot struct {
	locales map[string]*Locale
	current *Locale
}

type pendingDefinition struct {
	tag string
	cfg *Config
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Default: a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithoutBuiltins skips the built-in locales. The base locale is always
// registered.
func WithoutBuiltins() Option {
	return func(r *Registry) {
		r.builtins = false
	}
}

// NewRegistry creates a registry holding the base locale and, unless
// WithoutBuiltins is given, the built-in locales. The base locale is
// current.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		logger:   logger.NewNope(),
		pending:  make(map[string][]pendingDefinition),
		builtins: true,
	}
	for _, opt := range opts {
		opt(r)
	}

	base, err := newLocale(BaseTag, Base())
	if err != nil {
		panic(fmt.Sprintf("locale: base config: %v", err))
	}
	r.state.Store(&snapshot{
		locales: map[string]*Locale{BaseTag: base},
		current: base,
	})

	if r.builtins {
		for _, b := range builtins() {
			if _, err := r.Define(b.tag, b.cfg); err != nil {
				panic(fmt.Sprintf("locale: builtin %s: %v", b.tag, err))
			}
		}
		r.setCurrent(BaseTag)
	}
	return r
}

// Normalize lowercases a tag, trims it and replaces underscores with
// hyphens.
func Normalize(tag string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(tag)), "_", "-")
}

// Define registers a locale built from cfg merged onto its parent and makes
// it current. Redefining a tag merges onto the existing definition. A nil
// cfg removes the locale.
//
// If cfg names a parent that is not registered, the definition is queued,
// a warning is logged and ErrParentNotLoaded is returned. Queued
// definitions are applied when the parent is defined.
func (r *Registry) Define(tag string, cfg *Config) (*Locale, error) {
	key := Normalize(tag)
	if key == "" {
		return nil, fmt.Errorf("%w: empty tag", ErrInvalidConfig)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg == nil {
		return nil, r.remove(key)
	}
	return r.define(key, cfg)
}

func (r *Registry) define(key string, cfg *Config) (*Locale, error) {
	snap := r.state.Load()

	parent := Base()
	if existing, ok := snap.locales[key]; ok {
		parent = existing.cfg
	} else if cfg.Parent != "" {
		p, ok := snap.locales[Normalize(cfg.Parent)]
		if !ok {
			pkey := Normalize(cfg.Parent)
			r.pending[pkey] = append(r.pending[pkey], pendingDefinition{tag: key, cfg: cfg})
			r.logger.Warn("locale parent not loaded, definition queued",
				slog.String("locale", key),
				slog.String("parent", cfg.Parent),
			)
			return nil, fmt.Errorf("%w: %s extends %s", ErrParentNotLoaded, key, cfg.Parent)
		}
		parent = p.cfg
	}

	loc, err := newLocale(key, merge(parent, cfg))
	if err != nil {
		return nil, err
	}
	r.checkForms(loc)
	r.state.Store(snap.with(loc))

	if children := r.pending[key]; len(children) > 0 {
		delete(r.pending, key)
		for _, child := range children {
			if _, err := r.define(child.tag, child.cfg); err != nil {
				r.logger.Warn("queued locale definition failed",
					slog.String("locale", child.tag),
					slog.String("error", err.Error()),
				)
			}
		}
		r.setCurrent(key)
	}
	return loc, nil
}

// checkForms logs relative-time phrases that miss a plural form the
// locale's rule can select.
func (r *Registry) checkForms(loc *Locale) {
	want := SupportedPluralForms(loc.plural)
	for key, p := range loc.cfg.RelativeTime {
		if len(p.Forms) == 0 {
			continue
		}
		for _, form := range want {
			if _, ok := p.Forms[form]; !ok {
				r.logger.Debug("relative time phrase misses plural form",
					slog.String("locale", loc.tag),
					slog.String("key", key),
					slog.String("form", form),
				)
			}
		}
	}
}

// Update merges cfg into the registered locale and makes it current. The
// definition in place before the first Update is remembered: Update with a
// nil cfg restores it, or removes the locale if it only exists through
// Update.
func (r *Registry) Update(tag string, cfg *Config) (*Locale, error) {
	key := Normalize(tag)
	if key == "" {
		return nil, fmt.Errorf("%w: empty tag", ErrInvalidConfig)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.state.Load()
	existing := snap.locales[key]

	if cfg == nil {
		if existing == nil {
			return nil, nil
		}
		if existing.previous != nil {
			next := snap.with(existing.previous)
			if snap.current != existing {
				next.current = snap.current
			}
			r.state.Store(next)
			return existing.previous, nil
		}
		return nil, r.remove(key)
	}

	var (
		loc *Locale
		err error
	)
	switch {
	case existing != nil && existing.previous != nil:
		loc, err = newLocale(key, merge(existing.cfg, cfg))
		if loc != nil {
			loc.previous = existing.previous
		}
	case existing != nil:
		loc, err = newLocale(key, merge(existing.cfg, cfg))
		if loc != nil {
			loc.previous = existing
		}
	default:
		parent := Base()
		if p, ok := snap.locales[Normalize(cfg.Parent)]; ok {
			parent = p.cfg
		}
		loc, err = newLocale(key, merge(parent, cfg))
	}
	if err != nil {
		return nil, err
	}
	r.checkForms(loc)
	r.state.Store(snap.with(loc))
	return loc, nil
}

func (r *Registry) remove(key string) error {
	if key == BaseTag {
		return fmt.Errorf("%w: the base locale cannot be removed", ErrInvalidConfig)
	}
	snap := r.state.Load()
	if _, ok := snap.locales[key]; !ok {
		return nil
	}
	next := &snapshot{locales: maps.Clone(snap.locales), current: snap.current}
	delete(next.locales, key)
	if next.current.tag == key {
		next.current = next.locales[BaseTag]
	}
	r.state.Store(next)
	return nil
}

func (r *Registry) setCurrent(key string) {
	snap := r.state.Load()
	if loc, ok := snap.locales[key]; ok {
		r.state.Store(&snapshot{locales: snap.locales, current: loc})
	}
}

// with returns a copy of s with loc registered and current.
func (s *snapshot) with(loc *Locale) *snapshot {
	next := &snapshot{locales: maps.Clone(s.locales), current: loc}
	next.locales[loc.tag] = loc
	return next
}

// choose picks the best registered locale for the candidate tags: each tag
// is tried with progressively fewer subtags, stopping early when the next
// candidate shares a longer prefix.
func (s *snapshot) choose(tags []string) *Locale {
	for i, tag := range tags {
		split := strings.Split(Normalize(tag), "-")
		var next []string
		if i+1 < len(tags) {
			if n := Normalize(tags[i+1]); n != "" {
				next = strings.Split(n, "-")
			}
		}
		for j := len(split); j > 0; j-- {
			if loc, ok := s.locales[strings.Join(split[:j], "-")]; ok {
				return loc
			}
			if next != nil && len(next) >= j && commonPrefix(split, next) >= j-1 {
				break
			}
		}
	}
	return nil
}

func commonPrefix(a, b []string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Resolve returns the best match for the candidate tags, in order of
// preference. When nothing matches, it logs a warning and returns the
// current locale.
func (r *Registry) Resolve(tags ...string) *Locale {
	snap := r.state.Load()
	if loc := snap.choose(tags); loc != nil {
		return loc
	}
	if len(tags) > 0 {
		r.logger.Warn("unknown locale, using current",
			slog.Any("tags", tags),
			slog.String("current", snap.current.tag),
		)
	}
	return snap.current
}

// ResolveAcceptLanguage resolves the tags of an Accept-Language header.
func (r *Registry) ResolveAcceptLanguage(header string) *Locale {
	return r.Resolve(ParseAcceptLanguage(header)...)
}

// Use makes the best match for the candidate tags current.
func (r *Registry) Use(tags ...string) (*Locale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.state.Load()
	loc := snap.choose(tags)
	if loc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocale, strings.Join(tags, ", "))
	}
	r.state.Store(&snapshot{locales: snap.locales, current: loc})
	return loc, nil
}

// Current returns the current locale.
func (r *Registry) Current() *Locale {
	return r.state.Load().current
}

// Get returns the locale registered under exactly tag (after
// normalization).
func (r *Registry) Get(tag string) (*Locale, bool) {
	loc, ok := r.state.Load().locales[Normalize(tag)]
	return loc, ok
}

// Tags returns the sorted tags of all registered locales.
func (r *Registry) Tags() []string {
	return slices.Sorted(maps.Keys(r.state.Load().locales))
}

// Pending returns the sorted tags of definitions waiting for their parent.
func (r *Registry) Pending() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tags []string
	for _, defs := range r.pending {
		for _, d := range defs {
			tags = append(tags, d.tag)
		}
	}
	slices.Sort(tags)
	return tags
}
