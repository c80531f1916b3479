package locale

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config is the raw definition of a locale. Zero-valued fields inherit from
// the parent config when the locale is defined.
type Config struct {
	// Parent names the locale this one extends. Empty means the base
	// (English) config.
	Parent string `yaml:"parent,omitempty" json:"parent,omitempty"`

	Months        *NameSet `yaml:"months,omitempty" json:"months,omitempty"`
	MonthsShort   *NameSet `yaml:"months_short,omitempty" json:"months_short,omitempty"`
	Weekdays      *NameSet `yaml:"weekdays,omitempty" json:"weekdays,omitempty"`
	WeekdaysShort *NameSet `yaml:"weekdays_short,omitempty" json:"weekdays_short,omitempty"`
	WeekdaysMin   *NameSet `yaml:"weekdays_min,omitempty" json:"weekdays_min,omitempty"`

	// LongDateFormat maps LT, LTS, L, LL, LLL, LLLL (and optionally the
	// lowercase l forms) to patterns.
	LongDateFormat map[string]string `yaml:"long_date_format,omitempty" json:"long_date_format,omitempty"`

	// Calendar maps sameDay, nextDay, nextWeek, lastDay, lastWeek and
	// sameElse to patterns.
	Calendar map[string]string `yaml:"calendar,omitempty" json:"calendar,omitempty"`

	// RelativeTime maps future, past, s, ss, m, mm, h, hh, d, dd, w, ww, M,
	// MM, y and yy to phrases.
	RelativeTime map[string]Phrase `yaml:"relative_time,omitempty" json:"relative_time,omitempty"`

	// Ordinal is a template where %d is replaced with the number.
	Ordinal string `yaml:"ordinal,omitempty" json:"ordinal,omitempty"`

	// OrdinalParse matches a day of month ordinal (Do) in input.
	OrdinalParse string `yaml:"ordinal_parse,omitempty" json:"ordinal_parse,omitempty"`

	Meridiem *Meridiem `yaml:"meridiem,omitempty" json:"meridiem,omitempty"`
	Week     *Week     `yaml:"week,omitempty" json:"week,omitempty"`
	Eras     []Era     `yaml:"eras,omitempty" json:"eras,omitempty"`

	// EraYearOrdinalParse matches an era year ordinal (yo) in input.
	EraYearOrdinalParse string `yaml:"era_year_ordinal_parse,omitempty" json:"era_year_ordinal_parse,omitempty"`

	InvalidDate string `yaml:"invalid_date,omitempty" json:"invalid_date,omitempty"`

	// Plural is the language whose plural rule selects relative-time forms.
	// Defaults to the language of the locale tag.
	Plural string `yaml:"plural,omitempty" json:"plural,omitempty"`

	// OrdinalFunc overrides Ordinal. token is the pattern token being
	// rendered (D, M, DDD, d, w, W, Q or y).
	OrdinalFunc func(n int, token string) string `yaml:"-" json:"-"`

	// MeridiemFunc overrides Meridiem for rendering.
	MeridiemFunc func(hour, minute int, lower bool) string `yaml:"-" json:"-"`

	// IsPMFunc overrides Meridiem.PMPattern for parsing.
	IsPMFunc func(input string) bool `yaml:"-" json:"-"`

	// RelativeTimeFunc overrides the RelativeTime table for number phrases.
	RelativeTimeFunc func(n int, withoutSuffix bool, key string, future bool) string `yaml:"-" json:"-"`

	// CalendarFunc overrides the Calendar table. hour is the hour of the
	// instant being rendered.
	CalendarFunc func(key string, hour int) string `yaml:"-" json:"-"`

	// EraYearOrdinalFunc converts text matched by EraYearOrdinalParse to a
	// year of era.
	EraYearOrdinalFunc func(input string) (int, bool) `yaml:"-" json:"-"`

	// Preparse runs on parser input and Postformat on formatter output.
	Preparse func(string) string `yaml:"-" json:"-"`

	Postformat func(string) string `yaml:"-" json:"-"`
}

// NameSet holds month or weekday names. When Standalone is set, Format names
// are used for patterns matching IsFormat and Standalone names otherwise.
type NameSet struct {
	Format     []string `yaml:"format" json:"format"`
	Standalone []string `yaml:"standalone,omitempty" json:"standalone,omitempty"`
	IsFormat   string   `yaml:"is_format,omitempty" json:"is_format,omitempty"`
}

// Names returns a NameSet with a single list of names.
func Names(names ...string) *NameSet {
	return &NameSet{Format: names}
}

// UnmarshalYAML accepts a plain sequence of names or the full mapping.
func (n *NameSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*n = NameSet{Format: list}
		return nil
	}
	type plain NameSet
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*n = NameSet(p)
	return nil
}

// UnmarshalJSON accepts a plain array of names or the full object.
func (n *NameSet) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*n = NameSet{Format: list}
		return nil
	}
	type plain NameSet
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*n = NameSet(p)
	return nil
}

func (n *NameSet) standalone() []string {
	if len(n.Standalone) > 0 {
		return n.Standalone
	}
	return n.Format
}

// Phrase is a relative-time template. Text may contain %d (the number) or
// %s (the inner phrase for future and past). Forms, keyed by plural
// category, take precedence over Text. Suffixed replaces the phrase when it
// is rendered with a future or past suffix.
type Phrase struct {
	Text     string            `yaml:"text,omitempty" json:"text,omitempty"`
	Forms    map[string]string `yaml:"forms,omitempty" json:"forms,omitempty"`
	Suffixed *Phrase           `yaml:"suffixed,omitempty" json:"suffixed,omitempty"`
}

// Text returns a Phrase made of a single template.
func Text(s string) Phrase {
	return Phrase{Text: s}
}

// UnmarshalYAML accepts a scalar template or the full mapping.
func (p *Phrase) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*p = Phrase{Text: node.Value}
		return nil
	}
	type plain Phrase
	var v plain
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = Phrase(v)
	return nil
}

// UnmarshalJSON accepts a string template or the full object.
func (p *Phrase) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Phrase{Text: s}
		return nil
	}
	type plain Phrase
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Phrase(v)
	return nil
}

// Meridiem configures AM/PM rendering and parsing. Lowercase variants
// default to the lowercased AM and PM strings.
type Meridiem struct {
	AM      string `yaml:"am" json:"am"`
	PM      string `yaml:"pm" json:"pm"`
	LowerAM string `yaml:"lower_am,omitempty" json:"lower_am,omitempty"`
	LowerPM string `yaml:"lower_pm,omitempty" json:"lower_pm,omitempty"`

	// Parse matches a meridiem in input.
	Parse string `yaml:"parse,omitempty" json:"parse,omitempty"`

	// PMPattern matches parsed meridiem text denoting the afternoon.
	PMPattern string `yaml:"pm_pattern,omitempty" json:"pm_pattern,omitempty"`
}

// Week holds the week numbering rule: Dow is the first day of the week
// (0 = Sunday) and Doy is chosen so that January (7 + Dow - Doy) is always
// in the first week of the year.
type Week struct {
	Dow int `yaml:"dow" json:"dow"`
	Doy int `yaml:"doy" json:"doy"`
}

// merge overlays c on base. Maps merge key by key; everything else is
// replaced when set in c.
func merge(base, c *Config) *Config {
	out := base.clone()
	if c == nil {
		return out
	}

	if c.Parent != "" {
		out.Parent = c.Parent
	}
	if c.Months != nil {
		out.Months = c.Months
	}
	if c.MonthsShort != nil {
		out.MonthsShort = c.MonthsShort
	}
	if c.Weekdays != nil {
		out.Weekdays = c.Weekdays
	}
	if c.WeekdaysShort != nil {
		out.WeekdaysShort = c.WeekdaysShort
	}
	if c.WeekdaysMin != nil {
		out.WeekdaysMin = c.WeekdaysMin
	}
	if c.Week != nil {
		out.Week = c.Week
	}
	if c.Eras != nil {
		out.Eras = slices.Clone(c.Eras)
	}

	out.LongDateFormat = mergeMap(out.LongDateFormat, c.LongDateFormat)
	out.Calendar = mergeMap(out.Calendar, c.Calendar)
	out.RelativeTime = mergeMap(out.RelativeTime, c.RelativeTime)

	setString(&out.OrdinalParse, c.OrdinalParse)
	setString(&out.EraYearOrdinalParse, c.EraYearOrdinalParse)
	setString(&out.InvalidDate, c.InvalidDate)
	setString(&out.Plural, c.Plural)

	// A table value replaces an inherited function and vice versa.
	if c.Ordinal != "" || c.OrdinalFunc != nil {
		out.Ordinal, out.OrdinalFunc = c.Ordinal, c.OrdinalFunc
	}
	if c.Meridiem != nil || c.MeridiemFunc != nil || c.IsPMFunc != nil {
		out.Meridiem, out.MeridiemFunc, out.IsPMFunc = c.Meridiem, c.MeridiemFunc, c.IsPMFunc
		if out.Meridiem == nil {
			out.Meridiem = base.Meridiem
		}
	}
	if c.RelativeTimeFunc != nil {
		out.RelativeTimeFunc = c.RelativeTimeFunc
	}
	if c.CalendarFunc != nil {
		out.CalendarFunc = c.CalendarFunc
	}
	if c.EraYearOrdinalFunc != nil {
		out.EraYearOrdinalFunc = c.EraYearOrdinalFunc
	}
	if c.Preparse != nil {
		out.Preparse = c.Preparse
	}
	if c.Postformat != nil {
		out.Postformat = c.Postformat
	}
	return out
}

func (c *Config) clone() *Config {
	if c == nil {
		return &Config{}
	}
	out := *c
	out.LongDateFormat = maps.Clone(c.LongDateFormat)
	out.Calendar = maps.Clone(c.Calendar)
	out.RelativeTime = maps.Clone(c.RelativeTime)
	out.Eras = slices.Clone(c.Eras)
	return &out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeMap[V any](base, over map[string]V) map[string]V {
	if len(over) == 0 {
		return base
	}
	out := make(map[string]V, len(base)+len(over))
	maps.Copy(out, base)
	maps.Copy(out, over)
	return out
}
