package parse

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const (
	freeClock = `(?:,?\s+(?:at\s+)?(?<hour>\d{1,2})(?::(?<minute>\d{2})(?::(?<second>\d{2})(?:[.,](?<fraction>\d{1,9}))?)?)?(?!\d)\s*(?<meridiem>[ap]\.?m\.?)?)?`
	freeZone  = `(?:\s*(?:(?:Z|UTC|GMT|UT)?(?<offset>[+-]\d{2}:?\d{2})|(?<utc>Z|UTC|GMT|UT)|(?<abbr>[a-z]{2,5})(?![a-z])))?(?:\s*\([^)]*\))?`
)

// freeForms are the layouts the fallback understands, most specific first.
// Month names are English, as in the host date parsers this mimics.
var freeForms = []*regexp2.Regexp{
	// Fri Mar 15 2024 14:05:09 GMT-0400 (Eastern Daylight Time), March 15th, 2024 2:05 pm EST
	freeForm(`^(?:(?<weekday>[a-z]{3,9})\.?,?\s+)?(?<month>[a-z]{3,9})\.?\s+(?<day>\d{1,2})(?:st|nd|rd|th)?(?!\d),?\s+(?<year>\d{4})` + freeClock + freeZone + `$`),
	// Friday, 15 March 2024 14:05
	freeForm(`^(?:(?<weekday>[a-z]{3,9})\.?,?\s+)?(?<day>\d{1,2})(?:st|nd|rd|th)?\s+(?<month>[a-z]{3,9})\.?,?\s+(?<year>\d{4})` + freeClock + freeZone + `$`),
	// 3/15/2024, 03-15-24 2:05 PM
	freeForm(`^(?<month>\d{1,2})(?<sep>[/-])(?<day>\d{1,2})\k<sep>(?<year>\d{4}|\d{2})(?!\d)` + freeClock + freeZone + `$`),
	// 2024/03/15 14:05:09
	freeForm(`^(?<year>\d{4})/(?<month>\d{1,2})/(?<day>\d{1,2})(?!\d)` + freeClock + freeZone + `$`),
}

func freeForm(expr string) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, regexp2.IgnoreCase)
	re.MatchTimeout = 100 * time.Millisecond
	return re
}

var englishMonths = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// parseFreeForm is the last resort for text no structured strategy
// accepted. It recognises a handful of common English layouts and is not a
// reliable way to read dates: prefer an explicit format.
func (p *Parser) parseFreeForm(s string, o Options) (Result, error) {
	p.logger.Warn("falling back to free-form date parsing; results are unreliable",
		slog.String("input", s),
	)

	in := strings.TrimSpace(s)
	for _, re := range freeForms {
		m, err := re.FindStringMatch(in)
		if err != nil || m == nil {
			continue
		}
		return p.fromFreeForm(s, m, o)
	}
	return Result{}, &Error{Input: s, Field: NoField, Reason: "unrecognised date"}
}

func (p *Parser) fromFreeForm(s string, m *regexp2.Match, o Options) (Result, error) {
	group := func(name string) string {
		if g := m.GroupByName(name); g != nil && len(g.Captures) > 0 {
			return g.String()
		}
		return ""
	}

	st := newState(s, o)
	st.empty = false

	month := group("month")
	if n := toInt(month); n > 0 {
		st.put(Month, n-1)
	} else {
		idx := -1
		if len(month) >= 3 {
			prefix := strings.ToLower(month[:3])
			for i, name := range englishMonths {
				if name == prefix {
					idx = i
				}
			}
		}
		if idx < 0 {
			st.invalidMonth = month
		}
		st.put(Month, idx)
	}

	year := group("year")
	if len(year) == 2 {
		st.put(Year, untruncateYear(year))
	} else {
		st.put(Year, toInt(year))
	}
	st.put(Day, toInt(group("day")))

	if h := group("hour"); h != "" {
		st.put(Hour, toInt(h))
		st.put(Minute, toInt(group("minute")))
		st.put(Second, toInt(group("second")))
		if f := group("fraction"); f != "" {
			st.put(Millisecond, toInt((f + "000")[:3]))
		}
		if mer := group("meridiem"); mer != "" {
			pm := strings.HasPrefix(strings.ToLower(mer), "p")
			switch {
			case pm && st.a[Hour] < 12:
				st.a[Hour] += 12
			case !pm && st.a[Hour] == 12:
				st.a[Hour] = 0
			}
		}
	}

	switch {
	case group("offset") != "":
		st.offset, st.hasOffset = offsetFromString(group("offset")), true
	case group("utc") != "":
		st.offset, st.hasOffset = 0, true
	case group("abbr") != "":
		offset, ok := p.abbrOffset(strings.ToUpper(group("abbr")))
		if !ok {
			return st.result(StrategyFreeForm), &Error{Input: s, Field: NoField, Reason: "unknown zone abbreviation " + group("abbr")}
		}
		st.offset, st.hasOffset = offset, true
	}

	return st.finish(StrategyFreeForm)
}

// abbrOffset resolves a zone abbreviation to minutes east. The North
// American names of RFC 822 take precedence over the abbreviation database,
// which is ambiguous for names such as CST.
func (p *Parser) abbrOffset(abbr string) (int, bool) {
	if off, ok := obsoleteZones[abbr]; ok {
		return off, true
	}
	infos, err := p.zones().GetTzAbbreviationInfo(abbr)
	if err != nil || len(infos) == 0 {
		return 0, false
	}
	offset := infos[0].Offset()
	for _, info := range infos[1:] {
		if info.Offset() != offset {
			p.logger.Debug("ambiguous zone abbreviation",
				slog.String("abbr", abbr),
				slog.Int("candidates", len(infos)),
			)
			break
		}
	}
	return offset / 60, true
}
