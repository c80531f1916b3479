package parse

import (
	"regexp"
	"strconv"
)

var (
	extendedISO = regexp.MustCompile(`^\s*((?:[+-]\d{6}|\d{4})-(?:\d\d-\d\d|W\d\d-\d|W\d\d|\d\d\d|\d\d))(?:(T| )(\d\d(?::\d\d(?::\d\d(?:[.,]\d+)?)?)?)([+-]\d\d(?::?\d\d)?|\s*Z)?)?$`)
	basicISO    = regexp.MustCompile(`^\s*((?:[+-]\d{6}|\d{4})(?:\d\d\d\d|W\d\d\d|W\d\d|\d\d\d|\d\d|))(?:(T| )(\d\d(?:\d\d(?:\d\d(?:[.,]\d+)?)?)?)([+-]\d\d(?::?\d\d)?|\s*Z)?)?$`)
	isoZone     = regexp.MustCompile(`Z|[+-]\d\d(?::?\d\d)?`)
	aspNet      = regexp.MustCompile(`(?i)^/?Date\((-?\d+)`)
)

type isoShape struct {
	format    string
	re        *regexp.Regexp
	allowTime bool
}

// isoDates is ordered: the first shape matching the date part wins.
var isoDates = []isoShape{
	{"YYYYYY-MM-DD", regexp.MustCompile(`[+-]\d{6}-\d\d-\d\d`), true},
	{"YYYY-MM-DD", regexp.MustCompile(`\d{4}-\d\d-\d\d`), true},
	{"GGGG-[W]WW-E", regexp.MustCompile(`\d{4}-W\d\d-\d`), true},
	{"GGGG-[W]WW", regexp.MustCompile(`\d{4}-W\d\d`), false},
	{"YYYY-DDD", regexp.MustCompile(`\d{4}-\d{3}`), true},
	{"YYYY-MM", regexp.MustCompile(`\d{4}-\d\d`), false},
	{"YYYYYYMMDD", regexp.MustCompile(`[+-]\d{10}`), true},
	{"YYYYMMDD", regexp.MustCompile(`\d{8}`), true},
	{"GGGG[W]WWE", regexp.MustCompile(`\d{4}W\d{3}`), true},
	{"GGGG[W]WW", regexp.MustCompile(`\d{4}W\d{2}`), false},
	{"YYYYDDD", regexp.MustCompile(`\d{7}`), true},
	{"YYYYMM", regexp.MustCompile(`\d{6}`), false},
	{"YYYY", regexp.MustCompile(`\d{4}`), false},
}

var isoTimes = []isoShape{
	{"HH:mm:ss.SSSS", regexp.MustCompile(`\d\d:\d\d:\d\d\.\d+`), true},
	{"HH:mm:ss,SSSS", regexp.MustCompile(`\d\d:\d\d:\d\d,\d+`), true},
	{"HH:mm:ss", regexp.MustCompile(`\d\d:\d\d:\d\d`), true},
	{"HH:mm", regexp.MustCompile(`\d\d:\d\d`), true},
	{"HHmmss.SSSS", regexp.MustCompile(`\d\d\d\d\d\d\.\d+`), true},
	{"HHmmss,SSSS", regexp.MustCompile(`\d\d\d\d\d\d,\d+`), true},
	{"HHmmss", regexp.MustCompile(`\d\d\d\d\d\d`), true},
	{"HHmm", regexp.MustCompile(`\d\d\d\d`), true},
	{"HH", regexp.MustCompile(`\d\d`), true},
}

// ISOFormat returns the explicit format equivalent to an ISO-8601 string,
// or false when s is not in a supported ISO-8601 shape.
func ISOFormat(s string) (string, bool) {
	m := extendedISO.FindStringSubmatch(s)
	if m == nil {
		m = basicISO.FindStringSubmatch(s)
	}
	if m == nil {
		return "", false
	}

	var date isoShape
	for _, d := range isoDates {
		if d.re.MatchString(m[1]) {
			date = d
			break
		}
	}
	if date.re == nil {
		return "", false
	}

	var clock string
	if m[3] != "" {
		for _, t := range isoTimes {
			if t.re.MatchString(m[3]) {
				sep := m[2]
				if sep == "" {
					sep = " "
				}
				clock = sep + t.format
				break
			}
		}
		if clock == "" || !date.allowTime {
			return "", false
		}
	}

	var zone string
	if m[4] != "" {
		if !isoZone.MatchString(m[4]) {
			return "", false
		}
		zone = "Z"
	}
	return date.format + clock + zone, true
}

// parseISO reports ok when s has an ISO-8601 shape; err then tells whether
// the fields it names are valid.
func (p *Parser) parseISO(s string, o Options) (Result, bool, error) {
	format, ok := ISOFormat(s)
	if !ok {
		return Result{}, false, nil
	}
	r, err := p.parseFormat(s, format, o)
	r.Strategy = StrategyISO8601
	return r, true, err
}

// parseASPNet reads "/Date(1710525909042)/" style JSON dates.
func parseASPNet(s string) (Result, bool) {
	m := aspNet.FindStringSubmatch(s)
	if m == nil {
		return Result{}, false
	}
	ms, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Result{}, false
	}
	return Result{UnixMilli: ms, HasUnix: true, Strategy: StrategyASPNet}, true
}
