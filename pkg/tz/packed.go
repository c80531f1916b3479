package tz

import (
	"fmt"
	"math"
	"strings"

	"github.com/dmitrymomot/tempo/pkg/calendar"
)

// Packed is the serialized dataset: zone records, links and countries.
//
// A zone record is "Name|abbrs|offsets|indices|untils|population":
//   - abbrs: space separated distinct abbreviations
//   - offsets: base-60 minutes west of UTC, parallel to abbrs
//   - indices: one base-60 digit per period selecting an abbr/offset pair
//   - untils: base-60 minute deltas between consecutive transitions, the
//     first relative to the epoch; one fewer than the number of periods
//   - population: base-60 integer used to break ties when guessing
//
// Links are "Canonical|Alias" and countries are "CC|Zone1 Zone2".
type Packed struct {
	Version   string   `json:"version"`
	Zones     []string `json:"zones"`
	Links     []string `json:"links"`
	Countries []string `json:"countries"`
}

const base60Digits = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWX"

func charToInt(c byte) (int, error) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), nil
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, nil
	case c >= 'A' && c <= 'X':
		return int(c-'A') + 36, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBase60, c)
}

// DecodeBase60 decodes a signed base-60 number with an optional fractional
// part after a dot.
func DecodeBase60(s string) (float64, error) {
	sign := 1.0
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var out float64
	for i := 0; i < len(whole); i++ {
		n, err := charToInt(whole[i])
		if err != nil {
			return 0, err
		}
		out = out*60 + float64(n)
	}
	mult := 1.0
	for i := 0; i < len(frac); i++ {
		n, err := charToInt(frac[i])
		if err != nil {
			return 0, err
		}
		mult /= 60
		out += float64(n) * mult
	}
	return out * sign, nil
}

// EncodeBase60 encodes a whole number in base 60.
func EncodeBase60(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [16]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = base60Digits[n%60]
		n /= 60
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func decodeList(s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := DecodeBase60(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Unpack decodes one packed zone record.
func Unpack(record string) (*Zone, error) {
	parts := strings.Split(record, "|")
	if len(parts) < 5 || parts[0] == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPacked, truncate(record))
	}

	abbrs := strings.Fields(parts[1])
	offsets, err := decodeList(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %s offsets: %w", ErrInvalidPacked, parts[0], err)
	}
	if len(abbrs) != len(offsets) || len(abbrs) == 0 {
		return nil, fmt.Errorf("%w: %s has %d abbreviations and %d offsets", ErrInvalidPacked, parts[0], len(abbrs), len(offsets))
	}

	indices := make([]int, len(parts[3]))
	for i := 0; i < len(parts[3]); i++ {
		n, err := charToInt(parts[3][i])
		if err != nil || n >= len(abbrs) {
			return nil, fmt.Errorf("%w: %s index %q out of range", ErrInvalidPacked, parts[0], parts[3][i])
		}
		indices[i] = n
	}
	if len(indices) == 0 {
		indices = []int{0}
	}

	deltas, err := decodeList(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: %s untils: %w", ErrInvalidPacked, parts[0], err)
	}
	if len(deltas) < len(indices)-1 {
		return nil, fmt.Errorf("%w: %s has %d periods and %d transitions", ErrInvalidPacked, parts[0], len(indices), len(deltas))
	}

	z := &Zone{
		Name:    parts[0],
		Abbrs:   make([]string, len(indices)),
		Offsets: make([]int, len(indices)),
		Untils:  make([]int64, len(indices)),
	}
	var prev float64
	for i, idx := range indices {
		z.Abbrs[i] = abbrs[idx]
		// Packed offsets count minutes west; Zone stores minutes east.
		z.Offsets[i] = -int(math.Round(offsets[idx]))
		if i == len(indices)-1 {
			z.Untils[i] = Forever
			break
		}
		prev = math.Round(prev + deltas[i]*float64(calendar.MillisPerMinute))
		z.Untils[i] = int64(prev)
	}

	if len(parts) > 5 && parts[5] != "" {
		pop, err := DecodeBase60(parts[5])
		if err != nil {
			return nil, fmt.Errorf("%w: %s population: %w", ErrInvalidPacked, parts[0], err)
		}
		z.Population = int64(pop)
	}

	return z, nil
}

// Pack encodes z in the packed record format. Pack(Unpack(s)) reproduces s
// for records whose abbreviation/offset pairs are listed in first-use order.
func Pack(z *Zone) string {
	type pair struct {
		abbr   string
		offset int
	}
	var pairs []pair
	var indices strings.Builder
	for i := range z.Abbrs {
		p := pair{z.Abbrs[i], z.Offsets[i]}
		idx := -1
		for j, q := range pairs {
			if q == p {
				idx = j
				break
			}
		}
		if idx < 0 {
			idx = len(pairs)
			pairs = append(pairs, p)
		}
		indices.WriteByte(base60Digits[idx])
	}

	abbrs := make([]string, len(pairs))
	offsets := make([]string, len(pairs))
	for i, p := range pairs {
		abbrs[i] = p.abbr
		offsets[i] = EncodeBase60(int64(-p.offset))
	}

	untils := make([]string, 0, len(z.Untils))
	var prev int64
	for _, u := range z.Transitions() {
		untils = append(untils, EncodeBase60((u-prev)/calendar.MillisPerMinute))
		prev = u
	}

	return strings.Join([]string{
		z.Name,
		strings.Join(abbrs, " "),
		strings.Join(offsets, " "),
		indices.String(),
		strings.Join(untils, " "),
		EncodeBase60(z.Population),
	}, "|")
}

// FilterYears returns a copy of z restricted to transitions between the
// start of from and the end of to, in UTC.
func FilterYears(z *Zone, from, to int) *Zone {
	start := calendar.DaysFromCivil(from, 0, 1) * calendar.MillisPerDay
	end := calendar.DaysFromCivil(to+1, 0, 1) * calendar.MillisPerDay

	first := z.Index(start)
	last := z.Index(end - 1)

	out := &Zone{
		Name:       z.Name,
		Abbrs:      append([]string(nil), z.Abbrs[first:last+1]...),
		Offsets:    append([]int(nil), z.Offsets[first:last+1]...),
		Untils:     append([]int64(nil), z.Untils[first:last+1]...),
		Population: z.Population,
	}
	out.Untils[len(out.Untils)-1] = Forever
	return out
}

func truncate(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}
