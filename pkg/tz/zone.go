package tz

import (
	"math"

	"github.com/dmitrymomot/tempo/pkg/calendar"
)

// Forever is the sentinel transition instant of the last offset bucket.
const Forever int64 = math.MaxInt64

// Zone is an unpacked IANA zone: parallel slices describing every offset
// period. Period i is active for instants strictly before Untils[i] and at
// or after Untils[i-1].
type Zone struct {
	Name string
	// Abbrs holds the abbreviation of each period.
	Abbrs []string
	// Offsets holds the UTC offset of each period in minutes east of UTC.
	Offsets []int
	// Untils holds the exclusive end of each period in Unix milliseconds.
	// The last element is always Forever.
	Untils     []int64
	Population int64
}

// Index returns the period active at ms.
func (z *Zone) Index(ms int64) int {
	last := len(z.Untils) - 1
	for i := 0; i < last; i++ {
		if ms < z.Untils[i] {
			return i
		}
	}
	return last
}

// OffsetAt returns the UTC offset, in minutes east, active at ms.
func (z *Zone) OffsetAt(ms int64) int {
	return z.Offsets[z.Index(ms)]
}

// AbbrAt returns the abbreviation active at ms.
func (z *Zone) AbbrAt(ms int64) string {
	return z.Abbrs[z.Index(ms)]
}

// OffsetForWall returns the offset that applies to a wall-clock reading
// expressed as milliseconds since the epoch in local time.
//
// Period i owns wall times up to the later of the two wall readings of its
// closing transition. A wall time skipped by a forward transition takes the
// offset in effect before the gap, which lands the instant after the gap. A
// wall time repeated by a backward transition resolves to the earlier
// occurrence.
func (z *Zone) OffsetForWall(wall int64) int {
	last := len(z.Untils) - 1
	for i := 0; i < last; i++ {
		offset := max(z.Offsets[i], z.Offsets[i+1])
		if wall < z.Untils[i]+int64(offset)*calendar.MillisPerMinute {
			return z.Offsets[i]
		}
	}
	return z.Offsets[last]
}

// WallToUTC converts a wall-clock reading to Unix milliseconds.
func (z *Zone) WallToUTC(wall int64) int64 {
	return wall - int64(z.OffsetForWall(wall))*calendar.MillisPerMinute
}

// Transitions returns the real transition instants, excluding Forever.
func (z *Zone) Transitions() []int64 {
	if len(z.Untils) == 0 {
		return nil
	}
	out := make([]int64, len(z.Untils)-1)
	copy(out, z.Untils)
	return out
}
