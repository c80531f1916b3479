package tempo

import (
	"time"

	"github.com/dmitrymomot/tempo/pkg/calendar"
	"github.com/dmitrymomot/tempo/pkg/tz"
)

type mode uint8

const (
	modeLocal mode = iota
	modeUTC
	modeFixed
	modeNamed
)

// frame is the reference an instant's wall clock is read in.
type frame struct {
	zone   *tz.Zone
	host   *time.Location
	offset int
	mode   mode
}

func localFrame(host *time.Location) frame { return frame{mode: modeLocal, host: host} }
func utcFrame() frame                      { return frame{mode: modeUTC} }
func fixedFrame(offset int) frame          { return frame{mode: modeFixed, offset: offset} }
func namedFrame(z *tz.Zone) frame          { return frame{mode: modeNamed, zone: z} }

func (f frame) location() *time.Location {
	if f.host == nil {
		return time.Local
	}
	return f.host
}

// offsetAt returns the UTC offset in minutes east at ms.
func (f frame) offsetAt(ms int64) int {
	switch f.mode {
	case modeUTC:
		return 0
	case modeFixed:
		return f.offset
	case modeNamed:
		return f.zone.OffsetAt(ms)
	}
	_, sec := time.UnixMilli(ms).In(f.location()).Zone()
	return sec / 60
}

// toUTC converts a wall-clock reading, in milliseconds since the epoch, to
// Unix milliseconds. Local frames defer to the host's conversion.
func (f frame) toUTC(wall int64) int64 {
	switch f.mode {
	case modeUTC:
		return wall
	case modeFixed:
		return wall - int64(f.offset)*calendar.MillisPerMinute
	case modeNamed:
		return f.zone.WallToUTC(wall)
	}
	y, m, d := calendar.CivilFromDays(calendar.FloorDiv64(wall, calendar.MillisPerDay))
	rem := calendar.Mod64(wall, calendar.MillisPerDay)
	t := time.Date(y, time.Month(m+1), d, 0, 0, 0, int(rem)*int(time.Millisecond), f.location())
	return t.UnixMilli()
}

func (f frame) abbrAt(ms int64) string {
	switch f.mode {
	case modeUTC:
		return "UTC"
	case modeFixed:
		return ""
	case modeNamed:
		return f.zone.AbbrAt(ms)
	}
	name, _ := time.UnixMilli(ms).In(f.location()).Zone()
	return name
}

func (f frame) name() string {
	switch f.mode {
	case modeUTC:
		return "UTC"
	case modeFixed:
		return ""
	case modeNamed:
		return f.zone.Name
	}
	return f.location().String()
}

// clock returns now as seen from the frame, for filling fields a parsed
// input leaves out.
func (f frame) clock(now time.Time) time.Time {
	if f.mode == modeLocal {
		return now.In(f.location())
	}
	return now.In(time.FixedZone(f.abbrAt(now.UnixMilli()), f.offsetAt(now.UnixMilli())*60))
}
