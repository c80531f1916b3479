package tempo

// From describes i relative to other in i's locale: "in 3 days" when i is
// later, "3 days ago" when earlier. withoutSuffix drops "in" and "ago".
func (i Instant) From(other Instant, withoutSuffix bool) string {
	if !i.Valid() || !other.Valid() {
		return i.Locale().InvalidDate()
	}
	return Between(other, i).Humanize(i.Locale(), !withoutSuffix, i.eng().thresholds)
}

// FromNow is From with the engine's current time.
func (i Instant) FromNow(withoutSuffix bool) string {
	return i.From(i.eng().Now(), withoutSuffix)
}

// To describes other relative to i: the mirror of From.
func (i Instant) To(other Instant, withoutSuffix bool) string {
	if !i.Valid() || !other.Valid() {
		return i.Locale().InvalidDate()
	}
	other.loc = i.Locale()
	return other.From(i, withoutSuffix)
}

// ToNow is To with the engine's current time.
func (i Instant) ToNow(withoutSuffix bool) string {
	return i.To(i.eng().Now(), withoutSuffix)
}

// Calendar keys, in the order they apply.
const (
	LastWeek = "lastWeek"
	LastDay  = "lastDay"
	SameDay  = "sameDay"
	NextDay  = "nextDay"
	NextWeek = "nextWeek"
	SameElse = "sameElse"
)

// CalendarKey returns the calendar phrase key for i relative to the day
// containing ref, read in i's frame.
func (i Instant) CalendarKey(ref Instant) string {
	ref.frame = i.frame
	diff := i.Diff(ref.StartOf(Day), Day, true)
	switch {
	case diff < -6:
		return SameElse
	case diff < -1:
		return LastWeek
	case diff < 0:
		return LastDay
	case diff < 1:
		return SameDay
	case diff < 2:
		return NextDay
	case diff < 7:
		return NextWeek
	}
	return SameElse
}

// Calendar renders i with the locale's calendar pattern for its distance
// from ref: "Today at 2:05 PM", "Last Friday at 9:00 AM" and so on.
// overrides replaces patterns by key.
func (i Instant) Calendar(ref Instant, overrides map[string]string) string {
	if !i.Valid() || !ref.Valid() {
		return i.Locale().InvalidDate()
	}
	key := i.CalendarKey(ref)
	pattern, ok := overrides[key]
	if !ok {
		pattern = i.Locale().CalendarFormat(key, i.Hour())
	}
	return i.Format(pattern)
}
