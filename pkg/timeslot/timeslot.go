// Package timeslot models minute-resolution times of day and the
// half-open intervals bookings occupy on a calendar date.
package timeslot

import (
	"fmt"
	"regexp"
)

var (
	timeRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// TimeOfDay is a wall-clock time at minute resolution. Comparing the
// structured form sidesteps the lexicographic trap with unpadded
// hours ("9:00" > "10:00" as strings).
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Parse accepts H:MM or HH:MM with hour 0-23 and minute 0-59.
func Parse(s string) (TimeOfDay, error) {
	if !timeRegex.MatchString(s) {
		return TimeOfDay{}, fmt.Errorf("invalid time of day: %q", s)
	}

	var t TimeOfDay
	if _, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute); err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day: %q", s)
	}
	return t, nil
}

// String renders the canonical zero-padded HH:MM form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the offset from midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// Interval is a half-open range [Start, End) within a single date.
// Callers must ensure Start precedes End.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewInterval parses both bounds. It does not enforce ordering; that
// stays a validation concern.
func NewInterval(start, end string) (Interval, error) {
	s, err := Parse(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps reports whether two intervals on the same date intersect.
// The single conjunction handles every case, including exact boundary
// touches: an interval ending at 11:00 does not overlap one starting
// at 11:00, while identical intervals always overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// ValidDate checks the YYYY-MM-DD shape only. Calendar validity is
// deliberately not enforced; "2024-13-99" passes, as it always has.
func ValidDate(s string) bool {
	return dateRegex.MatchString(s)
}

// ValidTime reports whether s parses as a time of day.
func ValidTime(s string) bool {
	return timeRegex.MatchString(s)
}
