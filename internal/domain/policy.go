package domain

import (
	"errors"
	"fmt"
	"time"
)

// OperatingHours is the daily window, as offsets from local midnight, inside
// which reservations must start and end.
type OperatingHours struct {
	Open  time.Duration
	Close time.Duration
}

// DefaultOperatingHours is 08:00–17:00.
var DefaultOperatingHours = OperatingHours{Open: 8 * time.Hour, Close: 17 * time.Hour}

func (h OperatingHours) Validate() error {
	if h.Open < 0 || h.Close > 24*time.Hour {
		return errors.New("operating hours must fall within one day")
	}
	if h.Close <= h.Open {
		return errors.New("closing time must be after opening time")
	}
	return nil
}

func (h OperatingHours) String() string {
	return formatClock(h.Open) + "-" + formatClock(h.Close)
}

// Bounds returns the opening and closing times as "HH:MM".
func (h OperatingHours) Bounds() (opensAt, closesAt string) {
	return formatClock(h.Open), formatClock(h.Close)
}

// ParseClock parses "HH:MM" into an offset from midnight. "24:00" is accepted
// as end of day.
func ParseClock(s string) (time.Duration, error) {
	if s == "24:00" {
		return 24 * time.Hour, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

// TimeWindowPolicy checks a candidate window before any store access.
type TimeWindowPolicy struct {
	hours OperatingHours
	loc   *time.Location
}

func NewTimeWindowPolicy(hours OperatingHours, loc *time.Location) TimeWindowPolicy {
	if loc == nil {
		loc = time.UTC
	}
	return TimeWindowPolicy{hours: hours, loc: loc}
}

func (p TimeWindowPolicy) Hours() OperatingHours { return p.hours }

func (p TimeWindowPolicy) Location() *time.Location { return p.loc }

// Validate returns nil when [start, end) may be booked at instant now.
// Checks run in a fixed order: past start, inverted window, start hours, end hours.
func (p TimeWindowPolicy) Validate(start, end, now time.Time) error {
	if !start.After(now) {
		return ErrPastStartTime
	}
	if !end.After(start) {
		return ErrInvertedWindow
	}

	opensAt, closesAt := p.dayBounds(start)
	if start.Before(opensAt) || !start.Before(closesAt) {
		return ErrStartOutsideHours
	}
	if end.After(closesAt) || !end.After(opensAt) {
		return ErrEndOutsideHours
	}
	return nil
}

// dayBounds returns opening and closing instants on the calendar day of t.
func (p TimeWindowPolicy) dayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(p.loc)
	y, m, d := local.Date()
	at := func(off time.Duration) time.Time {
		return time.Date(y, m, d, int(off/time.Hour), int(off%time.Hour/time.Minute), 0, 0, p.loc)
	}
	return at(p.hours.Open), at(p.hours.Close)
}
