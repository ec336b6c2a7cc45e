package domain

import "time"

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether w and o share any instant. Windows that only touch
// at a boundary do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && w.End.After(o.Start)
}

// HasConflict reports whether any reservation of roomID in existing overlaps w.
// Reservations for other rooms are ignored.
func HasConflict(existing []Reservation, roomID string, w Window) bool {
	for _, r := range existing {
		if r.RoomID != roomID {
			continue
		}
		if w.Overlaps(r.Window()) {
			return true
		}
	}
	return false
}
