package domain

import "time"

// MaxNoteLength is the longest free-text note accepted on a reservation, in runes.
const MaxNoteLength = 500

// Reservation is a committed, immutable claim on a room for [Start, End).
type Reservation struct {
	ID        string
	RoomID    string
	OwnerID   string
	Start     time.Time
	End       time.Time
	Note      string
	CreatedAt time.Time
}

func (r Reservation) Window() Window {
	return Window{Start: r.Start, End: r.End}
}

// CanCancel reports whether requesterID may remove the reservation.
func CanCancel(r Reservation, requesterID string) bool {
	return requesterID != "" && r.OwnerID == requesterID
}
