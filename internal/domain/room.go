package domain

import "time"

// Room is a bookable meeting room. Capacity is informational only.
type Room struct {
	ID          string
	Name        string
	Capacity    int
	Description string
	CreatedAt   time.Time
}

// RoomSummary is a room together with the number of reservations that have not ended yet.
type RoomSummary struct {
	Room
	UpcomingReservations int
}
