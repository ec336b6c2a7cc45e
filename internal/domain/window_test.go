package domain

import (
	"testing"
	"time"
)

func TestWindow_Overlaps(t *testing.T) {
	t.Parallel()

	at := func(h, m int) time.Time {
		return time.Date(2025, 3, 4, h, m, 0, 0, time.UTC)
	}
	base := Window{Start: at(9, 0), End: at(10, 0)}

	tests := []struct {
		name  string
		other Window
		want  bool
	}{
		{name: "identical", other: base, want: true},
		{name: "contained", other: Window{Start: at(9, 15), End: at(9, 45)}, want: true},
		{name: "containing", other: Window{Start: at(8, 0), End: at(11, 0)}, want: true},
		{name: "overlaps start", other: Window{Start: at(8, 30), End: at(9, 30)}, want: true},
		{name: "overlaps end", other: Window{Start: at(9, 30), End: at(10, 30)}, want: true},
		{name: "touches end", other: Window{Start: at(10, 0), End: at(11, 0)}, want: false},
		{name: "touches start", other: Window{Start: at(8, 0), End: at(9, 0)}, want: false},
		{name: "disjoint", other: Window{Start: at(13, 0), End: at(14, 0)}, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Fatalf("expected symmetric result %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHasConflict_IgnoresOtherRooms(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	w := Window{Start: start, End: start.Add(time.Hour)}
	existing := []Reservation{
		{ID: "r1", RoomID: "room-2", Start: start, End: start.Add(time.Hour)},
		{ID: "r2", RoomID: "room-1", Start: start.Add(time.Hour), End: start.Add(2 * time.Hour)},
	}

	if HasConflict(existing, "room-1", w) {
		t.Fatalf("expected no conflict: other room and back-to-back only")
	}

	existing = append(existing, Reservation{ID: "r3", RoomID: "room-1", Start: start.Add(30 * time.Minute), End: start.Add(90 * time.Minute)})
	if !HasConflict(existing, "room-1", w) {
		t.Fatalf("expected conflict with partial overlap")
	}
}

func TestCanCancel(t *testing.T) {
	t.Parallel()

	r := Reservation{ID: "r1", OwnerID: "user-1"}
	if !CanCancel(r, "user-1") {
		t.Fatalf("expected owner to be allowed")
	}
	if CanCancel(r, "user-2") {
		t.Fatalf("expected non-owner to be rejected")
	}
	if CanCancel(Reservation{}, "") {
		t.Fatalf("expected empty requester to be rejected")
	}
}
