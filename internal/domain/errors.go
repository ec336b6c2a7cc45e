package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrRoomNameRequired      = errors.New("room name required")
	ErrRoomAlreadyExists     = errors.New("room already exists")
	ErrInvalidCapacity       = errors.New("invalid capacity")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrInvalidID             = errors.New("invalid id")
	ErrOwnerRequired         = errors.New("owner id required")
	ErrNoteTooLong           = errors.New("note too long")
	ErrPastStartTime         = errors.New("start time must be in the future")
	ErrInvertedWindow        = errors.New("end time must be after start time")
	ErrOutsideOperatingHours = errors.New("outside operating hours")
	ErrConflict              = errors.New("room is not available for the requested time")
	ErrBusy                  = errors.New("room is busy, retry later")
	ErrForbidden             = errors.New("forbidden")
	ErrReservationStarted    = errors.New("reservation has already started")
)

// ErrStartOutsideHours and ErrEndOutsideHours both match ErrOutsideOperatingHours
// with errors.Is; they differ only in which side of the window is at fault.
var (
	ErrStartOutsideHours = fmt.Errorf("start time %w", ErrOutsideOperatingHours)
	ErrEndOutsideHours   = fmt.Errorf("end time %w", ErrOutsideOperatingHours)
)
