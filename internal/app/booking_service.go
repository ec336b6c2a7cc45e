package app

import (
	"context"
	"io"
	"log"
	"time"
	"unicode/utf8"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/clock"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
)

// ReservationRepository is the store side of the booking engine.
//
// WithRoomLock runs fn in a unit of work that holds exclusive access to roomID
// until fn returns; writes made through the context passed to fn are committed
// only when fn returns nil. It returns domain.ErrRoomNotFound for unknown rooms
// and domain.ErrBusy when the lock cannot be acquired in time.
//
// ListReservationsByRoom may narrow its result to reservations intersecting w,
// but callers must not depend on that.
type ReservationRepository interface {
	WithRoomLock(ctx context.Context, roomID string, fn func(ctx context.Context) error) error
	ListReservationsByRoom(ctx context.Context, roomID string, w domain.Window) ([]domain.Reservation, error)
	CreateReservation(ctx context.Context, r domain.Reservation) error
}

type BookingService struct {
	repo   ReservationRepository
	clock  clock.Clock
	policy domain.TimeWindowPolicy
	logger *log.Logger
}

func NewBookingService(repo ReservationRepository, clk clock.Clock, policy domain.TimeWindowPolicy, opts ...BookingServiceOption) *BookingService {
	svc := &BookingService{
		repo:   repo,
		clock:  clk,
		policy: policy,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type BookingServiceOption func(*BookingService)

// WithLogger sets the logger used for conflict and contention outcomes.
func WithLogger(logger *log.Logger) BookingServiceOption {
	return func(s *BookingService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type CreateReservationInput struct {
	RoomID  string
	OwnerID string
	Start   time.Time
	End     time.Time
	Note    string
}

func (s *BookingService) CreateReservation(ctx context.Context, in CreateReservationInput) (domain.Reservation, error) {
	if in.OwnerID == "" {
		return domain.Reservation{}, domain.ErrOwnerRequired
	}
	if in.RoomID == "" {
		return domain.Reservation{}, domain.ErrInvalidID
	}
	if utf8.RuneCountInString(in.Note) > domain.MaxNoteLength {
		return domain.Reservation{}, domain.ErrNoteTooLong
	}

	now := s.clock.Now()
	if err := s.policy.Validate(in.Start, in.End, now); err != nil {
		return domain.Reservation{}, err
	}

	window := domain.Window{Start: in.Start.UTC(), End: in.End.UTC()}
	var result domain.Reservation

	err := s.repo.WithRoomLock(ctx, in.RoomID, func(txCtx context.Context) error {
		existing, err := s.repo.ListReservationsByRoom(txCtx, in.RoomID, window)
		if err != nil {
			return err
		}
		if domain.HasConflict(existing, in.RoomID, window) {
			return domain.ErrConflict
		}

		reservation := domain.Reservation{
			ID:        newID(),
			RoomID:    in.RoomID,
			OwnerID:   in.OwnerID,
			Start:     window.Start,
			End:       window.End,
			Note:      in.Note,
			CreatedAt: now,
		}
		if err := s.repo.CreateReservation(txCtx, reservation); err != nil {
			return err
		}

		result = reservation
		return nil
	})
	if err != nil {
		switch err {
		case domain.ErrConflict:
			s.logger.Printf("reservation conflict room_id=%s start=%s end=%s", in.RoomID, window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))
		case domain.ErrBusy:
			s.logger.Printf("reservation busy room_id=%s", in.RoomID)
		}
		return domain.Reservation{}, err
	}

	s.logger.Printf("reservation created id=%s room_id=%s owner_id=%s", result.ID, result.RoomID, result.OwnerID)
	return result, nil
}
