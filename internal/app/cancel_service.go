package app

import (
	"context"
	"io"
	"log"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/clock"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
)

// CancellationRepository removes reservations. It never takes the room lock:
// deleting a reservation cannot introduce a conflict.
type CancellationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetReservationForUpdate(ctx context.Context, reservationID string) (domain.Reservation, error)
	DeleteReservation(ctx context.Context, reservationID string) error
}

type CancellationService struct {
	repo   CancellationRepository
	clock  clock.Clock
	logger *log.Logger
}

func NewCancellationService(repo CancellationRepository, clk clock.Clock, logger *log.Logger) *CancellationService {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &CancellationService{repo: repo, clock: clk, logger: logger}
}

// CancelReservation deletes reservationID on behalf of requesterID. It returns
// domain.ErrReservationNotFound, domain.ErrForbidden, domain.ErrBusy, or
// domain.ErrReservationStarted once the reservation's start is not in the future.
func (s *CancellationService) CancelReservation(ctx context.Context, reservationID, requesterID string) error {
	if reservationID == "" {
		return domain.ErrReservationNotFound
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		reservation, err := s.repo.GetReservationForUpdate(txCtx, reservationID)
		if err != nil {
			return err
		}
		if !domain.CanCancel(reservation, requesterID) {
			return domain.ErrForbidden
		}
		if !reservation.Start.After(s.clock.Now()) {
			return domain.ErrReservationStarted
		}
		return s.repo.DeleteReservation(txCtx, reservationID)
	})
	if err != nil {
		switch err {
		case domain.ErrForbidden:
			s.logger.Printf("reservation cancel forbidden id=%s requester_id=%s", reservationID, requesterID)
		case domain.ErrReservationStarted:
			s.logger.Printf("reservation cancel rejected, already started id=%s requester_id=%s", reservationID, requesterID)
		}
		return err
	}

	s.logger.Printf("reservation cancelled id=%s requester_id=%s", reservationID, requesterID)
	return nil
}
