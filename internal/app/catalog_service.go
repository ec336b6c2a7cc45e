package app

import (
	"context"
	"time"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/clock"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
)

// CatalogRepository serves read-only listings. Implementations must not wait
// on room locks.
type CatalogRepository interface {
	ListRoomSummaries(ctx context.Context, now time.Time) ([]domain.RoomSummary, error)
	GetRoom(ctx context.Context, roomID string) (domain.Room, error)
	ListUpcomingByRoom(ctx context.Context, roomID string, now time.Time) ([]domain.Reservation, error)
	ListReservationsByOwner(ctx context.Context, ownerID string) ([]domain.Reservation, error)
}

type CatalogService struct {
	repo  CatalogRepository
	clock clock.Clock
}

func NewCatalogService(repo CatalogRepository, clk clock.Clock) *CatalogService {
	return &CatalogService{repo: repo, clock: clk}
}

type RoomSchedule struct {
	Room         domain.Room
	Reservations []domain.Reservation
}

func (s *CatalogService) ListRooms(ctx context.Context) ([]domain.RoomSummary, error) {
	return s.repo.ListRoomSummaries(ctx, s.clock.Now())
}

// GetRoomSchedule returns the room and its reservations that have not ended,
// earliest first.
func (s *CatalogService) GetRoomSchedule(ctx context.Context, roomID string) (RoomSchedule, error) {
	if roomID == "" {
		return RoomSchedule{}, domain.ErrInvalidID
	}
	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return RoomSchedule{}, err
	}
	reservations, err := s.repo.ListUpcomingByRoom(ctx, roomID, s.clock.Now())
	if err != nil {
		return RoomSchedule{}, err
	}
	return RoomSchedule{Room: room, Reservations: reservations}, nil
}

// ListMyReservations returns the owner's reservations, newest first.
func (s *CatalogService) ListMyReservations(ctx context.Context, ownerID string) ([]domain.Reservation, error) {
	if ownerID == "" {
		return nil, domain.ErrOwnerRequired
	}
	return s.repo.ListReservationsByOwner(ctx, ownerID)
}
