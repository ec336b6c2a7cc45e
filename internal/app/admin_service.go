package app

import (
	"context"
	"strings"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/clock"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
)

type AdminRepository interface {
	CreateRoom(ctx context.Context, room domain.Room) error
	ListRooms(ctx context.Context) ([]domain.Room, error)
}

type AdminService struct {
	repo  AdminRepository
	clock clock.Clock
}

func NewAdminService(repo AdminRepository, clk clock.Clock) *AdminService {
	return &AdminService{
		repo:  repo,
		clock: clk,
	}
}

type CreateRoomInput struct {
	Name        string
	Capacity    int
	Description string
}

func (s *AdminService) CreateRoom(ctx context.Context, in CreateRoomInput) (domain.Room, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Room{}, domain.ErrRoomNameRequired
	}
	if in.Capacity <= 0 {
		return domain.Room{}, domain.ErrInvalidCapacity
	}

	room := domain.Room{
		ID:          newID(),
		Name:        name,
		Capacity:    in.Capacity,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return domain.Room{}, err
	}
	return room, nil
}

func (s *AdminService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.repo.ListRooms(ctx)
}

// SeedRooms creates rooms only when the store has none. It returns the number
// of rooms created.
func (s *AdminService) SeedRooms(ctx context.Context, rooms []domain.Room) (int, error) {
	existing, err := s.repo.ListRooms(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	created := 0
	for _, room := range rooms {
		_, err := s.CreateRoom(ctx, CreateRoomInput{
			Name:        room.Name,
			Capacity:    room.Capacity,
			Description: room.Description,
		})
		if err == domain.ErrRoomAlreadyExists {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
