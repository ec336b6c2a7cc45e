package app

import (
	"context"
	"testing"
	"time"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/clock"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
)

type fakeAdminRepo struct {
	rooms []domain.Room

	createRoomErr error
}

func (f *fakeAdminRepo) CreateRoom(ctx context.Context, room domain.Room) error {
	if f.createRoomErr != nil {
		return f.createRoomErr
	}
	f.rooms = append(f.rooms, room)
	return nil
}

func (f *fakeAdminRepo) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return f.rooms, nil
}

func TestAdminService_CreateRoom(t *testing.T) {
	repo := &fakeAdminRepo{}
	now := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	svc := NewAdminService(repo, clock.NewFixed(now))

	got, err := svc.CreateRoom(context.Background(), CreateRoomInput{Name: "  Ruang VIP ", Capacity: 8})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if got.Name != "Ruang VIP" {
		t.Fatalf("expected trimmed name, got %q", got.Name)
	}
	if got.ID == "" {
		t.Fatalf("expected room ID to be set")
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, got.CreatedAt)
	}
	if len(repo.rooms) != 1 {
		t.Fatalf("expected room stored, got %d", len(repo.rooms))
	}
}

func TestAdminService_CreateRoom_Validates(t *testing.T) {
	repo := &fakeAdminRepo{}
	svc := NewAdminService(repo, clock.NewFixed(time.Now()))

	if _, err := svc.CreateRoom(context.Background(), CreateRoomInput{Name: " ", Capacity: 4}); err != domain.ErrRoomNameRequired {
		t.Fatalf("expected ErrRoomNameRequired, got %v", err)
	}
	if _, err := svc.CreateRoom(context.Background(), CreateRoomInput{Name: "A", Capacity: 0}); err != domain.ErrInvalidCapacity {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestAdminService_CreateRoom_PropagatesRepoError(t *testing.T) {
	repo := &fakeAdminRepo{createRoomErr: domain.ErrRoomAlreadyExists}
	svc := NewAdminService(repo, clock.NewFixed(time.Now()))

	if _, err := svc.CreateRoom(context.Background(), CreateRoomInput{Name: "A", Capacity: 4}); err != domain.ErrRoomAlreadyExists {
		t.Fatalf("expected ErrRoomAlreadyExists, got %v", err)
	}
}

func TestAdminService_SeedRooms(t *testing.T) {
	repo := &fakeAdminRepo{}
	svc := NewAdminService(repo, clock.NewFixed(time.Now()))
	ctx := context.Background()

	n, err := svc.SeedRooms(ctx, domain.DefaultRooms())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != len(domain.DefaultRooms()) {
		t.Fatalf("expected %d rooms seeded, got %d", len(domain.DefaultRooms()), n)
	}

	n, err = svc.SeedRooms(ctx, domain.DefaultRooms())
	if err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no rooms on re-seed, got %d", n)
	}
}
