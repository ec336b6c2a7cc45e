// Package memory is a process-local store for development and tests. Room
// exclusivity comes from roomlock; writes are staged in a uow.Tx and applied
// on commit.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/storage/roomlock"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/storage/uow"
)

type Store struct {
	mu           sync.RWMutex
	rooms        map[string]domain.Room
	reservations map[string]domain.Reservation

	locks       *roomlock.Locker
	lockTimeout time.Duration
}

func New(lockTimeout time.Duration) *Store {
	return &Store{
		rooms:        make(map[string]domain.Room),
		reservations: make(map[string]domain.Reservation),
		locks:        roomlock.New(),
		lockTimeout:  lockTimeout,
	}
}

func (s *Store) WithRoomLock(ctx context.Context, roomID string, fn func(ctx context.Context) error) error {
	if !s.roomExists(roomID) {
		return domain.ErrRoomNotFound
	}
	release, err := s.locks.Acquire(ctx, roomID, s.lockTimeout)
	if err != nil {
		return err
	}
	defer release()
	return s.WithTx(ctx, fn)
}

func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if uow.From(ctx) != nil {
		return fn(ctx)
	}
	txCtx, tx := uow.Begin(ctx)
	if err := fn(txCtx); err != nil {
		return err
	}
	return s.commit(tx)
}

// commit applies tx atomically. A staged delete whose row is already gone
// means a concurrent unit of work removed it first; nothing is applied.
func (s *Store) commit(tx *uow.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	deletes := tx.Deletes()
	for _, id := range deletes {
		if _, ok := s.reservations[id]; !ok {
			return domain.ErrReservationNotFound
		}
	}
	for _, id := range deletes {
		delete(s.reservations, id)
	}
	for _, r := range tx.Inserts() {
		s.reservations[r.ID] = r
	}
	return nil
}

func (s *Store) roomExists(roomID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[roomID]
	return ok
}

func (s *Store) ListReservationsByRoom(ctx context.Context, roomID string, _ domain.Window) ([]domain.Reservation, error) {
	s.mu.RLock()
	committed := make([]domain.Reservation, 0)
	for _, r := range s.reservations {
		committed = append(committed, r)
	}
	s.mu.RUnlock()

	if tx := uow.From(ctx); tx != nil {
		committed = tx.Visible(committed)
	}
	out := filterRoom(committed, roomID)
	sortByStart(out)
	return out, nil
}

func (s *Store) CreateReservation(ctx context.Context, r domain.Reservation) error {
	if !s.roomExists(r.RoomID) {
		return domain.ErrRoomNotFound
	}
	if tx := uow.From(ctx); tx != nil {
		tx.Insert(r)
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[r.ID] = r
	return nil
}

// GetReservationForUpdate reads without locking. Inside a unit of work the
// matching delete is re-checked on commit, so only one of two racing
// cancellations succeeds.
func (s *Store) GetReservationForUpdate(ctx context.Context, reservationID string) (domain.Reservation, error) {
	tx := uow.From(ctx)
	if tx != nil {
		if tx.Deleted(reservationID) {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		if r, ok := tx.Inserted(reservationID); ok {
			return r, nil
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservations[reservationID]
	if !ok {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return r, nil
}

func (s *Store) DeleteReservation(ctx context.Context, reservationID string) error {
	if _, err := s.GetReservationForUpdate(ctx, reservationID); err != nil {
		return err
	}
	if tx := uow.From(ctx); tx != nil {
		tx.Delete(reservationID)
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reservations[reservationID]; !ok {
		return domain.ErrReservationNotFound
	}
	delete(s.reservations, reservationID)
	return nil
}

func (s *Store) CreateRoom(_ context.Context, room domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.rooms {
		if existing.Name == room.Name {
			return domain.ErrRoomAlreadyExists
		}
	}
	s.rooms[room.ID] = room
	return nil
}

func (s *Store) ListRooms(_ context.Context) ([]domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]domain.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		}
		return rooms[i].Name < rooms[j].Name
	})
	return rooms, nil
}

func (s *Store) GetRoom(_ context.Context, roomID string) (domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	return room, nil
}

func (s *Store) ListRoomSummaries(ctx context.Context, now time.Time) ([]domain.RoomSummary, error) {
	rooms, err := s.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int, len(rooms))
	for _, r := range s.reservations {
		if !r.End.Before(now) {
			counts[r.RoomID]++
		}
	}
	out := make([]domain.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, domain.RoomSummary{Room: room, UpcomingReservations: counts[room.ID]})
	}
	return out, nil
}

func (s *Store) ListUpcomingByRoom(_ context.Context, roomID string, now time.Time) ([]domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Reservation
	for _, r := range s.reservations {
		if r.RoomID == roomID && !r.End.Before(now) {
			out = append(out, r)
		}
	}
	sortByStart(out)
	return out, nil
}

func (s *Store) ListReservationsByOwner(_ context.Context, ownerID string) ([]domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Reservation
	for _, r := range s.reservations {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Start.After(out[j].Start)
	})
	return out, nil
}

func filterRoom(in []domain.Reservation, roomID string) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(in))
	for _, r := range in {
		if r.RoomID == roomID {
			out = append(out, r)
		}
	}
	return out
}

func sortByStart(rs []domain.Reservation) {
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].Start.Before(rs[j].Start)
	})
}
