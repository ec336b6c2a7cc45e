// Package bolt keeps rooms and reservations in a single BoltDB file.
//
// Bolt serializes all write transactions, but the check-and-insert sequence
// spans a read and a write, so room exclusivity is still provided by a
// roomlock.Locker. Writes made inside a unit of work are staged and written in
// one bolt transaction on commit, which re-checks for overlaps before putting.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "github.com/boltdb/bolt"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/storage/roomlock"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/storage/uow"
)

var (
	roomsBucket        = []byte("rooms")
	reservationsBucket = []byte("reservations")
)

type Store struct {
	db          *bolt.DB
	locks       *roomlock.Locker
	lockTimeout time.Duration
}

// Open opens (or creates) the database at path and ensures its buckets exist.
func Open(path string, lockTimeout time.Duration) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{roomsBucket, reservationsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &Store{db: db, locks: roomlock.New(), lockTimeout: lockTimeout}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type roomRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type reservationRecord struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	OwnerID   string    `json:"owner_id"`
	Start     time.Time `json:"start_time"`
	End       time.Time `json:"end_time"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toReservation(rec reservationRecord) domain.Reservation {
	return domain.Reservation(rec)
}

func toRoom(rec roomRecord) domain.Room {
	return domain.Room(rec)
}

func (s *Store) WithRoomLock(ctx context.Context, roomID string, fn func(ctx context.Context) error) error {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return err
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

func (s *Store) commit(staged *uow.Tx) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(reservationsBucket)
		for _, id := range staged.Deletes() {
			if b.Get([]byte(id)) == nil {
				return domain.ErrReservationNotFound
			}
			if err := b.Delete([]byte(id)); err != nil {
				return err
			}
		}
		if len(staged.Inserts()) == 0 {
			return nil
		}

		committed, err := readReservations(b)
		if err != nil {
			return err
		}
		for _, r := range staged.Inserts() {
			if domain.HasConflict(committed, r.RoomID, r.Window()) {
				return domain.ErrConflict
			}
			if err := putReservation(b, r); err != nil {
				return err
			}
			committed = append(committed, r)
		}
		return nil
	})
}

func (s *Store) ListReservationsByRoom(ctx context.Context, roomID string, w domain.Window) ([]domain.Reservation, error) {
	all, err := s.allReservations()
	if err != nil {
		return nil, err
	}
	if tx := uow.From(ctx); tx != nil {
		all = tx.Visible(all)
	}
	var out []domain.Reservation
	for _, r := range all {
		if r.RoomID == roomID {
			out = append(out, r)
		}
	}
	sortByStart(out)
	return out, nil
}

func (s *Store) CreateReservation(ctx context.Context, r domain.Reservation) error {
	if _, err := s.GetRoom(ctx, r.RoomID); err != nil {
		return err
	}
	if tx := uow.From(ctx); tx != nil {
		tx.Insert(r)
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return putReservation(tx.Bucket(reservationsBucket), r)
	})
}

// GetReservationForUpdate reads without locking; commit re-checks staged
// deletes inside the write transaction.
func (s *Store) GetReservationForUpdate(ctx context.Context, reservationID string) (domain.Reservation, error) {
	if tx := uow.From(ctx); tx != nil {
		if tx.Deleted(reservationID) {
			return domain.Reservation{}, domain.ErrReservationNotFound
		}
		if r, ok := tx.Inserted(reservationID); ok {
			return r, nil
		}
	}

	var rec reservationRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(reservationsBucket).Get([]byte(reservationID))
		if v == nil {
			return domain.ErrReservationNotFound
		}
		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return domain.Reservation{}, err
	}
	return toReservation(rec), nil
}

func (s *Store) DeleteReservation(ctx context.Context, reservationID string) error {
	if _, err := s.GetReservationForUpdate(ctx, reservationID); err != nil {
		return err
	}
	if tx := uow.From(ctx); tx != nil {
		tx.Delete(reservationID)
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(reservationsBucket)
		if b.Get([]byte(reservationID)) == nil {
			return domain.ErrReservationNotFound
		}
		return b.Delete([]byte(reservationID))
	})
}

func (s *Store) CreateRoom(_ context.Context, room domain.Room) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(roomsBucket)
		err := b.ForEach(func(_, v []byte) error {
			var rec roomRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			if rec.Name == room.Name {
				return domain.ErrRoomAlreadyExists
			}
			return nil
		})
		if err != nil {
			return err
		}
		data, err := json.Marshal(roomRecord(room))
		if err != nil {
			return err
		}
		return b.Put([]byte(room.ID), data)
	})
}

func (s *Store) ListRooms(_ context.Context) ([]domain.Room, error) {
	rooms := []domain.Room{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(roomsBucket).ForEach(func(_, v []byte) error {
			var rec roomRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			rooms = append(rooms, toRoom(rec))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
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
	var rec roomRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(roomsBucket).Get([]byte(roomID))
		if v == nil {
			return domain.ErrRoomNotFound
		}
		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return domain.Room{}, err
	}
	return toRoom(rec), nil
}

func (s *Store) ListRoomSummaries(ctx context.Context, now time.Time) ([]domain.RoomSummary, error) {
	rooms, err := s.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.allReservations()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rooms))
	for _, r := range all {
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
	all, err := s.allReservations()
	if err != nil {
		return nil, err
	}
	var out []domain.Reservation
	for _, r := range all {
		if r.RoomID == roomID && !r.End.Before(now) {
			out = append(out, r)
		}
	}
	sortByStart(out)
	return out, nil
}

func (s *Store) ListReservationsByOwner(_ context.Context, ownerID string) ([]domain.Reservation, error) {
	all, err := s.allReservations()
	if err != nil {
		return nil, err
	}
	var out []domain.Reservation
	for _, r := range all {
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

func (s *Store) allReservations() ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		out, err = readReservations(tx.Bucket(reservationsBucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read reservations: %w", err)
	}
	return out, nil
}

func readReservations(b *bolt.Bucket) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := b.ForEach(func(_, v []byte) error {
		var rec reservationRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return err
		}
		out = append(out, toReservation(rec))
		return nil
	})
	return out, err
}

func putReservation(b *bolt.Bucket, r domain.Reservation) error {
	data, err := json.Marshal(reservationRecord(r))
	if err != nil {
		return err
	}
	return b.Put([]byte(r.ID), data)
}

func sortByStart(rs []domain.Reservation) {
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].Start.Before(rs[j].Start)
	})
}
