package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationRepository serializes writers per room by locking the room row.
// The reservations_no_overlap exclusion constraint backs the same rule.
type ReservationRepository struct {
	querier
	lockTimeout time.Duration
}

func NewReservationRepository(pool *pgxpool.Pool, lockTimeout time.Duration) *ReservationRepository {
	return &ReservationRepository{querier: querier{pool: pool}, lockTimeout: lockTimeout}
}

func (r *ReservationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, func(txCtx context.Context) error {
		if err := setLockTimeout(txCtx, txFromContext(txCtx), r.lockTimeout); err != nil {
			return fmt.Errorf("set lock timeout: %w", err)
		}
		return fn(txCtx)
	})
}

func (r *ReservationRepository) WithRoomLock(ctx context.Context, roomID string, fn func(ctx context.Context) error) error {
	return r.WithTx(ctx, func(txCtx context.Context) error {
		var id string
		err := r.queryRow(txCtx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, roomID).Scan(&id)
		if err != nil {
			if isInvalidUUID(err) || errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRoomNotFound
			}
			if isLockNotAvailable(err) {
				return domain.ErrBusy
			}
			return fmt.Errorf("lock room: %w", err)
		}
		return fn(txCtx)
	})
}

func (r *ReservationRepository) ListReservationsByRoom(ctx context.Context, roomID string, w domain.Window) ([]domain.Reservation, error) {
	query := `
SELECT ` + reservationColumns + `
FROM reservations
WHERE room_id = $1 AND start_time < $3 AND end_time > $2
ORDER BY start_time ASC`
	rows, err := r.query(ctx, query, roomID, w.Start, w.End)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("list reservations by room: %w", err)
	}
	return scanReservations(rows)
}

func (r *ReservationRepository) CreateReservation(ctx context.Context, res domain.Reservation) error {
	const stmt = `
INSERT INTO reservations (id, room_id, owner_id, start_time, end_time, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		res.ID,
		res.RoomID,
		res.OwnerID,
		res.Start,
		res.End,
		res.Note,
		res.CreatedAt,
	)
	if err != nil {
		switch {
		case isExclusionViolation(err):
			return domain.ErrConflict
		case isForeignKeyViolation(err):
			return domain.ErrRoomNotFound
		case isInvalidUUID(err):
			return domain.ErrInvalidID
		case isLockNotAvailable(err):
			return domain.ErrBusy
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetReservationForUpdate(ctx context.Context, reservationID string) (domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`
	rows, err := r.query(ctx, query, reservationID)
	var found []domain.Reservation
	if err == nil {
		found, err = scanReservations(rows)
	}
	if err != nil {
		switch {
		case isInvalidUUID(err):
			return domain.Reservation{}, domain.ErrReservationNotFound
		case isLockNotAvailable(err):
			return domain.Reservation{}, domain.ErrBusy
		}
		return domain.Reservation{}, fmt.Errorf("get reservation: %w", err)
	}
	if len(found) == 0 {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return found[0], nil
}

func (r *ReservationRepository) DeleteReservation(ctx context.Context, reservationID string) error {
	tag, err := r.exec(ctx, `DELETE FROM reservations WHERE id = $1`, reservationID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrReservationNotFound
		}
		return fmt.Errorf("delete reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}
