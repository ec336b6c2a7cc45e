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

type CatalogRepository struct {
	querier
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{querier: querier{pool: pool}}
}

func (r *CatalogRepository) ListRoomSummaries(ctx context.Context, now time.Time) ([]domain.RoomSummary, error) {
	const query = `
SELECT rm.id, rm.name, rm.capacity, rm.description, rm.created_at,
	(SELECT COUNT(*) FROM reservations rs WHERE rs.room_id = rm.id AND rs.end_time >= $1)
FROM rooms rm
ORDER BY rm.created_at ASC, rm.name ASC`
	rows, err := r.query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list room summaries: %w", err)
	}
	defer rows.Close()

	var out []domain.RoomSummary
	for rows.Next() {
		var s domain.RoomSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Capacity, &s.Description, &s.CreatedAt, &s.UpcomingReservations); err != nil {
			return nil, fmt.Errorf("scan room summary: %w", err)
		}
		s.CreatedAt = s.CreatedAt.UTC()
		out = append(out, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate room summaries: %w", rows.Err())
	}
	return out, nil
}

func (r *CatalogRepository) GetRoom(ctx context.Context, roomID string) (domain.Room, error) {
	const query = `SELECT id, name, capacity, description, created_at FROM rooms WHERE id = $1`
	var room domain.Room
	err := r.queryRow(ctx, query, roomID).Scan(&room.ID, &room.Name, &room.Capacity, &room.Description, &room.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) || errors.Is(err, pgx.ErrNoRows) {
			return domain.Room{}, domain.ErrRoomNotFound
		}
		return domain.Room{}, fmt.Errorf("get room: %w", err)
	}
	room.CreatedAt = room.CreatedAt.UTC()
	return room, nil
}

func (r *CatalogRepository) ListUpcomingByRoom(ctx context.Context, roomID string, now time.Time) ([]domain.Reservation, error) {
	query := `
SELECT ` + reservationColumns + `
FROM reservations
WHERE room_id = $1 AND end_time >= $2
ORDER BY start_time ASC`
	rows, err := r.query(ctx, query, roomID, now)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("list upcoming reservations: %w", err)
	}
	return scanReservations(rows)
}

func (r *CatalogRepository) ListReservationsByOwner(ctx context.Context, ownerID string) ([]domain.Reservation, error) {
	query := `
SELECT ` + reservationColumns + `
FROM reservations
WHERE owner_id = $1
ORDER BY created_at DESC, start_time DESC`
	rows, err := r.query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list reservations by owner: %w", err)
	}
	return scanReservations(rows)
}
