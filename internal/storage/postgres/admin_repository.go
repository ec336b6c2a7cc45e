package postgres

import (
	"context"
	"fmt"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) CreateRoom(ctx context.Context, room domain.Room) error {
	const stmt = `
INSERT INTO rooms (id, name, capacity, description, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, stmt, room.ID, room.Name, room.Capacity, room.Description, room.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isUniqueViolation(err) {
			return domain.ErrRoomAlreadyExists
		}
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

func (r *AdminRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	const query = `
SELECT id, name, capacity, description, created_at
FROM rooms
ORDER BY created_at ASC, name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.Description, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		room.CreatedAt = room.CreatedAt.UTC()
		rooms = append(rooms, room)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate rooms: %w", rows.Err())
	}
	return rooms, nil
}
