package postgres

import (
	"context"

	"github.com/baufin/baufin-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RoomRepository implements domain.RoomRepository using PostgreSQL
type RoomRepository struct {
	pool *pgxpool.Pool
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

// Create creates a new room
func (r *RoomRepository) Create(room *domain.Room) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO rooms (id, name, floor, sort_order) VALUES ($1, $2, $3, $4)`,
		room.ID, room.Name, room.Floor, room.SortOrder)
	if isUniqueViolation(err) {
		return domain.ErrRoomExists
	}
	return err
}

// GetByID retrieves a room by ID
func (r *RoomRepository) GetByID(id string) (*domain.Room, error) {
	ctx := context.Background()
	room := &domain.Room{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, floor, sort_order FROM rooms WHERE id = $1`, id).
		Scan(&room.ID, &room.Name, &room.Floor, &room.SortOrder)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

// GetAll retrieves all rooms in sort order
func (r *RoomRepository) GetAll() ([]*domain.Room, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, floor, sort_order FROM rooms ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*domain.Room
	for rows.Next() {
		room := &domain.Room{}
		if err := rows.Scan(&room.ID, &room.Name, &room.Floor, &room.SortOrder); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// Update replaces a room's editable fields
func (r *RoomRepository) Update(room *domain.Room) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx,
		`UPDATE rooms SET name = $2, floor = $3, sort_order = $4 WHERE id = $1`,
		room.ID, room.Name, room.Floor, room.SortOrder)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

// Delete removes a room
func (r *RoomRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}
