package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AG-g1/more-house/internal/domain"
	"github.com/AG-g1/more-house/internal/domain/entity"
	"github.com/AG-g1/more-house/internal/domain/repository"
)

var _ repository.RoomRepository = (*RoomRepo)(nil)

// RoomRepo implementación del puerto RoomRepository sobre PostgreSQL (usable con pool o tx).
type RoomRepo struct {
	q Querier
}

// NewRoomRepository construye el adaptador de persistencia para habitaciones. Pasar pool o tx (Querier).
func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

// GetByRoomID obtiene una habitación por su clave natural. Devuelve nil, nil si no existe.
func (r *RoomRepo) GetByRoomID(ctx context.Context, roomID string) (*entity.Room, error) {
	query := `
		SELECT id, room_id, floor, category, sqm, weekly_rate, mattress_size, created_at, updated_at
		FROM rooms WHERE room_id = $1`
	var room entity.Room
	err := r.q.QueryRow(ctx, query, roomID).Scan(
		&room.ID, &room.RoomID, &room.Floor, &room.Category,
		&room.Sqm, &room.WeeklyRate, &room.MattressSize, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

// Upsert inserta la habitación o actualiza sus atributos (clave natural room_id).
func (r *RoomRepo) Upsert(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (room_id, floor, category, sqm, weekly_rate, mattress_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (room_id) DO UPDATE SET
			floor = EXCLUDED.floor,
			category = EXCLUDED.category,
			sqm = EXCLUDED.sqm,
			weekly_rate = EXCLUDED.weekly_rate,
			mattress_size = EXCLUDED.mattress_size,
			updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		room.RoomID, room.Floor, room.Category, room.Sqm, room.WeeklyRate, room.MattressSize,
	)
	if err != nil {
		return fmt.Errorf("upsert room: %w", err)
	}
	return nil
}

// CreatePlaceholder crea la habitación con valores centinela TBD.
func (r *RoomRepo) CreatePlaceholder(ctx context.Context, roomID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO rooms (room_id, floor, category) VALUES ($1, 'TBD', 'TBD')`,
		roomID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert placeholder room: %w", err)
	}
	return nil
}
