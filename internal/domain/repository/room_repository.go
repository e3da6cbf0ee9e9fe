package repository

import (
	"context"

	"github.com/AG-g1/more-house/internal/domain/entity"
)

// RoomRepository puerto de persistencia de habitaciones.
// Las habitaciones se crean o actualizan por sincronización/importación;
// el camino de sync nunca borra.
type RoomRepository interface {
	// GetByRoomID devuelve nil, nil si la habitación no existe.
	GetByRoomID(ctx context.Context, roomID string) (*entity.Room, error)
	// Upsert inserta la habitación o actualiza sus atributos si ya existe.
	Upsert(ctx context.Context, room *entity.Room) error
	// CreatePlaceholder crea una habitación con valores centinela (TBD) para
	// que el insert del contrato no falle; un pase de sync de habitaciones
	// la rellena después.
	CreatePlaceholder(ctx context.Context, roomID string) error
}
