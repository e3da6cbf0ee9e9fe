package repository

import (
	"context"

	"github.com/AG-g1/more-house/internal/domain/entity"
)

// ContractRepository puerto de persistencia de contratos.
type ContractRepository interface {
	// GetByMondayID devuelve nil, nil si no hay contrato con ese id externo.
	GetByMondayID(ctx context.Context, mondayID string) (*entity.Contract, error)
	// Create inserta un contrato y devuelve el id generado.
	Create(ctx context.Context, c *entity.Contract) (int, error)
	Update(ctx context.Context, c *entity.Contract) error
	// DeleteAll vacía la tabla (usado por --clear antes de una reimportación).
	DeleteAll(ctx context.Context) error
}
