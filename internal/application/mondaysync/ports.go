package mondaysync

import (
	"context"

	"github.com/AG-g1/more-house/internal/domain/repository"
	"github.com/AG-g1/more-house/internal/infrastructure/monday"
)

// BoardReader puerto de lectura del CRM de tableros.
type BoardReader interface {
	AllItems(ctx context.Context, boardID string) ([]monday.Item, error)
	BoardsInfo(ctx context.Context, boardIDs []string) ([]monday.BoardInfo, error)
}

// TxRunner ejecuta el callback dentro de una única transacción: todos los
// writes de un pase de sincronización se confirman juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		rooms repository.RoomRepository,
		contracts repository.ContractRepository,
		schedule repository.ScheduleRepository,
		received repository.ReceivedPaymentRepository,
	) error) error
}
