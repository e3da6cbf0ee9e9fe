package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AG-g1/more-house/internal/application/mondaysync"
	"github.com/AG-g1/more-house/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios ligados a una misma
// transacción: o se confirma todo el lote de escritura o nada.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner crea el ejecutor transaccional sobre el pool dado.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

var _ mondaysync.TxRunner = (*TxRunner)(nil)

// Run abre una transacción, construye los repositorios sobre ella y ejecuta
// fn. Un error de fn (o del commit) revierte todo.
func (r *TxRunner) Run(ctx context.Context, fn func(
	rooms repository.RoomRepository,
	contracts repository.ContractRepository,
	schedule repository.ScheduleRepository,
	received repository.ReceivedPaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	err = fn(
		NewRoomRepository(tx),
		NewContractRepository(tx),
		NewScheduleRepository(tx),
		NewReceivedPaymentRepository(tx),
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
