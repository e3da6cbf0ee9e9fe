// Herramienta de línea de comandos para sincronizar el CRM a mano:
//
//	sync rooms      solo inventario de habitaciones
//	sync contracts  solo contratos y pagos
//	sync all        habitaciones y después contratos
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AG-g1/more-house/internal/application/mondaysync"
	"github.com/AG-g1/more-house/internal/infrastructure/monday"
	"github.com/AG-g1/more-house/internal/infrastructure/postgres"
	"github.com/AG-g1/more-house/pkg/config"
	"github.com/AG-g1/more-house/pkg/logger"
)

func main() {
	var (
		dryRun bool
		clear  bool
	)

	rootCmd := &cobra.Command{
		Use:   "sync",
		Short: "Sincroniza habitaciones, contratos y pagos desde el CRM",
	}
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "no escribe nada, solo registra lo que haría")
	rootCmd.PersistentFlags().BoolVar(&clear, "clear", false, "borra pagos, calendario y contratos antes de importar")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "rooms",
			Short: "Sincroniza solo el inventario de habitaciones",
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(func(ctx context.Context, uc *mondaysync.SyncUseCase) error {
					stats, err := uc.SyncRooms(ctx, mondaysync.Options{DryRun: dryRun})
					if err != nil {
						return err
					}
					fmt.Printf("habitaciones: %d creadas, %d actualizadas, %d saltadas\n",
						stats.Created, stats.Updated, stats.Skipped)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "contracts",
			Short: "Sincroniza solo contratos y pagos",
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(func(ctx context.Context, uc *mondaysync.SyncUseCase) error {
					stats, err := uc.SyncContracts(ctx, mondaysync.Options{DryRun: dryRun, ClearExisting: clear})
					if err != nil {
						return err
					}
					fmt.Printf("contratos: %d creados, %d actualizados; pagos: %d creados, %d actualizados; %d saltados\n",
						stats.ContractsCreated, stats.ContractsUpdated,
						stats.PaymentsCreated, stats.PaymentsUpdated, stats.Skipped)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "all",
			Short: "Sincronización completa: habitaciones y después contratos",
			RunE: func(cmd *cobra.Command, args []string) error {
				if dryRun || clear {
					return fmt.Errorf("los flags --dry-run y --clear solo aplican a rooms y contracts")
				}
				return run(func(ctx context.Context, uc *mondaysync.SyncUseCase) error {
					result, err := uc.RunFull(ctx)
					if err != nil {
						return err
					}
					fmt.Printf("habitaciones: %+v\ncontratos: %+v\ncambios: %v\n",
						result.Rooms, result.Contracts, result.Changes)
					return nil
				})
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run levanta configuración, pool y cliente del CRM y ejecuta fn con todo cableado.
func run(fn func(ctx context.Context, uc *mondaysync.SyncUseCase) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	uc := mondaysync.NewSyncUseCase(
		monday.NewClient(cfg.Monday.APIToken),
		postgres.NewTxRunner(pool),
		postgres.NewCashflowRepository(pool),
		cfg.Monday,
	)
	return fn(ctx, uc)
}
