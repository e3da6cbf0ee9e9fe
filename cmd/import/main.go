// Carga un informe de ocupación xlsx en la base de datos:
//
//	import <fichero.xlsx> [--clear]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AG-g1/more-house/internal/application/importer"
	"github.com/AG-g1/more-house/internal/infrastructure/excel"
	"github.com/AG-g1/more-house/internal/infrastructure/postgres"
	"github.com/AG-g1/more-house/pkg/config"
	"github.com/AG-g1/more-house/pkg/logger"
)

func main() {
	var clear bool

	rootCmd := &cobra.Command{
		Use:   "import <fichero.xlsx>",
		Short: "Importa habitaciones y contratos desde un informe de ocupación",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("conexión a PostgreSQL: %w", err)
			}
			defer pool.Close()

			uc := importer.NewUseCase(excel.NewReader(), postgres.NewTxRunner(pool))
			stats, err := uc.Import(ctx, args[0], importer.Options{ClearExisting: clear})
			if err != nil {
				return err
			}

			fmt.Printf("habitaciones: %d; contratos: %d; pagos generados: %d; filas saltadas: %d\n",
				stats.RoomsImported, stats.ContractsImported, stats.PaymentsGenerated, stats.Skipped)
			return nil
		},
	}
	rootCmd.Flags().BoolVar(&clear, "clear", false, "borra pagos, calendario y contratos antes de importar")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
