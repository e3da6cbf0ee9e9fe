// Aplica las migraciones SQL de ./migrations a la base de datos configurada.
//
//	migrate -command up|down|force
package main

import (
	"flag"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"

	"github.com/AG-g1/more-house/pkg/config"
	"github.com/AG-g1/more-house/pkg/logger"
)

func main() {
	command := flag.String("command", "up", "comando de migración (up, down, force)")
	forceTo := flag.Int("force-version", 1, "versión destino para -command force")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	connConfig, err := pgx.ParseConfig(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("parse DSN")
	}
	if cfg.DB.Schema != "" {
		connConfig.RuntimeParams["search_path"] = cfg.DB.Schema + ",public"
	}
	db := stdlib.OpenDB(*connConfig)
	defer db.Close()

	// El esquema debe existir antes de que el driver cree schema_migrations.
	if cfg.DB.Schema != "" {
		if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + pgx.Identifier{cfg.DB.Schema}.Sanitize()); err != nil {
			log.Fatal().Err(err).Msg("crear esquema")
		}
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{
		SchemaName: cfg.DB.Schema,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear driver de migraciones")
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Fatal().Err(err).Msg("crear migrador")
	}

	switch *command {
	case "up":
		log.Info().Msg("aplicando migraciones...")
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	case "down":
		log.Info().Msg("revirtiendo migraciones...")
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatal().Err(err).Msg("revertir migraciones")
		}
		log.Info().Msg("migraciones revertidas")
	case "force":
		if err := m.Force(*forceTo); err != nil {
			log.Fatal().Err(err).Msg("forzar versión")
		}
		log.Info().Int("version", *forceTo).Msg("versión forzada")
	default:
		log.Fatal().Str("command", *command).Msg("comando desconocido")
	}
}
