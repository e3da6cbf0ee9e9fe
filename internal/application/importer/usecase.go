// Package importer carga el informe de ocupación en Excel (hoja Booked
// Units) en el almacén relacional: habitaciones, contratos y el calendario de
// pagos generado a partir de los términos de cada contrato.
package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/AG-g1/more-house/internal/application/mondaysync"
	"github.com/AG-g1/more-house/internal/application/schedule"
	"github.com/AG-g1/more-house/internal/domain/entity"
	"github.com/AG-g1/more-house/internal/domain/repository"
)

// BookedUnitRow fila cruda de la hoja Booked Units; todos los campos llegan
// como texto tal cual los muestra la hoja.
type BookedUnitRow struct {
	RoomID       string
	Floor        string
	Sqm          string
	Category     string
	WeeklyRate   string
	ResidentName string
	WeeksBooked  string
	StartDate    string
	EndDate      string
	TotalValue   string
	Nationality  string
	University   string
	LevelOfStudy string
	Source       string
	LeadSource   string
	PaymentPlan  string
}

// SheetReader lee las filas de la hoja Booked Units de un fichero.
type SheetReader interface {
	ReadBookedUnits(path string) ([]BookedUnitRow, error)
}

// Stats contadores de una importación.
type Stats struct {
	RoomsImported     int `json:"rooms_imported"`
	ContractsImported int `json:"contracts_imported"`
	PaymentsGenerated int `json:"payments_generated"`
	Skipped           int `json:"skipped"`
}

// Options flags de la importación.
type Options struct {
	// ClearExisting borra pagos, calendario y contratos antes de importar.
	ClearExisting bool
}

// UseCase importación de un informe de ocupación.
type UseCase struct {
	reader SheetReader
	tx     mondaysync.TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(reader SheetReader, tx mondaysync.TxRunner) *UseCase {
	return &UseCase{reader: reader, tx: tx}
}

// Import lee el fichero y carga habitaciones, contratos y calendario en una
// única transacción. Las filas sin habitación, residente o fechas completas
// se saltan y se cuentan.
func (uc *UseCase) Import(ctx context.Context, path string, opts Options) (Stats, error) {
	var stats Stats

	rows, err := uc.reader.ReadBookedUnits(path)
	if err != nil {
		return stats, fmt.Errorf("leer informe: %w", err)
	}
	log.Info().Str("file", path).Int("rows", len(rows)).Msg("informe de ocupación leído")

	err = uc.tx.Run(ctx, func(
		rooms repository.RoomRepository,
		contracts repository.ContractRepository,
		scheduleRepo repository.ScheduleRepository,
		received repository.ReceivedPaymentRepository,
	) error {
		if opts.ClearExisting {
			log.Info().Msg("borrando datos existentes antes de importar")
			if err := received.DeleteAll(ctx); err != nil {
				return err
			}
			if err := scheduleRepo.DeleteAll(ctx); err != nil {
				return err
			}
			if err := contracts.DeleteAll(ctx); err != nil {
				return err
			}
		}

		// Primero el inventario: una habitación por room_id, la primera fila gana.
		seen := make(map[string]bool)
		for _, row := range rows {
			roomID := strings.TrimSpace(row.RoomID)
			if roomID == "" || seen[roomID] {
				continue
			}
			seen[roomID] = true

			err := rooms.Upsert(ctx, &entity.Room{
				RoomID:     roomID,
				Floor:      strings.TrimSpace(row.Floor),
				Category:   strings.TrimSpace(row.Category),
				Sqm:        mondaysync.ParseAmount(row.Sqm),
				WeeklyRate: mondaysync.ParseAmount(row.WeeklyRate),
			})
			if err != nil {
				return err
			}
			stats.RoomsImported++
		}

		for _, row := range rows {
			roomID := strings.TrimSpace(row.RoomID)
			resident := strings.TrimSpace(row.ResidentName)
			if roomID == "" || resident == "" {
				stats.Skipped++
				continue
			}

			start := parseFlexibleDate(row.StartDate)
			end := parseFlexibleDate(row.EndDate)
			if start == nil || end == nil {
				stats.Skipped++
				log.Warn().Str("room", roomID).Str("resident", resident).Msg("fila con fechas inválidas, saltada")
				continue
			}

			total := decimal.Zero
			if v := mondaysync.ParseAmount(row.TotalValue); v != nil {
				total = *v
			}
			plan := strings.TrimSpace(row.PaymentPlan)
			if plan == "" {
				plan = entity.PlanInstallments
			}

			contractID, err := contracts.Create(ctx, &entity.Contract{
				RoomID:       roomID,
				ResidentName: resident,
				StartDate:    *start,
				EndDate:      *end,
				WeeklyRate:   mondaysync.ParseAmount(row.WeeklyRate),
				TotalValue:   total,
				WeeksBooked:  mondaysync.ParseAmount(row.WeeksBooked),
				PaymentPlan:  plan,
				Status:       entity.ContractActive,
				Nationality:  optional(row.Nationality),
				University:   optional(row.University),
				LevelOfStudy: optional(row.LevelOfStudy),
				Source:       optional(row.Source),
				LeadSource:   optional(row.LeadSource),
			})
			if err != nil {
				return err
			}
			stats.ContractsImported++

			for _, p := range schedule.Generate(contractID, total, *start, *end, plan) {
				payment := p
				if err := scheduleRepo.Insert(ctx, &payment); err != nil {
					return err
				}
				stats.PaymentsGenerated++
			}
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("importar informe: %w", err)
	}

	log.Info().
		Int("rooms", stats.RoomsImported).
		Int("contracts", stats.ContractsImported).
		Int("payments", stats.PaymentsGenerated).
		Int("skipped", stats.Skipped).
		Msg("importación terminada")
	return stats, nil
}

// dateLayouts formatos aceptados en las celdas de fecha del informe: ISO y
// los dos órdenes día/mes habituales. El primero que encaje gana.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "01/02/2006"}

func parseFlexibleDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
