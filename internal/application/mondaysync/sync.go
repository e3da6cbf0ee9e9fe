// Package mondaysync sincroniza habitaciones, contratos y pagos desde el CRM
// de tableros hacia el almacén relacional: mapeo de columnas, normalización y
// reconciliación por upsert con clave externa.
package mondaysync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/AG-g1/more-house/internal/domain/entity"
	"github.com/AG-g1/more-house/internal/domain/repository"
	"github.com/AG-g1/more-house/internal/infrastructure/monday"
	"github.com/AG-g1/more-house/pkg/config"
)

// Options flags de una pasada de sincronización.
type Options struct {
	// DryRun no escribe nada; solo registra lo que haría.
	DryRun bool
	// ClearExisting borra pagos, calendario y contratos antes de importar.
	ClearExisting bool
}

// RoomStats contadores del pase de habitaciones.
type RoomStats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// ContractStats contadores del pase de contratos/pagos.
type ContractStats struct {
	ContractsCreated int `json:"contracts_created"`
	ContractsUpdated int `json:"contracts_updated"`
	PaymentsCreated  int `json:"payments_created"`
	PaymentsUpdated  int `json:"payments_updated"`
	Skipped          int `json:"skipped"`
}

// Result resultado de una sincronización completa (habitaciones + contratos).
type Result struct {
	Rooms     RoomStats      `json:"rooms"`
	Contracts ContractStats  `json:"contracts"`
	Before    map[string]int `json:"before,omitempty"`
	After     map[string]int `json:"after,omitempty"`
	Changes   map[string]int `json:"changes,omitempty"`
}

// BoardSummary metadatos de un tablero sincronizado, para el endpoint de
// estado.
type BoardSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UpdatedAt  string `json:"updated_at"`
	ItemsCount int    `json:"items_count"`
}

// SyncUseCase reconcilia los tableros del CRM contra el almacén relacional.
//
// Semántica de fallos: un registro con campos obligatorios ausentes se salta y
// se cuenta, nunca aborta el lote; un error del CRM o de la base de datos
// aborta el pase completo sin commit parcial (todos los writes van en una
// única transacción).
type SyncUseCase struct {
	boards BoardReader
	tx     TxRunner
	stats  repository.StatsRepository
	cfg    config.MondayConfig
}

// NewSyncUseCase construye el caso de uso.
func NewSyncUseCase(boards BoardReader, tx TxRunner, stats repository.StatsRepository, cfg config.MondayConfig) *SyncUseCase {
	return &SyncUseCase{boards: boards, tx: tx, stats: stats, cfg: cfg}
}

// SyncRooms sincroniza el inventario de habitaciones desde el tablero Unit
// Schedule. Crea o actualiza por room_id; nunca borra.
func (uc *SyncUseCase) SyncRooms(ctx context.Context, opts Options) (RoomStats, error) {
	var stats RoomStats

	log.Info().Str("board", uc.cfg.RoomsBoardID).Msg("descargando habitaciones del CRM")
	items, err := uc.boards.AllItems(ctx, uc.cfg.RoomsBoardID)
	if err != nil {
		return stats, fmt.Errorf("sync habitaciones: %w", err)
	}
	log.Info().Int("items", len(items)).Msg("habitaciones recibidas")

	if opts.DryRun {
		for _, item := range items {
			roomID := strings.TrimSpace(item.Name)
			if roomID == "" {
				stats.Skipped++
				continue
			}
			log.Info().
				Str("room", roomID).
				Str("floor", ColumnText(item, RoomColumns["floor"])).
				Str("category", ColumnText(item, RoomColumns["category"])).
				Msg("dry-run: sincronizaría habitación")
		}
		return stats, nil
	}

	err = uc.tx.Run(ctx, func(
		rooms repository.RoomRepository,
		_ repository.ContractRepository,
		_ repository.ScheduleRepository,
		_ repository.ReceivedPaymentRepository,
	) error {
		for _, item := range items {
			roomID := strings.TrimSpace(item.Name)
			if roomID == "" {
				stats.Skipped++
				continue
			}

			room := entity.Room{
				RoomID:       roomID,
				Floor:        ColumnText(item, RoomColumns["floor"]),
				Category:     ColumnText(item, RoomColumns["category"]),
				Sqm:          ParseAmount(ColumnText(item, RoomColumns["sqm"])),
				WeeklyRate:   ParseAmount(ColumnText(item, RoomColumns["weekly_rate"])),
				MattressSize: strPtr(ColumnText(item, RoomColumns["mattress_size"])),
			}

			existing, err := rooms.GetByRoomID(ctx, roomID)
			if err != nil {
				return err
			}
			if err := rooms.Upsert(ctx, &room); err != nil {
				return err
			}
			if existing == nil {
				stats.Created++
			} else {
				stats.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("sync habitaciones: %w", err)
	}

	log.Info().
		Int("created", stats.Created).
		Int("updated", stats.Updated).
		Int("skipped", stats.Skipped).
		Msg("sincronización de habitaciones terminada")
	return stats, nil
}

// SyncContracts sincroniza contratos, calendario de pagos y pagos recibidos
// desde el tablero Won Deals / Installments.
func (uc *SyncUseCase) SyncContracts(ctx context.Context, opts Options) (ContractStats, error) {
	var stats ContractStats

	log.Info().Str("board", uc.cfg.ContractsBoardID).Msg("descargando contratos del CRM")
	items, err := uc.boards.AllItems(ctx, uc.cfg.ContractsBoardID)
	if err != nil {
		return stats, fmt.Errorf("sync contratos: %w", err)
	}
	log.Info().Int("items", len(items)).Msg("contratos recibidos")

	if opts.DryRun {
		for _, item := range items {
			rec, ok := mapContract(item, &stats)
			if !ok {
				continue
			}
			log.Info().
				Str("resident", rec.residentName).
				Str("room", rec.roomID).
				Str("total", rec.totalValue.StringFixed(2)).
				Msg("dry-run: sincronizaría contrato")
		}
		return stats, nil
	}

	err = uc.tx.Run(ctx, func(
		rooms repository.RoomRepository,
		contracts repository.ContractRepository,
		schedule repository.ScheduleRepository,
		received repository.ReceivedPaymentRepository,
	) error {
		if opts.ClearExisting {
			log.Info().Msg("borrando datos existentes antes de importar")
			if err := received.DeleteAll(ctx); err != nil {
				return err
			}
			if err := schedule.DeleteAll(ctx); err != nil {
				return err
			}
			if err := contracts.DeleteAll(ctx); err != nil {
				return err
			}
		}

		for _, item := range items {
			rec, ok := mapContract(item, &stats)
			if !ok {
				continue
			}
			if err := reconcileContract(ctx, rec, rooms, contracts, schedule, received, &stats); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("sync contratos: %w", err)
	}

	log.Info().
		Int("contracts_created", stats.ContractsCreated).
		Int("contracts_updated", stats.ContractsUpdated).
		Int("payments_created", stats.PaymentsCreated).
		Int("payments_updated", stats.PaymentsUpdated).
		Int("skipped", stats.Skipped).
		Msg("sincronización de contratos terminada")
	return stats, nil
}

// RunFull sincroniza habitaciones y después contratos, con recuentos de tablas
// antes y después para el endpoint de estado.
func (uc *SyncUseCase) RunFull(ctx context.Context) (Result, error) {
	before, err := uc.stats.TableCounts(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("recuentos previos: %w", err)
	}

	roomStats, err := uc.SyncRooms(ctx, Options{})
	if err != nil {
		return Result{}, err
	}
	contractStats, err := uc.SyncContracts(ctx, Options{})
	if err != nil {
		return Result{}, err
	}

	after, err := uc.stats.TableCounts(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("recuentos posteriores: %w", err)
	}

	changes := make(map[string]int, len(before))
	for table, count := range before {
		changes[table] = after[table] - count
	}

	return Result{
		Rooms:     roomStats,
		Contracts: contractStats,
		Before:    before,
		After:     after,
		Changes:   changes,
	}, nil
}

// TableCounts recuentos actuales de las tablas sincronizadas.
func (uc *SyncUseCase) TableCounts(ctx context.Context) (map[string]int, error) {
	return uc.stats.TableCounts(ctx)
}

// BoardsInfo metadatos de los tableros sincronizados, para el estado.
func (uc *SyncUseCase) BoardsInfo(ctx context.Context) ([]BoardSummary, error) {
	boards, err := uc.boards.BoardsInfo(ctx, []string{uc.cfg.RoomsBoardID, uc.cfg.ContractsBoardID})
	if err != nil {
		return nil, err
	}
	out := make([]BoardSummary, 0, len(boards))
	for _, b := range boards {
		out = append(out, BoardSummary{
			ID:         b.ID,
			Name:       b.Name,
			UpdatedAt:  b.UpdatedAt,
			ItemsCount: b.ItemsCount,
		})
	}
	return out, nil
}

// ── Mapeo y reconciliación por registro ──────────────────────────────────────

// contractRecord registro normalizado de un item del tablero de contratos.
type contractRecord struct {
	mondayID     string
	residentName string
	roomID       string
	startDate    *time.Time
	endDate      *time.Time
	totalValue   decimal.Decimal
	rateAgreed   *decimal.Decimal
	paymentPlan  string
	nationality  *string
	university   *string
	installments [entity.InstallmentSlots]installmentRecord
}

type installmentRecord struct {
	due      *time.Time
	amount   *decimal.Decimal
	status   string
	paid     *decimal.Decimal
	paidDate *time.Time
}

// mapContract normaliza un item y aplica las reglas de descarte: sin nombre,
// sin habitación o sin alguna de las dos fechas, el registro se salta y se
// cuenta. Un registro incompleto nunca es error.
func mapContract(item monday.Item, stats *ContractStats) (contractRecord, bool) {
	start, end := ParseTimeline(item, ContractColumns["length_of_stay"])
	rec := contractRecord{
		mondayID:     item.ID,
		residentName: strings.TrimSpace(item.Name),
		roomID:       NormalizeRoomID(ColumnText(item, ContractColumns["unit"])),
		startDate:    start,
		endDate:      end,
		rateAgreed:   ParseAmount(ColumnText(item, ContractColumns["rate_agreed"])),
		paymentPlan:  strings.TrimSpace(ColumnText(item, ContractColumns["payment_plan"])),
		nationality:  strPtr(ColumnText(item, ContractColumns["nationality"])),
		university:   strPtr(ColumnText(item, ContractColumns["university"])),
	}

	if rec.residentName == "" || rec.roomID == "" {
		stats.Skipped++
		log.Debug().Str("item", item.ID).Msg("contrato sin residente o habitación, saltado")
		return rec, false
	}
	if rec.startDate == nil || rec.endDate == nil {
		stats.Skipped++
		log.Debug().
			Str("item", item.ID).
			Str("resident", rec.residentName).
			Msg("contrato sin fechas completas, saltado")
		return rec, false
	}
	if rec.paymentPlan == "" {
		rec.paymentPlan = "Unknown"
	}

	for n := 0; n < entity.InstallmentSlots; n++ {
		key := installmentKeys[n]
		rec.installments[n] = installmentRecord{
			due:      ParseISODate(ColumnText(item, ContractColumns[key+"_due"])),
			amount:   ParseAmount(ColumnText(item, ContractColumns[key+"_amount"])),
			status:   MapPaymentStatus(ColumnText(item, ContractColumns[key+"_status"])),
			paid:     ParseAmount(ColumnText(item, ContractColumns[key+"_paid"])),
			paidDate: ParseISODate(ColumnText(item, ContractColumns[key+"_paid_date"])),
		}
	}

	// Gross income del tablero; si falta, la suma de las cuotas presentes.
	if gross := ParseAmount(ColumnText(item, ContractColumns["gross_income"])); gross != nil {
		rec.totalValue = *gross
	} else {
		total := decimal.Zero
		for _, inst := range rec.installments {
			if inst.amount != nil {
				total = total.Add(*inst.amount)
			}
		}
		rec.totalValue = total
	}

	return rec, true
}

// reconcileContract hace el upsert de un contrato y sus cuotas. La habitación
// referida se crea como placeholder si aún no existe en el inventario.
func reconcileContract(
	ctx context.Context,
	rec contractRecord,
	rooms repository.RoomRepository,
	contracts repository.ContractRepository,
	schedule repository.ScheduleRepository,
	received repository.ReceivedPaymentRepository,
	stats *ContractStats,
) error {
	room, err := rooms.GetByRoomID(ctx, rec.roomID)
	if err != nil {
		return err
	}
	if room == nil {
		log.Warn().Str("room", rec.roomID).Msg("habitación no inventariada, creando placeholder")
		if err := rooms.CreatePlaceholder(ctx, rec.roomID); err != nil {
			return err
		}
	}

	contract := entity.Contract{
		MondayID:     &rec.mondayID,
		RoomID:       rec.roomID,
		ResidentName: rec.residentName,
		StartDate:    *rec.startDate,
		EndDate:      *rec.endDate,
		TotalValue:   rec.totalValue,
		WeeklyRate:   rec.rateAgreed,
		PaymentPlan:  rec.paymentPlan,
		Nationality:  rec.nationality,
		University:   rec.university,
	}

	existing, err := contracts.GetByMondayID(ctx, rec.mondayID)
	if err != nil {
		return err
	}

	var contractID int
	if existing != nil {
		contract.ID = existing.ID
		contract.Status = existing.Status
		if err := contracts.Update(ctx, &contract); err != nil {
			return err
		}
		contractID = existing.ID
		stats.ContractsUpdated++
	} else {
		contract.Status = entity.ContractActive
		contractID, err = contracts.Create(ctx, &contract)
		if err != nil {
			return err
		}
		stats.ContractsCreated++
	}

	for n := 0; n < entity.InstallmentSlots; n++ {
		inst := rec.installments[n]
		if inst.amount == nil || !inst.amount.IsPositive() {
			continue
		}

		existingPay, err := schedule.GetByInstallment(ctx, contractID, n)
		if err != nil {
			return err
		}
		if existingPay != nil {
			existingPay.DueDate = inst.due
			existingPay.Amount = *inst.amount
			existingPay.Status = inst.status
			if err := schedule.Update(ctx, existingPay); err != nil {
				return err
			}
			stats.PaymentsUpdated++
		} else {
			err := schedule.Insert(ctx, &entity.ScheduledPayment{
				ContractID:        contractID,
				InstallmentNumber: n,
				DueDate:           inst.due,
				Amount:            *inst.amount,
				PaymentType:       entity.PaymentTypeRent,
				Status:            inst.status,
			})
			if err != nil {
				return err
			}
			stats.PaymentsCreated++
		}

		// El pago recibido se registra solo con importe y fecha presentes.
		if inst.paid != nil && inst.paid.IsPositive() && inst.paidDate != nil {
			existingRecv, err := received.GetByInstallment(ctx, contractID, n)
			if err != nil {
				return err
			}
			if existingRecv != nil {
				existingRecv.Amount = *inst.paid
				existingRecv.PaymentDate = *inst.paidDate
				if err := received.Update(ctx, existingRecv); err != nil {
					return err
				}
			} else {
				err := received.Insert(ctx, &entity.ReceivedPayment{
					ContractID:             contractID,
					Amount:                 *inst.paid,
					PaymentDate:            *inst.paidDate,
					PaymentMethod:          "monday_sync",
					AllocatedToInstallment: n,
				})
				if err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// strPtr devuelve nil para cadenas vacías (columnas opcionales del CRM).
func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
