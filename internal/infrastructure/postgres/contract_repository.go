package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AG-g1/more-house/internal/domain/entity"
	"github.com/AG-g1/more-house/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo implementación del puerto ContractRepository sobre PostgreSQL (usable con pool o tx).
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador de persistencia para contratos.
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

// GetByMondayID busca un contrato por su identificador externo. Devuelve nil, nil si no existe.
func (r *ContractRepo) GetByMondayID(ctx context.Context, mondayID string) (*entity.Contract, error) {
	query := `
		SELECT id, room_id, resident_name, start_date, end_date, weekly_rate, total_value,
		       weeks_booked, payment_plan, status, nationality, university, level_of_study,
		       source, lead_source, monday_id, created_at, updated_at
		FROM contracts WHERE monday_id = $1`
	var c entity.Contract
	err := r.q.QueryRow(ctx, query, mondayID).Scan(
		&c.ID, &c.RoomID, &c.ResidentName, &c.StartDate, &c.EndDate, &c.WeeklyRate, &c.TotalValue,
		&c.WeeksBooked, &c.PaymentPlan, &c.Status, &c.Nationality, &c.University, &c.LevelOfStudy,
		&c.Source, &c.LeadSource, &c.MondayID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract by monday_id: %w", err)
	}
	return &c, nil
}

// Create inserta un nuevo contrato y devuelve el id generado.
func (r *ContractRepo) Create(ctx context.Context, c *entity.Contract) (int, error) {
	query := `
		INSERT INTO contracts (
			room_id, resident_name, start_date, end_date, weekly_rate, total_value,
			weeks_booked, payment_plan, status, nationality, university, level_of_study,
			source, lead_source, monday_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	var id int
	err := r.q.QueryRow(ctx, query,
		c.RoomID, c.ResidentName, c.StartDate, c.EndDate, c.WeeklyRate, c.TotalValue,
		c.WeeksBooked, c.PaymentPlan, c.Status, c.Nationality, c.University, c.LevelOfStudy,
		c.Source, c.LeadSource, c.MondayID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert contract: %w", err)
	}
	return id, nil
}

// Update actualiza los campos mapeados de un contrato existente.
func (r *ContractRepo) Update(ctx context.Context, c *entity.Contract) error {
	query := `
		UPDATE contracts SET
			room_id = $2,
			resident_name = $3,
			start_date = $4,
			end_date = $5,
			weekly_rate = $6,
			total_value = $7,
			payment_plan = $8,
			nationality = $9,
			university = $10,
			updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.RoomID, c.ResidentName, c.StartDate, c.EndDate,
		c.WeeklyRate, c.TotalValue, c.PaymentPlan, c.Nationality, c.University,
	)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	return nil
}

// DeleteAll vacía la tabla de contratos.
func (r *ContractRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM contracts`); err != nil {
		return fmt.Errorf("delete contracts: %w", err)
	}
	return nil
}
