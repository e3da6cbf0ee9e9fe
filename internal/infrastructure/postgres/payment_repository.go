package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AG-g1/more-house/internal/domain/entity"
	"github.com/AG-g1/more-house/internal/domain/repository"
)

var _ repository.ScheduleRepository = (*ScheduleRepo)(nil)
var _ repository.ReceivedPaymentRepository = (*ReceivedPaymentRepo)(nil)

// ScheduleRepo implementación del puerto ScheduleRepository sobre PostgreSQL (usable con pool o tx).
type ScheduleRepo struct {
	q Querier
}

// NewScheduleRepository construye el adaptador del calendario de pagos.
func NewScheduleRepository(q Querier) *ScheduleRepo {
	return &ScheduleRepo{q: q}
}

// GetByInstallment busca la cuota de un contrato. Devuelve nil, nil si no existe.
func (r *ScheduleRepo) GetByInstallment(ctx context.Context, contractID, installment int) (*entity.ScheduledPayment, error) {
	query := `
		SELECT id, contract_id, installment_number, due_date, amount, payment_type,
		       status, paid_date, paid_amount, monday_id, created_at, updated_at
		FROM payment_schedule
		WHERE contract_id = $1 AND installment_number = $2`
	var p entity.ScheduledPayment
	err := r.q.QueryRow(ctx, query, contractID, installment).Scan(
		&p.ID, &p.ContractID, &p.InstallmentNumber, &p.DueDate, &p.Amount, &p.PaymentType,
		&p.Status, &p.PaidDate, &p.PaidAmount, &p.MondayID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get scheduled payment: %w", err)
	}
	return &p, nil
}

// Insert persiste una cuota nueva.
func (r *ScheduleRepo) Insert(ctx context.Context, p *entity.ScheduledPayment) error {
	query := `
		INSERT INTO payment_schedule (contract_id, installment_number, due_date, amount, payment_type, status)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		p.ContractID, p.InstallmentNumber, p.DueDate, p.Amount, p.PaymentType, p.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert scheduled payment contrato=%d cuota=%d: duplicado", p.ContractID, p.InstallmentNumber)
		}
		return fmt.Errorf("insert scheduled payment: %w", err)
	}
	return nil
}

// Update actualiza vencimiento, importe y estado de una cuota existente.
func (r *ScheduleRepo) Update(ctx context.Context, p *entity.ScheduledPayment) error {
	query := `
		UPDATE payment_schedule SET due_date = $2, amount = $3, status = $4, updated_at = now()
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, p.ID, p.DueDate, p.Amount, p.Status); err != nil {
		return fmt.Errorf("update scheduled payment: %w", err)
	}
	return nil
}

// DeleteAll vacía el calendario de pagos.
func (r *ScheduleRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM payment_schedule`); err != nil {
		return fmt.Errorf("delete payment_schedule: %w", err)
	}
	return nil
}

// ReceivedPaymentRepo implementación del puerto ReceivedPaymentRepository sobre PostgreSQL.
type ReceivedPaymentRepo struct {
	q Querier
}

// NewReceivedPaymentRepository construye el adaptador de pagos recibidos.
func NewReceivedPaymentRepository(q Querier) *ReceivedPaymentRepo {
	return &ReceivedPaymentRepo{q: q}
}

// GetByInstallment busca el pago recibido imputado a una cuota. Devuelve nil, nil si no existe.
func (r *ReceivedPaymentRepo) GetByInstallment(ctx context.Context, contractID, installment int) (*entity.ReceivedPayment, error) {
	query := `
		SELECT id, contract_id, payment_date, amount, payment_method, allocated_to_installment, created_at
		FROM payments_received
		WHERE contract_id = $1 AND allocated_to_installment = $2`
	var p entity.ReceivedPayment
	err := r.q.QueryRow(ctx, query, contractID, installment).Scan(
		&p.ID, &p.ContractID, &p.PaymentDate, &p.Amount, &p.PaymentMethod,
		&p.AllocatedToInstallment, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get received payment: %w", err)
	}
	return &p, nil
}

// Insert persiste un pago recibido.
func (r *ReceivedPaymentRepo) Insert(ctx context.Context, p *entity.ReceivedPayment) error {
	query := `
		INSERT INTO payments_received (contract_id, payment_date, amount, payment_method, allocated_to_installment)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		p.ContractID, p.PaymentDate, p.Amount, p.PaymentMethod, p.AllocatedToInstallment,
	)
	if err != nil {
		return fmt.Errorf("insert received payment: %w", err)
	}
	return nil
}

// Update actualiza fecha e importe de un pago recibido.
func (r *ReceivedPaymentRepo) Update(ctx context.Context, p *entity.ReceivedPayment) error {
	query := `UPDATE payments_received SET payment_date = $2, amount = $3 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, p.ID, p.PaymentDate, p.Amount); err != nil {
		return fmt.Errorf("update received payment: %w", err)
	}
	return nil
}

// DeleteAll vacía la tabla de pagos recibidos.
func (r *ReceivedPaymentRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM payments_received`); err != nil {
		return fmt.Errorf("delete payments_received: %w", err)
	}
	return nil
}
