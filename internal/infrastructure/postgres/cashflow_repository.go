package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AG-g1/more-house/internal/domain/repository"
)

var _ repository.CashflowRepository = (*CashflowRepo)(nil)
var _ repository.StatsRepository = (*CashflowRepo)(nil)

// CashflowRepo consultas de solo lectura para la proyección de caja.
type CashflowRepo struct {
	q Querier
}

// NewCashflowRepository construye el adaptador de caja.
func NewCashflowRepository(q Querier) *CashflowRepo {
	return &CashflowRepo{q: q}
}

func (r *CashflowRepo) bucketAmounts(ctx context.Context, query string) ([]repository.BucketAmount, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []repository.BucketAmount
	for rows.Next() {
		var row repository.BucketAmount
		if err := rows.Scan(&row.Bucket, &row.Amount, &row.Count); err != nil {
			return nil, fmt.Errorf("scan bucket: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ScheduledByMonth importes del calendario de pagos agrupados por mes de vencimiento.
func (r *CashflowRepo) ScheduledByMonth(ctx context.Context) ([]repository.BucketAmount, error) {
	const query = `
	SELECT DATE_TRUNC('month', due_date)::date AS bucket, SUM(amount), COUNT(*)
	FROM payment_schedule
	WHERE due_date IS NOT NULL
	GROUP BY 1 ORDER BY 1`
	res, err := r.bucketAmounts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("cashflow.ScheduledByMonth: %w", err)
	}
	return res, nil
}

// ScheduledByWeek importes del calendario agrupados por semana ISO (lunes).
func (r *CashflowRepo) ScheduledByWeek(ctx context.Context) ([]repository.BucketAmount, error) {
	const query = `
	SELECT DATE_TRUNC('week', due_date)::date AS bucket, SUM(amount), COUNT(*)
	FROM payment_schedule
	WHERE due_date IS NOT NULL
	GROUP BY 1 ORDER BY 1`
	res, err := r.bucketAmounts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("cashflow.ScheduledByWeek: %w", err)
	}
	return res, nil
}

// ReceivedByMonth pagos recibidos agrupados por mes de pago.
func (r *CashflowRepo) ReceivedByMonth(ctx context.Context) ([]repository.BucketAmount, error) {
	const query = `
	SELECT DATE_TRUNC('month', payment_date)::date AS bucket, SUM(amount), COUNT(*)
	FROM payments_received
	GROUP BY 1 ORDER BY 1`
	res, err := r.bucketAmounts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("cashflow.ReceivedByMonth: %w", err)
	}
	return res, nil
}

// OpexByMonth presupuesto de gastos operativos agrupado por mes.
func (r *CashflowRepo) OpexByMonth(ctx context.Context) ([]repository.BucketAmount, error) {
	const query = `
	SELECT DATE_TRUNC('month', month_date)::date AS bucket, SUM(amount), COUNT(*)
	FROM opex_budget
	GROUP BY 1 ORDER BY 1`
	res, err := r.bucketAmounts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("cashflow.OpexByMonth: %w", err)
	}
	return res, nil
}

// ExpectedInflows suma de vencimientos del calendario en [from, to).
// Usa COALESCE para devolver cero si no hay vencimientos en el período.
func (r *CashflowRepo) ExpectedInflows(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(amount), 0)
	FROM payment_schedule
	WHERE due_date >= $1 AND due_date < $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("cashflow.ExpectedInflows: %w", err)
	}
	return total, nil
}

// ExpectedPayments detalle de vencimientos en [from, to] con habitación y residente.
func (r *CashflowRepo) ExpectedPayments(ctx context.Context, from, to time.Time) ([]repository.ExpectedPayment, error) {
	const query = `
	SELECT ps.id, ps.contract_id, c.room_id, c.resident_name,
	       ps.due_date, ps.amount, ps.payment_type, ps.status
	FROM payment_schedule ps
	JOIN contracts c ON c.id = ps.contract_id
	WHERE ps.due_date BETWEEN $1 AND $2
	ORDER BY ps.due_date`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("cashflow.ExpectedPayments: %w", err)
	}
	defer rows.Close()

	var results []repository.ExpectedPayment
	for rows.Next() {
		var row repository.ExpectedPayment
		if err := rows.Scan(&row.ID, &row.ContractID, &row.RoomID, &row.ResidentName,
			&row.DueDate, &row.Amount, &row.PaymentType, &row.Status); err != nil {
			return nil, fmt.Errorf("cashflow.ExpectedPayments scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// OverduePayments pagos pendientes con vencimiento anterior a asOf.
func (r *CashflowRepo) OverduePayments(ctx context.Context, asOf time.Time) ([]repository.OverduePayment, error) {
	const query = `
	SELECT ps.id, c.room_id, c.resident_name, ps.due_date, ps.amount,
	       ($1::date - ps.due_date) AS days_overdue
	FROM payment_schedule ps
	JOIN contracts c ON c.id = ps.contract_id
	WHERE ps.status = 'pending'
	  AND ps.due_date < $1
	ORDER BY ps.due_date`

	rows, err := r.q.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("cashflow.OverduePayments: %w", err)
	}
	defer rows.Close()

	var results []repository.OverduePayment
	for rows.Next() {
		var row repository.OverduePayment
		if err := rows.Scan(&row.ID, &row.RoomID, &row.ResidentName,
			&row.DueDate, &row.Amount, &row.DaysOverdue); err != nil {
			return nil, fmt.Errorf("cashflow.OverduePayments scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TableCounts recuentos de filas de las tablas núcleo (estado de sincronización).
func (r *CashflowRepo) TableCounts(ctx context.Context) (map[string]int, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM rooms),
	    (SELECT COUNT(*) FROM contracts),
	    (SELECT COUNT(*) FROM payment_schedule),
	    (SELECT COUNT(*) FROM payments_received)`
	var rooms, contracts, schedule, received int
	if err := r.q.QueryRow(ctx, query).Scan(&rooms, &contracts, &schedule, &received); err != nil {
		return nil, fmt.Errorf("cashflow.TableCounts: %w", err)
	}
	return map[string]int{
		"rooms":             rooms,
		"contracts":         contracts,
		"payment_schedule":  schedule,
		"payments_received": received,
	}, nil
}
