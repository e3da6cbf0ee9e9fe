package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/AG-g1/more-house/internal/domain/repository"
)

var _ repository.OccupancyRepository = (*OccupancyRepo)(nil)

// OccupancyRepo consultas de solo lectura para métricas de ocupación.
// Devuelve agregados dispersos (GROUP BY); el relleno de buckets vacíos y los
// totales acumulados viven en el caso de uso.
type OccupancyRepo struct {
	q Querier
}

// NewOccupancyRepository construye el adaptador de ocupación.
func NewOccupancyRepository(q Querier) *OccupancyRepo {
	return &OccupancyRepo{q: q}
}

// CountOccupied habitaciones distintas con contrato activo que cubre asOf.
func (r *OccupancyRepo) CountOccupied(ctx context.Context, asOf time.Time) (int, error) {
	const query = `
	SELECT COUNT(DISTINCT room_id)
	FROM contracts
	WHERE start_date <= $1 AND end_date >= $1
	  AND status = 'active'`
	var occupied int
	if err := r.q.QueryRow(ctx, query, asOf).Scan(&occupied); err != nil {
		return 0, fmt.Errorf("occupancy.CountOccupied: %w", err)
	}
	return occupied, nil
}

// Summary métricas de los contratos activos: ocupación actual, renta semanal
// media, valor total firmado y número de contratos.
// Usa COALESCE para devolver cero si no hay contratos.
func (r *OccupancyRepo) Summary(ctx context.Context, asOf time.Time) (repository.SummaryMetrics, error) {
	const query = `
	SELECT
	    (SELECT COUNT(DISTINCT room_id)
	     FROM contracts
	     WHERE start_date <= $1 AND end_date >= $1 AND status = 'active') AS occupied,
	    COALESCE(AVG(weekly_rate) FILTER (WHERE weekly_rate IS NOT NULL), 0) AS avg_weekly_rent,
	    COALESCE(SUM(total_value), 0)                                        AS total_signed,
	    COUNT(*)                                                             AS contract_count
	FROM contracts
	WHERE status = 'active'`

	var m repository.SummaryMetrics
	err := r.q.QueryRow(ctx, query, asOf).Scan(
		&m.Occupied, &m.AvgWeeklyRent, &m.TotalSignedValue, &m.ContractCount,
	)
	if err != nil {
		return repository.SummaryMetrics{}, fmt.Errorf("occupancy.Summary: %w", err)
	}
	return m, nil
}

// movementsQuery agrupa entradas y salidas por bucket (date_trunc con la
// granularidad indicada) sobre contratos activos o firmados.
const movementsQuery = `
	SELECT bucket, SUM(ins) AS move_ins, SUM(outs) AS move_outs
	FROM (
	    SELECT DATE_TRUNC('%[1]s', start_date)::date AS bucket, 1 AS ins, 0 AS outs
	    FROM contracts WHERE status IN ('active', 'signed')
	    UNION ALL
	    SELECT DATE_TRUNC('%[1]s', end_date)::date, 0, 1
	    FROM contracts WHERE status IN ('active', 'signed')
	) m
	GROUP BY bucket
	ORDER BY bucket`

func (r *OccupancyRepo) movements(ctx context.Context, granularity string) ([]repository.MovementCount, error) {
	rows, err := r.q.Query(ctx, fmt.Sprintf(movementsQuery, granularity))
	if err != nil {
		return nil, fmt.Errorf("occupancy.movements(%s): %w", granularity, err)
	}
	defer rows.Close()

	var results []repository.MovementCount
	for rows.Next() {
		var row repository.MovementCount
		if err := rows.Scan(&row.Bucket, &row.MoveIns, &row.MoveOuts); err != nil {
			return nil, fmt.Errorf("occupancy.movements scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// MonthlyMovements entradas/salidas por mes natural.
func (r *OccupancyRepo) MonthlyMovements(ctx context.Context) ([]repository.MovementCount, error) {
	return r.movements(ctx, "month")
}

// WeeklyMovements entradas/salidas por semana ISO (lunes).
func (r *OccupancyRepo) WeeklyMovements(ctx context.Context) ([]repository.MovementCount, error) {
	return r.movements(ctx, "week")
}

// UpcomingVacancies contratos activos que terminan en [from, to] sin otro
// contrato de continuación en la misma habitación. La continuación se busca
// hasta el final de la ventana, no hasta la fecha de fin de cada contrato.
func (r *OccupancyRepo) UpcomingVacancies(ctx context.Context, from, to time.Time) ([]repository.UpcomingVacancy, error) {
	const query = `
	SELECT
	    c.room_id,
	    c.resident_name,
	    c.end_date,
	    (c.end_date - $1::date) AS days_until_vacant,
	    COALESCE(c.weekly_rate, 0) AS weekly_rate
	FROM contracts c
	WHERE c.status = 'active'
	  AND c.end_date BETWEEN $1 AND $2
	  AND NOT EXISTS (
	      SELECT 1 FROM contracts f
	      WHERE f.room_id = c.room_id
	        AND f.id <> c.id
	        AND f.status IN ('active', 'signed')
	        AND f.start_date > c.end_date
	        AND f.start_date <= $2
	  )
	ORDER BY c.end_date`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("occupancy.UpcomingVacancies: %w", err)
	}
	defer rows.Close()

	var results []repository.UpcomingVacancy
	for rows.Next() {
		var row repository.UpcomingVacancy
		if err := rows.Scan(&row.RoomID, &row.CurrentTenant, &row.VacatesOn,
			&row.DaysUntilVacant, &row.WeeklyRate); err != nil {
			return nil, fmt.Errorf("occupancy.UpcomingVacancies scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// AllRooms todas las habitaciones con su ocupante vigente en asOf (si lo hay).
func (r *OccupancyRepo) AllRooms(ctx context.Context, asOf time.Time) ([]repository.RoomStatus, error) {
	const query = `
	SELECT DISTINCT ON (r.room_id)
	    r.room_id,
	    r.floor,
	    r.category,
	    r.sqm,
	    c.resident_name,
	    c.start_date,
	    c.end_date
	FROM rooms r
	LEFT JOIN contracts c ON c.room_id = r.room_id
	    AND c.start_date <= $1
	    AND c.end_date >= $1
	    AND c.status = 'active'
	ORDER BY r.room_id, c.start_date DESC`

	rows, err := r.q.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("occupancy.AllRooms: %w", err)
	}
	defer rows.Close()

	var results []repository.RoomStatus
	for rows.Next() {
		var row repository.RoomStatus
		if err := rows.Scan(&row.RoomID, &row.Floor, &row.Category, &row.Sqm,
			&row.CurrentTenant, &row.StartDate, &row.EndDate); err != nil {
			return nil, fmt.Errorf("occupancy.AllRooms scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// RoomTimeline contratos de una habitación ordenados por fecha de inicio.
func (r *OccupancyRepo) RoomTimeline(ctx context.Context, roomID string) ([]repository.RoomBooking, error) {
	const query = `
	SELECT room_id, resident_name, start_date, end_date, weekly_rate, total_value, status
	FROM contracts
	WHERE room_id = $1
	ORDER BY start_date`

	rows, err := r.q.Query(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("occupancy.RoomTimeline: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

// AllBookings contratos visibles en la vista de líneas temporales
// (activos, firmados o completados), ordenados por habitación y fecha.
func (r *OccupancyRepo) AllBookings(ctx context.Context) ([]repository.RoomBooking, error) {
	const query = `
	SELECT room_id, resident_name, start_date, end_date, weekly_rate, total_value, status
	FROM contracts
	WHERE status IN ('active', 'signed', 'completed')
	ORDER BY room_id, start_date`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("occupancy.AllBookings: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

type bookingRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanBookings(rows bookingRows) ([]repository.RoomBooking, error) {
	var results []repository.RoomBooking
	for rows.Next() {
		var b repository.RoomBooking
		if err := rows.Scan(&b.RoomID, &b.ResidentName, &b.StartDate, &b.EndDate,
			&b.WeeklyRate, &b.TotalValue, &b.Status); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		results = append(results, b)
	}
	return results, rows.Err()
}
