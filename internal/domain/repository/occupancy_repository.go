package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SummaryMetrics métricas de ocupación actuales (contratos activos).
type SummaryMetrics struct {
	Occupied         int
	AvgWeeklyRent    decimal.Decimal
	TotalSignedValue decimal.Decimal
	ContractCount    int
}

// MovementCount entradas y salidas agrupadas por bucket (semana o mes).
// Solo hay filas para buckets con actividad; el caso de uso rellena los ceros.
type MovementCount struct {
	Bucket   time.Time
	MoveIns  int
	MoveOuts int
}

// UpcomingVacancy habitación que queda libre sin reserva de continuación.
type UpcomingVacancy struct {
	RoomID          string
	CurrentTenant   string
	VacatesOn       time.Time
	DaysUntilVacant int
	WeeklyRate      decimal.Decimal
}

// RoomStatus habitación con su ocupante actual (si lo hay).
type RoomStatus struct {
	RoomID        string
	Floor         string
	Category      string
	Sqm           *decimal.Decimal
	CurrentTenant *string
	StartDate     *time.Time
	EndDate       *time.Time
}

// RoomBooking contrato de la línea temporal de una habitación.
type RoomBooking struct {
	RoomID       string
	ResidentName string
	StartDate    time.Time
	EndDate      time.Time
	WeeklyRate   *decimal.Decimal
	TotalValue   decimal.Decimal
	Status       string
}

// OccupancyRepository consultas de solo lectura para métricas de ocupación.
type OccupancyRepository interface {
	// CountOccupied habitaciones distintas con contrato activo que cubre asOf.
	CountOccupied(ctx context.Context, asOf time.Time) (int, error)
	Summary(ctx context.Context, asOf time.Time) (SummaryMetrics, error)
	// MonthlyMovements agrupa entradas/salidas de contratos activos o firmados
	// por mes natural de inicio/fin.
	MonthlyMovements(ctx context.Context) ([]MovementCount, error)
	// WeeklyMovements agrupa por semana ISO (lunes).
	WeeklyMovements(ctx context.Context) ([]MovementCount, error)
	// UpcomingVacancies contratos activos que terminan en [from, to] sin otro
	// contrato de continuación en la misma habitación que empiece dentro de
	// (fin del contrato, to].
	UpcomingVacancies(ctx context.Context, from, to time.Time) ([]UpcomingVacancy, error)
	// AllRooms todas las habitaciones con su ocupante vigente en asOf.
	AllRooms(ctx context.Context, asOf time.Time) ([]RoomStatus, error)
	// RoomTimeline contratos de una habitación ordenados por fecha de inicio.
	RoomTimeline(ctx context.Context, roomID string) ([]RoomBooking, error)
	// AllBookings contratos visibles en la vista de líneas temporales.
	AllBookings(ctx context.Context) ([]RoomBooking, error)
}
