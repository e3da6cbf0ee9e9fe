package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BucketAmount importe agregado por bucket (semana o mes). Solo hay filas
// para buckets con datos; el caso de uso rellena los ceros.
type BucketAmount struct {
	Bucket time.Time
	Amount decimal.Decimal
	Count  int
}

// ExpectedPayment fila del detalle de pagos esperados.
type ExpectedPayment struct {
	ID           int
	ContractID   int
	RoomID       string
	ResidentName string
	DueDate      time.Time
	Amount       decimal.Decimal
	PaymentType  string
	Status       string
}

// OverduePayment pago pendiente con fecha de vencimiento pasada.
type OverduePayment struct {
	ID           int
	RoomID       string
	ResidentName string
	DueDate      time.Time
	Amount       decimal.Decimal
	DaysOverdue  int
}

// CashflowRepository consultas de solo lectura para la proyección de caja.
type CashflowRepository interface {
	// ScheduledByMonth importes del calendario de pagos agrupados por mes de vencimiento.
	ScheduledByMonth(ctx context.Context) ([]BucketAmount, error)
	// ScheduledByWeek lo mismo por semana ISO (lunes).
	ScheduledByWeek(ctx context.Context) ([]BucketAmount, error)
	// ReceivedByMonth pagos recibidos agrupados por mes de pago.
	ReceivedByMonth(ctx context.Context) ([]BucketAmount, error)
	// OpexByMonth presupuesto de gastos operativos agrupado por mes.
	OpexByMonth(ctx context.Context) ([]BucketAmount, error)
	// ExpectedInflows suma de vencimientos en [from, to).
	ExpectedInflows(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	ExpectedPayments(ctx context.Context, from, to time.Time) ([]ExpectedPayment, error)
	OverduePayments(ctx context.Context, asOf time.Time) ([]OverduePayment, error)
}

// StatsRepository recuentos de filas para el estado de sincronización.
type StatsRepository interface {
	TableCounts(ctx context.Context) (map[string]int, error)
}
