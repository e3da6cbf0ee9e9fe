package repository

import (
	"context"

	"github.com/AG-g1/more-house/internal/domain/entity"
)

// ScheduleRepository puerto del calendario de pagos esperados.
// El par (contrato, número de cuota) es único.
type ScheduleRepository interface {
	// GetByInstallment devuelve nil, nil si la cuota no existe todavía.
	GetByInstallment(ctx context.Context, contractID, installment int) (*entity.ScheduledPayment, error)
	Insert(ctx context.Context, p *entity.ScheduledPayment) error
	Update(ctx context.Context, p *entity.ScheduledPayment) error
	DeleteAll(ctx context.Context) error
}

// ReceivedPaymentRepository puerto de pagos recibidos, imputados por
// (contrato, cuota). Solo lo escribe la sincronización externa.
type ReceivedPaymentRepository interface {
	GetByInstallment(ctx context.Context, contractID, installment int) (*entity.ReceivedPayment, error)
	Insert(ctx context.Context, p *entity.ReceivedPayment) error
	Update(ctx context.Context, p *entity.ReceivedPayment) error
	DeleteAll(ctx context.Context) error
}
