package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago programado.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentOverdue = "overdue"
	PaymentPartial = "partial"
)

// Tipos de pago programado.
const (
	PaymentTypeRent       = "rent"
	PaymentTypeAgentRemit = "agent_remit" // el agente remite quincenas después del inicio
)

// Número de cuotas fijas por contrato: booking fee (0) más cinco cuotas (1-5).
const (
	InstallmentBookingFee = 0
	InstallmentMax        = 5
	InstallmentSlots      = InstallmentMax + 1
)

// ScheduledPayment es una entrada del calendario de pagos esperados de un
// contrato. El par (ContractID, InstallmentNumber) es único.
type ScheduledPayment struct {
	ID                int
	ContractID        int
	InstallmentNumber int
	DueDate           *time.Time
	Amount            decimal.Decimal
	PaymentType       string // rent, agent_remit
	Status            string
	PaidDate          *time.Time
	PaidAmount        *decimal.Decimal
	MondayID          *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReceivedPayment es un pago realmente recibido, imputado a una cuota.
// Solo se crea/actualiza vía sincronización externa, por (contrato, cuota).
type ReceivedPayment struct {
	ID                     int
	ContractID             int
	PaymentDate            time.Time
	Amount                 decimal.Decimal
	PaymentMethod          string
	AllocatedToInstallment int
	CreatedAt              time.Time
}

// OpexEntry es una partida mensual del presupuesto de gastos operativos,
// usada solo como salida en la proyección de caja.
type OpexEntry struct {
	ID        int
	MonthDate time.Time
	Category  string
	Amount    decimal.Decimal
	CreatedAt time.Time
}
