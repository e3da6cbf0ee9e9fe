package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de contrato.
const (
	ContractProspect   = "prospect"
	ContractDiscussion = "under_discussion"
	ContractSigned     = "signed"
	ContractActive     = "active"
	ContractEnding     = "ending"
	ContractTerminated = "terminated"
	ContractCompleted  = "completed"
)

// Planes de pago (textos tal como llegan del CRM; cualquier otro valor cae en la regla mensual).
const (
	PlanSinglePayment = "Single Payment"
	PlanInstallments  = "Installments"
	PlanStudentluxe   = "Studentluxe" // agente que remite mensualmente
	PlanSpecialTerms  = "Special Payment Terms"
)

// Contract representa un contrato de alquiler de una habitación.
// La ocupación no se almacena: una habitación está ocupada en la fecha D si
// algún contrato activo cumple StartDate <= D <= EndDate.
type Contract struct {
	ID           int
	RoomID       string
	ResidentName string
	StartDate    time.Time
	EndDate      time.Time
	WeeklyRate   *decimal.Decimal
	TotalValue   decimal.Decimal
	WeeksBooked  *decimal.Decimal
	PaymentPlan  string
	Status       string
	Nationality  *string
	University   *string
	LevelOfStudy *string
	Source       *string
	LeadSource   *string
	MondayID     *string // clave de upsert para contratos sincronizados del CRM
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
