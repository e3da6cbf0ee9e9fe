package dto

import "github.com/shopspring/decimal"

// CashflowSummary caja esperada del mes en curso.
type CashflowSummary struct {
	Month           string          `json:"month"`
	ExpectedInflows decimal.Decimal `json:"expected_inflows"`
	AsOf            string          `json:"as_of"`
	Note            string          `json:"note,omitempty"`
}

// MonthlyCashflow un mes de la proyección de caja.
type MonthlyCashflow struct {
	Month          string          `json:"month"`
	Inflows        decimal.Decimal `json:"inflows"`
	ActualInflows  decimal.Decimal `json:"actual_inflows"`
	Outflows       decimal.Decimal `json:"outflows"`
	NetCashflow    decimal.Decimal `json:"net_cashflow"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// WeeklyCashflow una semana de la proyección de caja.
type WeeklyCashflow struct {
	WeekStart       string          `json:"week_start"`
	WeekEnd         string          `json:"week_end"`
	ExpectedInflows decimal.Decimal `json:"expected_inflows"`
	PaymentsDue     int             `json:"payments_due"`
}

// CashflowOverview proyección por buckets más la nota de degradación.
type CashflowOverview[T any] struct {
	Periods []T    `json:"periods"`
	Note    string `json:"note,omitempty"`
}

// ExpectedPayment fila del detalle de pagos esperados.
type ExpectedPayment struct {
	ID           int             `json:"id"`
	ContractID   int             `json:"contract_id"`
	RoomID       string          `json:"room_id"`
	ResidentName string          `json:"resident_name"`
	DueDate      string          `json:"due_date"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentType  string          `json:"payment_type"`
	Status       string          `json:"status"`
}

// ExpectedPaymentsResponse pagos esperados en un rango.
type ExpectedPaymentsResponse struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Count    int               `json:"count"`
	Total    decimal.Decimal   `json:"total"`
	Payments []ExpectedPayment `json:"payments"`
	Note     string            `json:"note,omitempty"`
}

// OverduePayment pago vencido y no cobrado.
type OverduePayment struct {
	ID           int             `json:"id"`
	RoomID       string          `json:"room_id"`
	ResidentName string          `json:"resident_name"`
	DueDate      string          `json:"due_date"`
	Amount       decimal.Decimal `json:"amount"`
	DaysOverdue  int             `json:"days_overdue"`
}

// OverduePaymentsResponse pagos vencidos a hoy.
type OverduePaymentsResponse struct {
	Count    int              `json:"count"`
	Total    decimal.Decimal  `json:"total"`
	Payments []OverduePayment `json:"payments"`
	Note     string           `json:"note,omitempty"`
}
