// Package schedule genera calendarios de pagos esperados a partir de los
// términos de un contrato. Es puro: no toca base de datos.
package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AG-g1/more-house/internal/domain/entity"
)

// Generate construye las entradas del calendario de pagos de un contrato según
// su plan:
//
//   - Single Payment: una única entrada por el total, con vencimiento en la
//     fecha de inicio.
//   - Installments, Special Payment Terms y cualquier plan desconocido: una
//     cuota por mes natural cubierto por el contrato, del mes de inicio al
//     mes de fin inclusive, con vencimiento el día 1 de cada mes. El importe
//     por cuota es total/meses redondeado a 2 decimales; el resto del
//     redondeo no se reparte, así que la suma puede diferir del total en
//     céntimos.
//   - Studentluxe: igual que mensual, pero el agente remite dos semanas
//     después, con tipo agent_remit.
//
// Las cuotas se numeran secuencialmente desde 1; el hueco 0 queda reservado
// al booking fee, que solo llega por la sincronización del CRM.
func Generate(contractID int, total decimal.Decimal, start, end time.Time, plan string) []entity.ScheduledPayment {
	switch plan {
	case entity.PlanSinglePayment:
		due := start
		return []entity.ScheduledPayment{{
			ContractID:        contractID,
			InstallmentNumber: 1,
			DueDate:           &due,
			Amount:            total,
			PaymentType:       entity.PaymentTypeRent,
			Status:            entity.PaymentPending,
		}}
	case entity.PlanStudentluxe:
		return monthly(contractID, total, start, end, 14, entity.PaymentTypeAgentRemit)
	default:
		return monthly(contractID, total, start, end, 0, entity.PaymentTypeRent)
	}
}

// monthly reparte el total en cuotas mensuales. offsetDays desplaza cada
// vencimiento desde el día 1 del mes.
func monthly(contractID int, total decimal.Decimal, start, end time.Time, offsetDays int, paymentType string) []entity.ScheduledPayment {
	months := monthsCovered(start, end)
	if months == 0 {
		return nil
	}

	perMonth := total.Div(decimal.NewFromInt(int64(months))).Round(2)

	payments := make([]entity.ScheduledPayment, 0, months)
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for n := 1; n <= months; n++ {
		due := cursor.AddDate(0, 0, offsetDays)
		payments = append(payments, entity.ScheduledPayment{
			ContractID:        contractID,
			InstallmentNumber: n,
			DueDate:           &due,
			Amount:            perMonth,
			PaymentType:       paymentType,
			Status:            entity.PaymentPending,
		})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return payments
}

// monthsCovered cuenta los meses naturales que toca el intervalo [start, end],
// ambos inclusive. Devuelve 0 si end precede a start.
func monthsCovered(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	return years*12 + months + 1
}
