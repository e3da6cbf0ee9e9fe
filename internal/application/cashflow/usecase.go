// Package cashflow construye la proyección de caja: entradas esperadas del
// calendario de pagos, entradas reales y salidas presupuestadas, con saldo
// arrastrado por bucket.
package cashflow

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/AG-g1/more-house/internal/application/dto"
	"github.com/AG-g1/more-house/internal/domain/repository"
)

const noteUnavailable = "Database not initialized"

const (
	defaultMonths       = 12
	defaultWeeks        = 8
	defaultExpectedDays = 90
)

// UseCase vistas de caja.
type UseCase struct {
	repo repository.CashflowRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CashflowRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Summary entradas esperadas del mes en curso. Degrada a cero con nota ante
// un fallo del almacén.
func (uc *UseCase) Summary(ctx context.Context) dto.CashflowSummary {
	today := uc.today()
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	out := dto.CashflowSummary{
		Month:           monthStart.Format("2006-01"),
		ExpectedInflows: decimal.Zero,
		AsOf:            today.Format("2006-01-02"),
	}

	inflows, err := uc.repo.ExpectedInflows(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		log.Warn().Err(err).Msg("resumen de caja no disponible")
		out.Note = noteUnavailable
		return out
	}
	out.ExpectedInflows = inflows
	return out
}

// MonthlyOverview proyección de caja por mes natural desde el mes en curso.
// El saldo arrastrado acumula los netos desde el primer bucket del rango.
func (uc *UseCase) MonthlyOverview(ctx context.Context, months int) dto.CashflowOverview[dto.MonthlyCashflow] {
	if months <= 0 {
		months = defaultMonths
	}

	scheduled, err := uc.repo.ScheduledByMonth(ctx)
	if err != nil {
		return uc.degradedMonthly(err)
	}
	received, err := uc.repo.ReceivedByMonth(ctx)
	if err != nil {
		return uc.degradedMonthly(err)
	}
	opex, err := uc.repo.OpexByMonth(ctx)
	if err != nil {
		return uc.degradedMonthly(err)
	}

	inflowsBy := amountsByKey(scheduled, "2006-01")
	actualBy := amountsByKey(received, "2006-01")
	outflowsBy := amountsByKey(opex, "2006-01")

	today := uc.today()
	cursor := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	running := decimal.Zero
	periods := make([]dto.MonthlyCashflow, 0, months)
	for i := 0; i < months; i++ {
		key := cursor.Format("2006-01")
		inflows := inflowsBy[key]
		outflows := outflowsBy[key]
		net := inflows.Sub(outflows)
		running = running.Add(net)
		periods = append(periods, dto.MonthlyCashflow{
			Month:          key,
			Inflows:        inflows,
			ActualInflows:  actualBy[key],
			Outflows:       outflows,
			NetCashflow:    net,
			RunningBalance: running,
		})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return dto.CashflowOverview[dto.MonthlyCashflow]{Periods: periods}
}

// WeeklyOverview entradas esperadas por semana ISO desde el lunes de la
// semana en curso.
func (uc *UseCase) WeeklyOverview(ctx context.Context, weeks int) dto.CashflowOverview[dto.WeeklyCashflow] {
	if weeks <= 0 {
		weeks = defaultWeeks
	}

	scheduled, err := uc.repo.ScheduledByWeek(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("caja semanal no disponible")
		return dto.CashflowOverview[dto.WeeklyCashflow]{Periods: []dto.WeeklyCashflow{}, Note: noteUnavailable}
	}

	byWeek := make(map[string]repository.BucketAmount, len(scheduled))
	for _, b := range scheduled {
		byWeek[b.Bucket.Format("2006-01-02")] = b
	}

	cursor := mondayOf(uc.today())
	periods := make([]dto.WeeklyCashflow, 0, weeks)
	for i := 0; i < weeks; i++ {
		key := cursor.Format("2006-01-02")
		b := byWeek[key]
		periods = append(periods, dto.WeeklyCashflow{
			WeekStart:       key,
			WeekEnd:         cursor.AddDate(0, 0, 6).Format("2006-01-02"),
			ExpectedInflows: b.Amount,
			PaymentsDue:     b.Count,
		})
		cursor = cursor.AddDate(0, 0, 7)
	}
	return dto.CashflowOverview[dto.WeeklyCashflow]{Periods: periods}
}

// ExpectedPayments detalle de vencimientos en [from, to]. Con fechas cero usa
// hoy y hoy más noventa días.
func (uc *UseCase) ExpectedPayments(ctx context.Context, from, to time.Time) dto.ExpectedPaymentsResponse {
	if from.IsZero() {
		from = uc.today()
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, defaultExpectedDays)
	}

	out := dto.ExpectedPaymentsResponse{
		From:     from.Format("2006-01-02"),
		To:       to.Format("2006-01-02"),
		Total:    decimal.Zero,
		Payments: []dto.ExpectedPayment{},
	}

	rows, err := uc.repo.ExpectedPayments(ctx, from, to)
	if err != nil {
		log.Warn().Err(err).Msg("pagos esperados no disponibles")
		out.Note = noteUnavailable
		return out
	}

	for _, p := range rows {
		out.Total = out.Total.Add(p.Amount)
		out.Payments = append(out.Payments, dto.ExpectedPayment{
			ID:           p.ID,
			ContractID:   p.ContractID,
			RoomID:       p.RoomID,
			ResidentName: p.ResidentName,
			DueDate:      p.DueDate.Format("2006-01-02"),
			Amount:       p.Amount,
			PaymentType:  p.PaymentType,
			Status:       p.Status,
		})
	}
	out.Count = len(out.Payments)
	return out
}

// OverduePayments pagos pendientes con vencimiento anterior a hoy.
func (uc *UseCase) OverduePayments(ctx context.Context) dto.OverduePaymentsResponse {
	out := dto.OverduePaymentsResponse{
		Total:    decimal.Zero,
		Payments: []dto.OverduePayment{},
	}

	rows, err := uc.repo.OverduePayments(ctx, uc.today())
	if err != nil {
		log.Warn().Err(err).Msg("pagos vencidos no disponibles")
		out.Note = noteUnavailable
		return out
	}

	for _, p := range rows {
		out.Total = out.Total.Add(p.Amount)
		out.Payments = append(out.Payments, dto.OverduePayment{
			ID:           p.ID,
			RoomID:       p.RoomID,
			ResidentName: p.ResidentName,
			DueDate:      p.DueDate.Format("2006-01-02"),
			Amount:       p.Amount,
			DaysOverdue:  p.DaysOverdue,
		})
	}
	out.Count = len(out.Payments)
	return out
}

func (uc *UseCase) degradedMonthly(err error) dto.CashflowOverview[dto.MonthlyCashflow] {
	log.Warn().Err(err).Msg("caja mensual no disponible")
	return dto.CashflowOverview[dto.MonthlyCashflow]{Periods: []dto.MonthlyCashflow{}, Note: noteUnavailable}
}

func amountsByKey(buckets []repository.BucketAmount, layout string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(buckets))
	for _, b := range buckets {
		out[b.Bucket.Format(layout)] = b.Amount
	}
	return out
}

func (uc *UseCase) today() time.Time {
	t := uc.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOf devuelve el lunes de la semana ISO de t.
func mondayOf(t time.Time) time.Time {
	offset := int(t.Weekday()) - 1
	if offset < 0 {
		offset = 6
	}
	return t.AddDate(0, 0, -offset)
}
