// Package occupancy construye las vistas de ocupación del edificio a partir
// de los agregados dispersos del repositorio: enumera los buckets del rango,
// rellena los ceros y arrastra la ocupación proyectada.
package occupancy

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/AG-g1/more-house/internal/application/dto"
	"github.com/AG-g1/more-house/internal/domain/repository"
)

// noteUnavailable nota devuelta cuando el almacén no responde: las vistas de
// lectura degradan a ceros en vez de fallar.
const noteUnavailable = "Database not initialized"

const (
	defaultMonths    = 12
	defaultWeeks     = 8
	defaultDaysAhead = 30
)

// UseCase vistas de ocupación.
type UseCase struct {
	repo       repository.OccupancyRepository
	totalRooms int
	now        func() time.Time
}

// NewUseCase construye el caso de uso. totalRooms es la capacidad del
// edificio, usada como denominador de la tasa de ocupación.
func NewUseCase(repo repository.OccupancyRepository, totalRooms int) *UseCase {
	return &UseCase{repo: repo, totalRooms: totalRooms, now: time.Now}
}

// Summary métricas de ocupación a hoy. Ante un fallo del almacén devuelve un
// placeholder a cero con nota, nunca error.
func (uc *UseCase) Summary(ctx context.Context) dto.OccupancySummary {
	today := uc.today()
	out := dto.OccupancySummary{
		TotalRooms:       uc.totalRooms,
		Vacant:           uc.totalRooms,
		AvgWeeklyRent:    decimal.Zero,
		TotalSignedValue: decimal.Zero,
		AsOf:             today.Format("2006-01-02"),
	}

	m, err := uc.repo.Summary(ctx, today)
	if err != nil {
		log.Warn().Err(err).Msg("resumen de ocupación no disponible")
		out.Note = noteUnavailable
		return out
	}

	out.Occupied = m.Occupied
	out.Vacant = uc.totalRooms - m.Occupied
	out.OccupancyRate = round1(float64(m.Occupied) / float64(uc.totalRooms) * 100)
	out.AvgWeeklyRent = m.AvgWeeklyRent
	out.TotalSignedValue = m.TotalSignedValue
	out.ActiveContracts = m.ContractCount
	return out
}

// MonthlyOverview proyección de ocupación por mes natural, desde el mes en
// curso. La ocupación arrastrada arranca en la ocupación real de hoy.
func (uc *UseCase) MonthlyOverview(ctx context.Context, months int) dto.OccupancyOverview[dto.MonthlyOccupancy] {
	if months <= 0 {
		months = defaultMonths
	}

	movements, err := uc.repo.MonthlyMovements(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("movimientos mensuales no disponibles")
		return dto.OccupancyOverview[dto.MonthlyOccupancy]{Periods: []dto.MonthlyOccupancy{}, Note: noteUnavailable}
	}
	running, err := uc.repo.CountOccupied(ctx, uc.today())
	if err != nil {
		log.Warn().Err(err).Msg("ocupación actual no disponible")
		return dto.OccupancyOverview[dto.MonthlyOccupancy]{Periods: []dto.MonthlyOccupancy{}, Note: noteUnavailable}
	}

	byMonth := make(map[string]repository.MovementCount, len(movements))
	for _, m := range movements {
		byMonth[m.Bucket.Format("2006-01")] = m
	}

	today := uc.today()
	cursor := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	periods := make([]dto.MonthlyOccupancy, 0, months)
	for i := 0; i < months; i++ {
		key := cursor.Format("2006-01")
		m := byMonth[key]
		net := m.MoveIns - m.MoveOuts
		periods = append(periods, dto.MonthlyOccupancy{
			Month:          key,
			MoveIns:        m.MoveIns,
			MoveOuts:       m.MoveOuts,
			NetChange:      net,
			StartOccupancy: running,
			EndOccupancy:   running + net,
		})
		running += net
		cursor = cursor.AddDate(0, 1, 0)
	}
	return dto.OccupancyOverview[dto.MonthlyOccupancy]{Periods: periods}
}

// WeeklyOverview proyección de ocupación por semana ISO, desde el lunes de la
// semana en curso.
func (uc *UseCase) WeeklyOverview(ctx context.Context, weeks int) dto.OccupancyOverview[dto.WeeklyOccupancy] {
	if weeks <= 0 {
		weeks = defaultWeeks
	}

	movements, err := uc.repo.WeeklyMovements(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("movimientos semanales no disponibles")
		return dto.OccupancyOverview[dto.WeeklyOccupancy]{Periods: []dto.WeeklyOccupancy{}, Note: noteUnavailable}
	}
	running, err := uc.repo.CountOccupied(ctx, uc.today())
	if err != nil {
		log.Warn().Err(err).Msg("ocupación actual no disponible")
		return dto.OccupancyOverview[dto.WeeklyOccupancy]{Periods: []dto.WeeklyOccupancy{}, Note: noteUnavailable}
	}

	byWeek := make(map[string]repository.MovementCount, len(movements))
	for _, m := range movements {
		byWeek[m.Bucket.Format("2006-01-02")] = m
	}

	cursor := mondayOf(uc.today())
	periods := make([]dto.WeeklyOccupancy, 0, weeks)
	for i := 0; i < weeks; i++ {
		key := cursor.Format("2006-01-02")
		m := byWeek[key]
		net := m.MoveIns - m.MoveOuts
		periods = append(periods, dto.WeeklyOccupancy{
			WeekStart:      key,
			WeekEnd:        cursor.AddDate(0, 0, 6).Format("2006-01-02"),
			MoveIns:        m.MoveIns,
			MoveOuts:       m.MoveOuts,
			NetChange:      net,
			StartOccupancy: running,
			EndOccupancy:   running + net,
		})
		running += net
		cursor = cursor.AddDate(0, 0, 7)
	}
	return dto.OccupancyOverview[dto.WeeklyOccupancy]{Periods: periods}
}

// UpcomingVacancies habitaciones que quedan libres en los próximos daysAhead
// días sin reserva de continuación.
func (uc *UseCase) UpcomingVacancies(ctx context.Context, daysAhead int) dto.VacanciesResponse {
	if daysAhead <= 0 {
		daysAhead = defaultDaysAhead
	}

	today := uc.today()
	rows, err := uc.repo.UpcomingVacancies(ctx, today, today.AddDate(0, 0, daysAhead))
	if err != nil {
		log.Warn().Err(err).Msg("próximas vacantes no disponibles")
		return dto.VacanciesResponse{DaysAhead: daysAhead, Vacancies: []dto.UpcomingVacancy{}, Note: noteUnavailable}
	}

	vacancies := make([]dto.UpcomingVacancy, 0, len(rows))
	for _, v := range rows {
		vacancies = append(vacancies, dto.UpcomingVacancy{
			RoomID:          v.RoomID,
			CurrentTenant:   v.CurrentTenant,
			VacatesOn:       v.VacatesOn.Format("2006-01-02"),
			DaysUntilVacant: v.DaysUntilVacant,
			WeeklyRate:      v.WeeklyRate,
		})
	}
	return dto.VacanciesResponse{DaysAhead: daysAhead, Count: len(vacancies), Vacancies: vacancies}
}

// Rooms todas las habitaciones con su ocupante vigente.
func (uc *UseCase) Rooms(ctx context.Context) dto.RoomsResponse {
	rows, err := uc.repo.AllRooms(ctx, uc.today())
	if err != nil {
		log.Warn().Err(err).Msg("listado de habitaciones no disponible")
		return dto.RoomsResponse{Rooms: []dto.RoomStatus{}, Note: noteUnavailable}
	}

	rooms := make([]dto.RoomStatus, 0, len(rows))
	for _, r := range rows {
		status := "Vacant"
		if r.CurrentTenant != nil {
			status = "Occupied"
		}
		rooms = append(rooms, dto.RoomStatus{
			RoomID:        r.RoomID,
			Floor:         r.Floor,
			Category:      r.Category,
			Sqm:           r.Sqm,
			Status:        status,
			CurrentTenant: r.CurrentTenant,
			StartDate:     fmtDatePtr(r.StartDate),
			EndDate:       fmtDatePtr(r.EndDate),
		})
	}
	return dto.RoomsResponse{Count: len(rooms), Rooms: rooms}
}

// RoomTimeline contratos de una habitación, ordenados por inicio.
func (uc *UseCase) RoomTimeline(ctx context.Context, roomID string) (dto.RoomTimeline, error) {
	rows, err := uc.repo.RoomTimeline(ctx, roomID)
	if err != nil {
		return dto.RoomTimeline{}, err
	}

	bookings := make([]dto.RoomBooking, 0, len(rows))
	for _, b := range rows {
		bookings = append(bookings, uc.toBooking(b))
	}
	return dto.RoomTimeline{RoomID: roomID, Bookings: bookings}, nil
}

// Timelines líneas temporales de todas las habitaciones con contratos.
func (uc *UseCase) Timelines(ctx context.Context) dto.TimelinesResponse {
	rows, err := uc.repo.AllBookings(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("líneas temporales no disponibles")
		return dto.TimelinesResponse{Timelines: []dto.RoomTimeline{}, Note: noteUnavailable}
	}

	// Agrupa por habitación conservando el orden de llegada (habitación y
	// luego fecha de inicio).
	var timelines []dto.RoomTimeline
	index := make(map[string]int)
	for _, b := range rows {
		i, ok := index[b.RoomID]
		if !ok {
			i = len(timelines)
			index[b.RoomID] = i
			timelines = append(timelines, dto.RoomTimeline{RoomID: b.RoomID})
		}
		timelines[i].Bookings = append(timelines[i].Bookings, uc.toBooking(b))
	}
	if timelines == nil {
		timelines = []dto.RoomTimeline{}
	}
	return dto.TimelinesResponse{Count: len(timelines), Timelines: timelines}
}

func (uc *UseCase) toBooking(b repository.RoomBooking) dto.RoomBooking {
	today := uc.today()
	display := "active"
	switch {
	case b.EndDate.Before(today):
		display = "past"
	case b.StartDate.After(today):
		display = "future"
	}
	return dto.RoomBooking{
		ResidentName: b.ResidentName,
		StartDate:    b.StartDate.Format("2006-01-02"),
		EndDate:      b.EndDate.Format("2006-01-02"),
		WeeklyRate:   b.WeeklyRate,
		TotalValue:   b.TotalValue,
		Status:       display,
	}
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

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func fmtDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
