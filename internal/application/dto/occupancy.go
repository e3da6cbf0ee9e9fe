package dto

import "github.com/shopspring/decimal"

// OccupancySummary métricas de ocupación a una fecha.
type OccupancySummary struct {
	TotalRooms       int             `json:"total_rooms"`
	Occupied         int             `json:"occupied"`
	Vacant           int             `json:"vacant"`
	OccupancyRate    float64         `json:"occupancy_rate"`
	AvgWeeklyRent    decimal.Decimal `json:"avg_weekly_rent"`
	TotalSignedValue decimal.Decimal `json:"total_signed_value"`
	ActiveContracts  int             `json:"active_contracts"`
	AsOf             string          `json:"as_of"`
	Note             string          `json:"note,omitempty"`
}

// MonthlyOccupancy un mes de la proyección de ocupación.
type MonthlyOccupancy struct {
	Month          string `json:"month"`
	MoveIns        int    `json:"move_ins"`
	MoveOuts       int    `json:"move_outs"`
	NetChange      int    `json:"net_change"`
	StartOccupancy int    `json:"start_occupancy"`
	EndOccupancy   int    `json:"end_occupancy"`
}

// WeeklyOccupancy una semana de la proyección de ocupación.
type WeeklyOccupancy struct {
	WeekStart      string `json:"week_start"`
	WeekEnd        string `json:"week_end"`
	MoveIns        int    `json:"move_ins"`
	MoveOuts       int    `json:"move_outs"`
	NetChange      int    `json:"net_change"`
	StartOccupancy int    `json:"start_occupancy"`
	EndOccupancy   int    `json:"end_occupancy"`
}

// OccupancyOverview proyección por buckets más la nota de degradación.
type OccupancyOverview[T any] struct {
	Periods []T    `json:"periods"`
	Note    string `json:"note,omitempty"`
}

// UpcomingVacancy habitación que queda libre sin reserva de continuación.
type UpcomingVacancy struct {
	RoomID          string          `json:"room_id"`
	CurrentTenant   string          `json:"current_tenant"`
	VacatesOn       string          `json:"vacates_on"`
	DaysUntilVacant int             `json:"days_until_vacant"`
	WeeklyRate      decimal.Decimal `json:"weekly_rate"`
}

// VacanciesResponse listado de próximas vacantes.
type VacanciesResponse struct {
	DaysAhead int               `json:"days_ahead"`
	Count     int               `json:"count"`
	Vacancies []UpcomingVacancy `json:"vacancies"`
	Note      string            `json:"note,omitempty"`
}

// RoomStatus habitación con su estado de ocupación actual.
type RoomStatus struct {
	RoomID        string           `json:"room_id"`
	Floor         string           `json:"floor"`
	Category      string           `json:"category"`
	Sqm           *decimal.Decimal `json:"sqm"`
	Status        string           `json:"status"`
	CurrentTenant *string          `json:"current_tenant"`
	StartDate     *string          `json:"start_date"`
	EndDate       *string          `json:"end_date"`
}

// RoomsResponse listado de habitaciones.
type RoomsResponse struct {
	Count int          `json:"count"`
	Rooms []RoomStatus `json:"rooms"`
	Note  string       `json:"note,omitempty"`
}

// RoomBooking contrato dentro de la línea temporal de una habitación.
type RoomBooking struct {
	ResidentName string           `json:"resident_name"`
	StartDate    string           `json:"start_date"`
	EndDate      string           `json:"end_date"`
	WeeklyRate   *decimal.Decimal `json:"weekly_rate"`
	TotalValue   decimal.Decimal  `json:"total_value"`
	Status       string           `json:"status"`
}

// RoomTimeline línea temporal de una habitación.
type RoomTimeline struct {
	RoomID   string        `json:"room_id"`
	Bookings []RoomBooking `json:"bookings"`
}

// TimelinesResponse líneas temporales de todas las habitaciones.
type TimelinesResponse struct {
	Count     int            `json:"count"`
	Timelines []RoomTimeline `json:"timelines"`
	Note      string         `json:"note,omitempty"`
}
