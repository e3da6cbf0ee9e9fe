package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de habitación conocidas (deben coincidir con el Unit Schedule del CRM).
const (
	CategoryStandard       = "Standard"
	CategoryClassic        = "Classic"
	CategoryDeluxe         = "Deluxe"
	CategoryDeluxeMezz     = "Deluxe Mezzanine"
	CategoryPlaceholderTBD = "TBD" // habitación creada por la sincronización, pendiente de backfill
)

// Room representa una habitación del edificio. RoomID es la clave natural
// (ej. "3.14", "-1.1", "MEZZ 7") y el join con contratos; nunca se borra
// por el camino de sincronización.
type Room struct {
	ID           int
	RoomID       string
	Floor        string
	Category     string
	Sqm          *decimal.Decimal
	WeeklyRate   *decimal.Decimal
	MattressSize *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
