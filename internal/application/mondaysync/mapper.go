package mondaysync

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AG-g1/more-house/internal/domain/entity"
	"github.com/AG-g1/more-house/internal/infrastructure/monday"
)

// Normalización y parseo de valores de columna del CRM. Los valores llegan
// débilmente tipados (texto de presentación + JSON crudo); aquí se convierten
// a tipos canónicos. Toda función devuelve "ausente" (nil/cero) ante un valor
// irreconocible, nunca error: los registros incompletos se filtran después,
// en la reconciliación.

// ColumnText devuelve el texto de presentación de una columna, o "" si la
// columna no está o está vacía.
func ColumnText(item monday.Item, columnID string) string {
	for _, cv := range item.ColumnValues {
		if cv.ID == columnID {
			return cv.Text
		}
	}
	return ""
}

// ColumnRaw devuelve el valor estructurado crudo (string JSON) de una columna.
func ColumnRaw(item monday.Item, columnID string) string {
	for _, cv := range item.ColumnValues {
		if cv.ID == columnID {
			return cv.Value
		}
	}
	return ""
}

// ParseISODate acepta exactamente YYYY-MM-DD (las fechas del CRM llegan así
// en el campo de texto). Cualquier otra cosa es ausente.
func ParseISODate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// ParseAmount convierte un importe con formato de moneda (símbolo, separador
// de miles, espacios) a decimal. Devuelve nil si no es un número.
func ParseAmount(s string) *decimal.Decimal {
	clean := strings.NewReplacer("£", "", ",", "", " ", "").Replace(s)
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return nil
	}
	return &d
}

// trailingZeroRe decimales con cero final, ej. -1.10 o 0.10.
var trailingZeroRe = regexp.MustCompile(`^(-?\d+)\.(\d)0$`)

// digitsRe solo dígitos.
var digitsRe = regexp.MustCompile(`^\d+$`)

// NormalizeRoomID reescribe el id de habitación al formato del Unit Schedule:
//   - M10  -> MEZZ 10
//   - -1.10 -> -1.1 (quita el cero final)
//
// Cualquier otra forma pasa sin cambios. La regla es heurística y debe
// aplicarse igual en cada sincronización; si no, la reconciliación crea
// habitaciones placeholder duplicadas. Es idempotente.
func NormalizeRoomID(roomID string) string {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return roomID
	}

	if len(roomID) > 1 && strings.ToUpper(roomID[:1]) == "M" && digitsRe.MatchString(roomID[1:]) {
		return "MEZZ " + roomID[1:]
	}

	if m := trailingZeroRe.FindStringSubmatch(roomID); m != nil {
		return m[1] + "." + m[2]
	}

	return roomID
}

// ParseTimeline separa el valor estructurado {from, to} de una columna
// timeline en fechas de inicio y fin.
func ParseTimeline(item monday.Item, columnID string) (start, end *time.Time) {
	raw := ColumnRaw(item, columnID)
	if raw == "" {
		return nil, nil
	}
	var tl struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.Unmarshal([]byte(raw), &tl); err != nil {
		return nil, nil
	}
	return ParseISODate(tl.From), ParseISODate(tl.To)
}

// MapPaymentStatus traduce el texto de estado del CRM a los cuatro estados de
// la base de datos. Coincidencia por substring, sin distinguir mayúsculas:
// partial -> partial, paid/received -> paid, overdue/late -> overdue, el resto
// pending. "partial" se evalúa antes que "paid" para que "Partially Paid"
// caiga en partial.
func MapPaymentStatus(statusText string) string {
	s := strings.ToLower(statusText)
	switch {
	case strings.Contains(s, "partial"):
		return entity.PaymentPartial
	case strings.Contains(s, "paid"), strings.Contains(s, "received"):
		return entity.PaymentPaid
	case strings.Contains(s, "overdue"), strings.Contains(s, "late"):
		return entity.PaymentOverdue
	default:
		return entity.PaymentPending
	}
}
