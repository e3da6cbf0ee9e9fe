package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AG-g1/more-house/internal/application/cashflow"
	"github.com/AG-g1/more-house/internal/application/dto"
)

// CashflowHandler endpoints de proyección de caja.
type CashflowHandler struct {
	uc *cashflow.UseCase
}

// NewCashflowHandler construye el handler.
func NewCashflowHandler(uc *cashflow.UseCase) *CashflowHandler {
	return &CashflowHandler{uc: uc}
}

// Summary entradas esperadas del mes en curso.
// GET /api/cashflow/summary
func (h *CashflowHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.uc.Summary(c.Context()))
}

// Monthly proyección de caja por mes.
// GET /api/cashflow/monthly?months=12
func (h *CashflowHandler) Monthly(c *fiber.Ctx) error {
	return c.JSON(h.uc.MonthlyOverview(c.Context(), c.QueryInt("months")))
}

// Weekly entradas esperadas por semana.
// GET /api/cashflow/weekly?weeks=8
func (h *CashflowHandler) Weekly(c *fiber.Ctx) error {
	return c.JSON(h.uc.WeeklyOverview(c.Context(), c.QueryInt("weeks")))
}

// Expected detalle de vencimientos en un rango.
// GET /api/cashflow/expected?from=2026-01-01&to=2026-03-31
func (h *CashflowHandler) Expected(c *fiber.Ctx) error {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return badDate(c, "from")
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return badDate(c, "to")
	}
	return c.JSON(h.uc.ExpectedPayments(c.Context(), from, to))
}

// Overdue pagos vencidos y no cobrados a hoy.
// GET /api/cashflow/overdue
func (h *CashflowHandler) Overdue(c *fiber.Ctx) error {
	return c.JSON(h.uc.OverduePayments(c.Context()))
}

// parseDateQuery lee un query param de fecha ISO; ausente devuelve cero, que
// el caso de uso interpreta como default.
func parseDateQuery(c *fiber.Ctx, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func badDate(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_DATE", Message: "parámetro " + name + " debe ser YYYY-MM-DD",
	})
}
