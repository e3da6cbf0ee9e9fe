package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AG-g1/more-house/internal/application/dto"
	"github.com/AG-g1/more-house/internal/application/occupancy"
)

// OccupancyHandler endpoints de ocupación. Las vistas de lectura degradan a
// placeholders con nota cuando el almacén no responde, así que casi nunca
// devuelven error.
type OccupancyHandler struct {
	uc *occupancy.UseCase
}

// NewOccupancyHandler construye el handler.
func NewOccupancyHandler(uc *occupancy.UseCase) *OccupancyHandler {
	return &OccupancyHandler{uc: uc}
}

// Summary métricas de ocupación a hoy.
// GET /api/occupancy/summary
func (h *OccupancyHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.uc.Summary(c.Context()))
}

// Monthly proyección de ocupación por mes.
// GET /api/occupancy/monthly?months=12
func (h *OccupancyHandler) Monthly(c *fiber.Ctx) error {
	return c.JSON(h.uc.MonthlyOverview(c.Context(), c.QueryInt("months")))
}

// Weekly proyección de ocupación por semana.
// GET /api/occupancy/weekly?weeks=8
func (h *OccupancyHandler) Weekly(c *fiber.Ctx) error {
	return c.JSON(h.uc.WeeklyOverview(c.Context(), c.QueryInt("weeks")))
}

// Vacancies habitaciones que quedan libres próximamente sin continuación.
// GET /api/occupancy/vacancies?days=30
func (h *OccupancyHandler) Vacancies(c *fiber.Ctx) error {
	return c.JSON(h.uc.UpcomingVacancies(c.Context(), c.QueryInt("days")))
}

// Rooms todas las habitaciones con su ocupante vigente.
// GET /api/occupancy/rooms
func (h *OccupancyHandler) Rooms(c *fiber.Ctx) error {
	return c.JSON(h.uc.Rooms(c.Context()))
}

// RoomTimeline contratos de una habitación.
// GET /api/occupancy/rooms/:roomId/timeline
func (h *OccupancyHandler) RoomTimeline(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	timeline, err := h.uc.RoomTimeline(c.Context(), roomID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(timeline)
}

// Timelines líneas temporales de todas las habitaciones.
// GET /api/occupancy/timelines
func (h *OccupancyHandler) Timelines(c *fiber.Ctx) error {
	return c.JSON(h.uc.Timelines(c.Context()))
}
