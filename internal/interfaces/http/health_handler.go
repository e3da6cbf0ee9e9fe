package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/AG-g1/more-house/internal/application/dto"
)

// HealthChecker comprueba la conectividad con la base de datos.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler healthcheck de la API.
type HealthHandler struct {
	db HealthChecker
}

// NewHealthHandler construye el handler.
func NewHealthHandler(db HealthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check devuelve el estado del servicio y de la base de datos.
// GET /health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", Database: "ok"}
	if err := h.db.Ping(c.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
