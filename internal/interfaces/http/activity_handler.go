package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/AG-g1/more-house/internal/application/activity"
	"github.com/AG-g1/more-house/internal/application/dto"
	"github.com/AG-g1/more-house/internal/domain"
)

// ActivityHandler endpoint de actividad comercial. Lee el CRM en vivo, así
// que un CRM caído aquí sí es error.
type ActivityHandler struct {
	uc *activity.UseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *activity.UseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// Summary visitas y firmas recientes por ventana temporal.
// GET /api/activity/summary
func (h *ActivityHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code: "CRM_NOT_CONFIGURED", Message: "token del CRM no configurado",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "CRM_UNAVAILABLE", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}
