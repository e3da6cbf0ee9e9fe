package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AG-g1/more-house/internal/monitoring"
)

// Metrics cuenta cada petición servida, por ruta y código de estado. Usa la
// plantilla de la ruta (no el path crudo) para acotar la cardinalidad de la
// métrica.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		monitoring.IncHTTPRequest(c.Route().Path, strconv.Itoa(c.Response().StatusCode()))
		return err
	}
}
