package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tallerpro/taller-inventario/internal/application/dto"
	"github.com/tallerpro/taller-inventario/internal/domain"
)

// respondError traduce un error de dominio a respuesta HTTP {code, message}
// con su status. Errores no tipados (BD caída, bugs) salen como 500 genérico.
func respondError(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return c.Status(de.StatusCode).JSON(dto.ErrorResponse{Code: de.Code, Message: de.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
