package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP. Los errores de
// almacenamiento no exponen detalles internos.
func writeError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var insufficient *domain.InsufficientStockError
	var constraint *domain.ConstraintViolationError
	switch {
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(dto.InsufficientStockResponse{
			ErrorResponse: dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insufficient.Error()},
			Stock:         insufficient.Stock,
			Requested:     insufficient.Requested,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.As(err, &constraint):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CONSTRAINT_VIOLATION", Message: constraint.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFoundMsg})
	}
	// Fallas de almacenamiento o transacción: el cliente debe asumir que no hubo commit.
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
