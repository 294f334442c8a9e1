package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

type stockDecreaser interface {
	DecreaseStock(ctx context.Context, in inventory.DecreaseStockInput) (*entity.Product, error)
}

// LedgerHandler maneja el descuento de stock (protegido).
type LedgerHandler struct {
	uc stockDecreaser
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc stockDecreaser) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// DecreaseStock godoc
// @Summary      Descontar stock de un producto (venta)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Product ID (UUID)"
// @Param        body  body  dto.DecreaseStockRequest  true  "quantity obligatorio; datos de cliente y precio opcionales"
// @Success      200   {object}  dto.ProductDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/decrease-stock [patch]
func (h *LedgerHandler) DecreaseStock(c *fiber.Ctx) error {
	ownerID := GetUserID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	var in dto.DecreaseStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.DecreaseStock(c.UserContext(), inventory.DecreaseStockInput{
		OwnerID:      ownerID,
		ProductID:    c.Params("id"),
		Quantity:     in.Quantity,
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		UnitPrice:    in.UnitPrice,
		PriceKey:     in.PriceKey,
		Status:       in.Status,
		Employee:     in.Employee,
	})
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	return c.JSON(toProductDTO(product))
}

func toProductDTO(p *entity.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:        p.ID,
		Title:     p.Title,
		Stock:     p.Stock,
		Price:     p.Price,
		Price2:    p.Price2,
		Price3:    p.Price3,
		Price4:    p.Price4,
		UpdatedAt: p.UpdatedAt,
	}
}
