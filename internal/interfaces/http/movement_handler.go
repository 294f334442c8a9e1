package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

type movementLister interface {
	ListMovements(ctx context.Context, ownerID string, req dto.ListMovementsRequest) (*dto.MovementPageDTO, error)
}

// MovementHandler listado de movimientos (protegido).
type MovementHandler struct {
	uc movementLister
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc movementLister) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// List godoc
// @Summary      Listar movimientos del dueño
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        range  query  string  false  "24h (default) | 7d | all"
// @Param        page   query  int     false  "Página (>= 1)"
// @Param        limit  query  int     false  "Tamaño de página (1..100, default 20)"
// @Success      200  {object}  dto.MovementPageDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	ownerID := GetUserID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	page, err := positiveQuery(c, "page", dto.DefaultPage)
	if err != nil {
		return writeError(c, err, "")
	}
	limit, err := positiveQuery(c, "limit", dto.DefaultLimit)
	if err != nil {
		return writeError(c, err, "")
	}
	out, err := h.uc.ListMovements(c.UserContext(), ownerID, dto.ListMovementsRequest{
		Range: c.Query("range"),
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// positiveQuery lee un entero >= 1; ausente devuelve def. "0" o texto no numérico son inválidos.
func positiveQuery(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.Invalid(key, "debe ser un entero >= 1")
	}
	return n, nil
}
