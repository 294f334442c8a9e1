package http

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

type statisticsReader interface {
	GetStatistics(ctx context.Context, ownerID string, req dto.StatisticsRequest) (*dto.StatisticsDTO, error)
}

// StatisticsHandler estadísticas de ventas por período (protegido).
type StatisticsHandler struct {
	uc statisticsReader
}

// NewStatisticsHandler construye el handler.
func NewStatisticsHandler(uc statisticsReader) *StatisticsHandler {
	return &StatisticsHandler{uc: uc}
}

// Get godoc
// @Summary      Estadísticas de ventas por día, semana, mes o año
// @Tags         statistics
// @Security     Bearer
// @Produce      json
// @Param        mode      query  string  true   "day | week | month | year"
// @Param        anchor    query  string  true   "Fecha de referencia (YYYY-MM-DD)"
// @Param        tzOffset  query  int     false  "Minutos respecto de UTC; -180 = UTC-3"
// @Success      200  {object}  dto.StatisticsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/statistics [get]
func (h *StatisticsHandler) Get(c *fiber.Ctx) error {
	ownerID := GetUserID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	offset := 0
	if raw := strings.TrimSpace(c.Query("tzOffset")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(c, domain.Invalid("tzOffset", "debe ser un entero en minutos"), "")
		}
		offset = n
	}
	out, err := h.uc.GetStatistics(c.UserContext(), ownerID, dto.StatisticsRequest{
		Mode:     c.Query("mode"),
		Anchor:   c.Query("anchor"),
		TzOffset: offset,
	})
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
