package movements

import (
	"context"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ListMovementsUseCase listado paginado de movimientos del dueño, filtrado por ventana de tiempo.
type ListMovementsUseCase struct {
	repo repository.MovementRepository
}

// NewListMovementsUseCase construye el caso de uso.
func NewListMovementsUseCase(repo repository.MovementRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{repo: repo}
}

// ParseRange convierte el rango en una ventana; 0 significa sin límite inferior ("all").
func ParseRange(s string) (time.Duration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", dto.Range24h:
		return 24 * time.Hour, nil
	case dto.Range7d:
		return 168 * time.Hour, nil
	case dto.RangeAll:
		return 0, nil
	}
	return 0, domain.Invalid("range", "debe ser 24h, 7d o all")
}

// TotalPages max(1, ceil(total/limit)): un listado vacío igual reporta una página.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		return 1
	}
	return pages
}

// pageOffset calcula el OFFSET de la página; ok=false si desborda int.
func pageOffset(page, limit int) (offset int, ok bool) {
	if page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}

// ListMovements valida los parámetros antes de tocar la base y ejecuta conteo y página en paralelo.
func (uc *ListMovementsUseCase) ListMovements(ctx context.Context, ownerID string, req dto.ListMovementsRequest) (*dto.MovementPageDTO, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, domain.Invalid("owner_id", "requerido")
	}
	window, err := ParseRange(req.Range)
	if err != nil {
		return nil, err
	}
	page, limit := req.Page, req.Limit
	if page == 0 {
		page = dto.DefaultPage
	}
	if limit == 0 {
		limit = dto.DefaultLimit
	}
	if page < 1 {
		return nil, domain.Invalid("page", "debe ser >= 1")
	}
	if limit < 1 || limit > dto.MaxLimit {
		return nil, domain.Invalid("limit", "debe estar entre 1 y 100")
	}

	var (
		list  []*entity.Movement
		total int
	)
	offset, inRange := pageOffset(page, limit)
	g, gctx := errgroup.WithContext(ctx)
	if inRange {
		// una página que no cabe en int queda igual más allá del total: sin datos.
		g.Go(func() error {
			var err error
			list, err = uc.repo.ListByOwner(gctx, ownerID, window, limit, offset)
			return err
		})
	}
	g.Go(func() error {
		var err error
		total, err = uc.repo.CountByOwner(gctx, ownerID, window)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := make([]dto.MovementDTO, 0, len(list))
	for _, m := range list {
		data = append(data, ToMovementDTO(m))
	}
	return &dto.MovementPageDTO{
		Data: data,
		PageMeta: dto.PageMeta{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: TotalPages(total, limit),
		},
	}, nil
}

// ToMovementDTO mapea la entidad a la respuesta.
func ToMovementDTO(m *entity.Movement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:           m.ID,
		ProductID:    m.ProductID,
		ProductTitle: m.ProductTitle,
		CustomerID:   m.CustomerID,
		CustomerName: m.CustomerName,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		PriceKey:     m.PriceKey,
		Status:       m.Status,
		Employee:     m.Employee,
		CreatedAt:    m.CreatedAt,
	}
}
