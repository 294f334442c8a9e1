package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/internal/domain/statistics"
)

// StatisticsUseCase calcula las estadísticas de ventas por período calendario en el huso del cliente.
// Se calculan a pedido sobre la tabla de movimientos; no hay agregados mantenidos.
type StatisticsUseCase struct {
	movementRepo repository.MovementRepository
}

// NewStatisticsUseCase construye el caso de uso.
func NewStatisticsUseCase(movementRepo repository.MovementRepository) *StatisticsUseCase {
	return &StatisticsUseCase{movementRepo: movementRepo}
}

// GetStatistics traduce mode + anchor + tzOffset a [start, end) en UTC, lee los movimientos
// del dueño en ese rango y los agrupa en buckets (hora, día o mes según el modo).
func (uc *StatisticsUseCase) GetStatistics(ctx context.Context, ownerID string, req dto.StatisticsRequest) (*dto.StatisticsDTO, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, domain.Invalid("owner_id", "requerido")
	}
	mode, err := statistics.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	if err := statistics.ValidateOffset(req.TzOffset); err != nil {
		return nil, err
	}
	anchor, err := statistics.ParseAnchor(req.Anchor, req.TzOffset)
	if err != nil {
		return nil, err
	}
	period, err := statistics.NewPeriod(mode, anchor, req.TzOffset)
	if err != nil {
		return nil, err
	}

	rows, err := uc.movementRepo.ListSamples(ctx, ownerID, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("statistics: movimientos: %w", err)
	}
	samples := make([]statistics.Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, statistics.Sample{At: r.CreatedAt, Quantity: r.Quantity, UnitPrice: r.UnitPrice})
	}

	return toStatisticsDTO(statistics.Aggregate(period, samples)), nil
}

func toStatisticsDTO(res statistics.Result) *dto.StatisticsDTO {
	buckets := make([]dto.StatisticsBucketDTO, 0, len(res.Buckets))
	for _, b := range res.Buckets {
		buckets = append(buckets, dto.StatisticsBucketDTO{
			Label:    b.Label,
			Start:    b.Start,
			End:      b.End,
			Count:    b.Count,
			Quantity: b.Quantity,
			Revenue:  b.Revenue,
		})
	}
	return &dto.StatisticsDTO{
		Mode:     string(res.Mode),
		Anchor:   res.Anchor.String(),
		TzOffset: res.OffsetMinutes,
		Start:    res.Start,
		End:      res.End,
		Totals: dto.StatisticsTotalsDTO{
			Count:    res.Totals.Count,
			Quantity: res.Totals.Quantity,
			Revenue:  res.Totals.Revenue,
		},
		Buckets: buckets,
	}
}
