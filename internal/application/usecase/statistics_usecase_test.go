package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/apptest"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

const (
	ownerA = "aaaaaaaa-0000-0000-0000-000000000001"
	ownerB = "bbbbbbbb-0000-0000-0000-000000000002"
)

func add(s *apptest.MovementStore, owner, at string, qty int, price string) {
	ts, err := time.Parse(time.RFC3339, at)
	if err != nil {
		panic(err)
	}
	m := entity.Movement{
		ProductID:    "11111111-1111-1111-1111-111111111111",
		ProductTitle: "Yerba 1kg",
		Quantity:     qty,
		OwnerID:      owner,
		CreatedAt:    ts,
	}
	if price != "" {
		d := decimal.RequireFromString(price)
		m.UnitPrice = &d
	}
	s.Add(m)
}

func TestGetStatistics_DiaEnUTCMenos3(t *testing.T) {
	s := apptest.NewMovementStore()
	add(s, ownerA, "2024-03-10T02:59:59Z", 1, "100") // 23:59:59 del 09 local: afuera
	add(s, ownerA, "2024-03-10T03:00:00Z", 2, "10")  // 00:00 local: primer bucket
	add(s, ownerA, "2024-03-10T03:30:00Z", 1, "")    // sin precio: ingreso 0
	add(s, ownerA, "2024-03-11T02:59:59Z", 3, "5")   // 23:59:59 local: último bucket
	add(s, ownerA, "2024-03-11T03:00:00Z", 4, "1")   // 00:00 del 11 local: afuera
	add(s, ownerB, "2024-03-10T12:00:00Z", 7, "1")   // otro dueño
	uc := usecase.NewStatisticsUseCase(s)

	out, err := uc.GetStatistics(context.Background(), ownerA, dto.StatisticsRequest{
		Mode: "day", Anchor: "2024-03-10", TzOffset: -180,
	})
	require.NoError(t, err)

	assert.Equal(t, "day", out.Mode)
	assert.Equal(t, "2024-03-10", out.Anchor)
	assert.Equal(t, -180, out.TzOffset)
	assert.True(t, out.Start.Equal(time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)))
	assert.True(t, out.End.Equal(time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC)))
	require.Len(t, out.Buckets, 24)

	assert.Equal(t, 3, out.Totals.Count)
	assert.Equal(t, int64(6), out.Totals.Quantity)
	assert.True(t, out.Totals.Revenue.Equal(decimal.NewFromInt(35)), out.Totals.Revenue.String())

	assert.Equal(t, "00:00", out.Buckets[0].Label)
	assert.Equal(t, 2, out.Buckets[0].Count)
	assert.True(t, out.Buckets[0].Revenue.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 1, out.Buckets[23].Count)

	sum := decimal.Zero
	count := 0
	for _, b := range out.Buckets {
		sum = sum.Add(b.Revenue)
		count += b.Count
	}
	assert.True(t, sum.Equal(out.Totals.Revenue))
	assert.Equal(t, out.Totals.Count, count)
}

func TestGetStatistics_MesVacio(t *testing.T) {
	uc := usecase.NewStatisticsUseCase(apptest.NewMovementStore())

	out, err := uc.GetStatistics(context.Background(), ownerA, dto.StatisticsRequest{Mode: "month", Anchor: "2024-02-15"})
	require.NoError(t, err)

	assert.Len(t, out.Buckets, 29)
	assert.Zero(t, out.Totals.Count)
	assert.True(t, out.Totals.Revenue.IsZero())
}

func TestGetStatistics_ParametrosInvalidos(t *testing.T) {
	uc := usecase.NewStatisticsUseCase(apptest.NewMovementStore())
	cases := map[string]dto.StatisticsRequest{
		"modo":        {Mode: "decade", Anchor: "2024-03-10"},
		"sin anchor":  {Mode: "day"},
		"anchor":      {Mode: "day", Anchor: "10/03/2024"},
		"offset alto": {Mode: "day", Anchor: "2024-03-10", TzOffset: 900},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.GetStatistics(context.Background(), ownerA, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
