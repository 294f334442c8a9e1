package inventory_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/apptest"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/movements"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

const (
	ownerA    = "aaaaaaaa-0000-0000-0000-000000000001"
	ownerB    = "bbbbbbbb-0000-0000-0000-000000000002"
	productID = "11111111-1111-1111-1111-111111111111"
	missingID = "99999999-9999-9999-9999-999999999999"
)

func yerba(stock int) entity.Product {
	return entity.Product{
		ID:      productID,
		OwnerID: ownerA,
		Title:   "Yerba 1kg",
		Stock:   stock,
		Price:   decimal.NewFromInt(100),
		Price2:  decimal.NewFromInt(90),
		Price3:  decimal.RequireFromString("82.50"),
		Price4:  decimal.NewFromInt(75),
	}
}

type fixture struct {
	products  *apptest.ProductStore
	movements *apptest.MovementStore
	recorder  *movements.SaleRecorder
	uc        *inventory.StockLedgerUseCase
	logs      *bytes.Buffer
}

func newFixture(stock int, async bool) *fixture {
	f := &fixture{
		products:  apptest.NewProductStore(yerba(stock)),
		movements: apptest.NewMovementStore(),
		logs:      &bytes.Buffer{},
	}
	log := zerolog.New(f.logs)
	f.recorder = movements.NewSaleRecorder(movements.NewRecordMovementUseCase(f.movements), log, movements.SaleRecorderConfig{Async: async})
	f.uc = inventory.NewStockLedgerUseCase(f.products, f.recorder)
	return f
}

func (f *fixture) stock(t *testing.T) int {
	t.Helper()
	p, ok := f.products.Get(productID)
	require.True(t, ok)
	return p.Stock
}

func TestDecreaseStock_DescuentaYRegistraMovimiento(t *testing.T) {
	f := newFixture(10, false)

	p, err := f.uc.DecreaseStock(context.Background(), inventory.DecreaseStockInput{
		OwnerID: ownerA, ProductID: productID, Quantity: 3,
		CustomerName: strPtr("  Juan  "), Employee: strPtr(""),
	})

	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)
	assert.Equal(t, 7, f.stock(t))

	all := f.movements.All()
	require.Len(t, all, 1)
	m := all[0]
	assert.Equal(t, productID, m.ProductID)
	assert.Equal(t, "Yerba 1kg", m.ProductTitle)
	assert.Equal(t, 3, m.Quantity)
	assert.Equal(t, ownerA, m.OwnerID)
	require.NotNil(t, m.CustomerName)
	assert.Equal(t, "Juan", *m.CustomerName)
	assert.Nil(t, m.Employee, "texto vacío se guarda como nulo")
	assert.Nil(t, m.UnitPrice)
}

func TestDecreaseStock_Concurrente_SoloUnoGana(t *testing.T) {
	f := newFixture(10, false)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.DecreaseStock(context.Background(), inventory.DecreaseStockInput{
				OwnerID: ownerA, ProductID: productID, Quantity: 6,
			})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
			var ise *domain.InsufficientStockError
			require.ErrorAs(t, err, &ise)
			assert.Equal(t, 4, ise.Stock)
			assert.Equal(t, 6, ise.Requested)
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, 4, f.stock(t))
	assert.Len(t, f.movements.All(), 1, "solo la venta confirmada registra movimiento")
}

func TestDecreaseStock_ConcurrenciaMasiva_NuncaNegativo(t *testing.T) {
	f := newFixture(25, false)

	var wg sync.WaitGroup
	var mu sync.Mutex
	sold := 0
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.DecreaseStock(context.Background(), inventory.DecreaseStockInput{
				OwnerID: ownerA, ProductID: productID, Quantity: 2,
			})
			if err == nil {
				mu.Lock()
				sold += 2
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 24, sold)
	assert.Equal(t, 1, f.stock(t))
	assert.Len(t, f.movements.All(), 12)
}

func TestDecreaseStock_StockInsuficiente_NoModifica(t *testing.T) {
	f := newFixture(4, false)

	_, err := f.uc.DecreaseStock(context.Background(), inventory.DecreaseStockInput{
		OwnerID: ownerA, ProductID: productID, Quantity: 5,
	})

	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, "Yerba 1kg", ise.Title)
	assert.Equal(t, 4, ise.Stock)
	assert.Equal(t, 5, ise.Requested)
	assert.Equal(t, 4, f.stock(t))
	assert.Empty(t, f.movements.All())
}

func TestDecreaseStock_StockExacto_QuedaEnCero(t *testing.T) {
	f := newFixture(5, false)

	p, err := f.uc.DecreaseStock(context.Background(), inventory.DecreaseStockInput{
		OwnerID: ownerA, ProductID: productID, Quantity: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestDecreaseStock_OtroDueno_IgualQueInexistente(t *testing.T) {
	f := newFixture(10, false)

	_, errMissing := f.uc.DecreaseStock(context.Background(), inventory.DecreaseStockInput{
		OwnerID: ownerA, ProductID: missingID, Quantity: 1,
	})
	_, errForeign := f.uc.DecreaseStock(context.Background(), inventory.DecreaseStockInput{
		OwnerID: ownerB, ProductID: productID, Quantity: 1,
	})

	assert.ErrorIs(t, errMissing, domain.ErrNotFound)
	assert.ErrorIs(t, errForeign, domain.ErrNotFound)
	assert.Equal(t, errMissing.Error(), errForeign.Error())
	assert.Equal(t, 10, f.stock(t))
	assert.Empty(t, f.movements.All())
}

func TestDecreaseStock_Validacion_NoAbreTransaccion(t *testing.T) {
	cases := map[string]inventory.DecreaseStockInput{
		"cantidad cero":     {OwnerID: ownerA, ProductID: productID, Quantity: 0},
		"cantidad negativa": {OwnerID: ownerA, ProductID: productID, Quantity: -2},
		"id no uuid":        {OwnerID: ownerA, ProductID: "abc", Quantity: 1},
		"sin dueño":         {ProductID: productID, Quantity: 1},
		"nivel de precio":   {OwnerID: ownerA, ProductID: productID, Quantity: 1, PriceKey: intPtr(5)},
		"precio negativo":   {OwnerID: ownerA, ProductID: productID, Quantity: 1, UnitPrice: decPtr("-1")},
		"cliente no uuid":   {OwnerID: ownerA, ProductID: productID, Quantity: 1, CustomerID: strPtr("juan")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(10, false)
			_, err := f.uc.DecreaseStock(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, f.products.Runs())
			assert.Equal(t, 10, f.stock(t))
		})
	}
}

func TestDecreaseStock_NivelDePrecioSinPrecio_UsaPrecioDelNivel(t *testing.T) {
	f := newFixture(10, false)

	_, err := f.uc.DecreaseStock(context.Background(), inventory.DecreaseStockInput{
		OwnerID: ownerA, ProductID: productID, Quantity: 2, PriceKey: intPtr(3),
	})
	require.NoError(t, err)

	all := f.movements.All()
	require.Len(t, all, 1)
	require.NotNil(t, all[0].UnitPrice)
	assert.True(t, all[0].UnitPrice.Equal(decimal.RequireFromString("82.50")))
	require.NotNil(t, all[0].PriceKey)
	assert.Equal(t, 3, *all[0].PriceKey)
}

func TestDecreaseStock_PrecioExplicito_TienePrioridad(t *testing.T) {
	f := newFixture(10, false)

	_, err := f.uc.DecreaseStock(context.Background(), inventory.DecreaseStockInput{
		OwnerID: ownerA, ProductID: productID, Quantity: 1, PriceKey: intPtr(2), UnitPrice: decPtr("95"),
	})
	require.NoError(t, err)

	all := f.movements.All()
	require.Len(t, all, 1)
	assert.True(t, all[0].UnitPrice.Equal(decimal.NewFromInt(95)))
}

func TestDecreaseStock_FallaDelRegistro_NoAfectaLaVenta(t *testing.T) {
	f := newFixture(10, false)
	f.movements.CreateErr = domain.ErrStorageUnavailable

	p, err := f.uc.DecreaseStock(context.Background(), inventory.DecreaseStockInput{
		OwnerID: ownerA, ProductID: productID, Quantity: 4,
	})

	require.NoError(t, err, "la venta ya hizo commit")
	assert.Equal(t, 6, p.Stock)
	assert.Equal(t, 6, f.stock(t))
	assert.Contains(t, f.logs.String(), "recording failure")
	assert.Contains(t, f.logs.String(), `"level":"warn"`)
}

func TestDecreaseStock_Async_RegistraAunqueSeCanceleElRequest(t *testing.T) {
	f := newFixture(10, true)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := f.uc.DecreaseStock(ctx, inventory.DecreaseStockInput{
		OwnerID: ownerA, ProductID: productID, Quantity: 1,
	})
	cancel()
	f.recorder.Wait()

	require.NoError(t, err)
	assert.Len(t, f.movements.All(), 1)
}

func TestDecreaseStock_ContextoCancelado_NoDescuenta(t *testing.T) {
	f := newFixture(10, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.uc.DecreaseStock(ctx, inventory.DecreaseStockInput{
		OwnerID: ownerA, ProductID: productID, Quantity: 1,
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 10, f.stock(t))
	assert.Empty(t, f.movements.All())
}

type recordedMetrics struct {
	mu      sync.Mutex
	results []string
}

func (m *recordedMetrics) ObserveDecrease(result string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func TestDecreaseStock_Metricas(t *testing.T) {
	f := newFixture(3, false)
	m := &recordedMetrics{}
	f.uc.WithMetrics(m)

	ctx := context.Background()
	_, _ = f.uc.DecreaseStock(ctx, inventory.DecreaseStockInput{OwnerID: ownerA, ProductID: productID, Quantity: 2})
	_, _ = f.uc.DecreaseStock(ctx, inventory.DecreaseStockInput{OwnerID: ownerA, ProductID: productID, Quantity: 2})
	_, _ = f.uc.DecreaseStock(ctx, inventory.DecreaseStockInput{OwnerID: ownerA, ProductID: missingID, Quantity: 1})
	_, _ = f.uc.DecreaseStock(ctx, inventory.DecreaseStockInput{OwnerID: ownerA, ProductID: productID, Quantity: 0})

	assert.Equal(t, []string{
		inventory.ResultOK,
		inventory.ResultInsufficientStock,
		inventory.ResultNotFound,
		inventory.ResultInvalid,
	}, m.results)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
