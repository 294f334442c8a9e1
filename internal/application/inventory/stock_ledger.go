package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// StockLedgerUseCase descuenta stock con bloqueo pesimista de una sola fila
// (SELECT FOR UPDATE) y dispara los hooks post-commit (registro del movimiento).
type StockLedgerUseCase struct {
	txRunner TxRunner
	hooks    []SaleHook
	metrics  LedgerMetrics
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(txRunner TxRunner, hooks ...SaleHook) *StockLedgerUseCase {
	return &StockLedgerUseCase{txRunner: txRunner, hooks: hooks, metrics: nopMetrics{}}
}

// WithMetrics asigna el colector de métricas.
func (uc *StockLedgerUseCase) WithMetrics(m LedgerMetrics) *StockLedgerUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// DecreaseStockInput entrada de DecreaseStock. OwnerID viene del token, nunca del body.
// ProductID y Quantity son obligatorios; los demás campos solo alimentan el movimiento.
type DecreaseStockInput struct {
	OwnerID      string
	ProductID    string
	Quantity     int
	CustomerID   *string
	CustomerName *string
	UnitPrice    *decimal.Decimal
	PriceKey     *int
	Status       *string
	Employee     *string
}

// DecreaseStock valida la entrada sin tocar la base, bloquea la fila (productID, ownerID),
// verifica stock >= quantity, descuenta y hace commit. Recién después invoca los hooks.
//
// Errores: domain.ErrInvalidInput, domain.ErrNotFound (no existe o es de otro dueño, indistinguibles),
// *domain.InsufficientStockError (errors.Is ErrInsufficientStock) o errores de almacenamiento.
func (uc *StockLedgerUseCase) DecreaseStock(ctx context.Context, in DecreaseStockInput) (*entity.Product, error) {
	started := time.Now()
	product, err := uc.decrease(ctx, in)
	uc.metrics.ObserveDecrease(classify(err), time.Since(started))
	if err != nil {
		return nil, err
	}

	sale := SaleEvent{
		OwnerID:      in.OwnerID,
		Product:      *product,
		Quantity:     in.Quantity,
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		UnitPrice:    in.UnitPrice,
		PriceKey:     in.PriceKey,
		Status:       in.Status,
		Employee:     in.Employee,
	}
	// Con nivel de precio y sin precio explícito se aplica el precio del nivel.
	if sale.UnitPrice == nil && sale.PriceKey != nil {
		if p, ok := product.PriceFor(*sale.PriceKey); ok {
			sale.UnitPrice = &p
		}
	}
	for _, h := range uc.hooks {
		h.AfterSale(ctx, sale)
	}
	return product, nil
}

func (uc *StockLedgerUseCase) decrease(ctx context.Context, in DecreaseStockInput) (*entity.Product, error) {
	if err := validateDecrease(&in); err != nil {
		return nil, err
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository) error {
		// Bloquea exactamente una fila: la del producto del dueño
		product, err := products.GetForUpdate(ctx, in.ProductID, in.OwnerID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Stock < in.Quantity {
			return &domain.InsufficientStockError{
				ProductID: product.ID,
				Title:     product.Title,
				Stock:     product.Stock,
				Requested: in.Quantity,
			}
		}
		product.Stock -= in.Quantity
		if err := products.UpdateStock(ctx, product.ID, in.OwnerID, product.Stock); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func validateDecrease(in *DecreaseStockInput) error {
	if strings.TrimSpace(in.OwnerID) == "" {
		return domain.Invalid("owner_id", "requerido")
	}
	if _, err := uuid.Parse(in.ProductID); err != nil {
		return domain.Invalid("product_id", "debe ser un UUID")
	}
	if in.Quantity <= 0 {
		return domain.Invalid("quantity", "la cantidad debe ser mayor a 0")
	}
	if in.PriceKey != nil && !entity.ValidPriceKey(*in.PriceKey) {
		return domain.Invalid("price_key", "debe ser 1, 2, 3 o 4")
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return domain.Invalid("unit_price", "no puede ser negativo")
	}
	in.CustomerID = domain.NormalizeText(in.CustomerID)
	if in.CustomerID != nil {
		if _, err := uuid.Parse(*in.CustomerID); err != nil {
			return domain.Invalid("customer_id", "debe ser un UUID")
		}
	}
	return nil
}

func classify(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrInvalidInput):
		return ResultInvalid
	case errors.Is(err, domain.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return ResultInsufficientStock
	}
	return ResultError
}
