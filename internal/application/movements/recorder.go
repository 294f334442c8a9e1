package movements

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// RecordMovementUseCase agrega un movimiento (append-only) en su propia transacción.
type RecordMovementUseCase struct {
	repo repository.MovementRepository
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(repo repository.MovementRepository) *RecordMovementUseCase {
	return &RecordMovementUseCase{repo: repo}
}

// RecordMovementInput campos del movimiento. OwnerID es el actor autenticado.
// Cliente, precio, nivel, estado y empleado son opcionales (movimiento mínimo).
type RecordMovementInput struct {
	OwnerID      string
	ProductID    string
	ProductTitle string
	CustomerID   *string
	CustomerName *string
	Quantity     int
	UnitPrice    *decimal.Decimal
	PriceKey     *int
	Status       *string
	Employee     *string
}

// RecordMovement valida, normaliza los textos y persiste. El ID y created_at quedan en el resultado.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, in RecordMovementInput) (*entity.Movement, error) {
	if strings.TrimSpace(in.OwnerID) == "" {
		return nil, domain.Invalid("owner_id", "requerido")
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.Invalid("product_id", "requerido")
	}
	title := strings.TrimSpace(in.ProductTitle)
	if title == "" {
		return nil, domain.Invalid("product_title", "requerido")
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("quantity", "la cantidad debe ser mayor a 0")
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, domain.Invalid("unit_price", "no puede ser negativo")
	}
	if in.PriceKey != nil && !entity.ValidPriceKey(*in.PriceKey) {
		return nil, domain.Invalid("price_key", "debe ser 1, 2, 3 o 4")
	}

	m := &entity.Movement{
		ProductID:    in.ProductID,
		ProductTitle: title,
		CustomerID:   domain.NormalizeText(in.CustomerID),
		CustomerName: domain.NormalizeText(in.CustomerName),
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		PriceKey:     in.PriceKey,
		Status:       domain.NormalizeText(in.Status),
		Employee:     domain.NormalizeText(in.Employee),
		OwnerID:      in.OwnerID,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
