package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConstraintViolation = errors.New("violación de restricción")
	ErrStorageUnavailable  = errors.New("almacenamiento no disponible")
)

// InsufficientStockError lleva el stock actual y la cantidad pedida para que el cliente pueda mostrarlos.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	ProductID string
	Title     string
	Stock     int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("no hay suficiente stock para %q. Stock: %d, pedido: %d", e.Title, e.Stock, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ConstraintViolationError el almacenamiento rechazó la escritura (unicidad, FK, check).
// Detail es el mensaje del motor y se devuelve tal cual al cliente.
type ConstraintViolationError struct {
	Constraint string
	Detail     string
}

func (e *ConstraintViolationError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "violación de restricción " + e.Constraint
}

func (e *ConstraintViolationError) Is(target error) bool { return target == ErrConstraintViolation }

// InvalidInputError agrega el campo que falló a ErrInvalidInput.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid construye un InvalidInputError.
func Invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}
