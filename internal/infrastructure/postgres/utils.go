package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// Códigos SQLSTATE de violación de restricciones.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

// isConstraintViolation verifica si el error es una violación de constraint (23xxx).
func isConstraintViolation(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, false
	}
	switch pgErr.Code {
	case codeUniqueViolation, codeForeignKeyViolation, codeCheckViolation, codeNotNullViolation:
		return pgErr, true
	}
	return nil, false
}

// storageError traduce errores de pgx a errores de dominio:
// constraint → *domain.ConstraintViolationError con el detalle del motor;
// cancelación del contexto → se propaga tal cual; el resto → domain.ErrStorageUnavailable.
func storageError(op string, err error) error {
	if pgErr, ok := isConstraintViolation(err); ok {
		detail := pgErr.Detail
		if detail == "" {
			detail = pgErr.Message
		}
		return &domain.ConstraintViolationError{Constraint: pgErr.ConstraintName, Detail: detail}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}
