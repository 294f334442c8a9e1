package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

func TestStorageError_UniqueViolation(t *testing.T) {
	err := storageError("insert", &pgconn.PgError{
		Code:           codeUniqueViolation,
		ConstraintName: "products_title_key",
		Detail:         "Key (title)=(Yerba) already exists.",
	})

	var cv *domain.ConstraintViolationError
	assert.True(t, errors.As(err, &cv))
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.Equal(t, "products_title_key", cv.Constraint)
	assert.Equal(t, "Key (title)=(Yerba) already exists.", err.Error())
}

func TestStorageError_CheckViolationSinDetalle(t *testing.T) {
	err := storageError("insert", &pgconn.PgError{Code: codeCheckViolation, Message: "violates check constraint"})
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.Equal(t, "violates check constraint", err.Error())
}

func TestStorageError_Cancelacion(t *testing.T) {
	err := storageError("begin transaction", context.Canceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestStorageError_Transporte(t *testing.T) {
	cause := errors.New("connection refused")
	err := storageError("begin transaction", cause)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestOwnerWindowFilter(t *testing.T) {
	where, args := ownerWindowFilter("owner", 0)
	assert.Equal(t, "owner_id = $1", where)
	assert.Equal(t, []any{"owner"}, args)

	where, args = ownerWindowFilter("owner", 24*time.Hour)
	assert.Contains(t, where, "created_at >= now() - make_interval(secs => $2)")
	assert.Equal(t, []any{"owner", float64(86400)}, args)
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/ledger?sslmode=disable", migrateURL("postgres://u:p@db:5432/ledger?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/ledger", migrateURL("postgresql://u@db/ledger"))
}

func TestMigrationsEmbebidas(t *testing.T) {
	up, err := migrationsFS.ReadFile("migrations/000001_init.up.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS movements")
	assert.Contains(t, string(up), "GENERATED ALWAYS AS IDENTITY")
}
