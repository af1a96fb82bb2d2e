package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-inventory/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "uq_stock_alerts_open"}, domain.ErrDuplicate},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "chk_inventory_quantity"}, domain.ErrConflict},
		{"serialization", &pgconn.PgError{Code: "40001"}, domain.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, domain.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: "23503"}, domain.ErrNotFound},
		{"texto inválido", &pgconn.PgError{Code: "22P02"}, domain.ErrInvalidInput},
		{"desconocido", errors.New("boom"), domain.ErrInternal},
		{"cancelado", context.Canceled, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError("op", tt.err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.NoError(t, mapError("op", nil))
	assert.True(t, domain.IsRetryable(mapError("op", &pgconn.PgError{Code: "40001"})))
	assert.False(t, domain.IsRetryable(mapError("op", &pgconn.PgError{Code: "23505"})))
}
