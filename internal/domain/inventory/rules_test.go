package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/inventory"
)

func int64Ptr(v int64) *int64 { return &v }

func TestSignedDelta_Direcciones(t *testing.T) {
	cases := []struct {
		typ  entity.MovementType
		qty  int64
		want int64
	}{
		{entity.MovementEntrada, 5, 5},
		{entity.MovementDevolucao, 2, 2},
		{entity.MovementSaida, 5, -5},
		{entity.MovementVenda, 3, -3},
		{entity.MovementPerda, 1, -1},
		{entity.MovementTransferencia, 4, -4},
		{entity.MovementAjuste, -7, -7},
		{entity.MovementAjuste, 7, 7},
	}
	for _, tc := range cases {
		got, err := inventory.SignedDelta(tc.typ, tc.qty)
		require.NoError(t, err, string(tc.typ))
		assert.Equal(t, tc.want, got, string(tc.typ))
	}
}

func TestSignedDelta_RechazaCantidadesInvalidas(t *testing.T) {
	_, err := inventory.SignedDelta(entity.MovementEntrada, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.SignedDelta(entity.MovementVenda, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.SignedDelta(entity.MovementAjuste, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.SignedDelta("ROUBO", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyDelta_NoPermiteNegativo(t *testing.T) {
	next, err := inventory.ApplyDelta(10, -10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), next)

	next, err = inventory.ApplyDelta(3, -4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), next, "el saldo no cambia cuando se rechaza")
}

func TestAlertConditions(t *testing.T) {
	cases := []struct {
		name string
		rec  entity.InventoryRecord
		want []entity.AlertType
	}{
		{"sano", entity.InventoryRecord{Quantity: 14, MinStock: 5}, nil},
		{"bajo", entity.InventoryRecord{Quantity: 4, MinStock: 5}, []entity.AlertType{entity.AlertLowStock}},
		{"en el mínimo", entity.InventoryRecord{Quantity: 5, MinStock: 5}, []entity.AlertType{entity.AlertLowStock}},
		{"agotado", entity.InventoryRecord{Quantity: 0, MinStock: 5}, []entity.AlertType{entity.AlertOutOfStock}},
		{"agotado sin mínimo", entity.InventoryRecord{Quantity: 0}, []entity.AlertType{entity.AlertOutOfStock}},
		{"sobrestock", entity.InventoryRecord{Quantity: 21, MinStock: 5, MaxStock: int64Ptr(20)}, []entity.AlertType{entity.AlertOverstock}},
		{"en el máximo", entity.InventoryRecord{Quantity: 20, MinStock: 5, MaxStock: int64Ptr(20)}, nil},
		{"bajo y sobre (umbrales cruzados)", entity.InventoryRecord{Quantity: 3, MinStock: 5, MaxStock: int64Ptr(2)},
			[]entity.AlertType{entity.AlertLowStock, entity.AlertOverstock}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := tc.rec
			assert.Equal(t, tc.want, inventory.AlertConditions(&rec))
		})
	}
}

func TestReplayBalance(t *testing.T) {
	movs := []*entity.InventoryMovement{{Delta: 10}, {Delta: -6}, {Delta: 10}, {Delta: -1}}
	assert.Equal(t, int64(13), inventory.ReplayBalance(movs))
}
