package inventory

import (
	"fmt"

	"github.com/jhoicas/pos-inventory/internal/domain/entity"
)

// AlertConditions devuelve las condiciones que el saldo actual cumple, en orden estable.
// OUT_OF_STOCK y LOW_STOCK son excluyentes; OVERSTOCK es independiente.
func AlertConditions(rec *entity.InventoryRecord) []entity.AlertType {
	var out []entity.AlertType
	switch {
	case rec.Quantity <= 0:
		out = append(out, entity.AlertOutOfStock)
	case rec.Quantity <= rec.MinStock:
		out = append(out, entity.AlertLowStock)
	}
	if rec.IsOver() {
		out = append(out, entity.AlertOverstock)
	}
	return out
}

// AlertMessage texto legible para la alerta.
func AlertMessage(t entity.AlertType, rec *entity.InventoryRecord) string {
	name := rec.ProductName
	if name == "" {
		name = rec.ProductID
	}
	switch t {
	case entity.AlertOutOfStock:
		return fmt.Sprintf("producto %s sin stock", name)
	case entity.AlertLowStock:
		return fmt.Sprintf("stock bajo en %s: %d unidades (mínimo %d)", name, rec.Quantity, rec.MinStock)
	case entity.AlertOverstock:
		var max int64
		if rec.MaxStock != nil {
			max = *rec.MaxStock
		}
		return fmt.Sprintf("sobrestock en %s: %d unidades (máximo %d)", name, rec.Quantity, max)
	}
	return fmt.Sprintf("alerta %s en %s", t, name)
}
