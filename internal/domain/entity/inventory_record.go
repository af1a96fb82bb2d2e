package entity

import "time"

// InventoryRecord es el saldo actual de un producto dentro de un tenant (uno por tenant+producto).
// Quantity solo lo modifica el motor de movimientos y siempre es igual a la suma de los deltas del libro.
type InventoryRecord struct {
	ID        string
	TenantID  string
	ProductID string
	Quantity  int64
	MinStock  int64
	MaxStock  *int64 // nil = sin tope
	CreatedAt time.Time
	UpdatedAt time.Time

	// Solo lectura: se completan en listados (join con products).
	ProductName string
	ProductSKU  string
}

// IsLow indica stock en o por debajo del mínimo.
func (r *InventoryRecord) IsLow() bool {
	return r.Quantity <= r.MinStock
}

// IsOver indica stock por encima del máximo configurado.
func (r *InventoryRecord) IsOver() bool {
	return r.MaxStock != nil && r.Quantity > *r.MaxStock
}
