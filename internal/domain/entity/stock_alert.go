package entity

import "time"

// AlertType condición de salud del stock.
type AlertType string

const (
	AlertLowStock   AlertType = "LOW_STOCK"
	AlertOutOfStock AlertType = "OUT_OF_STOCK"
	AlertOverstock  AlertType = "OVERSTOCK"
	AlertExpired    AlertType = "EXPIRED"
)

// Valid indica si el tipo de alerta es conocido.
func (t AlertType) Valid() bool {
	switch t {
	case AlertLowStock, AlertOutOfStock, AlertOverstock, AlertExpired:
		return true
	}
	return false
}

// AutoManaged indica si el monitor levanta y resuelve este tipo a partir del saldo.
// EXPIRED depende de lotes/vencimientos, que este libro no conoce.
func (t AlertType) AutoManaged() bool {
	return t == AlertLowStock || t == AlertOutOfStock || t == AlertOverstock
}

// StockAlert alerta de stock; a lo sumo una abierta por (producto, tipo).
type StockAlert struct {
	ID         string
	TenantID   string
	ProductID  string
	AlertType  AlertType
	Message    string
	IsRead     bool
	IsResolved bool
	ResolvedAt *time.Time
	CreatedAt  time.Time
}
