package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de la venta.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
	SaleStatusRefunded  SaleStatus = "REFUNDED"
)

// Valid indica si el estado es conocido.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled, SaleStatusRefunded:
		return true
	}
	return false
}

// CanCancel solo una venta completada puede anularse.
func (s SaleStatus) CanCancel() bool {
	return s == SaleStatusCompleted
}

// CanRefund una venta completada o ya reembolsada parcialmente admite nuevos reembolsos.
func (s SaleStatus) CanRefund() bool {
	return s == SaleStatusCompleted || s == SaleStatusRefunded
}

// PaymentMethod medio de pago.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "CASH"
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentPix        PaymentMethod = "PIX"
	PaymentCheck      PaymentMethod = "CHECK"
)

// Valid indica si el medio de pago es conocido.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentCheck:
		return true
	}
	return false
}

// Sale cabecera de una venta.
type Sale struct {
	ID            string
	TenantID      string
	UserID        string
	CustomerID    string // vacío = consumidor final
	SaleNumber    string
	Status        SaleStatus
	PaymentMethod PaymentMethod
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal // Subtotal - Discount + Tax
	Notes         string
	Items         []SaleItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleItem línea de venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
}

// QuantitiesByProduct agrupa las cantidades vendidas por producto (líneas repetidas se suman).
func (s *Sale) QuantitiesByProduct() map[string]int64 {
	out := make(map[string]int64, len(s.Items))
	for _, it := range s.Items {
		out[it.ProductID] += it.Quantity
	}
	return out
}
