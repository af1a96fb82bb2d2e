package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-inventory/internal/domain/entity"
)

// SaleItemRequest línea de venta.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id,omitempty"`
	PaymentMethod string            `json:"payment_method"`
	Discount      decimal.Decimal   `json:"discount"`
	Tax           decimal.Decimal   `json:"tax"`
	Notes         string            `json:"notes,omitempty"`
	Items         []SaleItemRequest `json:"items"`
}

// RefundItemRequest producto y cantidad a reembolsar.
type RefundItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// RefundSaleRequest body para POST /api/sales/:id/refund.
type RefundSaleRequest struct {
	Reason string              `json:"reason"`
	Items  []RefundItemRequest `json:"items"`
}

// SaleItemDTO línea de venta en respuestas.
type SaleItemDTO struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// SaleDTO venta en respuestas.
type SaleDTO struct {
	ID            string          `json:"id"`
	SaleNumber    string          `json:"sale_number"`
	CustomerID    string          `json:"customer_id,omitempty"`
	UserID        string          `json:"user_id"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Notes         string          `json:"notes,omitempty"`
	Items         []SaleItemDTO   `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SaleFromEntity mapea la venta a su DTO.
func SaleFromEntity(s *entity.Sale) SaleDTO {
	items := make([]SaleItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemDTO{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}
	return SaleDTO{
		ID:            s.ID,
		SaleNumber:    s.SaleNumber,
		CustomerID:    s.CustomerID,
		UserID:        s.UserID,
		Status:        string(s.Status),
		PaymentMethod: string(s.PaymentMethod),
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Tax:           s.Tax,
		Total:         s.Total,
		Notes:         s.Notes,
		Items:         items,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items []SaleDTO    `json:"items"`
	Page  PageResponse `json:"page"`
}
