package dto

import (
	"time"

	"github.com/jhoicas/pos-inventory/internal/domain/entity"
)

// ApplyMovementRequest body para POST /api/inventory/movements.
// En AJUSTE quantity es el delta firmado; en el resto la magnitud.
type ApplyMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
	Reference string `json:"reference,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// AdjustInventoryRequest body para POST /api/inventory/:productId/adjust.
type AdjustInventoryRequest struct {
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
}

// CountInventoryRequest conteo físico: quantity es el saldo contado (no un delta).
type CountInventoryRequest struct {
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason,omitempty"`
}

// UpdateThresholdsRequest body para PUT /api/inventory/:productId.
type UpdateThresholdsRequest struct {
	MinStock int64  `json:"min_stock"`
	MaxStock *int64 `json:"max_stock,omitempty"`
}

// InitRecordRequest body para POST /api/inventory (alta de producto en el catálogo).
type InitRecordRequest struct {
	ProductID    string `json:"product_id"`
	InitialStock int64  `json:"initial_stock"`
	MinStock     int64  `json:"min_stock"`
	MaxStock     *int64 `json:"max_stock,omitempty"`
}

// EvaluateAlertsRequest body opcional para POST /api/inventory/alerts/evaluate.
type EvaluateAlertsRequest struct {
	ProductID string `json:"product_id,omitempty"`
}

// InventoryRecordDTO saldo de un producto.
type InventoryRecordDTO struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	ProductSKU  string    `json:"product_sku,omitempty"`
	Quantity    int64     `json:"quantity"`
	MinStock    int64     `json:"min_stock"`
	MaxStock    *int64    `json:"max_stock,omitempty"`
	IsLow       bool      `json:"is_low"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InventoryRecordFromEntity mapea el registro a su DTO.
func InventoryRecordFromEntity(r *entity.InventoryRecord) InventoryRecordDTO {
	return InventoryRecordDTO{
		ID:          r.ID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		ProductSKU:  r.ProductSKU,
		Quantity:    r.Quantity,
		MinStock:    r.MinStock,
		MaxStock:    r.MaxStock,
		IsLow:       r.IsLow(),
		UpdatedAt:   r.UpdatedAt,
	}
}

// InventoryListResponse listado paginado de saldos.
type InventoryListResponse struct {
	Items []InventoryRecordDTO `json:"items"`
	Page  PageResponse         `json:"page"`
}

// MovementDTO movimiento del libro.
type MovementDTO struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	Type         string    `json:"type"`
	Quantity     int64     `json:"quantity"`
	Delta        int64     `json:"delta"`
	BalanceAfter int64     `json:"balance_after"`
	Reason       string    `json:"reason,omitempty"`
	Reference    string    `json:"reference,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// MovementFromEntity mapea el movimiento a su DTO.
func MovementFromEntity(m *entity.InventoryMovement) MovementDTO {
	return MovementDTO{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Type:         string(m.Type),
		Quantity:     m.Quantity,
		Delta:        m.Delta,
		BalanceAfter: m.BalanceAfter,
		Reason:       m.Reason,
		Reference:    m.Reference,
		Notes:        m.Notes,
		UserID:       m.UserID,
		CreatedAt:    m.CreatedAt,
	}
}

// MovementListResponse listado paginado del libro.
type MovementListResponse struct {
	Items []MovementDTO `json:"items"`
	Page  PageResponse  `json:"page"`
}

// StockAlertDTO alerta de stock.
type StockAlertDTO struct {
	ID         string     `json:"id"`
	ProductID  string     `json:"product_id"`
	AlertType  string     `json:"alert_type"`
	Message    string     `json:"message"`
	IsRead     bool       `json:"is_read"`
	IsResolved bool       `json:"is_resolved"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// StockAlertFromEntity mapea la alerta a su DTO.
func StockAlertFromEntity(a *entity.StockAlert) StockAlertDTO {
	return StockAlertDTO{
		ID:         a.ID,
		ProductID:  a.ProductID,
		AlertType:  string(a.AlertType),
		Message:    a.Message,
		IsRead:     a.IsRead,
		IsResolved: a.IsResolved,
		ResolvedAt: a.ResolvedAt,
		CreatedAt:  a.CreatedAt,
	}
}

// StockAlertsFromEntities mapea una lista de alertas; nunca devuelve nil.
func StockAlertsFromEntities(in []*entity.StockAlert) []StockAlertDTO {
	out := make([]StockAlertDTO, 0, len(in))
	for _, a := range in {
		out = append(out, StockAlertFromEntity(a))
	}
	return out
}

// AlertListResponse listado paginado de alertas.
type AlertListResponse struct {
	Items []StockAlertDTO `json:"items"`
	Page  PageResponse    `json:"page"`
}

// InventoryReportDTO resumen del inventario de un tenant.
type InventoryReportDTO struct {
	TenantID         string               `json:"tenant_id"`
	GeneratedAt      time.Time            `json:"generated_at"`
	TotalProducts    int                  `json:"total_products"`
	TotalUnits       int64                `json:"total_units"`
	LowStockCount    int                  `json:"low_stock_count"`
	OutOfStockCount  int                  `json:"out_of_stock_count"`
	OverstockCount   int                  `json:"overstock_count"`
	OpenAlertsCount  int                  `json:"open_alerts_count"`
	LowStockProducts []InventoryRecordDTO `json:"low_stock_products"`
}

// LedgerCheckDTO resultado de verificar saldo contra la suma del libro.
type LedgerCheckDTO struct {
	ProductID   string `json:"product_id"`
	Quantity    int64  `json:"quantity"`
	LedgerTotal int64  `json:"ledger_total"`
	Consistent  bool   `json:"consistent"`
}

// ReplenishmentSuggestionDTO producto a reponer con la cantidad sugerida de pedido.
type ReplenishmentSuggestionDTO struct {
	ProductID           string `json:"product_id"`
	SKU                 string `json:"sku,omitempty"`
	ProductName         string `json:"product_name,omitempty"`
	CurrentStock        int64  `json:"current_stock"`
	MinStock            int64  `json:"min_stock"`
	MaxStock            *int64 `json:"max_stock,omitempty"`
	IdealStock          int64  `json:"ideal_stock"`
	SuggestedOrderQty   int64  `json:"suggested_order_qty"`
	UnitsSoldLast90Days int64  `json:"units_sold_last_90_days"`
	Priority            int    `json:"priority"`
}
