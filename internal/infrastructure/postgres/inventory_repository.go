package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo saldos por (tenant, producto) sobre la tabla inventory (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventorySelect = `
	SELECT i.id, i.tenant_id, i.product_id, i.quantity, i.min_stock, i.max_stock,
	       i.created_at, i.updated_at, COALESCE(p.name, ''), COALESCE(p.sku, '')
	FROM inventory i
	LEFT JOIN products p ON p.tenant_id = i.tenant_id AND p.id = i.product_id`

func scanRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var r entity.InventoryRecord
	err := row.Scan(&r.ID, &r.TenantID, &r.ProductID, &r.Quantity, &r.MinStock, &r.MaxStock,
		&r.CreatedAt, &r.UpdatedAt, &r.ProductName, &r.ProductSKU)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserta el saldo; duplicado (tenant, producto) -> domain.ErrDuplicate.
func (r *InventoryRepo) Create(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory (id, tenant_id, product_id, quantity, min_stock, max_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.TenantID, rec.ProductID, rec.Quantity, rec.MinStock, rec.MaxStock, rec.CreatedAt, rec.UpdatedAt,
	)
	return mapError("insert inventory", err)
}

// Get saldo del producto; (nil, nil) si no existe.
func (r *InventoryRepo) Get(ctx context.Context, tenantID, productID string) (*entity.InventoryRecord, error) {
	rec, err := scanRecord(r.q.QueryRow(ctx, inventorySelect+`
		WHERE i.tenant_id = $1 AND i.product_id = $2`, tenantID, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get inventory", err)
	}
	return rec, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila hasta el fin de la transacción.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, tenantID, productID string) (*entity.InventoryRecord, error) {
	rec, err := scanRecord(r.q.QueryRow(ctx, inventorySelect+`
		WHERE i.tenant_id = $1 AND i.product_id = $2
		FOR UPDATE OF i`, tenantID, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get inventory for update", err)
	}
	return rec, nil
}

// UpdateQuantity escribe la nueva cantidad; el CHECK (quantity >= 0) la respalda.
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, rec *entity.InventoryRecord) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventory SET quantity = $3, updated_at = $4
		WHERE tenant_id = $1 AND product_id = $2`,
		rec.TenantID, rec.ProductID, rec.Quantity, rec.UpdatedAt)
	if err != nil {
		return mapError("update inventory quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventario de %s: %w", rec.ProductID, domain.ErrNotFound)
	}
	return nil
}

// UpdateThresholds actualiza mínimo y máximo.
func (r *InventoryRepo) UpdateThresholds(ctx context.Context, rec *entity.InventoryRecord) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventory SET min_stock = $3, max_stock = $4, updated_at = $5
		WHERE tenant_id = $1 AND product_id = $2`,
		rec.TenantID, rec.ProductID, rec.MinStock, rec.MaxStock, rec.UpdatedAt)
	if err != nil {
		return mapError("update inventory thresholds", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventario de %s: %w", rec.ProductID, domain.ErrNotFound)
	}
	return nil
}

// List saldos del tenant ordenados por producto.
func (r *InventoryRepo) List(ctx context.Context, tenantID string, page repository.Page) ([]*entity.InventoryRecord, int, error) {
	page = page.Normalize()
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, mapError("count inventory", err)
	}
	items, err := r.query(ctx, "list inventory", inventorySelect+`
		WHERE i.tenant_id = $1
		ORDER BY i.product_id
		LIMIT $2 OFFSET $3`, tenantID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListLowStock saldos en o bajo el mínimo, primero los más bajos.
func (r *InventoryRepo) ListLowStock(ctx context.Context, tenantID string) ([]*entity.InventoryRecord, error) {
	return r.query(ctx, "list low stock", inventorySelect+`
		WHERE i.tenant_id = $1 AND i.quantity <= i.min_stock
		ORDER BY i.quantity, i.product_id`, tenantID)
}

func (r *InventoryRepo) ListProductIDs(ctx context.Context, tenantID string) ([]string, error) {
	return r.strings(ctx, "list inventory products",
		`SELECT product_id FROM inventory WHERE tenant_id = $1 ORDER BY product_id`, tenantID)
}

func (r *InventoryRepo) ListTenants(ctx context.Context) ([]string, error) {
	return r.strings(ctx, "list inventory tenants", `SELECT DISTINCT tenant_id FROM inventory ORDER BY tenant_id`)
}

func (r *InventoryRepo) query(ctx context.Context, op, sql string, args ...any) ([]*entity.InventoryRecord, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	out := []*entity.InventoryRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		out = append(out, rec)
	}
	return out, mapError(op, rows.Err())
}

func (r *InventoryRepo) strings(ctx context.Context, op, sql string, args ...any) ([]string, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, mapError(op, err)
	}
	return out, nil
}
