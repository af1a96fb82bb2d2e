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

var _ repository.ProductCatalogRepository = (*ProductRepo)(nil)

// ProductRepo catálogo de productos (tabla products).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta un producto; SKU o código de barras repetido en el tenant -> domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, tenant_id, sku, barcode, name, unit, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.TenantID, p.SKU, nullIfEmpty(p.Barcode), p.Name, p.Unit, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("producto %s (sku %s): %w", p.ID, p.SKU, domain.ErrDuplicate)
		}
		return mapError("insert product", err)
	}
	return nil
}

const productColumns = `id, tenant_id, sku, barcode, name, unit, is_active, created_at, updated_at`

// GetByID obtiene un producto del tenant; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get product", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU; (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, tenantID, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND sku = $2`, tenantID, sku))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get product by sku", err)
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context, tenantID string, page repository.Page) ([]*entity.Product, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE tenant_id = $1`, tenantID).Scan(&total); err != nil {
		return nil, 0, mapError("count products", err)
	}
	page = page.Normalize()
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE tenant_id = $1
		ORDER BY sku
		LIMIT $2 OFFSET $3`, tenantID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, mapError("list products", err)
	}
	defer rows.Close()
	out := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, mapError("scan product", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list products", err)
	}
	return out, total, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p       entity.Product
		barcode *string
	)
	if err := row.Scan(&p.ID, &p.TenantID, &p.SKU, &barcode, &p.Name, &p.Unit, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Barcode = derefString(barcode)
	return &p, nil
}
