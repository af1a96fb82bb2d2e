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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo cabecera (sales) y líneas (sale_items) de ventas (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, tenant_id, sale_number, user_id, customer_id, status, payment_method,
	subtotal, discount, tax, total, notes, created_at, updated_at`

// Create inserta cabecera y líneas; el número de venta sale de la secuencia sale_number_seq.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO sales (id, tenant_id, sale_number, user_id, customer_id, status, payment_method,
		                   subtotal, discount, tax, total, notes, created_at, updated_at)
		VALUES ($1, $2, 'V-' || lpad(nextval('sale_number_seq')::text, 8, '0'), $3, $4, $5, $6,
		        $7, $8, $9, $10, $11, $12, $13)
		RETURNING sale_number`,
		s.ID, s.TenantID, s.UserID, nullIfEmpty(s.CustomerID), string(s.Status), string(s.PaymentMethod),
		s.Subtotal, s.Discount, s.Tax, s.Total, s.Notes, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.SaleNumber)
	if err != nil {
		return mapError("insert sale", err)
	}
	for i := range s.Items {
		it := &s.Items[i]
		it.SaleID = s.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, tenant_id, product_id, quantity, unit_price, total, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, s.ID, s.TenantID, it.ProductID, it.Quantity, it.UnitPrice, it.Total, it.CreatedAt,
		)
		if err != nil {
			return mapError("insert sale item", err)
		}
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	return r.get(ctx, "get sale", `SELECT `+saleColumns+` FROM sales WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

// GetForUpdate bloquea la cabecera: anulación y reembolsos de una misma venta se serializan.
func (r *SaleRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	return r.get(ctx, "get sale for update", `SELECT `+saleColumns+` FROM sales WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, tenantID, id)
}

func (r *SaleRepo) UpdateStatus(ctx context.Context, s *entity.Sale) error {
	tag, err := r.q.Exec(ctx, `UPDATE sales SET status = $3, updated_at = $4 WHERE tenant_id = $1 AND id = $2`,
		s.TenantID, s.ID, string(s.Status), s.UpdatedAt)
	if err != nil {
		return mapError("update sale status", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("venta %s: %w", s.ID, domain.ErrNotFound)
	}
	return nil
}

// List ventas del tenant, más recientes primero, con sus líneas.
func (r *SaleRepo) List(ctx context.Context, tenantID string, f repository.SaleFilter, page repository.Page) ([]*entity.Sale, int, error) {
	page = page.Normalize()
	w := &whereBuilder{}
	w.add("tenant_id = $%d", tenantID)
	if f.Status != "" {
		w.add("status = $%d", string(f.Status))
	}
	if f.PaymentMethod != "" {
		w.add("payment_method = $%d", string(f.PaymentMethod))
	}
	if f.DateFrom != nil {
		w.add("created_at >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		w.add("created_at <= $%d", *f.DateTo)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapError("count sales", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales`+w.sql()+
		` ORDER BY sale_number DESC LIMIT `+w.next(page.Limit)+` OFFSET `+w.next(page.Offset()), w.args...)
	if err != nil {
		return nil, 0, mapError("list sales", err)
	}
	var (
		out []*entity.Sale
		ids []string
	)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, 0, mapError("scan sale", err)
		}
		out = append(out, s)
		ids = append(ids, s.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list sales", err)
	}
	if len(ids) == 0 {
		return []*entity.Sale{}, total, nil
	}

	items, err := r.items(ctx, tenantID, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, s := range out {
		s.Items = items[s.ID]
	}
	return out, total, nil
}

func (r *SaleRepo) get(ctx context.Context, op, sql string, tenantID, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, sql, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(op, err)
	}
	items, err := r.items(ctx, tenantID, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]
	return s, nil
}

func (r *SaleRepo) items(ctx context.Context, tenantID string, saleIDs []string) (map[string][]entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, total, created_at
		FROM sale_items
		WHERE tenant_id = $1 AND sale_id = ANY($2)
		ORDER BY created_at, id`, tenantID, saleIDs)
	if err != nil {
		return nil, mapError("list sale items", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.SaleItem, len(saleIDs))
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Total, &it.CreatedAt); err != nil {
			return nil, mapError("scan sale item", err)
		}
		out[it.SaleID] = append(out[it.SaleID], it)
	}
	return out, mapError("list sale items", rows.Err())
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s              entity.Sale
		customer       *string
		status, method string
	)
	err := row.Scan(&s.ID, &s.TenantID, &s.SaleNumber, &s.UserID, &customer, &status, &method,
		&s.Subtotal, &s.Discount, &s.Tax, &s.Total, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.CustomerID = derefString(customer)
	s.Status = entity.SaleStatus(status)
	s.PaymentMethod = entity.PaymentMethod(method)
	return &s, nil
}
