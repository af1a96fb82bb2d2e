package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo alertas de stock. El índice parcial uq_stock_alerts_open garantiza
// una sola alerta abierta por (tenant, producto, tipo).
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

const alertColumns = `id, tenant_id, product_id, alert_type, message, is_read, is_resolved, resolved_at, created_at`

func scanAlert(row pgx.Row) (*entity.StockAlert, error) {
	var (
		a   entity.StockAlert
		typ string
	)
	if err := row.Scan(&a.ID, &a.TenantID, &a.ProductID, &typ, &a.Message, &a.IsRead, &a.IsResolved, &a.ResolvedAt, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.AlertType = entity.AlertType(typ)
	return &a, nil
}

func (r *StockAlertRepo) Create(ctx context.Context, a *entity.StockAlert) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_alerts (`+alertColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.TenantID, a.ProductID, string(a.AlertType), a.Message, a.IsRead, a.IsResolved, a.ResolvedAt, a.CreatedAt,
	)
	return mapError("insert stock alert", err)
}

func (r *StockAlertRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.StockAlert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, `SELECT `+alertColumns+` FROM stock_alerts WHERE tenant_id = $1 AND id = $2`, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get stock alert", err)
	}
	return a, nil
}

func (r *StockAlertRepo) ListOpenByProduct(ctx context.Context, tenantID, productID string) ([]*entity.StockAlert, error) {
	return r.query(ctx, "list open stock alerts", `
		SELECT `+alertColumns+` FROM stock_alerts
		WHERE tenant_id = $1 AND product_id = $2 AND NOT is_resolved
		ORDER BY created_at`, tenantID, productID)
}

// List alertas del tenant, más recientes primero.
func (r *StockAlertRepo) List(ctx context.Context, tenantID string, f repository.AlertFilter, page repository.Page) ([]*entity.StockAlert, int, error) {
	page = page.Normalize()
	w := &whereBuilder{}
	w.add("tenant_id = $%d", tenantID)
	if f.ProductID != "" {
		w.add("product_id = $%d", f.ProductID)
	}
	if f.AlertType != "" {
		w.add("alert_type = $%d", string(f.AlertType))
	}
	if f.IsRead != nil {
		w.add("is_read = $%d", *f.IsRead)
	}
	if f.IsResolved != nil {
		w.add("is_resolved = $%d", *f.IsResolved)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_alerts`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapError("count stock alerts", err)
	}
	query := `SELECT ` + alertColumns + ` FROM stock_alerts` + w.sql() +
		` ORDER BY created_at DESC, id LIMIT ` + w.next(page.Limit) + ` OFFSET ` + w.next(page.Offset())
	items, err := r.query(ctx, "list stock alerts", query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *StockAlertRepo) MarkRead(ctx context.Context, tenantID, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE stock_alerts SET is_read = TRUE WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return mapError("mark stock alert read", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("alerta %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Resolve cierra la alerta; si ya estaba resuelta conserva la fecha original.
func (r *StockAlertRepo) Resolve(ctx context.Context, tenantID, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stock_alerts
		SET is_resolved = TRUE, resolved_at = COALESCE(resolved_at, $3)
		WHERE tenant_id = $1 AND id = $2`, tenantID, id, at)
	if err != nil {
		return mapError("resolve stock alert", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("alerta %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *StockAlertRepo) CountOpen(ctx context.Context, tenantID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_alerts WHERE tenant_id = $1 AND NOT is_resolved`, tenantID).Scan(&n); err != nil {
		return 0, mapError("count open stock alerts", err)
	}
	return n, nil
}

func (r *StockAlertRepo) query(ctx context.Context, op, sql string, args ...any) ([]*entity.StockAlert, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	out := []*entity.StockAlert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		out = append(out, a)
	}
	return out, mapError(op, rows.Err())
}
