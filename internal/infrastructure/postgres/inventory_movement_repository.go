package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo libro append-only sobre inventory_movements (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento. Una segunda VENTA con la misma referencia viola
// uq_inventory_movements_sale_ref -> domain.ErrDuplicate.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements
			(id, tenant_id, product_id, type, quantity, delta, balance_after, reason, reference, notes, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TenantID, m.ProductID, string(m.Type), m.Quantity, m.Delta, m.BalanceAfter,
		m.Reason, nullIfEmpty(m.Reference), m.Notes, m.UserID, m.CreatedAt,
	)
	return mapError("insert inventory movement", err)
}

// List movimientos del tenant en orden de creación (seq desempata).
func (r *InventoryMovementRepo) List(ctx context.Context, tenantID string, f repository.MovementFilter, page repository.Page) ([]*entity.InventoryMovement, int, error) {
	page = page.Normalize()
	w := &whereBuilder{}
	w.add("tenant_id = $%d", tenantID)
	if f.ProductID != "" {
		w.add("product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		w.add("type = $%d", string(f.Type))
	}
	if f.UserID != "" {
		w.add("user_id = $%d", f.UserID)
	}
	if f.Reference != "" {
		w.add("reference = $%d", f.Reference)
	}
	if f.DateFrom != nil {
		w.add("created_at >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		w.add("created_at <= $%d", *f.DateTo)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_movements`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, mapError("count inventory movements", err)
	}

	order := " ORDER BY created_at, seq"
	if f.Desc {
		order = " ORDER BY created_at DESC, seq DESC"
	}
	query := `
		SELECT id, tenant_id, product_id, type, quantity, delta, balance_after, reason, reference, notes, user_id, created_at
		FROM inventory_movements` + w.sql() + order + " LIMIT " + w.next(page.Limit) + " OFFSET " + w.next(page.Offset())
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, mapError("list inventory movements", err)
	}
	defer rows.Close()

	out := []*entity.InventoryMovement{}
	for rows.Next() {
		var (
			m   entity.InventoryMovement
			typ string
			ref *string
		)
		if err := rows.Scan(&m.ID, &m.TenantID, &m.ProductID, &typ, &m.Quantity, &m.Delta, &m.BalanceAfter,
			&m.Reason, &ref, &m.Notes, &m.UserID, &m.CreatedAt); err != nil {
			return nil, 0, mapError("scan inventory movement", err)
		}
		m.Type = entity.MovementType(typ)
		m.Reference = derefString(ref)
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list inventory movements", err)
	}
	return out, total, nil
}

func (r *InventoryMovementRepo) ExistsByReference(ctx context.Context, tenantID, productID string, t entity.MovementType, reference string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM inventory_movements
			WHERE tenant_id = $1 AND product_id = $2 AND type = $3 AND reference = $4
		)`, tenantID, productID, string(t), reference).Scan(&exists)
	if err != nil {
		return false, mapError("exists movement by reference", err)
	}
	return exists, nil
}

func (r *InventoryMovementRepo) SumByReference(ctx context.Context, tenantID string, t entity.MovementType, reference string) (map[string]int64, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, SUM(quantity)::bigint
		FROM inventory_movements
		WHERE tenant_id = $1 AND type = $2 AND reference = $3
		GROUP BY product_id`, tenantID, string(t), reference)
	if err != nil {
		return nil, mapError("sum movements by reference", err)
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var (
			pid string
			sum int64
		)
		if err := rows.Scan(&pid, &sum); err != nil {
			return nil, mapError("sum movements by reference", err)
		}
		out[pid] = sum
	}
	return out, mapError("sum movements by reference", rows.Err())
}

func (r *InventoryMovementRepo) SumByTypeSince(ctx context.Context, tenantID string, t entity.MovementType, since time.Time) (map[string]int64, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, SUM(quantity)::bigint
		FROM inventory_movements
		WHERE tenant_id = $1 AND type = $2 AND created_at >= $3
		GROUP BY product_id`, tenantID, string(t), since)
	if err != nil {
		return nil, mapError("sum movements by type", err)
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var (
			pid string
			sum int64
		)
		if err := rows.Scan(&pid, &sum); err != nil {
			return nil, mapError("sum movements by type", err)
		}
		out[pid] = sum
	}
	return out, mapError("sum movements by type", rows.Err())
}

func (r *InventoryMovementRepo) SumDelta(ctx context.Context, tenantID, productID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(delta), 0)::bigint FROM inventory_movements
		WHERE tenant_id = $1 AND product_id = $2`, tenantID, productID).Scan(&sum)
	if err != nil {
		return 0, mapError("sum movement deltas", err)
	}
	return sum, nil
}

