package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo saldos en memoria.
type InventoryRepo struct{ v *view }

func (r *InventoryRepo) Create(_ context.Context, rec *entity.InventoryRecord) error {
	if rec == nil {
		return errNilEntity
	}
	return r.v.with(func(d *data) error {
		k := key{rec.TenantID, rec.ProductID}
		if _, ok := d.records[k]; ok {
			return fmt.Errorf("inventario de %s: %w", rec.ProductID, domain.ErrDuplicate)
		}
		if rec.Quantity < 0 {
			return fmt.Errorf("cantidad negativa: %w", domain.ErrConflict)
		}
		d.records[k] = copyRecord(rec)
		return nil
	})
}

func (r *InventoryRepo) Get(_ context.Context, tenantID, productID string) (*entity.InventoryRecord, error) {
	var out *entity.InventoryRecord
	err := r.v.with(func(d *data) error {
		out = d.lookupRecord(tenantID, productID)
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a Get: la tx ya tiene el almacén en exclusiva.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, tenantID, productID string) (*entity.InventoryRecord, error) {
	return r.Get(ctx, tenantID, productID)
}

func (r *InventoryRepo) UpdateQuantity(_ context.Context, rec *entity.InventoryRecord) error {
	return r.v.with(func(d *data) error {
		cur, ok := d.records[key{rec.TenantID, rec.ProductID}]
		if !ok {
			return fmt.Errorf("inventario de %s: %w", rec.ProductID, domain.ErrNotFound)
		}
		if rec.Quantity < 0 {
			// equivalente al CHECK (quantity >= 0)
			return fmt.Errorf("cantidad negativa: %w", domain.ErrConflict)
		}
		cur.Quantity = rec.Quantity
		cur.UpdatedAt = rec.UpdatedAt
		return nil
	})
}

func (r *InventoryRepo) UpdateThresholds(_ context.Context, rec *entity.InventoryRecord) error {
	return r.v.with(func(d *data) error {
		cur, ok := d.records[key{rec.TenantID, rec.ProductID}]
		if !ok {
			return fmt.Errorf("inventario de %s: %w", rec.ProductID, domain.ErrNotFound)
		}
		upd := copyRecord(rec)
		cur.MinStock = upd.MinStock
		cur.MaxStock = upd.MaxStock
		cur.UpdatedAt = upd.UpdatedAt
		return nil
	})
}

func (r *InventoryRepo) List(_ context.Context, tenantID string, page repository.Page) ([]*entity.InventoryRecord, int, error) {
	var (
		out   []*entity.InventoryRecord
		total int
	)
	err := r.v.with(func(d *data) error {
		all := d.tenantRecords(tenantID)
		total = len(all)
		out = paginate(all, page)
		return nil
	})
	return out, total, err
}

func (r *InventoryRepo) ListLowStock(_ context.Context, tenantID string) ([]*entity.InventoryRecord, error) {
	out := []*entity.InventoryRecord{}
	err := r.v.with(func(d *data) error {
		for _, rec := range d.tenantRecords(tenantID) {
			if rec.IsLow() {
				out = append(out, rec)
			}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
		return nil
	})
	return out, err
}

func (r *InventoryRepo) ListProductIDs(_ context.Context, tenantID string) ([]string, error) {
	var out []string
	err := r.v.with(func(d *data) error {
		for _, k := range sortedKeys(d.records, tenantID) {
			out = append(out, k.id)
		}
		return nil
	})
	return out, err
}

func (r *InventoryRepo) ListTenants(_ context.Context) ([]string, error) {
	var out []string
	err := r.v.with(func(d *data) error {
		seen := make(map[string]bool)
		for k := range d.records {
			if !seen[k.tenantID] {
				seen[k.tenantID] = true
				out = append(out, k.tenantID)
			}
		}
		sort.Strings(out)
		return nil
	})
	return out, err
}

// lookupRecord copia del saldo con nombre y SKU del producto.
func (d *data) lookupRecord(tenantID, productID string) *entity.InventoryRecord {
	rec, ok := d.records[key{tenantID, productID}]
	if !ok {
		return nil
	}
	out := copyRecord(rec)
	if p, ok := d.products[key{tenantID, productID}]; ok {
		out.ProductName = p.Name
		out.ProductSKU = p.SKU
	}
	return out
}

func (d *data) tenantRecords(tenantID string) []*entity.InventoryRecord {
	keys := sortedKeys(d.records, tenantID)
	out := make([]*entity.InventoryRecord, 0, len(keys))
	for _, k := range keys {
		out = append(out, d.lookupRecord(k.tenantID, k.id))
	}
	return out
}
