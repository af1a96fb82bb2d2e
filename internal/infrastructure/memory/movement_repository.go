package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*MovementRepo)(nil)

// MovementRepo libro en memoria (solo se agrega).
type MovementRepo struct{ v *view }

func (r *MovementRepo) Create(_ context.Context, mov *entity.InventoryMovement) error {
	if mov == nil {
		return errNilEntity
	}
	return r.v.with(func(d *data) error {
		if mov.Type == entity.MovementVenda && mov.Reference != "" {
			for _, m := range d.movements {
				if m.TenantID == mov.TenantID && m.ProductID == mov.ProductID &&
					m.Type == entity.MovementVenda && m.Reference == mov.Reference {
					return fmt.Errorf("venta %s ya registrada: %w", mov.Reference, domain.ErrDuplicate)
				}
			}
		}
		cp := *mov
		d.movements = append(d.movements, &cp)
		return nil
	})
}

func (r *MovementRepo) List(_ context.Context, tenantID string, f repository.MovementFilter, page repository.Page) ([]*entity.InventoryMovement, int, error) {
	var (
		out   []*entity.InventoryMovement
		total int
	)
	err := r.v.with(func(d *data) error {
		var match []*entity.InventoryMovement
		for _, m := range d.movements {
			if m.TenantID != tenantID || !matchMovement(m, f) {
				continue
			}
			cp := *m
			match = append(match, &cp)
		}
		if f.Desc {
			for i, j := 0, len(match)-1; i < j; i, j = i+1, j-1 {
				match[i], match[j] = match[j], match[i]
			}
		}
		total = len(match)
		out = paginate(match, page)
		return nil
	})
	return out, total, err
}

func matchMovement(m *entity.InventoryMovement, f repository.MovementFilter) bool {
	switch {
	case f.ProductID != "" && m.ProductID != f.ProductID:
		return false
	case f.Type != "" && m.Type != f.Type:
		return false
	case f.UserID != "" && m.UserID != f.UserID:
		return false
	case f.Reference != "" && m.Reference != f.Reference:
		return false
	case f.DateFrom != nil && m.CreatedAt.Before(*f.DateFrom):
		return false
	case f.DateTo != nil && m.CreatedAt.After(*f.DateTo):
		return false
	}
	return true
}

func (r *MovementRepo) ExistsByReference(_ context.Context, tenantID, productID string, t entity.MovementType, reference string) (bool, error) {
	found := false
	err := r.v.with(func(d *data) error {
		for _, m := range d.movements {
			if m.TenantID == tenantID && m.ProductID == productID && m.Type == t && m.Reference == reference {
				found = true
				break
			}
		}
		return nil
	})
	return found, err
}

func (r *MovementRepo) SumByReference(_ context.Context, tenantID string, t entity.MovementType, reference string) (map[string]int64, error) {
	out := make(map[string]int64)
	err := r.v.with(func(d *data) error {
		for _, m := range d.movements {
			if m.TenantID == tenantID && m.Type == t && m.Reference == reference {
				out[m.ProductID] += m.Quantity
			}
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) SumByTypeSince(_ context.Context, tenantID string, t entity.MovementType, since time.Time) (map[string]int64, error) {
	out := make(map[string]int64)
	err := r.v.with(func(d *data) error {
		for _, m := range d.movements {
			if m.TenantID == tenantID && m.Type == t && !m.CreatedAt.Before(since) {
				out[m.ProductID] += m.Quantity
			}
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) SumDelta(_ context.Context, tenantID, productID string) (int64, error) {
	var sum int64
	err := r.v.with(func(d *data) error {
		for _, m := range d.movements {
			if m.TenantID == tenantID && m.ProductID == productID {
				sum += m.Delta
			}
		}
		return nil
	})
	return sum, err
}
