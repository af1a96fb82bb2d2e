package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*AlertRepo)(nil)

// AlertRepo alertas en memoria; ordenadas por creación.
type AlertRepo struct{ v *view }

func (r *AlertRepo) Create(_ context.Context, a *entity.StockAlert) error {
	if a == nil {
		return errNilEntity
	}
	return r.v.with(func(d *data) error {
		for _, cur := range d.alerts {
			if cur.TenantID == a.TenantID && cur.ProductID == a.ProductID &&
				cur.AlertType == a.AlertType && !cur.IsResolved {
				return fmt.Errorf("alerta %s abierta: %w", a.AlertType, domain.ErrDuplicate)
			}
		}
		d.alerts = append(d.alerts, copyAlert(a))
		return nil
	})
}

func (r *AlertRepo) GetByID(_ context.Context, tenantID, id string) (*entity.StockAlert, error) {
	var out *entity.StockAlert
	err := r.v.with(func(d *data) error {
		if a := d.findAlert(tenantID, id); a != nil {
			out = copyAlert(a)
		}
		return nil
	})
	return out, err
}

func (r *AlertRepo) ListOpenByProduct(_ context.Context, tenantID, productID string) ([]*entity.StockAlert, error) {
	var out []*entity.StockAlert
	err := r.v.with(func(d *data) error {
		for _, a := range d.alerts {
			if a.TenantID == tenantID && a.ProductID == productID && !a.IsResolved {
				out = append(out, copyAlert(a))
			}
		}
		return nil
	})
	return out, err
}

func (r *AlertRepo) List(_ context.Context, tenantID string, f repository.AlertFilter, page repository.Page) ([]*entity.StockAlert, int, error) {
	var (
		out   []*entity.StockAlert
		total int
	)
	err := r.v.with(func(d *data) error {
		var match []*entity.StockAlert
		// más recientes primero
		for i := len(d.alerts) - 1; i >= 0; i-- {
			a := d.alerts[i]
			if a.TenantID != tenantID {
				continue
			}
			if f.ProductID != "" && a.ProductID != f.ProductID {
				continue
			}
			if f.AlertType != "" && a.AlertType != f.AlertType {
				continue
			}
			if f.IsRead != nil && a.IsRead != *f.IsRead {
				continue
			}
			if f.IsResolved != nil && a.IsResolved != *f.IsResolved {
				continue
			}
			match = append(match, copyAlert(a))
		}
		total = len(match)
		out = paginate(match, page)
		return nil
	})
	return out, total, err
}

func (r *AlertRepo) MarkRead(_ context.Context, tenantID, id string) error {
	return r.v.with(func(d *data) error {
		a := d.findAlert(tenantID, id)
		if a == nil {
			return fmt.Errorf("alerta %s: %w", id, domain.ErrNotFound)
		}
		a.IsRead = true
		return nil
	})
}

func (r *AlertRepo) Resolve(_ context.Context, tenantID, id string, at time.Time) error {
	return r.v.with(func(d *data) error {
		a := d.findAlert(tenantID, id)
		if a == nil {
			return fmt.Errorf("alerta %s: %w", id, domain.ErrNotFound)
		}
		if a.IsResolved {
			return nil
		}
		a.IsResolved = true
		a.ResolvedAt = &at
		return nil
	})
}

func (r *AlertRepo) CountOpen(_ context.Context, tenantID string) (int, error) {
	n := 0
	err := r.v.with(func(d *data) error {
		for _, a := range d.alerts {
			if a.TenantID == tenantID && !a.IsResolved {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (d *data) findAlert(tenantID, id string) *entity.StockAlert {
	for _, a := range d.alerts {
		if a.TenantID == tenantID && a.ID == id {
			return a
		}
	}
	return nil
}
