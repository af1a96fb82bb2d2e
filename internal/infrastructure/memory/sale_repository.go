package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct{ v *view }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	if s == nil {
		return errNilEntity
	}
	return r.v.with(func(d *data) error {
		k := key{s.TenantID, s.ID}
		if _, ok := d.sales[k]; ok {
			return fmt.Errorf("venta %s: %w", s.ID, domain.ErrDuplicate)
		}
		d.saleSeq++
		s.SaleNumber = fmt.Sprintf("V-%08d", d.saleSeq)
		d.sales[k] = copySale(s)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.with(func(d *data) error {
		if s, ok := d.sales[key{tenantID, id}]; ok {
			out = copySale(s)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r *SaleRepo) UpdateStatus(_ context.Context, s *entity.Sale) error {
	return r.v.with(func(d *data) error {
		cur, ok := d.sales[key{s.TenantID, s.ID}]
		if !ok {
			return fmt.Errorf("venta %s: %w", s.ID, domain.ErrNotFound)
		}
		cur.Status = s.Status
		cur.UpdatedAt = s.UpdatedAt
		return nil
	})
}

func (r *SaleRepo) List(_ context.Context, tenantID string, f repository.SaleFilter, page repository.Page) ([]*entity.Sale, int, error) {
	var (
		out   []*entity.Sale
		total int
	)
	err := r.v.with(func(d *data) error {
		var match []*entity.Sale
		for k, s := range d.sales {
			if k.tenantID != tenantID {
				continue
			}
			if f.Status != "" && s.Status != f.Status {
				continue
			}
			if f.PaymentMethod != "" && s.PaymentMethod != f.PaymentMethod {
				continue
			}
			if f.DateFrom != nil && s.CreatedAt.Before(*f.DateFrom) {
				continue
			}
			if f.DateTo != nil && s.CreatedAt.After(*f.DateTo) {
				continue
			}
			match = append(match, copySale(s))
		}
		sort.Slice(match, func(i, j int) bool { return match[i].SaleNumber > match[j].SaleNumber })
		total = len(match)
		out = paginate(match, page)
		return nil
	})
	return out, total, err
}
