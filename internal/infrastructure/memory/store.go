// Package memory implementa los repositorios sobre un almacén en memoria con transacciones
// por copia: la tx trabaja sobre un clon y solo lo publica si fn termina sin error.
// Se usa en pruebas y con APP_STORAGE=memory.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/application/sales"
	"github.com/jhoicas/pos-inventory/internal/domain"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

var (
	_ inventory.TxRunner                  = (*Store)(nil)
	_ sales.SaleTxRunner                  = (*Store)(nil)
	_ repository.ProductCatalogRepository = (*ProductRepo)(nil)
)

type key struct {
	tenantID string
	id       string
}

type data struct {
	products  map[key]*entity.Product
	records   map[key]*entity.InventoryRecord
	movements []*entity.InventoryMovement
	alerts    []*entity.StockAlert
	sales     map[key]*entity.Sale
	saleSeq   int64
}

func newData() *data {
	return &data{
		products: make(map[key]*entity.Product),
		records:  make(map[key]*entity.InventoryRecord),
		sales:    make(map[key]*entity.Sale),
	}
}

// clone copia profunda de lo mutable; los movimientos son inmutables y se comparten.
func (d *data) clone() *data {
	c := &data{
		products:  make(map[key]*entity.Product, len(d.products)),
		records:   make(map[key]*entity.InventoryRecord, len(d.records)),
		movements: append([]*entity.InventoryMovement(nil), d.movements...),
		alerts:    make([]*entity.StockAlert, 0, len(d.alerts)),
		sales:     make(map[key]*entity.Sale, len(d.sales)),
		saleSeq:   d.saleSeq,
	}
	for k, p := range d.products {
		c.products[k] = p
	}
	for k, r := range d.records {
		c.records[k] = copyRecord(r)
	}
	for _, a := range d.alerts {
		c.alerts = append(c.alerts, copyAlert(a))
	}
	for k, s := range d.sales {
		c.sales[k] = copySale(s)
	}
	return c
}

// Store almacén en memoria. Las transacciones se serializan con un único mutex,
// lo que equivale a bloquear todas las filas que tocan.
type Store struct {
	mu sync.Mutex
	d  *data

	failMu   sync.Mutex
	failNext int
	failWith error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

// AddProduct registra un producto del catálogo.
func (s *Store) AddProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.d.products[key{p.TenantID, p.ID}] = &cp
}

// FailNextCommits hace que las próximas n transacciones fallen con err al confirmar.
func (s *Store) FailNextCommits(n int, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failNext, s.failWith = n, err
}

func (s *Store) takeFailure() error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	if s.failNext <= 0 {
		return nil
	}
	s.failNext--
	return s.failWith
}

// Repositorios fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{v: &view{s: s}} }
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{v: &view{s: s}} }
func (s *Store) Movements() *MovementRepo { return &MovementRepo{v: &view{s: s}} }
func (s *Store) Alerts() *AlertRepo { return &AlertRepo{v: &view{s: s}} }
func (s *Store) Sales() *SaleRepo { return &SaleRepo{v: &view{s: s}} }

// Run ejecuta fn sobre un clon y lo publica si no hay error.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	invRepo repository.InventoryRepository,
) error) error {
	return s.tx(ctx, func(v *view) error {
		return fn(&MovementRepo{v: v}, &InventoryRepo{v: v})
	})
}

// RunSale como Run, con el repositorio de ventas en la misma tx.
func (s *Store) RunSale(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	invRepo repository.InventoryRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return s.tx(ctx, func(v *view) error {
		return fn(&MovementRepo{v: v}, &InventoryRepo{v: v}, &SaleRepo{v: v})
	})
}

func (s *Store) tx(ctx context.Context, fn func(v *view) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.d.clone()
	if err := fn(&view{s: s, d: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.takeFailure(); err != nil {
		return err
	}
	s.d = work
	return nil
}

// view da acceso a los datos: dentro de una tx al clon (mutex ya tomado), fuera al estado publicado.
type view struct {
	s *Store
	d *data
}

func (v *view) with(fn func(d *data) error) error {
	if v.d != nil {
		return fn(v.d)
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.d)
}

// ProductRepo vista de catálogo.
type ProductRepo struct{ v *view }

// GetByID devuelve (nil, nil) si el producto no existe en el tenant.
func (r *ProductRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(d *data) error {
		if p, ok := d.products[key{tenantID, id}]; ok {
			cp := *p
			out = &cp
		}
		return nil
	})
	return out, err
}

// Create alta en el catálogo; id o SKU repetido en el tenant -> domain.ErrDuplicate.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	if p == nil {
		return errNilEntity
	}
	return r.v.with(func(d *data) error {
		if _, ok := d.products[key{p.TenantID, p.ID}]; ok {
			return fmt.Errorf("producto %s: %w", p.ID, domain.ErrDuplicate)
		}
		for k, other := range d.products {
			if k.tenantID != p.TenantID {
				continue
			}
			if other.SKU == p.SKU {
				return fmt.Errorf("sku %s: %w", p.SKU, domain.ErrDuplicate)
			}
			if p.Barcode != "" && other.Barcode == p.Barcode {
				return fmt.Errorf("código de barras %s: %w", p.Barcode, domain.ErrDuplicate)
			}
		}
		cp := *p
		d.products[key{p.TenantID, p.ID}] = &cp
		return nil
	})
}

// GetBySKU devuelve (nil, nil) si no hay producto con ese SKU en el tenant.
func (r *ProductRepo) GetBySKU(_ context.Context, tenantID, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(d *data) error {
		for k, p := range d.products {
			if k.tenantID == tenantID && p.SKU == sku {
				cp := *p
				out = &cp
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) List(_ context.Context, tenantID string, page repository.Page) ([]*entity.Product, int, error) {
	var (
		out   []*entity.Product
		total int
	)
	err := r.v.with(func(d *data) error {
		all := make([]*entity.Product, 0)
		for k, p := range d.products {
			if k.tenantID == tenantID {
				cp := *p
				all = append(all, &cp)
			}
		}
		sort.Slice(all, func(i, j int) bool { return all[i].SKU < all[j].SKU })
		total = len(all)
		out = paginate(all, page)
		return nil
	})
	return out, total, err
}

func copyRecord(r *entity.InventoryRecord) *entity.InventoryRecord {
	cp := *r
	if r.MaxStock != nil {
		m := *r.MaxStock
		cp.MaxStock = &m
	}
	return &cp
}

func copyAlert(a *entity.StockAlert) *entity.StockAlert {
	cp := *a
	if a.ResolvedAt != nil {
		t := *a.ResolvedAt
		cp.ResolvedAt = &t
	}
	return &cp
}

func copySale(s *entity.Sale) *entity.Sale {
	cp := *s
	cp.Items = append([]entity.SaleItem(nil), s.Items...)
	return &cp
}

func paginate[T any](items []T, page repository.Page) []T {
	page = page.Normalize()
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func sortedKeys[V any](m map[key]V, tenantID string) []key {
	keys := make([]key, 0, len(m))
	for k := range m {
		if k.tenantID == tenantID {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].id < keys[j].id })
	return keys
}

var errNilEntity = errors.New("memory: entidad nil")
