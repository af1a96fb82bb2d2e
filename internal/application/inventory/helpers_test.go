package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventory/internal/application/dto"
	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/infrastructure/memory"
)

const (
	tenantA = "tenant-a"
	tenantB = "tenant-b"
	userID  = "user-1"
)

type fixture struct {
	store    *memory.Store
	engine   *inventory.MovementUseCase
	monitor  *inventory.AlertMonitor
	query    *inventory.QueryUseCase
	recorder *countingRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	rec := &countingRecorder{applied: map[entity.MovementType]int{}, rejected: map[string]int{}}
	monitor := inventory.NewAlertMonitor(store.Inventory(), store.Alerts(), rec, zerolog.Nop())
	engine := inventory.NewMovementUseCase(store, store.Products(), monitor, rec, zerolog.Nop(), inventory.DefaultMaxRetries)
	query := inventory.NewQueryUseCase(store.Inventory(), store.Movements(), store.Alerts(), fakePDF{})
	return &fixture{store: store, engine: engine, monitor: monitor, query: query, recorder: rec}
}

// addProduct registra el producto y su saldo inicial.
func (f *fixture) addProduct(t *testing.T, tenantID, productID string, initial, minStock int64, maxStock *int64) {
	t.Helper()
	f.store.AddProduct(&entity.Product{ID: productID, TenantID: tenantID, SKU: "SKU-" + productID, Name: "Producto " + productID, IsActive: true})
	_, err := f.engine.InitRecord(context.Background(), inventory.InitRecordInput{
		TenantID:     tenantID,
		ProductID:    productID,
		UserID:       userID,
		InitialStock: initial,
		MinStock:     minStock,
		MaxStock:     maxStock,
	})
	require.NoError(t, err)
}

func (f *fixture) quantity(t *testing.T, tenantID, productID string) int64 {
	t.Helper()
	rec, err := f.query.GetInventory(context.Background(), tenantID, productID)
	require.NoError(t, err)
	return rec.Quantity
}

func (f *fixture) openAlerts(t *testing.T, tenantID, productID string) map[entity.AlertType]bool {
	t.Helper()
	open, err := f.store.Alerts().ListOpenByProduct(context.Background(), tenantID, productID)
	require.NoError(t, err)
	out := map[entity.AlertType]bool{}
	for _, a := range open {
		out[a.AlertType] = true
	}
	return out
}

func int64Ptr(v int64) *int64 { return &v }

type countingRecorder struct {
	mu       sync.Mutex
	applied  map[entity.MovementType]int
	rejected map[string]int
	retries  int
	raised   int
	resolved int
}

func (r *countingRecorder) MovementApplied(t entity.MovementType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied[t]++
}

func (r *countingRecorder) MovementRejected(_ entity.MovementType, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected[reason]++
}

func (r *countingRecorder) ConflictRetried(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retries++
}

func (r *countingRecorder) AlertRaised(entity.AlertType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raised++
}

func (r *countingRecorder) AlertResolved(entity.AlertType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved++
}

type fakePDF struct{}

func (fakePDF) Generate(*dto.InventoryReportDTO) ([]byte, error) { return []byte("%PDF-fake"), nil }

type fakeLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	calls int
}

func (l *fakeLocker) TryLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.held == nil {
		l.held = map[string]time.Time{}
	}
	if until, ok := l.held[key]; ok && time.Now().Before(until) {
		return false, nil
	}
	l.held[key] = time.Now().Add(ttl)
	return true, nil
}
