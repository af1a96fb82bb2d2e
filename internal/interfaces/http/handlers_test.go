package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventory/internal/application/dto"
	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/application/sales"
	"github.com/jhoicas/pos-inventory/internal/application/usecase"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/pos-inventory/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/pos-inventory/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pos-inventory/pkg/jwt"
)

const otherTenantID = "00000000-0000-0000-0000-000000000099"

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
}

// newAPI monta el router completo sobre el almacén en memoria.
func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	log := zerolog.Nop()
	monitor := inventory.NewAlertMonitor(store.Inventory(), store.Alerts(), nil, log)
	engine := inventory.NewMovementUseCase(store, store.Products(), monitor, nil, log, inventory.DefaultMaxRetries)
	queries := inventory.NewQueryUseCase(store.Inventory(), store.Movements(), store.Alerts(), pdf.NewMarotoReportGenerator())
	salesUC := sales.NewUseCase(store, engine, store.Products(), store.Sales(), log, inventory.DefaultMaxRetries)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		Movements:     engine,
		Queries:       queries,
		Replenishment: inventory.NewReplenishmentUseCase(store.Inventory(), store.Movements()),
		Alerts:        monitor,
		Sales:         salesUC,
		Products:      usecase.NewProductUseCase(store.Products(), engine),
		JWTSecret:     testJWTSecret,
	})

	for _, id := range []string{"p1", "p2"} {
		store.AddProduct(&entity.Product{ID: id, TenantID: testTenantID, SKU: "SKU-" + id, Name: "Producto " + id, IsActive: true})
	}
	return &apiFixture{app: app, store: store}
}

func (f *apiFixture) do(t *testing.T, method, path, role string, body interface{}) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (f *apiFixture) initRecord(t *testing.T, productID string, initial, minStock int64) {
	t.Helper()
	status, body := f.do(t, http.MethodPost, "/api/inventory", pkgjwt.RoleManager, dto.InitRecordRequest{
		ProductID: productID, InitialStock: initial, MinStock: minStock,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func (f *apiFixture) quantity(t *testing.T, productID string) int64 {
	t.Helper()
	status, body := f.do(t, http.MethodGet, "/api/inventory/"+productID, pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	return decode[dto.InventoryRecordDTO](t, body).Quantity
}

// ── Inventario ────────────────────────────────────────────────────────────────

func TestInventoryAPI_InitYMovimientos(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 10, 2)
	assert.Equal(t, int64(10), f.quantity(t, "p1"))

	status, body := f.do(t, http.MethodPost, "/api/inventory/movements", pkgjwt.RoleManager, dto.ApplyMovementRequest{
		ProductID: "p1", Type: "SAIDA", Quantity: 4, Reason: "consumo interno",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.Equal(t, int64(6), decode[dto.InventoryRecordDTO](t, body).Quantity)

	status, body = f.do(t, http.MethodPost, "/api/inventory/p1/adjust", pkgjwt.RoleAdmin, dto.AdjustInventoryRequest{
		Quantity: -1, Reason: "conteo físico",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, int64(5), f.quantity(t, "p1"))

	status, body = f.do(t, http.MethodGet, "/api/inventory/p1/verify", pkgjwt.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	check := decode[dto.LedgerCheckDTO](t, body)
	assert.True(t, check.Consistent)
	assert.Equal(t, int64(5), check.LedgerTotal)
}

func TestInventoryAPI_ConteoFisico(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 10, 0)

	status, body := f.do(t, http.MethodPost, "/api/inventory/p1/count", pkgjwt.RoleManager, dto.CountInventoryRequest{Quantity: 7})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, int64(7), decode[dto.InventoryRecordDTO](t, body).Quantity)

	status, body = f.do(t, http.MethodGet, "/api/inventory/p1/movements", pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	history := decode[dto.MovementListResponse](t, body)
	require.Len(t, history.Items, 2)
	assert.Equal(t, "AJUSTE", history.Items[0].Type)
	assert.Equal(t, int64(-3), history.Items[0].Delta)

	status, _ = f.do(t, http.MethodPost, "/api/inventory/p1/count", pkgjwt.RoleManager, dto.CountInventoryRequest{Quantity: -1})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestInventoryAPI_InitDuplicado_409(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 0, 0)
	status, body := f.do(t, http.MethodPost, "/api/inventory", pkgjwt.RoleManager, dto.InitRecordRequest{ProductID: "p1"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(body), "DUPLICATE")
}

func TestInventoryAPI_StockInsuficiente_409(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 3, 0)

	status, body := f.do(t, http.MethodPost, "/api/inventory/movements", pkgjwt.RoleManager, dto.ApplyMovementRequest{
		ProductID: "p1", Type: "PERDA", Quantity: 5,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(body), "INSUFFICIENT_STOCK")
	assert.Equal(t, int64(3), f.quantity(t, "p1"), "el saldo no cambia")
}

func TestInventoryAPI_Validaciones_400(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 3, 0)

	cases := []dto.ApplyMovementRequest{
		{ProductID: "p1", Type: "ROUBO", Quantity: 1},
		{ProductID: "p1", Type: "ENTRADA", Quantity: 0},
		{ProductID: "p1", Type: "AJUSTE", Quantity: 0},
		{ProductID: "", Type: "ENTRADA", Quantity: 1},
	}
	for _, in := range cases {
		status, body := f.do(t, http.MethodPost, "/api/inventory/movements", pkgjwt.RoleManager, in)
		assert.Equal(t, http.StatusBadRequest, status, "%+v: %s", in, body)
	}

	max := int64(1)
	status, _ := f.do(t, http.MethodPut, "/api/inventory/p1", pkgjwt.RoleManager, dto.UpdateThresholdsRequest{MinStock: 5, MaxStock: &max})
	assert.Equal(t, http.StatusBadRequest, status, "max menor que min")

	status, _ = f.do(t, http.MethodGet, "/api/inventory/movements?date_from=ayer", pkgjwt.RoleManager, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestInventoryAPI_ProductoInexistente_404(t *testing.T) {
	f := newAPI(t)

	status, _ := f.do(t, http.MethodGet, "/api/inventory/nope", pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = f.do(t, http.MethodPost, "/api/inventory/movements", pkgjwt.RoleManager, dto.ApplyMovementRequest{
		ProductID: "nope", Type: "ENTRADA", Quantity: 1,
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestInventoryAPI_AislamientoPorTenant(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 10, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/p1", nil)
	req.Header.Set("Authorization", tokenFor(t, otherTenantID, pkgjwt.RoleAdmin))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInventoryAPI_CajeroNoRegistraMovimientos_403(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 10, 0)

	status, _ := f.do(t, http.MethodPost, "/api/inventory/movements", pkgjwt.RoleCashier, dto.ApplyMovementRequest{
		ProductID: "p1", Type: "ENTRADA", Quantity: 1,
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = f.do(t, http.MethodGet, "/api/inventory/p1", pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusOK, status, "lectura permitida al cajero")
}

func TestInventoryAPI_ListadosPaginados(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 10, 0)
	f.initRecord(t, "p2", 1, 5)
	for i := 0; i < 3; i++ {
		status, body := f.do(t, http.MethodPost, "/api/inventory/movements", pkgjwt.RoleManager, dto.ApplyMovementRequest{
			ProductID: "p1", Type: "ENTRADA", Quantity: 1,
		})
		require.Equal(t, http.StatusCreated, status, string(body))
	}

	status, body := f.do(t, http.MethodGet, "/api/inventory/movements?product_id=p1&page=1&limit=2", pkgjwt.RoleManager, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	list := decode[dto.MovementListResponse](t, body)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 4, list.Page.Total, "entrada inicial + 3")
	assert.Equal(t, 2, list.Page.Pages)

	status, body = f.do(t, http.MethodGet, "/api/inventory?limit=1&page=2", pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	inv := decode[dto.InventoryListResponse](t, body)
	assert.Len(t, inv.Items, 1)
	assert.Equal(t, 2, inv.Page.Total)

	status, body = f.do(t, http.MethodGet, "/api/inventory/low-stock", pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"product_id":"p2"`)
	assert.NotContains(t, string(body), `"product_id":"p1"`)

	status, body = f.do(t, http.MethodGet, "/api/inventory/p1/movements", pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	hist := decode[dto.MovementListResponse](t, body)
	require.NotEmpty(t, hist.Items)
	assert.Equal(t, int64(13), hist.Items[0].BalanceAfter, "historial más reciente primero")
}

func TestInventoryAPI_Reportes(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 10, 0)
	f.initRecord(t, "p2", 0, 1)

	status, body := f.do(t, http.MethodGet, "/api/inventory/report", pkgjwt.RoleManager, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	report := decode[dto.InventoryReportDTO](t, body)
	assert.Equal(t, 2, report.TotalProducts)
	assert.Equal(t, int64(10), report.TotalUnits)
	assert.Equal(t, 1, report.OutOfStockCount)

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/report.pdf", nil)
	req.Header.Set("Authorization", tokenForRole(t, pkgjwt.RoleManager))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestInventoryAPI_Reposicion(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 1, 4)
	f.initRecord(t, "p2", 50, 4)

	status, body := f.do(t, http.MethodGet, "/api/inventory/replenishment", pkgjwt.RoleManager, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	out := decode[struct {
		Total int                              `json:"total"`
		Items []dto.ReplenishmentSuggestionDTO `json:"items"`
	}](t, body)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "p1", out.Items[0].ProductID)
	assert.Equal(t, int64(5), out.Items[0].SuggestedOrderQty)

	status, _ = f.do(t, http.MethodGet, "/api/inventory/replenishment", pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

func TestProductsAPI_AltaConSaldo(t *testing.T) {
	f := newAPI(t)
	status, body := f.do(t, http.MethodPost, "/api/products", pkgjwt.RoleManager, dto.CreateProductRequest{
		SKU: "FEIJAO-1K", Name: "Feijão 1kg", Unit: "KG", InitialStock: 8, MinStock: 2,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	created := decode[dto.ProductResponse](t, body)
	require.NotNil(t, created.Inventory)
	assert.Equal(t, int64(8), f.quantity(t, created.ID))

	status, body = f.do(t, http.MethodPost, "/api/products", pkgjwt.RoleManager, dto.CreateProductRequest{SKU: "FEIJAO-1K", Name: "otro"})
	assert.Equal(t, http.StatusConflict, status, string(body))

	status, _ = f.do(t, http.MethodPost, "/api/products", pkgjwt.RoleCashier, dto.CreateProductRequest{SKU: "X", Name: "x"})
	assert.Equal(t, http.StatusForbidden, status)

	status, body = f.do(t, http.MethodGet, "/api/products/"+created.ID, pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, "FEIJAO-1K", decode[dto.ProductResponse](t, body).SKU)

	status, body = f.do(t, http.MethodGet, "/api/products?limit=2", pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	list := decode[dto.ProductListResponse](t, body)
	assert.Equal(t, 3, list.Page.Total, "p1, p2 y el nuevo")
	assert.Len(t, list.Items, 2)

	status, _ = f.do(t, http.MethodGet, "/api/products/no-existe", pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// ── Alertas ───────────────────────────────────────────────────────────────────

func TestAlertsAPI_CicloDeVida(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 0, 2)

	status, body := f.do(t, http.MethodGet, "/api/inventory/alerts?is_resolved=false", pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	list := decode[dto.AlertListResponse](t, body)
	require.Len(t, list.Items, 1)
	alert := list.Items[0]
	assert.Equal(t, string(entity.AlertOutOfStock), alert.AlertType)

	status, body = f.do(t, http.MethodPatch, "/api/inventory/alerts/"+alert.ID+"/read", pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.True(t, decode[dto.StockAlertDTO](t, body).IsRead)

	status, _ = f.do(t, http.MethodPatch, "/api/inventory/alerts/"+alert.ID+"/resolve", pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = f.do(t, http.MethodPatch, "/api/inventory/alerts/"+alert.ID+"/resolve", pkgjwt.RoleManager, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	resolved := decode[dto.StockAlertDTO](t, body)
	assert.True(t, resolved.IsResolved)
	assert.NotNil(t, resolved.ResolvedAt)

	// la condición persiste: la evaluación abre una alerta nueva
	status, body = f.do(t, http.MethodPost, "/api/inventory/alerts/evaluate", pkgjwt.RoleManager, dto.EvaluateAlertsRequest{ProductID: "p1"})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"changed":1`)

	status, _ = f.do(t, http.MethodGet, "/api/inventory/alerts?type=VENCIDO", pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(t, http.MethodPatch, "/api/inventory/alerts/nope/read", pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAlertsAPI_EvaluarTenantSinCuerpo(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 5, 0)

	status, body := f.do(t, http.MethodPost, "/api/inventory/alerts/evaluate", pkgjwt.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"changed":0`)
}

// ── Ventas ────────────────────────────────────────────────────────────────────

func saleBody(qty1, qty2 int64) map[string]interface{} {
	items := []map[string]interface{}{}
	if qty1 > 0 {
		items = append(items, map[string]interface{}{"product_id": "p1", "quantity": qty1, "unit_price": "2.50"})
	}
	if qty2 > 0 {
		items = append(items, map[string]interface{}{"product_id": "p2", "quantity": qty2, "unit_price": 10})
	}
	return map[string]interface{}{"payment_method": "CASH", "items": items}
}

func TestSalesAPI_VentaCancelacion(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 10, 5)
	f.initRecord(t, "p2", 4, 0)

	status, body := f.do(t, http.MethodPost, "/api/sales", pkgjwt.RoleCashier, saleBody(6, 1))
	require.Equal(t, http.StatusCreated, status, string(body))
	sale := decode[dto.SaleDTO](t, body)
	assert.Equal(t, string(entity.SaleStatusCompleted), sale.Status)
	assert.Equal(t, "25", sale.Total.String())
	assert.Equal(t, int64(4), f.quantity(t, "p1"))
	assert.Equal(t, int64(3), f.quantity(t, "p2"))

	// p1 quedó bajo el mínimo
	status, body = f.do(t, http.MethodGet, "/api/inventory/alerts?product_id=p1&is_resolved=false", pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), string(entity.AlertLowStock))

	status, body = f.do(t, http.MethodGet, "/api/inventory/movements?reference="+sale.ID, pkgjwt.RoleManager, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, decode[dto.MovementListResponse](t, body).Page.Total)

	status, _ = f.do(t, http.MethodPost, "/api/sales/"+sale.ID+"/cancel", pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = f.do(t, http.MethodPost, "/api/sales/"+sale.ID+"/cancel", pkgjwt.RoleManager, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, string(entity.SaleStatusCancelled), decode[dto.SaleDTO](t, body).Status)
	assert.Equal(t, int64(10), f.quantity(t, "p1"))
	assert.Equal(t, int64(4), f.quantity(t, "p2"))

	status, body = f.do(t, http.MethodPost, "/api/sales/"+sale.ID+"/cancel", pkgjwt.RoleManager, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, string(body), "INVALID_STATE")
}

func TestSalesAPI_StockInsuficienteNoDejaVenta(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 10, 0)
	f.initRecord(t, "p2", 1, 0)

	status, body := f.do(t, http.MethodPost, "/api/sales", pkgjwt.RoleCashier, saleBody(2, 5))
	assert.Equal(t, http.StatusConflict, status, string(body))
	assert.Equal(t, int64(10), f.quantity(t, "p1"), "rollback de la línea anterior")

	status, body = f.do(t, http.MethodGet, "/api/sales", pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, decode[dto.SaleListResponse](t, body).Page.Total)
}

func TestSalesAPI_ReembolsoParcial(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 10, 0)

	status, body := f.do(t, http.MethodPost, "/api/sales", pkgjwt.RoleCashier, saleBody(4, 0))
	require.Equal(t, http.StatusCreated, status, string(body))
	sale := decode[dto.SaleDTO](t, body)

	refund := func(qty int64) (int, []byte) {
		return f.do(t, http.MethodPost, "/api/sales/"+sale.ID+"/refund", pkgjwt.RoleManager, dto.RefundSaleRequest{
			Reason: "cliente desistió",
			Items:  []dto.RefundItemRequest{{ProductID: "p1", Quantity: qty}},
		})
	}

	status, body = refund(3)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, string(entity.SaleStatusRefunded), decode[dto.SaleDTO](t, body).Status)
	assert.Equal(t, int64(9), f.quantity(t, "p1"))

	status, body = refund(2)
	assert.Equal(t, http.StatusBadRequest, status, "solo queda 1 por reembolsar: %s", body)

	status, body = refund(1)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, int64(10), f.quantity(t, "p1"))

	status, body = f.do(t, http.MethodGet, "/api/sales/"+sale.ID, pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, sale.SaleNumber, decode[dto.SaleDTO](t, body).SaleNumber)

	status, body = f.do(t, http.MethodGet, "/api/sales?status=REFUNDED", pkgjwt.RoleCashier, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, decode[dto.SaleListResponse](t, body).Page.Total)

	status, _ = f.do(t, http.MethodGet, "/api/sales?status=PAGADA", pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSalesAPI_VentaInvalida_400(t *testing.T) {
	f := newAPI(t)
	f.initRecord(t, "p1", 10, 0)

	status, _ := f.do(t, http.MethodPost, "/api/sales", pkgjwt.RoleCashier, map[string]interface{}{
		"payment_method": "CASH", "items": []interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(t, http.MethodPost, "/api/sales", pkgjwt.RoleCashier, map[string]interface{}{
		"payment_method": "BITCOIN",
		"items":          []map[string]interface{}{{"product_id": "p1", "quantity": 1, "unit_price": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(t, http.MethodGet, "/api/sales/nope", pkgjwt.RoleCashier, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
