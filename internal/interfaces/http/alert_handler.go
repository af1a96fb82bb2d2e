package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventory/internal/application/dto"
	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

// AlertHandler alertas de stock (protegido).
type AlertHandler struct {
	monitor *inventory.AlertMonitor
}

// NewAlertHandler construye el handler.
func NewAlertHandler(monitor *inventory.AlertMonitor) *AlertHandler {
	return &AlertHandler{monitor: monitor}
}

// List godoc
// @Summary      Listar alertas de stock
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Producto"
// @Param        type         query  string  false  "LOW_STOCK | OUT_OF_STOCK | OVERSTOCK | EXPIRED"
// @Param        is_read      query  bool    false  "Leídas"
// @Param        is_resolved  query  bool    false  "Resueltas"
// @Param        page         query  int     false  "Página"
// @Param        limit        query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.AlertListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	isRead, err := boolQuery(c, "is_read")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	isResolved, err := boolQuery(c, "is_resolved")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	filter := repository.AlertFilter{
		ProductID:  c.Query("product_id"),
		AlertType:  entity.AlertType(c.Query("type")),
		IsRead:     isRead,
		IsResolved: isResolved,
	}
	page := pageFromQuery(c)
	items, total, err := h.monitor.List(c.UserContext(), GetTenantID(c), filter, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AlertListResponse{
		Items: dto.StockAlertsFromEntities(items),
		Page:  dto.NewPageResponse(page.Page, page.Limit, total),
	})
}

// Evaluate godoc
// @Summary      Evaluar alertas
// @Description  Sin product_id evalúa todos los productos del tenant. Devuelve las alertas creadas o resueltas.
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EvaluateAlertsRequest  false  "product_id opcional"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/evaluate [post]
func (h *AlertHandler) Evaluate(c *fiber.Ctx) error {
	var in dto.EvaluateAlertsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	changed, err := h.monitor.EvaluateAlerts(c.UserContext(), GetTenantID(c), in.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"changed": len(changed), "alerts": dto.StockAlertsFromEntities(changed)})
}

// MarkRead godoc
// @Summary      Marcar alerta como leída
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.StockAlertDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id}/read [patch]
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	a, err := h.monitor.MarkRead(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockAlertFromEntity(a))
}

// Resolve godoc
// @Summary      Resolver alerta
// @Description  La resolución es definitiva; si la condición persiste se crea una alerta nueva en la próxima evaluación.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.StockAlertDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id}/resolve [patch]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	a, err := h.monitor.Resolve(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockAlertFromEntity(a))
}
