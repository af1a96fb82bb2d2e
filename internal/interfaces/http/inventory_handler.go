package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventory/internal/application/dto"
	"github.com/jhoicas/pos-inventory/internal/application/inventory"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

// InventoryHandler maneja saldos, movimientos y reportes de inventario (protegido).
type InventoryHandler struct {
	movements     *inventory.MovementUseCase
	queries       *inventory.QueryUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movements *inventory.MovementUseCase,
	queries *inventory.QueryUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{movements: movements, queries: queries, replenishment: replenishment}
}

// ApplyMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "product_id, type, quantity (AJUSTE admite negativo)"
// @Success      201   {object}  dto.InventoryRecordDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID == "" || in.Type == "" {
		return badRequest(c, "VALIDATION", "product_id y type son requeridos")
	}
	rec, err := h.movements.ApplyMovement(c.UserContext(), inventory.MovementInput{
		TenantID:  GetTenantID(c),
		ProductID: in.ProductID,
		UserID:    GetUserID(c),
		Type:      entity.MovementType(in.Type),
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		Notes:     in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InventoryRecordFromEntity(rec))
}

// InitRecord godoc
// @Summary      Crear registro de inventario de un producto
// @Description  El stock inicial se registra como ENTRADA en el libro.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitRecordRequest  true  "product_id, initial_stock, min_stock, max_stock"
// @Success      201   {object}  dto.InventoryRecordDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) InitRecord(c *fiber.Ctx) error {
	var in dto.InitRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID == "" {
		return badRequest(c, "VALIDATION", "product_id es requerido")
	}
	rec, err := h.movements.InitRecord(c.UserContext(), inventory.InitRecordInput{
		TenantID:     GetTenantID(c),
		ProductID:    in.ProductID,
		UserID:       GetUserID(c),
		InitialStock: in.InitialStock,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InventoryRecordFromEntity(rec))
}

// List godoc
// @Summary      Listar saldos de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página (1-based)"
// @Param        limit  query  int  false  "Tamaño de página (máx 100)"
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	items, total, err := h.queries.ListInventory(c.UserContext(), GetTenantID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.InventoryRecordDTO, 0, len(items))
	for _, r := range items {
		out = append(out, dto.InventoryRecordFromEntity(r))
	}
	return c.JSON(dto.InventoryListResponse{Items: out, Page: dto.NewPageResponse(page.Page, page.Limit, total)})
}

// LowStock godoc
// @Summary      Productos en o por debajo del mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryRecordDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.queries.ListLowStock(c.UserContext(), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.InventoryRecordDTO, 0, len(items))
	for _, r := range items {
		out = append(out, dto.InventoryRecordFromEntity(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Get godoc
// @Summary      Saldo de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.InventoryRecordDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	rec, err := h.queries.GetInventory(c.UserContext(), GetTenantID(c), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryRecordFromEntity(rec))
}

// UpdateThresholds godoc
// @Summary      Actualizar mínimo y máximo
// @Description  La cantidad no es editable aquí; solo cambia con movimientos.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                       true  "ID del producto"
// @Param        body       body  dto.UpdateThresholdsRequest  true  "min_stock, max_stock"
// @Success      200  {object}  dto.InventoryRecordDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId} [put]
func (h *InventoryHandler) UpdateThresholds(c *fiber.Ctx) error {
	var in dto.UpdateThresholdsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	rec, err := h.movements.UpdateThresholds(c.UserContext(), GetTenantID(c), c.Params("productId"), in.MinStock, in.MaxStock)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryRecordFromEntity(rec))
}

// Adjust godoc
// @Summary      Ajuste de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                      true  "ID del producto"
// @Param        body       body  dto.AdjustInventoryRequest  true  "quantity con signo, reason"
// @Success      200  {object}  dto.InventoryRecordDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Reason == "" {
		return badRequest(c, "VALIDATION", "reason es requerido")
	}
	rec, err := h.movements.AdjustInventory(c.UserContext(), GetTenantID(c), c.Params("productId"), GetUserID(c), in.Quantity, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryRecordFromEntity(rec))
}

// Count godoc
// @Summary      Conciliar con un conteo físico
// @Description  Registra un AJUSTE por la diferencia entre el conteo y el saldo actual.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                     true  "ID del producto"
// @Param        body       body  dto.CountInventoryRequest  true  "saldo contado"
// @Success      200  {object}  dto.InventoryRecordDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/count [post]
func (h *InventoryHandler) Count(c *fiber.Ctx) error {
	var in dto.CountInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Reason == "" {
		in.Reason = "conteo físico"
	}
	rec, err := h.movements.SetQuantity(c.UserContext(), GetTenantID(c), c.Params("productId"), GetUserID(c), in.Quantity, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryRecordFromEntity(rec))
}

// ListMovements godoc
// @Summary      Libro de movimientos del tenant
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        type        query  string  false  "Tipo de movimiento"
// @Param        user_id     query  string  false  "Usuario"
// @Param        reference   query  string  false  "Referencia (p.ej. id de venta)"
// @Param        date_from   query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        date_to     query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        page        query  int     false  "Página"
// @Param        limit       query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, err := timeQuery(c, "date_from")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	to, err := timeQuery(c, "date_to")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	filter := repository.MovementFilter{
		ProductID: c.Query("product_id"),
		Type:      entity.MovementType(c.Query("type")),
		UserID:    c.Query("user_id"),
		Reference: c.Query("reference"),
		DateFrom:  from,
		DateTo:    to,
	}
	page := pageFromQuery(c)
	items, total, err := h.queries.ListMovements(c.UserContext(), GetTenantID(c), filter, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movementList(items, page, total))
}

// ProductMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/movements [get]
func (h *InventoryHandler) ProductMovements(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	items, total, err := h.queries.GetProductMovementHistory(c.UserContext(), GetTenantID(c), c.Params("productId"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movementList(items, page, total))
}

// Verify godoc
// @Summary      Verificar saldo contra el libro
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.LedgerCheckDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{productId}/verify [get]
func (h *InventoryHandler) Verify(c *fiber.Ctx) error {
	out, err := h.queries.VerifyLedger(c.UserContext(), GetTenantID(c), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Resumen de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryReportDTO
// @Router       /api/inventory/report [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	out, err := h.queries.Report(c.UserContext(), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Resumen de inventario en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/inventory/report.pdf [get]
func (h *InventoryHandler) ReportPDF(c *fiber.Ctx) error {
	pdf, err := h.queries.ReportPDF(c.UserContext(), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="inventario.pdf"`)
	return c.Send(pdf)
}

// Replenishment godoc
// @Summary      Lista de reposición sugerida
// @Description  Productos en o bajo el mínimo, priorizados por unidades vendidas en los últimos 90 días.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

func movementList(items []*entity.InventoryMovement, page repository.Page, total int) dto.MovementListResponse {
	out := make([]dto.MovementDTO, 0, len(items))
	for _, m := range items {
		out = append(out, dto.MovementFromEntity(m))
	}
	return dto.MovementListResponse{Items: out, Page: dto.NewPageResponse(page.Page, page.Limit, total)}
}
