package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventory/internal/application/dto"
	"github.com/jhoicas/pos-inventory/internal/application/sales"
	"github.com/jhoicas/pos-inventory/internal/domain/entity"
	"github.com/jhoicas/pos-inventory/internal/domain/repository"
)

// SalesHandler ventas y su efecto en el inventario (protegido).
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Crea la venta y descuenta el stock de cada producto en la misma transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Líneas, medio de pago, descuento e impuesto"
// @Success      201   {object}  dto.SaleDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	items := make([]sales.SaleItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.SaleItemInput{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	sale, err := h.uc.CreateSale(c.UserContext(), sales.CreateSaleInput{
		TenantID:      GetTenantID(c),
		UserID:        GetUserID(c),
		CustomerID:    in.CustomerID,
		PaymentMethod: entity.PaymentMethod(in.PaymentMethod),
		Discount:      in.Discount,
		Tax:           in.Tax,
		Notes:         in.Notes,
		Items:         items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleFromEntity(sale))
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        status          query  string  false  "PENDING | COMPLETED | CANCELLED | REFUNDED"
// @Param        payment_method  query  string  false  "CASH | CREDIT_CARD | DEBIT_CARD | PIX | CHECK"
// @Param        date_from       query  string  false  "Desde"
// @Param        date_to         query  string  false  "Hasta"
// @Param        page            query  int     false  "Página"
// @Param        limit           query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.SaleListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	from, err := timeQuery(c, "date_from")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	to, err := timeQuery(c, "date_to")
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	filter := repository.SaleFilter{
		Status:        entity.SaleStatus(c.Query("status")),
		PaymentMethod: entity.PaymentMethod(c.Query("payment_method")),
		DateFrom:      from,
		DateTo:        to,
	}
	page := pageFromQuery(c)
	list, total, err := h.uc.ListSales(c.UserContext(), GetTenantID(c), filter, page)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.SaleDTO, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SaleFromEntity(s))
	}
	return c.JSON(dto.SaleListResponse{Items: out, Page: dto.NewPageResponse(page.Page, page.Limit, total)})
}

// Get godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SalesHandler) Get(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SaleFromEntity(sale))
}

// Cancel godoc
// @Summary      Cancelar venta
// @Description  Devuelve al stock todo lo vendido. Solo ventas COMPLETED.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *SalesHandler) Cancel(c *fiber.Ctx) error {
	sale, err := h.uc.CancelSale(c.UserContext(), GetTenantID(c), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SaleFromEntity(sale))
}

// Refund godoc
// @Summary      Reembolso parcial o total
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.RefundSaleRequest  true  "Productos y cantidades a devolver"
// @Success      200  {object}  dto.SaleDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/refund [post]
func (h *SalesHandler) Refund(c *fiber.Ctx) error {
	var in dto.RefundSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	items := make([]sales.RefundItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.RefundItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	sale, err := h.uc.RefundSale(c.UserContext(), GetTenantID(c), c.Params("id"), GetUserID(c), items, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SaleFromEntity(sale))
}
