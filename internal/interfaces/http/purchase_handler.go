package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/application/purchasing"
)

// PurchaseHandler pedidos de compra: armado, flujo de estados y hoja PDF (protegido).
type PurchaseHandler struct {
	orders   *purchasing.OrderUseCase
	workflow *purchasing.WorkflowUseCase
	pdf      *purchasing.PDFUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(orders *purchasing.OrderUseCase, workflow *purchasing.WorkflowUseCase, pdf *purchasing.PDFUseCase) *PurchaseHandler {
	return &PurchaseHandler{orders: orders, workflow: workflow, pdf: pdf}
}

// List godoc
// @Summary      Listar pedidos
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "SUBMITTED | PENDING | IN_PROGRESS | DELIVERED"
// @Param        limit   query  int     false  "máximo de filas (50)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ListResponse[dto.PurchaseOrderDTO]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.Normalize()
	list, err := h.orders.List(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err, "")
	}
	out := make([]dto.PurchaseOrderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, toPurchaseOrderDTO(o))
	}
	return c.JSON(dto.ListResponse[dto.PurchaseOrderDTO]{Items: out, Limit: page.Limit, Offset: page.Offset})
}

// Create godoc
// @Summary      Abrir pedido
// @Description  Devuelve el pedido SUBMITTED abierto del empleado para el proveedor o crea uno nuevo.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "supplier"
// @Success      201   {object}  dto.PurchaseOrderDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return unauthorized(c)
	}
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.orders.CreateOrder(c.Context(), in.Supplier, employeeID)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseOrderDTO(order))
}

// GetByID GET /api/purchases/:id
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.orders.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "pedido no encontrado")
	}
	return c.JSON(toPurchaseOrderDTO(order))
}

// AddItem godoc
// @Summary      Agregar línea de pedido
// @Description  Si el alimento ya está en el pedido suma la cantidad. Sin id en la ruta usa
//
//	(o abre) el pedido SUBMITTED del proveedor indicado en el body.
//
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  false  "ID del pedido"
// @Param        body  body  dto.AddLineItemRequest  true   "supplier, feed_id, quantity"
// @Success      201   {object}  dto.AddLineItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/items [post]
func (h *PurchaseHandler) AddItem(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return unauthorized(c)
	}
	var in dto.AddLineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.orders.AddLineItem(c.Context(), purchasing.AddLineItemInput{
		OrderID:    c.Params("id"),
		Supplier:   in.Supplier,
		EmployeeID: employeeID,
		FeedID:     in.FeedID,
		Quantity:   in.Quantity,
	})
	if err != nil {
		return writeError(c, err, "pedido o alimento no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AddLineItemResponse{
		OrderID: res.OrderID,
		Item:    toLineItemDTO(res.Item),
	})
}

// TransitionStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  Al pasar a DELIVERED acredita cada línea a bodega una sola vez.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del pedido"
// @Param        body  body  dto.TransitionStatusRequest  true  "status"
// @Success      200   {object}  dto.PurchaseOrderDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/status [post]
func (h *PurchaseHandler) TransitionStatus(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return unauthorized(c)
	}
	var in dto.TransitionStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.workflow.TransitionStatus(c.Context(), c.Params("id"), in.Status, employeeID)
	if err != nil {
		return writeError(c, err, "pedido no encontrado")
	}
	return c.JSON(toPurchaseOrderDTO(order))
}

// DownloadPDF godoc
// @Summary      Hoja PDF del pedido
// @Tags         purchases
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del pedido"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/pdf [get]
func (h *PurchaseHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadPurchaseOrderPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "pedido no encontrado")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
