package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zoo-api/internal/application/analytics"
	"github.com/jhoicas/zoo-api/internal/application/dto"
)

// AnalyticsHandler reportes de pedidos, consumo y averías, y detalle de gastos.
type AnalyticsHandler struct {
	purchases   *analytics.PurchasesUseCase
	consumption *analytics.ConsumptionUseCase
	faults      *analytics.FaultsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(purchases *analytics.PurchasesUseCase, consumption *analytics.ConsumptionUseCase, faults *analytics.FaultsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{purchases: purchases, consumption: consumption, faults: faults}
}

// PurchasesByStatus godoc
// @Summary      Pedidos por estado
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM; vacío = histórico"
// @Success      200  {object}  dto.PurchasesByStatusDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/purchases-status [get]
func (h *AnalyticsHandler) PurchasesByStatus(c *fiber.Ctx) error {
	out, err := h.purchases.ByStatus(c.Context(), c.Query("month"))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Consumption godoc
// @Summary      Consumo por empleado y por alimento
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "day | month | all (por defecto all)"
// @Success      200  {object}  dto.ConsumptionReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/consumption [get]
func (h *AnalyticsHandler) Consumption(c *fiber.Ctx) error {
	out, err := h.consumption.GetReport(c.Context(), c.Query("period"))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// ExportConsumption godoc
// @Summary      Exportar consumo a Excel
// @Tags         analytics
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        period  query  string  false  "day | month | all"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/consumption/export [get]
func (h *AnalyticsHandler) ExportConsumption(c *fiber.Ctx) error {
	content, filename, err := h.consumption.Export(c.Context(), c.Query("period"))
	if err != nil {
		return writeError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}

// MyExpenses consumo registrado por el empleado autenticado.
// GET /api/expenses/my?period=
func (h *AnalyticsHandler) MyExpenses(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return unauthorized(c)
	}
	out, err := h.consumption.ListExpenses(c.Context(), employeeID, c.Query("period"))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Expenses consumo de todos los empleados; employee_id filtra por uno.
// GET /api/expenses?employee_id=&period=
func (h *AnalyticsHandler) Expenses(c *fiber.Ctx) error {
	out, err := h.consumption.ListExpenses(c.Context(), c.Query("employee_id"), c.Query("period"))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Faults godoc
// @Summary      Averías de un lugar por estado
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        place      query  string  true   "ENCLOSURE | SECTION (o su etiqueta)"
// @Param        date_from  query  string  false  "YYYY-MM-DD"
// @Param        date_to    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.FaultReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/faults [get]
func (h *AnalyticsHandler) Faults(c *fiber.Ctx) error {
	var q dto.FaultQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.faults.Report(c.Context(), q)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// ExportFaults GET /api/analytics/faults/export?place=&date_from=&date_to=
func (h *AnalyticsHandler) ExportFaults(c *fiber.Ctx) error {
	var q dto.FaultQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	content, filename, err := h.faults.Export(c.Context(), q)
	if err != nil {
		return writeError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}
