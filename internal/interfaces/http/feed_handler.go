package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/application/inventory"
	"github.com/jhoicas/zoo-api/internal/application/usecase"
)

// FeedHandler catálogo de alimentos, existencias y reposición (protegido).
type FeedHandler struct {
	feeds         *usecase.FeedUseCase
	replenishment *inventory.ReplenishmentUseCase
	adjust        *inventory.AdjustStockUseCase
}

// NewFeedHandler construye el handler.
func NewFeedHandler(feeds *usecase.FeedUseCase, replenishment *inventory.ReplenishmentUseCase, adjust *inventory.AdjustStockUseCase) *FeedHandler {
	return &FeedHandler{feeds: feeds, replenishment: replenishment, adjust: adjust}
}

// List godoc
// @Summary      Listar alimentos
// @Description  Incluye la ración promedio y la marca is_low (existencia menor al promedio).
// @Tags         feeds
// @Security     Bearer
// @Produce      json
// @Param        type      query  string  false  "DRY | WET | COMPOUND"
// @Param        low_only  query  bool    false  "solo alimentos con existencias bajas"
// @Success      200  {array}   dto.FeedDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/feeds [get]
func (h *FeedHandler) List(c *fiber.Ctx) error {
	list, err := h.replenishment.ListFeeds(c.Context(), c.Query("type"), c.QueryBool("low_only", false))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear alimento
// @Tags         feeds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFeedRequest  true  "name, type, unit"
// @Success      201   {object}  dto.FeedDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/feeds [post]
func (h *FeedHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFeedRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	feed, err := h.feeds.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(feed)
}

// GetByID obtiene un alimento.
// GET /api/feeds/:id
func (h *FeedHandler) GetByID(c *fiber.Ctx) error {
	feed, err := h.feeds.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "alimento no encontrado")
	}
	return c.JSON(feed)
}

// Adjust godoc
// @Summary      Ajuste manual de existencias
// @Description  delta positivo acredita, negativo debita. Nunca deja existencia negativa.
// @Tags         feeds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del alimento"
// @Param        body  body  dto.StockAdjustmentRequest  true  "delta"
// @Success      201   {object}  dto.StockMovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/feeds/{id}/adjustments [post]
func (h *FeedHandler) Adjust(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return unauthorized(c)
	}
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	movement, err := h.adjust.AdjustStock(c.Context(), inventory.AdjustmentInput{
		FeedID:     c.Params("id"),
		EmployeeID: employeeID,
		Delta:      in.Delta,
	})
	if err != nil {
		return writeError(c, err, "alimento no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(usecase.ToStockMovementDTO(movement))
}

// Movements historial de existencias del alimento.
// GET /api/feeds/:id/movements?limit=&offset=
func (h *FeedHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.Normalize()
	list, err := h.feeds.ListMovements(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err, "alimento no encontrado")
	}
	return c.JSON(dto.ListResponse[dto.StockMovementDTO]{Items: list, Limit: page.Limit, Offset: page.Offset})
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Alimentos bajos con la cantidad sugerida de pedido, el de menor cobertura primero.
// @Tags         feeds
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Router       /api/feeds/replenishment [get]
func (h *FeedHandler) Replenishment(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
