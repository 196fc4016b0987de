package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/application/inventory"
)

// FeedingHandler registro de alimentaciones (protegido).
type FeedingHandler struct {
	uc *inventory.FeedingUseCase
}

// NewFeedingHandler construye el handler.
func NewFeedingHandler(uc *inventory.FeedingUseCase) *FeedingHandler {
	return &FeedingHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar alimentación
// @Description  Descuenta la ración de la especie del animal y registra el consumo del empleado.
// @Tags         feedings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordFeedingRequest  true  "animal_id"
// @Success      201   {object}  dto.FeedingDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/feedings [post]
func (h *FeedingHandler) Record(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return unauthorized(c)
	}
	var in dto.RecordFeedingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	event, err := h.uc.RecordFeeding(c.Context(), in.AnimalID, employeeID)
	if err != nil {
		return writeError(c, err, "animal no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(toFeedingDTO(event))
}

// List GET /api/feedings?limit=&offset=
func (h *FeedingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.Normalize()
	list, err := h.uc.ListFeedings(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err, "")
	}
	out := make([]dto.FeedingDTO, 0, len(list))
	for _, e := range list {
		out = append(out, toFeedingDTO(e))
	}
	return c.JSON(dto.ListResponse[dto.FeedingDTO]{Items: out, Limit: page.Limit, Offset: page.Offset})
}
