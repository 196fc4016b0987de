package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/application/usecase"
)

// RationHandler catálogo de raciones por especie.
type RationHandler struct {
	uc *usecase.RationUseCase
}

// NewRationHandler construye el handler.
func NewRationHandler(uc *usecase.RationUseCase) *RationHandler {
	return &RationHandler{uc: uc}
}

// List GET /api/rations
func (h *RationHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(list)
}

// Upsert godoc
// @Summary      Definir ración de una especie
// @Description  Crea o reemplaza la ración (alimento, cantidad, frecuencia) de la especie.
// @Tags         rations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RationRequest  true  "species, feed_id, amount, frequency"
// @Success      200   {object}  dto.RationDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rations [put]
func (h *RationHandler) Upsert(c *fiber.Ctx) error {
	var in dto.RationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ration, err := h.uc.Upsert(c.Context(), in)
	if err != nil {
		return writeError(c, err, "alimento no encontrado")
	}
	return c.JSON(ration)
}

// Delete DELETE /api/rations/:id
func (h *RationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err, "ración no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
