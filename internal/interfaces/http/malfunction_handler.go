package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zoo-api/internal/application/dto"
	"github.com/jhoicas/zoo-api/internal/application/usecase"
)

// MalfunctionHandler registro y seguimiento de averías.
type MalfunctionHandler struct {
	uc *usecase.MalfunctionUseCase
}

// NewMalfunctionHandler construye el handler.
func NewMalfunctionHandler(uc *usecase.MalfunctionUseCase) *MalfunctionHandler {
	return &MalfunctionHandler{uc: uc}
}

// List GET /api/malfunctions?place=&status=&limit=&offset=
func (h *MalfunctionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.Normalize()
	list, err := h.uc.List(c.Context(), c.Query("place"), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(dto.ListResponse[dto.MalfunctionDTO]{Items: list, Limit: page.Limit, Offset: page.Offset})
}

// Create godoc
// @Summary      Registrar avería
// @Tags         malfunctions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MalfunctionRequest  true  "place, description"
// @Success      201   {object}  dto.MalfunctionDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/malfunctions [post]
func (h *MalfunctionHandler) Create(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return unauthorized(c)
	}
	var in dto.MalfunctionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Report(c.Context(), employeeID, in)
	if err != nil {
		return writeError(c, err, "empleado no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// TransitionStatus godoc
// @Summary      Cambiar estado de una avería
// @Description  REPORTED -> IN_PROGRESS -> RESOLVED; RESOLVED es terminal.
// @Tags         malfunctions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la avería"
// @Param        body  body  dto.MalfunctionStatusRequest  true  "status"
// @Success      200   {object}  dto.MalfunctionDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/malfunctions/{id}/status [post]
func (h *MalfunctionHandler) TransitionStatus(c *fiber.Ctx) error {
	var in dto.MalfunctionStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.TransitionStatus(c.Context(), c.Params("id"), in.Status, GetEmployeeID(c))
	if err != nil {
		return writeError(c, err, "avería no encontrada")
	}
	return c.JSON(out)
}

// Places GET /api/malfunctions/places
func (h *MalfunctionHandler) Places(c *fiber.Ctx) error {
	return c.JSON(h.uc.Places())
}
