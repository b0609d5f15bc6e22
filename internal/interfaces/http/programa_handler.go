package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/municipio-digital/dif-api/internal/application/dif"
	"github.com/municipio-digital/dif-api/internal/application/dto"
	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
)

// ProgramaHandler maneja las peticiones HTTP de programas sociales (protegido).
type ProgramaHandler struct {
	uc *dif.ProgramaUseCase
}

// NewProgramaHandler construye el handler.
func NewProgramaHandler(uc *dif.ProgramaUseCase) *ProgramaHandler {
	return &ProgramaHandler{uc: uc}
}

func toProgramaResponse(p *entity.Programa) dto.ProgramaResponse {
	return dto.ProgramaResponse{
		ID:            p.ID,
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		Observaciones: p.Observaciones,
		Activo:        p.Activo,
	}
}

// Create godoc
// @Summary      Crear programa social
// @Tags         programas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProgramaRequest  true  "Datos del programa"
// @Success      201   {object}  dto.ProgramaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dif/programas [post]
func (h *ProgramaHandler) Create(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	if municipioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateProgramaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Crear(c.Context(), municipioID, in)
	if err != nil {
		if errors.Is(err, domain.ErrEntradaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toProgramaResponse(p))
}

// List godoc
// @Summary      Listar programas activos
// @Tags         programas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProgramaResponse
// @Router       /api/dif/programas [get]
func (h *ProgramaHandler) List(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	if municipioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	programas, err := h.uc.Listar(c.Context(), municipioID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ProgramaResponse, 0, len(programas))
	for _, p := range programas {
		out = append(out, toProgramaResponse(p))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener programa por ID
// @Tags         programas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del programa"
// @Success      200  {object}  dto.ProgramaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dif/programas/{id} [get]
func (h *ProgramaHandler) GetByID(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	if municipioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	p, err := h.uc.GetByID(c.Context(), id, municipioID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "programa no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toProgramaResponse(p))
}
