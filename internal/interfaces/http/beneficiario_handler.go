package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/municipio-digital/dif-api/internal/application/dif"
	"github.com/municipio-digital/dif-api/internal/application/dto"
	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
)

// BeneficiarioHandler maneja las peticiones HTTP de beneficiarios (protegido).
type BeneficiarioHandler struct {
	uc *dif.BeneficiarioUseCase
}

// NewBeneficiarioHandler construye el handler.
func NewBeneficiarioHandler(uc *dif.BeneficiarioUseCase) *BeneficiarioHandler {
	return &BeneficiarioHandler{uc: uc}
}

// mapBeneficiarioError traduce errores de dominio a respuestas HTTP.
func mapBeneficiarioError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "beneficiario no encontrado"})
	case errors.Is(err, domain.ErrCurpDuplicada):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CURP_DUPLICADA", Message: "ya existe un beneficiario con ese CURP en el municipio"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toBeneficiarioResponse(b *entity.Beneficiario) dto.BeneficiarioResponse {
	out := dto.BeneficiarioResponse{
		ID:              b.ID,
		Nombre:          b.Nombre,
		ApellidoPaterno: b.ApellidoPaterno,
		ApellidoMaterno: b.ApellidoMaterno,
		CURP:            b.CURP,
		Telefono:        b.Telefono,
		Email:           b.Email,
		Domicilio:       b.Domicilio,
		Localidad:       b.Localidad,
		GrupoVulnerable: b.GrupoVulnerable,
		Observaciones:   b.Observaciones,
		Activo:          b.Activo,
		FechaRegistro:   b.FechaRegistro.Format("2006-01-02"),
	}
	if b.FechaNacimiento != nil {
		out.FechaNacimiento = b.FechaNacimiento.Format("2006-01-02")
	}
	return out
}

// Create godoc
// @Summary      Registrar beneficiario
// @Tags         beneficiarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBeneficiarioRequest  true  "Datos del beneficiario"
// @Success      201   {object}  dto.BeneficiarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dif/beneficiarios [post]
func (h *BeneficiarioHandler) Create(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	if municipioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateBeneficiarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.Crear(c.Context(), municipioID, in)
	if err != nil {
		return mapBeneficiarioError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBeneficiarioResponse(b))
}

// List godoc
// @Summary      Listar beneficiarios
// @Tags         beneficiarios
// @Security     Bearer
// @Produce      json
// @Param        curp   query  string  false  "Filtro por CURP parcial"
// @Param        page   query  int     false  "Página"    default(1)
// @Param        limit  query  int     false  "Límite"    default(20)
// @Success      200    {object}  dto.BeneficiarioListResponse
// @Router       /api/dif/beneficiarios [get]
func (h *BeneficiarioHandler) List(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	if municipioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	lista, err := h.uc.Listar(c.Context(), municipioID, c.Query("curp"), page)
	if err != nil {
		return mapBeneficiarioError(c, err)
	}
	out := dto.BeneficiarioListResponse{
		Data: make([]dto.BeneficiarioResponse, 0, len(lista.Data)),
		Meta: dto.PageResponse{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      lista.Total,
			TotalPages: (lista.Total + page.Limit - 1) / page.Limit,
		},
	}
	for _, b := range lista.Data {
		out.Data = append(out.Data, toBeneficiarioResponse(b))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener beneficiario por ID
// @Tags         beneficiarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del beneficiario"
// @Success      200  {object}  dto.BeneficiarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dif/beneficiarios/{id} [get]
func (h *BeneficiarioHandler) GetByID(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	if municipioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	b, err := h.uc.GetByID(c.Context(), id, municipioID)
	if err != nil {
		return mapBeneficiarioError(c, err)
	}
	return c.JSON(toBeneficiarioResponse(b))
}

// GetByCURP godoc
// @Summary      Expediente de beneficiario por CURP
// @Description  Datos del beneficiario, historial de apoyos paginado, programas en los que ha recibido apoyo y último apoyo.
// @Tags         beneficiarios
// @Security     Bearer
// @Produce      json
// @Param        curp   path   string  true   "CURP del beneficiario"
// @Param        page   query  int     false  "Página"  default(1)
// @Param        limit  query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.ExpedienteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dif/beneficiarios/curp/{curp} [get]
func (h *BeneficiarioHandler) GetByCURP(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	if municipioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	curp := c.Params("curp")
	if curp == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CURP", Message: "curp es requerido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	hist, err := h.uc.GetByCURP(c.Context(), curp, municipioID, page)
	if err != nil {
		return mapBeneficiarioError(c, err)
	}
	out := dto.ExpedienteResponse{
		Beneficiario: toBeneficiarioResponse(hist.Beneficiario),
		Apoyos:       make([]dto.ApoyoResponse, 0, len(hist.Apoyos)),
		TotalApoyos:  hist.TotalApoyos,
		Programas:    make([]dto.ProgramaResponse, 0, len(hist.Programas)),
	}
	for _, a := range hist.Apoyos {
		out.Apoyos = append(out.Apoyos, toApoyoResponse(a, hist.TotalApoyos))
	}
	for _, p := range hist.Programas {
		out.Programas = append(out.Programas, toProgramaResponse(p))
	}
	if hist.UltimoApoyo != nil {
		ultimo := toApoyoResponse(hist.UltimoApoyo, hist.TotalApoyos)
		out.UltimoApoyo = &ultimo
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar beneficiario
// @Tags         beneficiarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del beneficiario"
// @Param        body  body  dto.UpdateBeneficiarioRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BeneficiarioResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dif/beneficiarios/{id} [put]
func (h *BeneficiarioHandler) Update(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	if municipioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateBeneficiarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.Actualizar(c.Context(), id, municipioID, in)
	if err != nil {
		return mapBeneficiarioError(c, err)
	}
	return c.JSON(toBeneficiarioResponse(b))
}
