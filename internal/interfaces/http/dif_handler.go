package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/municipio-digital/dif-api/internal/application/dif"
	"github.com/municipio-digital/dif-api/internal/application/dto"
	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

// DIFHandler maneja las peticiones HTTP del módulo DIF: inventario,
// movimientos y apoyos (protegido).
type DIFHandler struct {
	entrada  *dif.RegistrarEntradaUseCase
	apoyo    *dif.CrearApoyoUseCase
	ajuste   *dif.RegistrarAjusteUseCase
	consulta *dif.ConsultaUseCase
}

// NewDIFHandler construye el handler.
func NewDIFHandler(
	entrada *dif.RegistrarEntradaUseCase,
	apoyo *dif.CrearApoyoUseCase,
	ajuste *dif.RegistrarAjusteUseCase,
	consulta *dif.ConsultaUseCase,
) *DIFHandler {
	return &DIFHandler{entrada: entrada, apoyo: apoyo, ajuste: ajuste, consulta: consulta}
}

// parseFecha acepta YYYY-MM-DD; vacío usa la fecha actual.
func parseFecha(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

// mapDIFError traduce errores de dominio a respuestas HTTP.
func mapDIFError(c *fiber.Ctx, err error) error {
	var sinInv *domain.SinInventarioError
	if errors.As(err, &sinInv) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "SIN_INVENTARIO",
			Message: fmt.Sprintf("no existe inventario del tipo %s en este programa", sinInv.Tipo),
		})
	}
	var sinStock *domain.StockInsuficienteError
	if errors.As(err, &sinStock) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "STOCK_INSUFICIENTE",
			Message: fmt.Sprintf("stock insuficiente de %s: disponible %d, solicitado %d", sinStock.Tipo, sinStock.Disponible, sinStock.Solicitado),
		})
	}
	switch {
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrConflictoConcurrencia):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente la operación"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toInventarioResponse(inv *entity.Inventario) dto.InventarioResponse {
	return dto.InventarioResponse{
		ID:             inv.ID,
		ProgramaID:     inv.ProgramaID,
		Tipo:           inv.Tipo,
		StockActual:    inv.StockActual,
		StockInicial:   inv.StockInicial,
		UnidadMedida:   inv.UnidadMedida,
		AlertaMinima:   inv.AlertaMinima,
		ValorUnitario:  inv.ValorUnitario,
		EnAlerta:       inv.EnAlerta(),
		TotalEntregado: inv.TotalEntregado(),
		UpdatedAt:      inv.UpdatedAt,
	}
}

func toMovimientoResponse(m *entity.Movimiento) dto.MovimientoResponse {
	return dto.MovimientoResponse{
		ID:            m.ID,
		ProgramaID:    m.ProgramaID,
		InventarioID:  m.InventarioID,
		Tipo:          m.Tipo,
		TipoRecurso:   m.TipoRecurso,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Concepto:      m.Concepto,
		Responsable:   m.ResponsableID,
		Fecha:         m.Fecha,
		ApoyoID:       m.ApoyoID,
		Comprobante:   m.Comprobante,
		Observaciones: m.Observaciones,
		Folio:         m.Folio,
	}
}

func toApoyoResponse(a *entity.Apoyo, total int) dto.ApoyoResponse {
	out := dto.ApoyoResponse{
		ID:                    a.ID,
		BeneficiarioID:        a.BeneficiarioID,
		ProgramaID:            a.ProgramaID,
		Fecha:                 a.Fecha,
		Tipo:                  a.Tipo,
		Cantidad:              a.Cantidad,
		Monto:                 a.Monto,
		Observaciones:         a.Observaciones,
		EntregadoPor:          a.EntregadoPor,
		Folio:                 a.Folio,
		TotalApoyosEntregados: total,
	}
	for _, it := range a.Items {
		out.Items = append(out.Items, dto.ApoyoItemResponse{
			InventarioID:  it.InventarioID,
			Cantidad:      it.Cantidad,
			ValorUnitario: it.ValorUnitario,
			Tipo:          it.Tipo,
		})
	}
	return out
}

// RegistrarEntrada godoc
// @Summary      Registrar entrada de inventario
// @Description  Crea el registro de inventario en la primera entrada del programa+tipo o incrementa el existente.
// @Tags         dif
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntradaRequest  true  "programa_id, tipo, cantidad, concepto, fecha"
// @Success      201   {object}  dto.EntradaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dif/inventario/entradas [post]
func (h *DIFHandler) RegistrarEntrada(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	userID := GetUserID(c)
	if municipioID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateEntradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fecha, err := parseFecha(in.Fecha)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
	}
	out, err := h.entrada.RegistrarEntrada(c.Context(), dif.EntradaInput{
		MunicipioID:   municipioID,
		UsuarioID:     userID,
		ProgramaID:    in.ProgramaID,
		Tipo:          in.Tipo,
		Cantidad:      in.Cantidad,
		Concepto:      in.Concepto,
		Fecha:         fecha,
		Comprobante:   in.Comprobante,
		Observaciones: in.Observaciones,
		ValorUnitario: in.ValorUnitario,
	})
	if err != nil {
		return mapDIFError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.EntradaResponse{
		Inventario: toInventarioResponse(out.Inventario),
		Movimiento: toMovimientoResponse(out.Movimiento),
	})
}

// CrearApoyo godoc
// @Summary      Entregar apoyo a beneficiario
// @Description  Descuenta stock de forma atómica y registra el apoyo con sus movimientos de SALIDA. Modo legado (tipo + cantidad) o modo partidas (items); exactamente uno de los dos.
// @Tags         dif
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateApoyoRequest  true  "beneficiario_id, programa_id, fecha, y tipo+cantidad o items"
// @Success      201   {object}  dto.ApoyoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dif/apoyos [post]
func (h *DIFHandler) CrearApoyo(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	userID := GetUserID(c)
	if municipioID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateApoyoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fecha, err := parseFecha(in.Fecha)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
	}
	input := dif.ApoyoInput{
		MunicipioID:    municipioID,
		UsuarioID:      userID,
		BeneficiarioID: in.BeneficiarioID,
		ProgramaID:     in.ProgramaID,
		Fecha:          fecha,
		Tipo:           in.Tipo,
		Cantidad:       in.Cantidad,
		Monto:          in.Monto,
		Observaciones:  in.Observaciones,
		Comprobante:    in.Comprobante,
	}
	for _, it := range in.Items {
		input.Items = append(input.Items, dif.ItemEntrega{InventarioID: it.InventarioID, Cantidad: it.Cantidad})
	}
	out, err := h.apoyo.CrearApoyo(c.Context(), input)
	if err != nil {
		return mapDIFError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toApoyoResponse(out.Apoyo, out.TotalApoyosEntregados))
}

// RegistrarAjuste godoc
// @Summary      Ajuste manual de inventario
// @Description  Cantidad con signo: positiva suma, negativa resta. El ajuste negativo nunca deja stock por debajo de cero.
// @Tags         dif
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAjusteRequest  true  "programa_id, tipo, cantidad (con signo), concepto, fecha"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dif/inventario/ajustes [post]
func (h *DIFHandler) RegistrarAjuste(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	userID := GetUserID(c)
	if municipioID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateAjusteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fecha, err := parseFecha(in.Fecha)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
	}
	mov, err := h.ajuste.RegistrarAjuste(c.Context(), dif.AjusteInput{
		MunicipioID: municipioID,
		UsuarioID:   userID,
		ProgramaID:  in.ProgramaID,
		Tipo:        in.Tipo,
		Cantidad:    in.Cantidad,
		Concepto:    in.Concepto,
		Fecha:       fecha,
	})
	if err != nil {
		return mapDIFError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovimientoResponse(mov))
}

// GetInventario godoc
// @Summary      Consultar inventario del municipio
// @Tags         dif
// @Security     Bearer
// @Produce      json
// @Param        programa_id  query  string  false  "Filtrar por programa"
// @Success      200  {array}   dto.InventarioResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dif/inventario [get]
func (h *DIFHandler) GetInventario(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	if municipioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	inventarios, err := h.consulta.GetInventario(c.Context(), municipioID, c.Query("programa_id"))
	if err != nil {
		return mapDIFError(c, err)
	}
	out := make([]dto.InventarioResponse, 0, len(inventarios))
	for _, inv := range inventarios {
		out = append(out, toInventarioResponse(inv))
	}
	return c.JSON(out)
}

// GetMovimientosDeInventario godoc
// @Summary      Historial de un registro de inventario
// @Description  Movimientos del registro en orden de creación; permite reconstruir el stock paso a paso.
// @Tags         dif
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del registro de inventario"
// @Success      200  {array}   dto.MovimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dif/inventario/{id}/movimientos [get]
func (h *DIFHandler) GetMovimientosDeInventario(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	if municipioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	movimientos, err := h.consulta.GetMovimientosDeInventario(c.Context(), id, municipioID)
	if err != nil {
		return mapDIFError(c, err)
	}
	out := make([]dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		out = append(out, toMovimientoResponse(m))
	}
	return c.JSON(out)
}

// GetMovimientos godoc
// @Summary      Historial de movimientos de inventario
// @Description  Fecha descendente, máximo 1000 resultados. Filtros por programa, tipo y rango de fechas.
// @Tags         dif
// @Security     Bearer
// @Produce      json
// @Param        programa_id  query  string  false  "Filtrar por programa"
// @Param        tipo         query  string  false  "ENTRADA, SALIDA o AJUSTE"
// @Param        desde        query  string  false  "YYYY-MM-DD"
// @Param        hasta        query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.MovimientoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dif/movimientos [get]
func (h *DIFHandler) GetMovimientos(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	if municipioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	filtro := repository.MovimientoFiltro{
		ProgramaID: c.Query("programa_id"),
		Tipo:       c.Query("tipo"),
	}
	if s := c.Query("desde"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde inválida, formato YYYY-MM-DD"})
		}
		filtro.Desde = &t
	}
	if s := c.Query("hasta"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta inválida, formato YYYY-MM-DD"})
		}
		filtro.Hasta = &t
	}
	movimientos, err := h.consulta.GetMovimientos(c.Context(), municipioID, filtro)
	if err != nil {
		return mapDIFError(c, err)
	}
	out := make([]dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		out = append(out, toMovimientoResponse(m))
	}
	return c.JSON(out)
}

// GetApoyos godoc
// @Summary      Listar apoyos entregados
// @Description  El filtro por CURP se resuelve primero a beneficiario; CURP inexistente devuelve lista vacía.
// @Tags         dif
// @Security     Bearer
// @Produce      json
// @Param        curp           query  string  false  "CURP del beneficiario"
// @Param        beneficiario_id  query  string  false  "ID del beneficiario"
// @Param        programa_id    query  string  false  "Filtrar por programa"
// @Param        desde          query  string  false  "YYYY-MM-DD"
// @Param        hasta          query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.ApoyoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dif/apoyos [get]
func (h *DIFHandler) GetApoyos(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	if municipioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	filtro := repository.ApoyoFiltro{
		BeneficiarioID: c.Query("beneficiario_id"),
		ProgramaID:     c.Query("programa_id"),
	}
	if s := c.Query("desde"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde inválida, formato YYYY-MM-DD"})
		}
		filtro.Desde = &t
	}
	if s := c.Query("hasta"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta inválida, formato YYYY-MM-DD"})
		}
		filtro.Hasta = &t
	}
	apoyos, err := h.consulta.FindApoyos(c.Context(), municipioID, c.Query("curp"), filtro)
	if err != nil {
		return mapDIFError(c, err)
	}
	out := make([]dto.ApoyoResponse, 0, len(apoyos))
	for _, a := range apoyos {
		out = append(out, toApoyoResponse(a, 0))
	}
	return c.JSON(out)
}

// GetApoyoByID godoc
// @Summary      Obtener apoyo por ID
// @Tags         dif
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del apoyo"
// @Success      200  {object}  dto.ApoyoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dif/apoyos/{id} [get]
func (h *DIFHandler) GetApoyoByID(c *fiber.Ctx) error {
	municipioID := GetMunicipioID(c)
	if municipioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.consulta.FindApoyoByID(c.Context(), id, municipioID)
	if err != nil {
		return mapDIFError(c, err)
	}
	return c.JSON(toApoyoResponse(out.Apoyo, out.TotalApoyos))
}
