package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEntradaRequest body para POST /api/dif/inventario/entradas.
type CreateEntradaRequest struct {
	ProgramaID    string           `json:"programa_id"`
	Tipo          string           `json:"tipo"`
	Cantidad      int              `json:"cantidad"`
	Concepto      string           `json:"concepto"`
	Fecha         string           `json:"fecha"` // YYYY-MM-DD
	Comprobante   string           `json:"comprobante,omitempty"`
	Observaciones string           `json:"observaciones,omitempty"`
	ValorUnitario *decimal.Decimal `json:"valor_unitario,omitempty"`
}

// ApoyoItemRequest partida del modo multi-recurso.
type ApoyoItemRequest struct {
	InventarioID string `json:"inventario_id"`
	Cantidad     int    `json:"cantidad"`
}

// CreateApoyoRequest body para POST /api/dif/apoyos. Modo legado (tipo +
// cantidad) o modo partidas (items); exactamente uno de los dos.
type CreateApoyoRequest struct {
	BeneficiarioID string             `json:"beneficiario_id"`
	ProgramaID     string             `json:"programa_id"`
	Fecha          string             `json:"fecha"` // YYYY-MM-DD
	Tipo           string             `json:"tipo,omitempty"`
	Cantidad       int                `json:"cantidad,omitempty"`
	Monto          *decimal.Decimal   `json:"monto,omitempty"`
	Items          []ApoyoItemRequest `json:"items,omitempty"`
	Observaciones  string             `json:"observaciones,omitempty"`
	Comprobante    string             `json:"comprobante,omitempty"`
}

// CreateAjusteRequest body para POST /api/dif/inventario/ajustes.
// Cantidad con signo: positiva suma, negativa resta.
type CreateAjusteRequest struct {
	ProgramaID string `json:"programa_id"`
	Tipo       string `json:"tipo"`
	Cantidad   int    `json:"cantidad"`
	Concepto   string `json:"concepto"`
	Fecha      string `json:"fecha"` // YYYY-MM-DD
}

// InventarioResponse registro de inventario con campos derivados.
type InventarioResponse struct {
	ID             string           `json:"id"`
	ProgramaID     string           `json:"programa_id"`
	Tipo           string           `json:"tipo"`
	StockActual    int              `json:"stock_actual"`
	StockInicial   int              `json:"stock_inicial"`
	UnidadMedida   string           `json:"unidad_medida"`
	AlertaMinima   int              `json:"alerta_minima"`
	ValorUnitario  *decimal.Decimal `json:"valor_unitario,omitempty"`
	EnAlerta       bool             `json:"en_alerta"`
	TotalEntregado int              `json:"total_entregado"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// MovimientoResponse registro del libro de movimientos.
type MovimientoResponse struct {
	ID            string    `json:"id"`
	ProgramaID    string    `json:"programa_id"`
	InventarioID  string    `json:"inventario_id"`
	Tipo          string    `json:"tipo"`
	TipoRecurso   string    `json:"tipo_recurso"`
	Cantidad      int       `json:"cantidad"`
	StockAnterior int       `json:"stock_anterior"`
	StockNuevo    int       `json:"stock_nuevo"`
	Concepto      string    `json:"concepto"`
	Responsable   string    `json:"responsable"`
	Fecha         time.Time `json:"fecha"`
	ApoyoID       *string   `json:"apoyo_id,omitempty"`
	Comprobante   string    `json:"comprobante,omitempty"`
	Observaciones string    `json:"observaciones,omitempty"`
	Folio         string    `json:"folio"`
}

// EntradaResponse resultado de registrar una entrada de inventario.
type EntradaResponse struct {
	Inventario InventarioResponse `json:"inventario"`
	Movimiento MovimientoResponse `json:"movimiento"`
}

// ApoyoItemResponse partida entregada con el snapshot de valor y tipo.
type ApoyoItemResponse struct {
	InventarioID  string          `json:"inventario_id"`
	Cantidad      int             `json:"cantidad"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	Tipo          string          `json:"tipo"`
}

// ApoyoResponse apoyo entregado, con el total histórico del beneficiario.
type ApoyoResponse struct {
	ID                    string              `json:"id"`
	BeneficiarioID        string              `json:"beneficiario_id"`
	ProgramaID            string              `json:"programa_id"`
	Fecha                 time.Time           `json:"fecha"`
	Tipo                  string              `json:"tipo,omitempty"`
	Cantidad              int                 `json:"cantidad,omitempty"`
	Monto                 decimal.Decimal     `json:"monto"`
	Items                 []ApoyoItemResponse `json:"items,omitempty"`
	Observaciones         string              `json:"observaciones,omitempty"`
	EntregadoPor          string              `json:"entregado_por"`
	Folio                 string              `json:"folio"`
	TotalApoyosEntregados int                 `json:"total_apoyos_entregados"`
}
