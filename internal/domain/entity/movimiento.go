package entity

import "time"

// Tipos de movimiento de inventario. Un solo enum para todo el módulo.
const (
	MovimientoENTRADA = "ENTRADA"
	MovimientoSALIDA  = "SALIDA"
	MovimientoAJUSTE  = "AJUSTE"
)

// TipoMovimientoValido reporta si s es uno de los tipos reconocidos.
func TipoMovimientoValido(s string) bool {
	return s == MovimientoENTRADA || s == MovimientoSALIDA || s == MovimientoAJUSTE
}

// Movimiento es el registro inmutable de un cambio de stock: guarda el stock
// antes y después, el responsable y, si aplica, el apoyo que lo originó.
// Nunca se actualiza ni se borra; las correcciones se hacen con un AJUSTE.
type Movimiento struct {
	ID            string
	MunicipioID   string
	ProgramaID    string
	InventarioID  string
	Tipo          string // ENTRADA, SALIDA, AJUSTE
	TipoRecurso   string
	Cantidad      int // siempre positiva; el signo lo da Tipo
	StockAnterior int
	StockNuevo    int
	Concepto      string // Donación, Compra, Entrega a beneficiario...
	ResponsableID string
	Fecha         time.Time
	ApoyoID       *string // si el movimiento es por entrega de apoyo
	Comprobante   string  // número de factura, oficio, etc.
	Observaciones string
	Folio         string // único, secuencial por mes: MOV-YYYYMM-NNNN
	CreatedAt     time.Time
}

// Consistente verifica la invariante stockNuevo = stockAnterior ± cantidad
// según el tipo de movimiento. Un AJUSTE puede ir en cualquier dirección.
func (m *Movimiento) Consistente() bool {
	switch m.Tipo {
	case MovimientoENTRADA:
		return m.StockNuevo == m.StockAnterior+m.Cantidad
	case MovimientoSALIDA:
		return m.StockNuevo == m.StockAnterior-m.Cantidad
	case MovimientoAJUSTE:
		diff := m.StockNuevo - m.StockAnterior
		if diff < 0 {
			diff = -diff
		}
		return diff == m.Cantidad
	}
	return false
}
