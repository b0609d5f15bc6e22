package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventario representa el stock actual de un tipo de recurso dentro de un
// programa DIF de un municipio. Existe a lo más un registro por
// (municipio, programa, tipo); se crea en la primera entrada y nunca se borra.
type Inventario struct {
	ID            string
	MunicipioID   string
	ProgramaID    string
	Tipo          string // clave de catálogo: DESPENSA, MEDICAMENTO, etc.
	StockActual   int
	StockInicial  int
	UnidadMedida  string // piezas, litros, pesos...
	AlertaMinima  int
	ValorUnitario *decimal.Decimal // valor en pesos por unidad (opcional)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EnAlerta indica si el stock cayó al umbral mínimo configurado.
func (i *Inventario) EnAlerta() bool {
	return i.StockActual <= i.AlertaMinima
}

// TotalEntregado unidades salidas desde el stock inicial.
func (i *Inventario) TotalEntregado() int {
	return i.StockInicial - i.StockActual
}
