package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApoyoItem es una partida de un apoyo en modo multi-recurso. ValorUnitario y
// Tipo se toman del inventario al momento de la entrega (snapshot: no cambian
// si el catálogo se actualiza después).
type ApoyoItem struct {
	InventarioID  string
	Cantidad      int
	ValorUnitario decimal.Decimal
	Tipo          string
}

// Apoyo es una entrega de ayuda a un beneficiario. Hay dos modos excluyentes:
// el legado (Tipo + Cantidad, un solo recurso) y el de partidas (Items).
// Exactamente uno de los dos viene poblado; el caso de uso rechaza ambigüedad.
type Apoyo struct {
	ID             string
	MunicipioID    string
	BeneficiarioID string
	ProgramaID     string
	Fecha          time.Time
	Tipo           string // modo legado: tipo de recurso entregado
	Monto          decimal.Decimal
	Cantidad       int // modo legado: unidades entregadas
	Items          []ApoyoItem
	Observaciones  string
	EntregadoPor   string
	Comprobante    string
	Folio          string // único: DIF-YYYYMM-NNNN
	CreatedAt      time.Time
}

// Itemizado indica si el apoyo está en modo multi-recurso.
func (a *Apoyo) Itemizado() bool { return len(a.Items) > 0 }
