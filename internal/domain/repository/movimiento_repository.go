package repository

import (
	"context"
	"time"

	"github.com/municipio-digital/dif-api/internal/domain/entity"
)

// MovimientoFiltro criterios de consulta del historial de movimientos.
type MovimientoFiltro struct {
	ProgramaID string
	Tipo       string // ENTRADA, SALIDA, AJUSTE; vacío = todos
	Desde      *time.Time
	Hasta      *time.Time
}

// MovimientoRepository puerto del libro de movimientos. Es append-only:
// no existen métodos de actualización ni borrado.
type MovimientoRepository interface {
	Create(ctx context.Context, mov *entity.Movimiento) error
	// List devuelve movimientos del municipio ordenados por fecha descendente,
	// acotados a un tope para proteger contra escaneos sin límite.
	List(ctx context.Context, municipioID string, filtro MovimientoFiltro, limite int) ([]*entity.Movimiento, error)
	// ListByInventario historial de un registro de inventario, fecha de creación ascendente.
	ListByInventario(ctx context.Context, inventarioID string, limite int) ([]*entity.Movimiento, error)
}
