package dif

import (
	"context"

	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la frontera de unidad de trabajo del
// módulo DIF: descuento de stock, movimiento, apoyo y secuencia de folio se
// confirman o revierten juntos. Un error de fn (o del commit) revierte todo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventarioRepository,
		movRepo repository.MovimientoRepository,
		apoyoRepo repository.ApoyoRepository,
		counterRepo repository.CounterRepository,
	) error) error
}
