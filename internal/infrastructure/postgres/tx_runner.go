package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/municipio-digital/dif-api/internal/application/dif"
	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

// Ensure TxRunner implements dif.TxRunner.
var _ dif.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Es la unidad de trabajo de los flujos DIF: descuento de stock, movimiento,
// apoyo y secuencia de folio se confirman juntos o no se confirman.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Un fallo de serialización o deadlock se traduce a
// domain.ErrConflictoConcurrencia para que el caller pueda reintentar.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventarioRepository,
	movRepo repository.MovimientoRepository,
	apoyoRepo repository.ApoyoRepository,
	counterRepo repository.CounterRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invRepo := NewInventarioRepository(tx)
	movRepo := NewMovimientoRepository(tx)
	apoyoRepo := NewApoyoRepository(tx)
	counterRepo := NewCounterRepository(tx)

	if err := fn(invRepo, movRepo, apoyoRepo, counterRepo); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflictoConcurrencia
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflictoConcurrencia
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
