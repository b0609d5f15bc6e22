package postgres

import (
	"context"
	"fmt"

	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo secuencias de folio sobre PostgreSQL (usable con pool o tx).
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next incrementa y devuelve la secuencia de la cubeta en una sola sentencia
// atómica (upsert con RETURNING): dos llamadas concurrentes sobre la misma
// cubeta se serializan en el row lock del upsert y reciben valores distintos.
// Dentro de una tx, el incremento se revierte con ella.
func (r *CounterRepo) Next(ctx context.Context, bucket string) (int64, error) {
	query := `
		INSERT INTO dif_counters (id, seq)
		VALUES ($1, 1)
		ON CONFLICT (id)
		DO UPDATE SET seq = dif_counters.seq + 1
		RETURNING seq`
	var seq int64
	if err := r.q.QueryRow(ctx, query, bucket).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", bucket, err)
	}
	return seq, nil
}
