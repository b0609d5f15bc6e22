package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: el libro es append-only.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

const movimientoColumns = `id, municipio_id, programa_id, inventario_id, tipo, tipo_recurso,
		cantidad, stock_anterior, stock_nuevo, concepto, responsable_id, fecha,
		apoyo_id, comprobante, observaciones, folio, created_at`

func scanMovimiento(row pgx.Row) (*entity.Movimiento, error) {
	var m entity.Movimiento
	err := row.Scan(
		&m.ID, &m.MunicipioID, &m.ProgramaID, &m.InventarioID, &m.Tipo, &m.TipoRecurso,
		&m.Cantidad, &m.StockAnterior, &m.StockNuevo, &m.Concepto, &m.ResponsableID, &m.Fecha,
		&m.ApoyoID, &m.Comprobante, &m.Observaciones, &m.Folio, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un movimiento de inventario.
func (r *MovimientoRepo) Create(ctx context.Context, mov *entity.Movimiento) error {
	query := `
		INSERT INTO dif_movimientos (id, municipio_id, programa_id, inventario_id, tipo, tipo_recurso,
			cantidad, stock_anterior, stock_nuevo, concepto, responsable_id, fecha,
			apoyo_id, comprobante, observaciones, folio, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.MunicipioID, mov.ProgramaID, mov.InventarioID, mov.Tipo, mov.TipoRecurso,
		mov.Cantidad, mov.StockAnterior, mov.StockNuevo, mov.Concepto, mov.ResponsableID, mov.Fecha,
		mov.ApoyoID, mov.Comprobante, mov.Observaciones, mov.Folio, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// List movimientos del municipio con filtros, fecha descendente, tope de filas.
func (r *MovimientoRepo) List(ctx context.Context, municipioID string, filtro repository.MovimientoFiltro, limite int) ([]*entity.Movimiento, error) {
	query := `
		SELECT ` + movimientoColumns + `
		FROM dif_movimientos
		WHERE municipio_id = $1`
	args := []any{municipioID}
	pos := 2
	if filtro.ProgramaID != "" {
		query += fmt.Sprintf(" AND programa_id = $%d", pos)
		args = append(args, filtro.ProgramaID)
		pos++
	}
	if filtro.Tipo != "" {
		query += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, filtro.Tipo)
		pos++
	}
	if filtro.Desde != nil {
		query += fmt.Sprintf(" AND fecha >= $%d", pos)
		args = append(args, *filtro.Desde)
		pos++
	}
	if filtro.Hasta != nil {
		query += fmt.Sprintf(" AND fecha <= $%d", pos)
		args = append(args, *filtro.Hasta)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d", pos)
	args = append(args, limite)

	return r.queryMovimientos(ctx, query, args...)
}

// ListByInventario historial de un inventario en orden de creación ascendente.
func (r *MovimientoRepo) ListByInventario(ctx context.Context, inventarioID string, limite int) ([]*entity.Movimiento, error) {
	query := `
		SELECT ` + movimientoColumns + `
		FROM dif_movimientos
		WHERE inventario_id = $1
		ORDER BY created_at ASC
		LIMIT $2`
	return r.queryMovimientos(ctx, query, inventarioID, limite)
}

func (r *MovimientoRepo) queryMovimientos(ctx context.Context, query string, args ...any) ([]*entity.Movimiento, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movimiento
	for rows.Next() {
		m, err := scanMovimiento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
