package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

var _ repository.ApoyoRepository = (*ApoyoRepo)(nil)

// ApoyoRepo persistencia de apoyos sobre PostgreSQL (usable con pool o tx).
// Las partidas del modo multi-recurso viven en dif_apoyo_items y se insertan
// dentro de la misma transacción que el apoyo.
type ApoyoRepo struct {
	q Querier
}

// NewApoyoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewApoyoRepository(q Querier) *ApoyoRepo {
	return &ApoyoRepo{q: q}
}

const apoyoColumns = `id, municipio_id, beneficiario_id, programa_id, fecha, tipo, monto,
		cantidad, observaciones, entregado_por, comprobante, folio, created_at`

func scanApoyo(row pgx.Row) (*entity.Apoyo, error) {
	var a entity.Apoyo
	err := row.Scan(
		&a.ID, &a.MunicipioID, &a.BeneficiarioID, &a.ProgramaID, &a.Fecha, &a.Tipo, &a.Monto,
		&a.Cantidad, &a.Observaciones, &a.EntregadoPor, &a.Comprobante, &a.Folio, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste el apoyo y sus partidas.
func (r *ApoyoRepo) Create(ctx context.Context, apoyo *entity.Apoyo) error {
	query := `
		INSERT INTO dif_apoyos (id, municipio_id, beneficiario_id, programa_id, fecha, tipo, monto,
			cantidad, observaciones, entregado_por, comprobante, folio, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		apoyo.ID, apoyo.MunicipioID, apoyo.BeneficiarioID, apoyo.ProgramaID, apoyo.Fecha,
		apoyo.Tipo, apoyo.Monto, apoyo.Cantidad, apoyo.Observaciones, apoyo.EntregadoPor,
		apoyo.Comprobante, apoyo.Folio, apoyo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert apoyo: %w", err)
	}
	for _, it := range apoyo.Items {
		itemQuery := `
			INSERT INTO dif_apoyo_items (apoyo_id, inventario_id, cantidad, valor_unitario, tipo)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := r.q.Exec(ctx, itemQuery, apoyo.ID, it.InventarioID, it.Cantidad, it.ValorUnitario, it.Tipo); err != nil {
			return fmt.Errorf("insert apoyo item: %w", err)
		}
	}
	return nil
}

// GetByID apoyo con partidas; nil si no existe en el municipio.
func (r *ApoyoRepo) GetByID(ctx context.Context, id, municipioID string) (*entity.Apoyo, error) {
	query := `
		SELECT ` + apoyoColumns + `
		FROM dif_apoyos
		WHERE id = $1 AND municipio_id = $2`
	apoyo, err := scanApoyo(r.q.QueryRow(ctx, query, id, municipioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get apoyo: %w", err)
	}
	if err := r.cargarItems(ctx, []*entity.Apoyo{apoyo}); err != nil {
		return nil, err
	}
	return apoyo, nil
}

// List apoyos del municipio, fecha descendente.
func (r *ApoyoRepo) List(ctx context.Context, municipioID string, filtro repository.ApoyoFiltro) ([]*entity.Apoyo, error) {
	query := `
		SELECT ` + apoyoColumns + `
		FROM dif_apoyos
		WHERE municipio_id = $1`
	args := []any{municipioID}
	pos := 2
	if filtro.BeneficiarioID != "" {
		query += fmt.Sprintf(" AND beneficiario_id = $%d", pos)
		args = append(args, filtro.BeneficiarioID)
		pos++
	}
	if filtro.ProgramaID != "" {
		query += fmt.Sprintf(" AND programa_id = $%d", pos)
		args = append(args, filtro.ProgramaID)
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
	query += " ORDER BY fecha DESC"

	apoyos, err := r.queryApoyos(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.cargarItems(ctx, apoyos); err != nil {
		return nil, err
	}
	return apoyos, nil
}

// ListByBeneficiario historial paginado, fecha descendente.
func (r *ApoyoRepo) ListByBeneficiario(ctx context.Context, beneficiarioID string, limit, offset int) ([]*entity.Apoyo, error) {
	query := `
		SELECT ` + apoyoColumns + `
		FROM dif_apoyos
		WHERE beneficiario_id = $1
		ORDER BY fecha DESC
		LIMIT $2 OFFSET $3`
	apoyos, err := r.queryApoyos(ctx, query, beneficiarioID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := r.cargarItems(ctx, apoyos); err != nil {
		return nil, err
	}
	return apoyos, nil
}

// CountByBeneficiario total de apoyos recibidos por un beneficiario.
func (r *ApoyoRepo) CountByBeneficiario(ctx context.Context, beneficiarioID, municipioID string) (int, error) {
	query := `SELECT COUNT(*) FROM dif_apoyos WHERE beneficiario_id = $1 AND municipio_id = $2`
	var total int
	if err := r.q.QueryRow(ctx, query, beneficiarioID, municipioID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count apoyos: %w", err)
	}
	return total, nil
}

// ProgramasDeBeneficiario IDs distintos de programas con apoyo entregado.
func (r *ApoyoRepo) ProgramasDeBeneficiario(ctx context.Context, beneficiarioID string) ([]string, error) {
	query := `SELECT DISTINCT programa_id FROM dif_apoyos WHERE beneficiario_id = $1`
	rows, err := r.q.Query(ctx, query, beneficiarioID)
	if err != nil {
		return nil, fmt.Errorf("programas de beneficiario: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan programa id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ApoyoRepo) queryApoyos(ctx context.Context, query string, args ...any) ([]*entity.Apoyo, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list apoyos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Apoyo
	for rows.Next() {
		a, err := scanApoyo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan apoyo: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// cargarItems puebla las partidas de cada apoyo de la lista.
func (r *ApoyoRepo) cargarItems(ctx context.Context, apoyos []*entity.Apoyo) error {
	for _, a := range apoyos {
		query := `
			SELECT inventario_id, cantidad, valor_unitario, tipo
			FROM dif_apoyo_items
			WHERE apoyo_id = $1`
		rows, err := r.q.Query(ctx, query, a.ID)
		if err != nil {
			return fmt.Errorf("list apoyo items: %w", err)
		}
		for rows.Next() {
			var it entity.ApoyoItem
			if err := rows.Scan(&it.InventarioID, &it.Cantidad, &it.ValorUnitario, &it.Tipo); err != nil {
				rows.Close()
				return fmt.Errorf("scan apoyo item: %w", err)
			}
			a.Items = append(a.Items, it)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
	}
	return nil
}
