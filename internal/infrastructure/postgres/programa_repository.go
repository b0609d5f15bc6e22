package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

var _ repository.ProgramaRepository = (*ProgramaRepo)(nil)

// ProgramaRepo persistencia de programas sociales sobre PostgreSQL.
type ProgramaRepo struct {
	q Querier
}

// NewProgramaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProgramaRepository(q Querier) *ProgramaRepo {
	return &ProgramaRepo{q: q}
}

const programaColumns = `id, municipio_id, nombre, descripcion, observaciones, activo, created_at, updated_at`

func scanPrograma(row pgx.Row) (*entity.Programa, error) {
	var p entity.Programa
	err := row.Scan(&p.ID, &p.MunicipioID, &p.Nombre, &p.Descripcion,
		&p.Observaciones, &p.Activo, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un programa.
func (r *ProgramaRepo) Create(ctx context.Context, p *entity.Programa) error {
	query := `
		INSERT INTO dif_programas (id, municipio_id, nombre, descripcion, observaciones, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.MunicipioID, p.Nombre, p.Descripcion, p.Observaciones, p.Activo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert programa: %w", err)
	}
	return nil
}

// GetByID programa del municipio; nil si no existe.
func (r *ProgramaRepo) GetByID(ctx context.Context, id, municipioID string) (*entity.Programa, error) {
	query := `
		SELECT ` + programaColumns + `
		FROM dif_programas
		WHERE id = $1 AND municipio_id = $2`
	p, err := scanPrograma(r.q.QueryRow(ctx, query, id, municipioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get programa: %w", err)
	}
	return p, nil
}

// List programas activos del municipio ordenados por nombre.
func (r *ProgramaRepo) List(ctx context.Context, municipioID string) ([]*entity.Programa, error) {
	query := `
		SELECT ` + programaColumns + `
		FROM dif_programas
		WHERE municipio_id = $1 AND activo = true
		ORDER BY nombre ASC`
	return r.queryProgramas(ctx, query, municipioID)
}

// ListByIDs programas por lote.
func (r *ProgramaRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Programa, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + programaColumns + `
		FROM dif_programas
		WHERE id = ANY($1)`
	return r.queryProgramas(ctx, query, ids)
}

func (r *ProgramaRepo) queryProgramas(ctx context.Context, query string, args ...any) ([]*entity.Programa, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list programas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Programa
	for rows.Next() {
		p, err := scanPrograma(rows)
		if err != nil {
			return nil, fmt.Errorf("scan programa: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
