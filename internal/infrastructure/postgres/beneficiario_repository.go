package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

var _ repository.BeneficiarioRepository = (*BeneficiarioRepo)(nil)

// BeneficiarioRepo persistencia de beneficiarios sobre PostgreSQL.
type BeneficiarioRepo struct {
	q Querier
}

// NewBeneficiarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBeneficiarioRepository(q Querier) *BeneficiarioRepo {
	return &BeneficiarioRepo{q: q}
}

const beneficiarioColumns = `id, municipio_id, nombre, apellido_paterno, apellido_materno, curp,
		fecha_nacimiento, telefono, email, domicilio, localidad, grupo_vulnerable,
		observaciones, activo, fecha_registro, created_at, updated_at`

func scanBeneficiario(row pgx.Row) (*entity.Beneficiario, error) {
	var b entity.Beneficiario
	err := row.Scan(
		&b.ID, &b.MunicipioID, &b.Nombre, &b.ApellidoPaterno, &b.ApellidoMaterno, &b.CURP,
		&b.FechaNacimiento, &b.Telefono, &b.Email, &b.Domicilio, &b.Localidad, &b.GrupoVulnerable,
		&b.Observaciones, &b.Activo, &b.FechaRegistro, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste un beneficiario; CURP repetido en el municipio es conflicto.
func (r *BeneficiarioRepo) Create(ctx context.Context, b *entity.Beneficiario) error {
	query := `
		INSERT INTO dif_beneficiarios (id, municipio_id, nombre, apellido_paterno, apellido_materno, curp,
			fecha_nacimiento, telefono, email, domicilio, localidad, grupo_vulnerable,
			observaciones, activo, fecha_registro, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.MunicipioID, b.Nombre, b.ApellidoPaterno, b.ApellidoMaterno, b.CURP,
		b.FechaNacimiento, b.Telefono, b.Email, b.Domicilio, b.Localidad, b.GrupoVulnerable,
		b.Observaciones, b.Activo, b.FechaRegistro, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCurpDuplicada
		}
		return fmt.Errorf("insert beneficiario: %w", err)
	}
	return nil
}

// GetByID beneficiario del municipio; nil si no existe.
func (r *BeneficiarioRepo) GetByID(ctx context.Context, id, municipioID string) (*entity.Beneficiario, error) {
	query := `
		SELECT ` + beneficiarioColumns + `
		FROM dif_beneficiarios
		WHERE id = $1 AND municipio_id = $2`
	b, err := scanBeneficiario(r.q.QueryRow(ctx, query, id, municipioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get beneficiario: %w", err)
	}
	return b, nil
}

// GetByCURP beneficiario activo por CURP en el municipio; nil si no existe.
func (r *BeneficiarioRepo) GetByCURP(ctx context.Context, curp, municipioID string) (*entity.Beneficiario, error) {
	query := `
		SELECT ` + beneficiarioColumns + `
		FROM dif_beneficiarios
		WHERE curp = $1 AND municipio_id = $2 AND activo = true`
	b, err := scanBeneficiario(r.q.QueryRow(ctx, query, curp, municipioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get beneficiario por curp: %w", err)
	}
	return b, nil
}

// Update actualiza los campos mutables del beneficiario.
func (r *BeneficiarioRepo) Update(ctx context.Context, b *entity.Beneficiario) error {
	query := `
		UPDATE dif_beneficiarios
		SET nombre = $3, apellido_paterno = $4, apellido_materno = $5, curp = $6,
			telefono = $7, email = $8, domicilio = $9, localidad = $10,
			grupo_vulnerable = $11, observaciones = $12, activo = $13, updated_at = $14
		WHERE id = $1 AND municipio_id = $2`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.MunicipioID, b.Nombre, b.ApellidoPaterno, b.ApellidoMaterno, b.CURP,
		b.Telefono, b.Email, b.Domicilio, b.Localidad,
		b.GrupoVulnerable, b.Observaciones, b.Activo, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCurpDuplicada
		}
		return fmt.Errorf("update beneficiario: %w", err)
	}
	return nil
}

// List beneficiarios activos del municipio, filtro por CURP parcial, orden
// por fecha de alta descendente.
func (r *BeneficiarioRepo) List(ctx context.Context, municipioID, curp string, limit, offset int) ([]*entity.Beneficiario, error) {
	query := `
		SELECT ` + beneficiarioColumns + `
		FROM dif_beneficiarios
		WHERE municipio_id = $1 AND activo = true`
	args := []any{municipioID}
	pos := 2
	if curp != "" {
		query += fmt.Sprintf(" AND curp LIKE $%d", pos)
		args = append(args, curp+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list beneficiarios: %w", err)
	}
	defer rows.Close()

	var list []*entity.Beneficiario
	for rows.Next() {
		b, err := scanBeneficiario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan beneficiario: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Count total de beneficiarios activos que cumplen el filtro.
func (r *BeneficiarioRepo) Count(ctx context.Context, municipioID, curp string) (int, error) {
	query := `SELECT COUNT(*) FROM dif_beneficiarios WHERE municipio_id = $1 AND activo = true`
	args := []any{municipioID}
	if curp != "" {
		query += " AND curp LIKE $2"
		args = append(args, curp+"%")
	}
	var total int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count beneficiarios: %w", err)
	}
	return total, nil
}
