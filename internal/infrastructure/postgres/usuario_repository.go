package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo persistencia de operadores sobre PostgreSQL.
type UsuarioRepo struct {
	pool *pgxpool.Pool
}

// NewUsuarioRepository construye el adaptador de usuarios.
func NewUsuarioRepository(pool *pgxpool.Pool) *UsuarioRepo {
	return &UsuarioRepo{pool: pool}
}

// Create persiste un operador; email repetido en el municipio es conflicto.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, municipio_id, email, password_hash, nombre, rol, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		u.ID, u.MunicipioID, u.Email, u.PasswordHash, u.Nombre, u.Rol, u.Activo, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailDuplicado
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

const usuarioColumns = `id, municipio_id, email, password_hash, nombre, rol, activo, created_at, updated_at`

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.MunicipioID, &u.Email, &u.PasswordHash,
		&u.Nombre, &u.Rol, &u.Activo, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail usuario por email en el municipio; nil si no existe.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email, municipioID string) (*entity.Usuario, error) {
	query := `
		SELECT ` + usuarioColumns + `
		FROM usuarios
		WHERE email = $1 AND municipio_id = $2`
	u, err := scanUsuario(r.pool.QueryRow(ctx, query, email, municipioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario por email: %w", err)
	}
	return u, nil
}

// GetByID usuario por ID; nil si no existe.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	query := `
		SELECT ` + usuarioColumns + `
		FROM usuarios
		WHERE id = $1`
	u, err := scanUsuario(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}
