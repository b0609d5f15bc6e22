package repository

import (
	"context"

	"github.com/municipio-digital/dif-api/internal/domain/entity"
)

// UsuarioRepository puerto de persistencia para operadores del sistema.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	// GetByEmail busca por email dentro del municipio; nil si no existe.
	GetByEmail(ctx context.Context, email, municipioID string) (*entity.Usuario, error)
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
}
