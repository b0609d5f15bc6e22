package repository

import (
	"context"

	"github.com/municipio-digital/dif-api/internal/domain/entity"
)

// BeneficiarioRepository puerto de persistencia para beneficiarios.
type BeneficiarioRepository interface {
	Create(ctx context.Context, b *entity.Beneficiario) error
	GetByID(ctx context.Context, id, municipioID string) (*entity.Beneficiario, error)
	// GetByCURP busca un beneficiario activo por CURP dentro del municipio; nil si no existe.
	GetByCURP(ctx context.Context, curp, municipioID string) (*entity.Beneficiario, error)
	Update(ctx context.Context, b *entity.Beneficiario) error
	// List beneficiarios activos del municipio, filtro opcional por CURP parcial.
	List(ctx context.Context, municipioID, curp string, limit, offset int) ([]*entity.Beneficiario, error)
	Count(ctx context.Context, municipioID, curp string) (int, error)
}
