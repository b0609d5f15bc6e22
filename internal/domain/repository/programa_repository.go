package repository

import (
	"context"

	"github.com/municipio-digital/dif-api/internal/domain/entity"
)

// ProgramaRepository puerto de persistencia para programas sociales.
type ProgramaRepository interface {
	Create(ctx context.Context, p *entity.Programa) error
	// GetByID devuelve el programa o nil si no existe en el municipio.
	GetByID(ctx context.Context, id, municipioID string) (*entity.Programa, error)
	// List programas activos del municipio ordenados por nombre.
	List(ctx context.Context, municipioID string) ([]*entity.Programa, error)
	// ListByIDs programas por lote (historial de beneficiario).
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Programa, error)
}
