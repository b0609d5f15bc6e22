package repository

import (
	"context"
	"time"

	"github.com/municipio-digital/dif-api/internal/domain/entity"
)

// ApoyoFiltro criterios de consulta de apoyos entregados.
type ApoyoFiltro struct {
	BeneficiarioID string
	ProgramaID     string
	Desde          *time.Time
	Hasta          *time.Time
}

// ApoyoRepository puerto de persistencia de apoyos. Los apoyos son inmutables
// una vez creados; solo se leen para historial y reportes.
type ApoyoRepository interface {
	Create(ctx context.Context, apoyo *entity.Apoyo) error
	GetByID(ctx context.Context, id, municipioID string) (*entity.Apoyo, error)
	List(ctx context.Context, municipioID string, filtro ApoyoFiltro) ([]*entity.Apoyo, error)
	// ListByBeneficiario historial paginado, fecha descendente.
	ListByBeneficiario(ctx context.Context, beneficiarioID string, limit, offset int) ([]*entity.Apoyo, error)
	CountByBeneficiario(ctx context.Context, beneficiarioID, municipioID string) (int, error)
	// ProgramasDeBeneficiario IDs distintos de programas en los que ha recibido apoyo.
	ProgramasDeBeneficiario(ctx context.Context, beneficiarioID string) ([]string, error)
}
