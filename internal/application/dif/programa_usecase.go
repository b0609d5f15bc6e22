package dif

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/municipio-digital/dif-api/internal/application/dto"
	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

// ProgramaUseCase altas y consultas de programas sociales.
type ProgramaUseCase struct {
	programaRepo repository.ProgramaRepository
}

// NewProgramaUseCase construye el caso de uso.
func NewProgramaUseCase(programaRepo repository.ProgramaRepository) *ProgramaUseCase {
	return &ProgramaUseCase{programaRepo: programaRepo}
}

// Crear registra un programa del municipio.
func (uc *ProgramaUseCase) Crear(ctx context.Context, municipioID string, in dto.CreateProgramaRequest) (*entity.Programa, error) {
	if in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	now := time.Now()
	p := &entity.Programa{
		ID:            uuid.New().String(),
		MunicipioID:   municipioID,
		Nombre:        in.Nombre,
		Descripcion:   in.Descripcion,
		Observaciones: in.Observaciones,
		Activo:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.programaRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Listar programas activos del municipio ordenados por nombre.
func (uc *ProgramaUseCase) Listar(ctx context.Context, municipioID string) ([]*entity.Programa, error) {
	return uc.programaRepo.List(ctx, municipioID)
}

// GetByID programa del municipio o ErrNotFound.
func (uc *ProgramaUseCase) GetByID(ctx context.Context, id, municipioID string) (*entity.Programa, error) {
	p, err := uc.programaRepo.GetByID(ctx, id, municipioID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
