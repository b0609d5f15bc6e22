package dif

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/municipio-digital/dif-api/internal/application/dto"
	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

// BeneficiarioUseCase altas, consultas y actualizaciones de beneficiarios.
// El CURP es único por municipio y siempre se maneja en mayúsculas.
type BeneficiarioUseCase struct {
	beneficiarioRepo repository.BeneficiarioRepository
	apoyoRepo        repository.ApoyoRepository
	programaRepo     repository.ProgramaRepository
}

// NewBeneficiarioUseCase construye el caso de uso.
func NewBeneficiarioUseCase(
	beneficiarioRepo repository.BeneficiarioRepository,
	apoyoRepo repository.ApoyoRepository,
	programaRepo repository.ProgramaRepository,
) *BeneficiarioUseCase {
	return &BeneficiarioUseCase{
		beneficiarioRepo: beneficiarioRepo,
		apoyoRepo:        apoyoRepo,
		programaRepo:     programaRepo,
	}
}

// Crear registra un beneficiario; CURP repetido en el municipio es conflicto.
func (uc *BeneficiarioUseCase) Crear(ctx context.Context, municipioID string, in dto.CreateBeneficiarioRequest) (*entity.Beneficiario, error) {
	if in.Nombre == "" || in.ApellidoPaterno == "" || in.CURP == "" || len(in.GrupoVulnerable) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	curp := strings.ToUpper(in.CURP)

	existente, err := uc.beneficiarioRepo.GetByCURP(ctx, curp, municipioID)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrCurpDuplicada
	}

	now := time.Now()
	b := &entity.Beneficiario{
		ID:              uuid.New().String(),
		MunicipioID:     municipioID,
		Nombre:          in.Nombre,
		ApellidoPaterno: in.ApellidoPaterno,
		ApellidoMaterno: in.ApellidoMaterno,
		CURP:            curp,
		Telefono:        in.Telefono,
		Email:           in.Email,
		Domicilio:       in.Domicilio,
		Localidad:       in.Localidad,
		GrupoVulnerable: in.GrupoVulnerable,
		Observaciones:   in.Observaciones,
		Activo:          true,
		FechaRegistro:   now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.FechaNacimiento != "" {
		fn, err := time.Parse("2006-01-02", in.FechaNacimiento)
		if err != nil {
			return nil, domain.ErrEntradaInvalida
		}
		b.FechaNacimiento = &fn
	}
	if err := uc.beneficiarioRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListaBeneficiarios página de beneficiarios activos con filtro por CURP parcial.
type ListaBeneficiarios struct {
	Data  []*entity.Beneficiario
	Total int
}

// Listar beneficiarios activos del municipio.
func (uc *BeneficiarioUseCase) Listar(ctx context.Context, municipioID, curp string, page dto.PageRequest) (*ListaBeneficiarios, error) {
	page.DefaultPage()
	curp = strings.ToUpper(curp)
	total, err := uc.beneficiarioRepo.Count(ctx, municipioID, curp)
	if err != nil {
		return nil, err
	}
	data, err := uc.beneficiarioRepo.List(ctx, municipioID, curp, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	return &ListaBeneficiarios{Data: data, Total: total}, nil
}

// GetByID beneficiario del municipio o ErrNotFound.
func (uc *BeneficiarioUseCase) GetByID(ctx context.Context, id, municipioID string) (*entity.Beneficiario, error) {
	b, err := uc.beneficiarioRepo.GetByID(ctx, id, municipioID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// HistorialBeneficiario expediente completo: datos, historial de apoyos
// paginado, programas en los que ha recibido apoyo y último apoyo.
type HistorialBeneficiario struct {
	Beneficiario *entity.Beneficiario
	Apoyos       []*entity.Apoyo
	TotalApoyos  int
	Programas    []*entity.Programa
	UltimoApoyo  *entity.Apoyo
}

// GetByCURP arma el expediente de un beneficiario a partir de su CURP.
func (uc *BeneficiarioUseCase) GetByCURP(ctx context.Context, curp, municipioID string, page dto.PageRequest) (*HistorialBeneficiario, error) {
	page.DefaultPage()
	b, err := uc.beneficiarioRepo.GetByCURP(ctx, strings.ToUpper(curp), municipioID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}

	total, err := uc.apoyoRepo.CountByBeneficiario(ctx, b.ID, municipioID)
	if err != nil {
		return nil, err
	}
	apoyos, err := uc.apoyoRepo.ListByBeneficiario(ctx, b.ID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	programaIDs, err := uc.apoyoRepo.ProgramasDeBeneficiario(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	programas, err := uc.programaRepo.ListByIDs(ctx, programaIDs)
	if err != nil {
		return nil, err
	}

	h := &HistorialBeneficiario{
		Beneficiario: b,
		Apoyos:       apoyos,
		TotalApoyos:  total,
		Programas:    programas,
	}
	if len(apoyos) > 0 {
		h.UltimoApoyo = apoyos[0]
	}
	return h, nil
}

// Actualizar modifica un beneficiario; si cambia el CURP se revalida la
// unicidad dentro del municipio.
func (uc *BeneficiarioUseCase) Actualizar(ctx context.Context, id, municipioID string, in dto.UpdateBeneficiarioRequest) (*entity.Beneficiario, error) {
	b, err := uc.GetByID(ctx, id, municipioID)
	if err != nil {
		return nil, err
	}

	if in.CURP != nil {
		nuevoCURP := strings.ToUpper(*in.CURP)
		if nuevoCURP != b.CURP {
			otro, err := uc.beneficiarioRepo.GetByCURP(ctx, nuevoCURP, municipioID)
			if err != nil {
				return nil, err
			}
			if otro != nil && otro.ID != b.ID {
				return nil, domain.ErrCurpDuplicada
			}
			b.CURP = nuevoCURP
		}
	}
	if in.Nombre != nil {
		b.Nombre = *in.Nombre
	}
	if in.ApellidoPaterno != nil {
		b.ApellidoPaterno = *in.ApellidoPaterno
	}
	if in.ApellidoMaterno != nil {
		b.ApellidoMaterno = *in.ApellidoMaterno
	}
	if in.Telefono != nil {
		b.Telefono = *in.Telefono
	}
	if in.Email != nil {
		b.Email = *in.Email
	}
	if in.Domicilio != nil {
		b.Domicilio = *in.Domicilio
	}
	if in.Localidad != nil {
		b.Localidad = *in.Localidad
	}
	if in.GrupoVulnerable != nil {
		b.GrupoVulnerable = *in.GrupoVulnerable
	}
	if in.Observaciones != nil {
		b.Observaciones = *in.Observaciones
	}
	if in.Activo != nil {
		b.Activo = *in.Activo
	}
	b.UpdatedAt = time.Now()

	if err := uc.beneficiarioRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
