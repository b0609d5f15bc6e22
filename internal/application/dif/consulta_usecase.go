package dif

import (
	"context"

	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

// Tope de resultados al listar movimientos; protege contra escaneos sin límite.
const limiteMovimientos = 1000

// ConsultaUseCase lecturas del módulo DIF: inventario, movimientos y apoyos.
// No muta estado; todas las consultas van acotadas al municipio del token.
type ConsultaUseCase struct {
	inventarioRepo   repository.InventarioRepository
	movimientoRepo   repository.MovimientoRepository
	apoyoRepo        repository.ApoyoRepository
	beneficiarioRepo repository.BeneficiarioRepository
}

// NewConsultaUseCase construye el caso de uso.
func NewConsultaUseCase(
	inventarioRepo repository.InventarioRepository,
	movimientoRepo repository.MovimientoRepository,
	apoyoRepo repository.ApoyoRepository,
	beneficiarioRepo repository.BeneficiarioRepository,
) *ConsultaUseCase {
	return &ConsultaUseCase{
		inventarioRepo:   inventarioRepo,
		movimientoRepo:   movimientoRepo,
		apoyoRepo:        apoyoRepo,
		beneficiarioRepo: beneficiarioRepo,
	}
}

// GetInventario inventarios del municipio, filtro opcional por programa.
func (uc *ConsultaUseCase) GetInventario(ctx context.Context, municipioID, programaID string) ([]*entity.Inventario, error) {
	return uc.inventarioRepo.List(ctx, municipioID, programaID)
}

// GetMovimientos historial de movimientos con filtros, fecha descendente,
// tope fijo de resultados.
func (uc *ConsultaUseCase) GetMovimientos(ctx context.Context, municipioID string, filtro repository.MovimientoFiltro) ([]*entity.Movimiento, error) {
	if filtro.Tipo != "" && !entity.TipoMovimientoValido(filtro.Tipo) {
		return nil, domain.ErrEntradaInvalida
	}
	return uc.movimientoRepo.List(ctx, municipioID, filtro, limiteMovimientos)
}

// GetMovimientosDeInventario historial completo de un registro de inventario,
// en orden de creación. Permite reconstruir el stock paso a paso.
func (uc *ConsultaUseCase) GetMovimientosDeInventario(ctx context.Context, inventarioID, municipioID string) ([]*entity.Movimiento, error) {
	inv, err := uc.inventarioRepo.GetByID(ctx, inventarioID, municipioID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movimientoRepo.ListByInventario(ctx, inventarioID, limiteMovimientos)
}

// FindApoyos apoyos entregados; el filtro por CURP se resuelve primero a
// beneficiario (CURP inexistente = lista vacía, no error).
func (uc *ConsultaUseCase) FindApoyos(ctx context.Context, municipioID, curp string, filtro repository.ApoyoFiltro) ([]*entity.Apoyo, error) {
	if curp != "" {
		b, err := uc.beneficiarioRepo.GetByCURP(ctx, curp, municipioID)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return []*entity.Apoyo{}, nil
		}
		filtro.BeneficiarioID = b.ID
	}
	return uc.apoyoRepo.List(ctx, municipioID, filtro)
}

// ApoyoDetalle apoyo con el total histórico de su beneficiario.
type ApoyoDetalle struct {
	Apoyo       *entity.Apoyo
	TotalApoyos int
}

// FindApoyoByID apoyo por ID dentro del municipio.
func (uc *ConsultaUseCase) FindApoyoByID(ctx context.Context, id, municipioID string) (*ApoyoDetalle, error) {
	apoyo, err := uc.apoyoRepo.GetByID(ctx, id, municipioID)
	if err != nil {
		return nil, err
	}
	if apoyo == nil {
		return nil, domain.ErrNotFound
	}
	total, err := uc.apoyoRepo.CountByBeneficiario(ctx, apoyo.BeneficiarioID, municipioID)
	if err != nil {
		return nil, err
	}
	return &ApoyoDetalle{Apoyo: apoyo, TotalApoyos: total}, nil
}
