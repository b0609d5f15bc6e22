package dif

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/folio"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

// RegistrarAjusteUseCase aplica ajustes manuales de inventario (mermas,
// correcciones de conteo físico) con el mismo contrato atómico que las
// entregas: el ajuste negativo usa el descuento condicional y nunca deja
// el stock por debajo de cero.
type RegistrarAjusteUseCase struct {
	txRunner TxRunner
}

// NewRegistrarAjusteUseCase construye el caso de uso.
func NewRegistrarAjusteUseCase(txRunner TxRunner) *RegistrarAjusteUseCase {
	return &RegistrarAjusteUseCase{txRunner: txRunner}
}

// AjusteInput cantidad con signo: positiva suma, negativa resta. Cero es inválido.
type AjusteInput struct {
	MunicipioID string
	UsuarioID   string
	ProgramaID  string
	Tipo        string
	Cantidad    int
	Concepto    string
	Fecha       time.Time
}

// RegistrarAjuste aplica el ajuste y anota el movimiento AJUSTE en una transacción.
func (uc *RegistrarAjusteUseCase) RegistrarAjuste(ctx context.Context, in AjusteInput) (*entity.Movimiento, error) {
	if in.ProgramaID == "" || in.Tipo == "" || in.Concepto == "" || in.Cantidad == 0 {
		return nil, domain.ErrEntradaInvalida
	}

	now := time.Now()
	var mov *entity.Movimiento

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventarioRepository,
		movRepo repository.MovimientoRepository,
		_ repository.ApoyoRepository,
		counterRepo repository.CounterRepository,
	) error {
		inv, err := invRepo.GetByProgramaTipo(ctx, in.MunicipioID, in.ProgramaID, in.Tipo)
		if err != nil {
			return err
		}
		if inv == nil {
			return &domain.SinInventarioError{Tipo: in.Tipo}
		}

		var stockNuevo int
		cantidad := in.Cantidad
		if cantidad > 0 {
			stockNuevo, err = invRepo.IncrementarStock(ctx, inv.ID, cantidad)
		} else {
			cantidad = -cantidad
			stockNuevo, err = invRepo.DescontarStockSiAlcanza(ctx, inv.ID, cantidad)
			var insuf *domain.StockInsuficienteError
			if errors.As(err, &insuf) {
				insuf.Tipo = in.Tipo
			}
		}
		if err != nil {
			return err
		}
		stockAnterior := stockNuevo - in.Cantidad

		seq, err := counterRepo.Next(ctx, folio.Bucket(folio.PrefijoMovimiento, now))
		if err != nil {
			return err
		}
		mov = &entity.Movimiento{
			ID:            uuid.New().String(),
			MunicipioID:   in.MunicipioID,
			ProgramaID:    in.ProgramaID,
			InventarioID:  inv.ID,
			Tipo:          entity.MovimientoAJUSTE,
			TipoRecurso:   in.Tipo,
			Cantidad:      cantidad,
			StockAnterior: stockAnterior,
			StockNuevo:    stockNuevo,
			Concepto:      in.Concepto,
			ResponsableID: in.UsuarioID,
			Fecha:         in.Fecha,
			Folio:         folio.Format(folio.PrefijoMovimiento, now, seq),
			CreatedAt:     now,
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}
