package dif

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/folio"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

// Valores por defecto al crear un inventario en su primera entrada.
const (
	unidadMedidaDefault = "piezas"
	alertaMinimaDefault = 50
)

// RegistrarEntradaUseCase registra entradas de inventario (donaciones,
// compras): crea el registro de inventario en la primera entrada del
// programa+tipo, o incrementa el existente, y anota el movimiento ENTRADA
// en la misma transacción. Una entrada nunca falla por nivel de stock.
type RegistrarEntradaUseCase struct {
	txRunner     TxRunner
	programaRepo repository.ProgramaRepository
}

// NewRegistrarEntradaUseCase construye el caso de uso.
func NewRegistrarEntradaUseCase(txRunner TxRunner, programaRepo repository.ProgramaRepository) *RegistrarEntradaUseCase {
	return &RegistrarEntradaUseCase{txRunner: txRunner, programaRepo: programaRepo}
}

// EntradaInput entrada para registrar un ingreso de recursos.
type EntradaInput struct {
	MunicipioID   string
	UsuarioID     string
	ProgramaID    string
	Tipo          string
	Cantidad      int
	Concepto      string
	Fecha         time.Time
	Comprobante   string
	Observaciones string
	ValorUnitario *decimal.Decimal
}

// EntradaResult inventario resultante y movimiento creado.
type EntradaResult struct {
	Inventario *entity.Inventario
	Movimiento *entity.Movimiento
}

// RegistrarEntrada valida el programa, toma el inventario bajo bloqueo de
// fila (o lo crea con stockInicial = cantidad), y registra el movimiento
// ENTRADA con el stock antes/después capturado alrededor del incremento.
func (uc *RegistrarEntradaUseCase) RegistrarEntrada(ctx context.Context, in EntradaInput) (*EntradaResult, error) {
	if in.ProgramaID == "" || in.Tipo == "" || in.Concepto == "" || in.Cantidad < 1 {
		return nil, domain.ErrEntradaInvalida
	}

	programa, err := uc.programaRepo.GetByID(ctx, in.ProgramaID, in.MunicipioID)
	if err != nil {
		return nil, err
	}
	if programa == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var result EntradaResult

	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventarioRepository,
		movRepo repository.MovimientoRepository,
		_ repository.ApoyoRepository,
		counterRepo repository.CounterRepository,
	) error {
		// Bloquea la fila del inventario para que dos entradas simultáneas
		// del mismo programa+tipo se serialicen. Si no existe, el índice
		// único (municipio, programa, tipo) frena la doble creación.
		inv, err := invRepo.GetForUpdate(ctx, in.MunicipioID, in.ProgramaID, in.Tipo)
		if err != nil {
			return err
		}

		var stockAnterior, stockNuevo int
		if inv == nil {
			inv = &entity.Inventario{
				ID:            uuid.New().String(),
				MunicipioID:   in.MunicipioID,
				ProgramaID:    in.ProgramaID,
				Tipo:          in.Tipo,
				StockActual:   in.Cantidad,
				StockInicial:  in.Cantidad,
				UnidadMedida:  unidadMedidaDefault,
				AlertaMinima:  alertaMinimaDefault,
				ValorUnitario: in.ValorUnitario,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := invRepo.Create(ctx, inv); err != nil {
				return err
			}
			stockAnterior = 0
			stockNuevo = in.Cantidad
		} else {
			stockAnterior = inv.StockActual
			stockNuevo, err = invRepo.IncrementarStock(ctx, inv.ID, in.Cantidad)
			if err != nil {
				return err
			}
			inv.StockActual = stockNuevo
			if in.ValorUnitario != nil {
				if err := invRepo.ActualizarValorUnitario(ctx, inv.ID, *in.ValorUnitario); err != nil {
					return err
				}
				inv.ValorUnitario = in.ValorUnitario
			}
		}

		seq, err := counterRepo.Next(ctx, folio.Bucket(folio.PrefijoMovimiento, now))
		if err != nil {
			return err
		}
		mov := &entity.Movimiento{
			ID:            uuid.New().String(),
			MunicipioID:   in.MunicipioID,
			ProgramaID:    in.ProgramaID,
			InventarioID:  inv.ID,
			Tipo:          entity.MovimientoENTRADA,
			TipoRecurso:   in.Tipo,
			Cantidad:      in.Cantidad,
			StockAnterior: stockAnterior,
			StockNuevo:    stockNuevo,
			Concepto:      in.Concepto,
			ResponsableID: in.UsuarioID,
			Fecha:         in.Fecha,
			Comprobante:   in.Comprobante,
			Observaciones: in.Observaciones,
			Folio:         folio.Format(folio.PrefijoMovimiento, now, seq),
			CreatedAt:     now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		result = EntradaResult{Inventario: inv, Movimiento: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
