package dif

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/folio"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

// CrearApoyoUseCase entrega apoyos a beneficiarios de forma transaccional.
// El descuento de stock, el alta del apoyo, los movimientos de SALIDA y las
// secuencias de folio viven en una sola transacción: cualquier falla revierte
// todo (nunca queda una entrega parcial visible).
type CrearApoyoUseCase struct {
	txRunner         TxRunner
	beneficiarioRepo repository.BeneficiarioRepository
	programaRepo     repository.ProgramaRepository
	inventarioRepo   repository.InventarioRepository
	apoyoRepo        repository.ApoyoRepository
}

// NewCrearApoyoUseCase construye el caso de uso.
func NewCrearApoyoUseCase(
	txRunner TxRunner,
	beneficiarioRepo repository.BeneficiarioRepository,
	programaRepo repository.ProgramaRepository,
	inventarioRepo repository.InventarioRepository,
	apoyoRepo repository.ApoyoRepository,
) *CrearApoyoUseCase {
	return &CrearApoyoUseCase{
		txRunner:         txRunner,
		beneficiarioRepo: beneficiarioRepo,
		programaRepo:     programaRepo,
		inventarioRepo:   inventarioRepo,
		apoyoRepo:        apoyoRepo,
	}
}

// ItemEntrega partida solicitada en modo multi-recurso.
type ItemEntrega struct {
	InventarioID string
	Cantidad     int
}

// ApoyoInput entrada para entregar un apoyo. Dos modos excluyentes:
//   - legado: Tipo + Cantidad descuentan de un solo inventario (programa+tipo)
//   - partidas: Items descuenta de varios inventarios referenciados por ID
//
// Poblar ambos (o ninguno) es entrada inválida; no se adivina precedencia.
type ApoyoInput struct {
	MunicipioID    string
	UsuarioID      string
	BeneficiarioID string
	ProgramaID     string
	Fecha          time.Time
	Tipo           string
	Cantidad       int
	Monto          *decimal.Decimal
	Items          []ItemEntrega
	Observaciones  string
	Comprobante    string
}

func (in *ApoyoInput) validar() error {
	if in.BeneficiarioID == "" || in.ProgramaID == "" {
		return domain.ErrEntradaInvalida
	}
	legado := in.Tipo != ""
	itemizado := len(in.Items) > 0
	if legado == itemizado { // ambos o ninguno
		return domain.ErrEntradaInvalida
	}
	if legado && in.Cantidad < 1 {
		return domain.ErrEntradaInvalida
	}
	for _, it := range in.Items {
		if it.InventarioID == "" || it.Cantidad < 1 {
			return domain.ErrEntradaInvalida
		}
	}
	return nil
}

// ApoyoResult resultado de la entrega, con el total histórico recalculado.
type ApoyoResult struct {
	Apoyo                 *entity.Apoyo
	Movimientos           []*entity.Movimiento
	TotalApoyosEntregados int
}

// CrearApoyo valida beneficiario y programa, descuenta stock de forma atómica,
// registra el apoyo y sus movimientos de SALIDA, y confirma todo como una
// unidad. En modo partidas, las partidas se procesan en el orden recibido y
// una sola con stock insuficiente aborta la entrega completa.
func (uc *CrearApoyoUseCase) CrearApoyo(ctx context.Context, in ApoyoInput) (*ApoyoResult, error) {
	if err := in.validar(); err != nil {
		return nil, err
	}

	beneficiario, err := uc.beneficiarioRepo.GetByID(ctx, in.BeneficiarioID, in.MunicipioID)
	if err != nil {
		return nil, err
	}
	if beneficiario == nil {
		return nil, domain.ErrNotFound
	}
	programa, err := uc.programaRepo.GetByID(ctx, in.ProgramaID, in.MunicipioID)
	if err != nil {
		return nil, err
	}
	if programa == nil {
		return nil, domain.ErrNotFound
	}

	var apoyo *entity.Apoyo
	var movimientos []*entity.Movimiento
	if len(in.Items) > 0 {
		apoyo, movimientos, err = uc.entregarItemizado(ctx, in)
	} else {
		apoyo, movimientos, err = uc.entregarLegado(ctx, in)
	}
	if err != nil {
		return nil, err
	}

	// El total es informativo para la respuesta; incluye el apoyo recién creado.
	total, err := uc.apoyoRepo.CountByBeneficiario(ctx, in.BeneficiarioID, in.MunicipioID)
	if err != nil {
		return nil, err
	}
	return &ApoyoResult{Apoyo: apoyo, Movimientos: movimientos, TotalApoyosEntregados: total}, nil
}

// entregarLegado modo de un solo recurso: localiza el inventario del
// programa+tipo y descuenta con la primitiva condicional.
func (uc *CrearApoyoUseCase) entregarLegado(ctx context.Context, in ApoyoInput) (*entity.Apoyo, []*entity.Movimiento, error) {
	now := time.Now()
	var apoyo *entity.Apoyo
	var movs []*entity.Movimiento

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventarioRepository,
		movRepo repository.MovimientoRepository,
		apoyoRepo repository.ApoyoRepository,
		counterRepo repository.CounterRepository,
	) error {
		inv, err := invRepo.GetByProgramaTipo(ctx, in.MunicipioID, in.ProgramaID, in.Tipo)
		if err != nil {
			return err
		}
		if inv == nil {
			return &domain.SinInventarioError{Tipo: in.Tipo}
		}

		stockNuevo, err := invRepo.DescontarStockSiAlcanza(ctx, inv.ID, in.Cantidad)
		if err != nil {
			var insuf *domain.StockInsuficienteError
			if errors.As(err, &insuf) {
				insuf.Tipo = in.Tipo
			}
			return err
		}
		stockAnterior := stockNuevo + in.Cantidad

		monto := decimal.Zero
		if in.Monto != nil {
			monto = *in.Monto
		}
		seqApoyo, err := counterRepo.Next(ctx, folio.Bucket(folio.PrefijoApoyo, now))
		if err != nil {
			return err
		}
		apoyo = &entity.Apoyo{
			ID:             uuid.New().String(),
			MunicipioID:    in.MunicipioID,
			BeneficiarioID: in.BeneficiarioID,
			ProgramaID:     in.ProgramaID,
			Fecha:          in.Fecha,
			Tipo:           in.Tipo,
			Monto:          monto,
			Cantidad:       in.Cantidad,
			Observaciones:  in.Observaciones,
			EntregadoPor:   in.UsuarioID,
			Comprobante:    in.Comprobante,
			Folio:          folio.Format(folio.PrefijoApoyo, now, seqApoyo),
			CreatedAt:      now,
		}
		if err := apoyoRepo.Create(ctx, apoyo); err != nil {
			return err
		}

		mov, err := crearMovimientoSalida(ctx, movRepo, counterRepo, movimientoSalida{
			municipioID:   in.MunicipioID,
			programaID:    in.ProgramaID,
			inventarioID:  inv.ID,
			tipoRecurso:   in.Tipo,
			cantidad:      in.Cantidad,
			stockAnterior: stockAnterior,
			stockNuevo:    stockNuevo,
			responsable:   in.UsuarioID,
			fecha:         in.Fecha,
			apoyoID:       apoyo.ID,
			now:           now,
		})
		if err != nil {
			return err
		}
		movs = append(movs, mov)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return apoyo, movs, nil
}

// entregarItemizado modo multi-recurso: captura valor unitario y tipo de cada
// inventario al momento de la lectura, crea el apoyo y descuenta partida por
// partida en el orden recibido. Stock insuficiente en cualquier partida
// aborta la transacción completa, incluidos los descuentos ya aplicados.
func (uc *CrearApoyoUseCase) entregarItemizado(ctx context.Context, in ApoyoInput) (*entity.Apoyo, []*entity.Movimiento, error) {
	now := time.Now()

	// Verificación de existencia y snapshot de precios fuera de la tx; el
	// stock NO se compara aquí (eso lo decide el descuento condicional).
	type partida struct {
		inv      *entity.Inventario
		cantidad int
	}
	partidas := make([]partida, 0, len(in.Items))
	for _, it := range in.Items {
		inv, err := uc.inventarioRepo.GetByID(ctx, it.InventarioID, in.MunicipioID)
		if err != nil {
			return nil, nil, err
		}
		if inv == nil {
			return nil, nil, domain.ErrNotFound
		}
		partidas = append(partidas, partida{inv: inv, cantidad: it.Cantidad})
	}

	var apoyo *entity.Apoyo
	var movs []*entity.Movimiento

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventarioRepository,
		movRepo repository.MovimientoRepository,
		apoyoRepo repository.ApoyoRepository,
		counterRepo repository.CounterRepository,
	) error {
		items := make([]entity.ApoyoItem, 0, len(partidas))
		monto := decimal.Zero
		for _, p := range partidas {
			valor := decimal.Zero
			if p.inv.ValorUnitario != nil {
				valor = *p.inv.ValorUnitario
			}
			items = append(items, entity.ApoyoItem{
				InventarioID:  p.inv.ID,
				Cantidad:      p.cantidad,
				ValorUnitario: valor,
				Tipo:          p.inv.Tipo,
			})
			monto = monto.Add(valor.Mul(decimal.NewFromInt(int64(p.cantidad))))
		}
		if in.Monto != nil {
			monto = *in.Monto
		}

		seqApoyo, err := counterRepo.Next(ctx, folio.Bucket(folio.PrefijoApoyo, now))
		if err != nil {
			return err
		}
		apoyo = &entity.Apoyo{
			ID:             uuid.New().String(),
			MunicipioID:    in.MunicipioID,
			BeneficiarioID: in.BeneficiarioID,
			ProgramaID:     in.ProgramaID,
			Fecha:          in.Fecha,
			Monto:          monto,
			Items:          items,
			Observaciones:  in.Observaciones,
			EntregadoPor:   in.UsuarioID,
			Comprobante:    in.Comprobante,
			Folio:          folio.Format(folio.PrefijoApoyo, now, seqApoyo),
			CreatedAt:      now,
		}
		if err := apoyoRepo.Create(ctx, apoyo); err != nil {
			return err
		}

		// Partidas en el orden del caller; sin reordenamiento ni prioridades.
		for _, p := range partidas {
			// El detalle de insuficiencia lleva el stock vigente dentro de la
			// tx, no el snapshot de precios: una partida anterior sobre el
			// mismo inventario ya pudo haberlo drenado.
			stockNuevo, err := invRepo.DescontarStockSiAlcanza(ctx, p.inv.ID, p.cantidad)
			if err != nil {
				var insuf *domain.StockInsuficienteError
				if errors.As(err, &insuf) {
					insuf.Tipo = p.inv.Tipo
				}
				return err
			}
			mov, err := crearMovimientoSalida(ctx, movRepo, counterRepo, movimientoSalida{
				municipioID:   in.MunicipioID,
				programaID:    in.ProgramaID,
				inventarioID:  p.inv.ID,
				tipoRecurso:   p.inv.Tipo,
				cantidad:      p.cantidad,
				stockAnterior: stockNuevo + p.cantidad,
				stockNuevo:    stockNuevo,
				responsable:   in.UsuarioID,
				fecha:         in.Fecha,
				apoyoID:       apoyo.ID,
				now:           now,
			})
			if err != nil {
				return err
			}
			movs = append(movs, mov)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return apoyo, movs, nil
}

type movimientoSalida struct {
	municipioID   string
	programaID    string
	inventarioID  string
	tipoRecurso   string
	cantidad      int
	stockAnterior int
	stockNuevo    int
	responsable   string
	fecha         time.Time
	apoyoID       string
	now           time.Time
}

func crearMovimientoSalida(
	ctx context.Context,
	movRepo repository.MovimientoRepository,
	counterRepo repository.CounterRepository,
	s movimientoSalida,
) (*entity.Movimiento, error) {
	seq, err := counterRepo.Next(ctx, folio.Bucket(folio.PrefijoMovimiento, s.now))
	if err != nil {
		return nil, err
	}
	apoyoID := s.apoyoID
	mov := &entity.Movimiento{
		ID:            uuid.New().String(),
		MunicipioID:   s.municipioID,
		ProgramaID:    s.programaID,
		InventarioID:  s.inventarioID,
		Tipo:          entity.MovimientoSALIDA,
		TipoRecurso:   s.tipoRecurso,
		Cantidad:      s.cantidad,
		StockAnterior: s.stockAnterior,
		StockNuevo:    s.stockNuevo,
		Concepto:      "Entrega de apoyo a beneficiario",
		ResponsableID: s.responsable,
		Fecha:         s.fecha,
		ApoyoID:       &apoyoID,
		Folio:         folio.Format(folio.PrefijoMovimiento, s.now, seq),
		CreatedAt:     s.now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
