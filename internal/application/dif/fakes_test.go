package dif_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/municipio-digital/dif-api/internal/application/dif"
	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria. Un solo almacén respalda todos los repositorios; el
// txRunner de prueba toma un snapshot al entrar y lo restaura si fn falla,
// replicando el contrato todo-o-nada de la transacción real.
//
// Dos candados: txMu serializa transacciones completas (como lo hace la base
// con el descuento condicional) y mu protege los datos en cada método, de modo
// que los casos de uso pueden ejercitarse desde varias goroutines.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	txMu          sync.Mutex
	mu            sync.Mutex
	inventarios   map[string]*entity.Inventario
	movimientos   []*entity.Movimiento
	apoyos        []*entity.Apoyo
	counters      map[string]int64
	beneficiarios map[string]*entity.Beneficiario
	programas     map[string]*entity.Programa
}

func newMemStore() *memStore {
	return &memStore{
		inventarios:   map[string]*entity.Inventario{},
		counters:      map[string]int64{},
		beneficiarios: map[string]*entity.Beneficiario{},
		programas:     map[string]*entity.Programa{},
	}
}

type storeSnapshot struct {
	inventarios map[string]*entity.Inventario
	movimientos []*entity.Movimiento
	apoyos      []*entity.Apoyo
	counters    map[string]int64
}

func (s *memStore) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := storeSnapshot{
		inventarios: make(map[string]*entity.Inventario, len(s.inventarios)),
		movimientos: append([]*entity.Movimiento(nil), s.movimientos...),
		apoyos:      append([]*entity.Apoyo(nil), s.apoyos...),
		counters:    make(map[string]int64, len(s.counters)),
	}
	for id, inv := range s.inventarios {
		cp := *inv
		snap.inventarios[id] = &cp
	}
	for b, n := range s.counters {
		snap.counters[b] = n
	}
	return snap
}

func (s *memStore) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventarios = snap.inventarios
	s.movimientos = snap.movimientos
	s.apoyos = snap.apoyos
	s.counters = snap.counters
}

// fakeTxRunner serializa las transacciones con txMu y revierte el almacén al
// snapshot de entrada cuando fn devuelve error.
type fakeTxRunner struct {
	store *memStore
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventarioRepository,
	movRepo repository.MovimientoRepository,
	apoyoRepo repository.ApoyoRepository,
	counterRepo repository.CounterRepository,
) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	snap := r.store.snapshot()
	err := fn(
		&memInventarioRepo{store: r.store},
		&memMovimientoRepo{store: r.store},
		&memApoyoRepo{store: r.store},
		&memCounterRepo{store: r.store},
	)
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

var _ dif.TxRunner = (*fakeTxRunner)(nil)

// ── Inventario ────────────────────────────────────────────────────────────────

type memInventarioRepo struct{ store *memStore }

func (r *memInventarioRepo) GetByProgramaTipo(_ context.Context, municipioID, programaID, tipo string) (*entity.Inventario, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, inv := range r.store.inventarios {
		if inv.MunicipioID == municipioID && inv.ProgramaID == programaID && inv.Tipo == tipo {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memInventarioRepo) GetByID(_ context.Context, id, municipioID string) (*entity.Inventario, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	inv, ok := r.store.inventarios[id]
	if !ok || inv.MunicipioID != municipioID {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInventarioRepo) GetForUpdate(ctx context.Context, municipioID, programaID, tipo string) (*entity.Inventario, error) {
	return r.GetByProgramaTipo(ctx, municipioID, programaID, tipo)
}

func (r *memInventarioRepo) Create(_ context.Context, inv *entity.Inventario) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *inv
	r.store.inventarios[inv.ID] = &cp
	return nil
}

func (r *memInventarioRepo) IncrementarStock(_ context.Context, id string, delta int) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	inv, ok := r.store.inventarios[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	inv.StockActual += delta
	return inv.StockActual, nil
}

func (r *memInventarioRepo) DescontarStockSiAlcanza(_ context.Context, id string, cantidad int) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	inv, ok := r.store.inventarios[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if inv.StockActual < cantidad {
		return 0, &domain.StockInsuficienteError{Disponible: inv.StockActual, Solicitado: cantidad}
	}
	inv.StockActual -= cantidad
	return inv.StockActual, nil
}

func (r *memInventarioRepo) ActualizarValorUnitario(_ context.Context, id string, valor decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	inv, ok := r.store.inventarios[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.ValorUnitario = &valor
	return nil
}

func (r *memInventarioRepo) List(_ context.Context, municipioID, programaID string) ([]*entity.Inventario, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Inventario
	for _, inv := range r.store.inventarios {
		if inv.MunicipioID != municipioID {
			continue
		}
		if programaID != "" && inv.ProgramaID != programaID {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tipo < out[j].Tipo })
	return out, nil
}

var _ repository.InventarioRepository = (*memInventarioRepo)(nil)

// ── Movimientos ───────────────────────────────────────────────────────────────

type memMovimientoRepo struct{ store *memStore }

func (r *memMovimientoRepo) Create(_ context.Context, mov *entity.Movimiento) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movimientos = append(r.store.movimientos, mov)
	return nil
}

func (r *memMovimientoRepo) List(_ context.Context, municipioID string, filtro repository.MovimientoFiltro, limite int) ([]*entity.Movimiento, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Movimiento
	for _, m := range r.store.movimientos {
		if m.MunicipioID != municipioID {
			continue
		}
		if filtro.ProgramaID != "" && m.ProgramaID != filtro.ProgramaID {
			continue
		}
		if filtro.Tipo != "" && m.Tipo != filtro.Tipo {
			continue
		}
		if filtro.Desde != nil && m.Fecha.Before(*filtro.Desde) {
			continue
		}
		if filtro.Hasta != nil && m.Fecha.After(*filtro.Hasta) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

func (r *memMovimientoRepo) ListByInventario(_ context.Context, inventarioID string, limite int) ([]*entity.Movimiento, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Movimiento
	for _, m := range r.store.movimientos {
		if m.InventarioID == inventarioID {
			out = append(out, m)
		}
	}
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

var _ repository.MovimientoRepository = (*memMovimientoRepo)(nil)

// ── Apoyos ────────────────────────────────────────────────────────────────────

type memApoyoRepo struct{ store *memStore }

func (r *memApoyoRepo) Create(_ context.Context, apoyo *entity.Apoyo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.apoyos = append(r.store.apoyos, apoyo)
	return nil
}

func (r *memApoyoRepo) GetByID(_ context.Context, id, municipioID string) (*entity.Apoyo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.apoyos {
		if a.ID == id && a.MunicipioID == municipioID {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memApoyoRepo) List(_ context.Context, municipioID string, filtro repository.ApoyoFiltro) ([]*entity.Apoyo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Apoyo
	for _, a := range r.store.apoyos {
		if a.MunicipioID != municipioID {
			continue
		}
		if filtro.BeneficiarioID != "" && a.BeneficiarioID != filtro.BeneficiarioID {
			continue
		}
		if filtro.ProgramaID != "" && a.ProgramaID != filtro.ProgramaID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *memApoyoRepo) ListByBeneficiario(_ context.Context, beneficiarioID string, limit, offset int) ([]*entity.Apoyo, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Apoyo
	for _, a := range r.store.apoyos {
		if a.BeneficiarioID == beneficiarioID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memApoyoRepo) CountByBeneficiario(_ context.Context, beneficiarioID, municipioID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, a := range r.store.apoyos {
		if a.BeneficiarioID == beneficiarioID && a.MunicipioID == municipioID {
			n++
		}
	}
	return n, nil
}

func (r *memApoyoRepo) ProgramasDeBeneficiario(_ context.Context, beneficiarioID string) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, a := range r.store.apoyos {
		if a.BeneficiarioID == beneficiarioID && !seen[a.ProgramaID] {
			seen[a.ProgramaID] = true
			out = append(out, a.ProgramaID)
		}
	}
	return out, nil
}

var _ repository.ApoyoRepository = (*memApoyoRepo)(nil)

// ── Counters ──────────────────────────────────────────────────────────────────

type memCounterRepo struct{ store *memStore }

func (r *memCounterRepo) Next(_ context.Context, bucket string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.counters[bucket]++
	return r.store.counters[bucket], nil
}

var _ repository.CounterRepository = (*memCounterRepo)(nil)

// ── Beneficiarios ─────────────────────────────────────────────────────────────

type memBeneficiarioRepo struct{ store *memStore }

func (r *memBeneficiarioRepo) Create(_ context.Context, b *entity.Beneficiario) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.beneficiarios[b.ID] = b
	return nil
}

func (r *memBeneficiarioRepo) GetByID(_ context.Context, id, municipioID string) (*entity.Beneficiario, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.beneficiarios[id]
	if !ok || b.MunicipioID != municipioID {
		return nil, nil
	}
	return b, nil
}

func (r *memBeneficiarioRepo) GetByCURP(_ context.Context, curp, municipioID string) (*entity.Beneficiario, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.beneficiarios {
		if b.CURP == curp && b.MunicipioID == municipioID && b.Activo {
			return b, nil
		}
	}
	return nil, nil
}

func (r *memBeneficiarioRepo) Update(_ context.Context, b *entity.Beneficiario) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.beneficiarios[b.ID] = b
	return nil
}

func (r *memBeneficiarioRepo) List(_ context.Context, municipioID, curp string, limit, offset int) ([]*entity.Beneficiario, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Beneficiario
	for _, b := range r.store.beneficiarios {
		if b.MunicipioID != municipioID || !b.Activo {
			continue
		}
		if curp != "" && !strings.HasPrefix(b.CURP, curp) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CURP < out[j].CURP })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memBeneficiarioRepo) Count(_ context.Context, municipioID, curp string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := 0
	for _, b := range r.store.beneficiarios {
		if b.MunicipioID == municipioID && b.Activo && (curp == "" || strings.HasPrefix(b.CURP, curp)) {
			n++
		}
	}
	return n, nil
}

var _ repository.BeneficiarioRepository = (*memBeneficiarioRepo)(nil)

// ── Programas ─────────────────────────────────────────────────────────────────

type memProgramaRepo struct{ store *memStore }

func (r *memProgramaRepo) Create(_ context.Context, p *entity.Programa) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.programas[p.ID] = p
	return nil
}

func (r *memProgramaRepo) GetByID(_ context.Context, id, municipioID string) (*entity.Programa, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.programas[id]
	if !ok || p.MunicipioID != municipioID {
		return nil, nil
	}
	return p, nil
}

func (r *memProgramaRepo) List(_ context.Context, municipioID string) ([]*entity.Programa, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Programa
	for _, p := range r.store.programas {
		if p.MunicipioID == municipioID && p.Activo {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *memProgramaRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Programa, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Programa
	for _, id := range ids {
		if p, ok := r.store.programas[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

var _ repository.ProgramaRepository = (*memProgramaRepo)(nil)
