package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

// InventarioRepo implementación de InventarioRepository sobre PostgreSQL
// (usable con pool o tx). Las mutaciones de stock son sentencias únicas:
// el descuento condicional resuelve la carrera entre entregas concurrentes
// en la base, nunca en la aplicación.
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

const inventarioColumns = `id, municipio_id, programa_id, tipo, stock_actual, stock_inicial,
		unidad_medida, alerta_minima, valor_unitario, created_at, updated_at`

func scanInventario(row pgx.Row) (*entity.Inventario, error) {
	var inv entity.Inventario
	err := row.Scan(
		&inv.ID, &inv.MunicipioID, &inv.ProgramaID, &inv.Tipo,
		&inv.StockActual, &inv.StockInicial, &inv.UnidadMedida,
		&inv.AlertaMinima, &inv.ValorUnitario, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetByProgramaTipo obtiene el inventario de un programa+tipo; nil si no existe.
func (r *InventarioRepo) GetByProgramaTipo(ctx context.Context, municipioID, programaID, tipo string) (*entity.Inventario, error) {
	query := `
		SELECT ` + inventarioColumns + `
		FROM dif_inventario
		WHERE municipio_id = $1 AND programa_id = $2 AND tipo = $3`
	inv, err := scanInventario(r.q.QueryRow(ctx, query, municipioID, programaID, tipo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return inv, nil
}

// GetByID obtiene un inventario por ID dentro del municipio; nil si no existe.
func (r *InventarioRepo) GetByID(ctx context.Context, id, municipioID string) (*entity.Inventario, error) {
	query := `
		SELECT ` + inventarioColumns + `
		FROM dif_inventario
		WHERE id = $1 AND municipio_id = $2`
	inv, err := scanInventario(r.q.QueryRow(ctx, query, id, municipioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario por id: %w", err)
	}
	return inv, nil
}

// GetForUpdate obtiene el inventario y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción. Nil si no existe.
func (r *InventarioRepo) GetForUpdate(ctx context.Context, municipioID, programaID, tipo string) (*entity.Inventario, error) {
	query := `
		SELECT ` + inventarioColumns + `
		FROM dif_inventario
		WHERE municipio_id = $1 AND programa_id = $2 AND tipo = $3
		FOR UPDATE`
	inv, err := scanInventario(r.q.QueryRow(ctx, query, municipioID, programaID, tipo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario for update: %w", err)
	}
	return inv, nil
}

// Create inserta el registro de inventario. Un choque con el índice único
// (municipio, programa, tipo) significa que otra entrada concurrente ganó la
// creación; se reporta como conflicto reintentable.
func (r *InventarioRepo) Create(ctx context.Context, inv *entity.Inventario) error {
	query := `
		INSERT INTO dif_inventario (id, municipio_id, programa_id, tipo, stock_actual, stock_inicial,
			unidad_medida, alerta_minima, valor_unitario, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.MunicipioID, inv.ProgramaID, inv.Tipo,
		inv.StockActual, inv.StockInicial, inv.UnidadMedida,
		inv.AlertaMinima, inv.ValorUnitario, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflictoConcurrencia
		}
		return fmt.Errorf("insert inventario: %w", err)
	}
	return nil
}

// IncrementarStock suma delta sin condición y devuelve el stock resultante.
func (r *InventarioRepo) IncrementarStock(ctx context.Context, id string, delta int) (int, error) {
	query := `
		UPDATE dif_inventario
		SET stock_actual = stock_actual + $2, updated_at = now()
		WHERE id = $1
		RETURNING stock_actual`
	var stock int
	if err := r.q.QueryRow(ctx, query, id, delta).Scan(&stock); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("incrementar stock: %w", err)
	}
	return stock, nil
}

// DescontarStockSiAlcanza resta cantidad solo si el stock alcanza, en una
// sola sentencia condicional. Cero filas afectadas distingue entre registro
// inexistente y stock insuficiente con una lectura extra; en el segundo caso
// el error lleva el stock vigente al momento del rechazo, no un valor previo.
func (r *InventarioRepo) DescontarStockSiAlcanza(ctx context.Context, id string, cantidad int) (int, error) {
	query := `
		UPDATE dif_inventario
		SET stock_actual = stock_actual - $2, updated_at = now()
		WHERE id = $1 AND stock_actual >= $2
		RETURNING stock_actual`
	var stock int
	err := r.q.QueryRow(ctx, query, id, cantidad).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("descontar stock: %w", err)
	}
	var disponible int
	err = r.q.QueryRow(ctx, `SELECT stock_actual FROM dif_inventario WHERE id = $1`, id).Scan(&disponible)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("verificar inventario: %w", err)
	}
	return 0, &domain.StockInsuficienteError{Disponible: disponible, Solicitado: cantidad}
}

// ActualizarValorUnitario refresca el valor unitario del inventario.
func (r *InventarioRepo) ActualizarValorUnitario(ctx context.Context, id string, valor decimal.Decimal) error {
	query := `UPDATE dif_inventario SET valor_unitario = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, valor); err != nil {
		return fmt.Errorf("actualizar valor unitario: %w", err)
	}
	return nil
}

// List inventarios del municipio, filtro opcional por programa, ordenados por tipo.
func (r *InventarioRepo) List(ctx context.Context, municipioID, programaID string) ([]*entity.Inventario, error) {
	query := `
		SELECT ` + inventarioColumns + `
		FROM dif_inventario
		WHERE municipio_id = $1`
	args := []any{municipioID}
	if programaID != "" {
		query += ` AND programa_id = $2`
		args = append(args, programaID)
	}
	query += ` ORDER BY tipo ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventario: %w", err)
	}
	defer rows.Close()

	var list []*entity.Inventario
	for rows.Next() {
		inv, err := scanInventario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
