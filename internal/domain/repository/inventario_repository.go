package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/municipio-digital/dif-api/internal/domain/entity"
)

// InventarioRepository define el puerto de persistencia para el inventario DIF.
// Los métodos de mutación son primitivas atómicas: el descuento condicional es
// la única vía permitida para restar stock (leer-comparar-escribir en la
// aplicación pierde la carrera entre entregas concurrentes).
type InventarioRepository interface {
	// GetByProgramaTipo devuelve el inventario o nil si no existe.
	GetByProgramaTipo(ctx context.Context, municipioID, programaID, tipo string) (*entity.Inventario, error)
	// GetByID devuelve el inventario o nil si no existe en el municipio.
	GetByID(ctx context.Context, id, municipioID string) (*entity.Inventario, error)
	// GetForUpdate bloquea la fila dentro de la transacción actual; nil si no existe.
	GetForUpdate(ctx context.Context, municipioID, programaID, tipo string) (*entity.Inventario, error)
	Create(ctx context.Context, inv *entity.Inventario) error
	// IncrementarStock suma delta sin condición y devuelve el stock resultante.
	IncrementarStock(ctx context.Context, id string, delta int) (int, error)
	// DescontarStockSiAlcanza resta cantidad solo si stock_actual >= cantidad,
	// en una sola sentencia atómica. Devuelve el stock resultante; si no
	// alcanza devuelve *domain.StockInsuficienteError con el stock vigente al
	// momento del rechazo (Tipo lo completa el caso de uso), y ErrNotFound si
	// el registro no existe. En ambos casos sin mutar nada.
	DescontarStockSiAlcanza(ctx context.Context, id string, cantidad int) (int, error)
	// ActualizarValorUnitario refresca el valor unitario capturado en la última entrada.
	ActualizarValorUnitario(ctx context.Context, id string, valor decimal.Decimal) error
	List(ctx context.Context, municipioID, programaID string) ([]*entity.Inventario, error)
}
