package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrEntradaInvalida        = errors.New("entrada inválida")
	ErrCurpDuplicada          = errors.New("el beneficiario ya está registrado en este municipio")
	ErrStockInsuficiente      = errors.New("stock insuficiente")
	ErrSinInventario          = errors.New("no hay inventario registrado")
	ErrEmailDuplicado         = errors.New("el email ya está registrado")
	ErrCredencialesInvalidas  = errors.New("credenciales inválidas")
	ErrConflictoConcurrencia  = errors.New("conflicto de concurrencia, reintente la operación")
)

// StockInsuficienteError detalla un descuento rechazado: cuánto hay contra cuánto se pidió.
// errors.Is(err, ErrStockInsuficiente) sigue funcionando vía Unwrap.
type StockInsuficienteError struct {
	Tipo       string
	Disponible int
	Solicitado int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s. Disponible: %d, Solicitado: %d",
		e.Tipo, e.Disponible, e.Solicitado)
}

func (e *StockInsuficienteError) Unwrap() error { return ErrStockInsuficiente }

// SinInventarioError indica que no existe registro de inventario para un programa+tipo.
type SinInventarioError struct {
	Tipo string
}

func (e *SinInventarioError) Error() string {
	return fmt.Sprintf("no hay inventario registrado para %s en este programa", e.Tipo)
}

func (e *SinInventarioError) Unwrap() error { return ErrSinInventario }
