package repository

import "context"

// CounterRepository asigna números de secuencia monotónicos por cubeta
// (ej. "mov-202608"). Next debe ser un incremento atómico en el storage:
// dos llamadas concurrentes sobre la misma cubeta nunca reciben el mismo
// valor. Cuando se usa dentro de una transacción, el incremento participa
// de ella (un apoyo abortado también revierte su secuencia).
type CounterRepository interface {
	Next(ctx context.Context, bucket string) (int64, error)
}
