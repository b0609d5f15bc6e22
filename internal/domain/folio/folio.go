// Package folio genera los folios secuenciales legibles que se estampan en
// movimientos de inventario y apoyos. El número viene de un contador atómico
// por cubeta (año+mes); aquí solo se da formato y se derivan las cubetas.
package folio

import (
	"fmt"
	"strings"
	"time"
)

// Prefijos de folio por tipo de documento.
const (
	PrefijoMovimiento = "MOV"
	PrefijoApoyo      = "DIF"
)

// Bucket devuelve la clave de cubeta del contador para un prefijo y una fecha,
// por ejemplo "mov-202608". Cada mes arranca su propia secuencia.
func Bucket(prefijo string, t time.Time) string {
	return fmt.Sprintf("%s-%04d%02d", strings.ToLower(prefijo), t.Year(), int(t.Month()))
}

// Format arma el folio final: PREFIJO-YYYYMM-NNNN con la secuencia a 4 dígitos
// (crece a más dígitos si la secuencia rebasa 9999; nunca se trunca).
func Format(prefijo string, t time.Time, seq int64) string {
	return fmt.Sprintf("%s-%04d%02d-%04d", prefijo, t.Year(), int(t.Month()), seq)
}
