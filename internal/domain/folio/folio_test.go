package folio_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/municipio-digital/dif-api/internal/domain/folio"
)

func TestBucket_UnaCubetaPorMes(t *testing.T) {
	feb := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	mar := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "mov-202602", folio.Bucket(folio.PrefijoMovimiento, feb))
	assert.Equal(t, "dif-202602", folio.Bucket(folio.PrefijoApoyo, feb))
	assert.Equal(t, "dif-202603", folio.Bucket(folio.PrefijoApoyo, mar))
	assert.NotEqual(t, folio.Bucket(folio.PrefijoMovimiento, feb), folio.Bucket(folio.PrefijoMovimiento, mar),
		"cada mes arranca su propia secuencia")
	assert.NotEqual(t, folio.Bucket(folio.PrefijoMovimiento, feb), folio.Bucket(folio.PrefijoApoyo, feb),
		"movimientos y apoyos llevan contadores separados")
}

func TestFormat_SecuenciaACuatroDigitos(t *testing.T) {
	feb := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "MOV-202602-0001", folio.Format(folio.PrefijoMovimiento, feb, 1))
	assert.Equal(t, "DIF-202602-0042", folio.Format(folio.PrefijoApoyo, feb, 42))
	assert.Equal(t, "MOV-202602-9999", folio.Format(folio.PrefijoMovimiento, feb, 9999))
}

func TestFormat_SecuenciaLargaNoSeTrunca(t *testing.T) {
	feb := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "MOV-202602-12345", folio.Format(folio.PrefijoMovimiento, feb, 12345))
}
