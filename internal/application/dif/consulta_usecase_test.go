package dif_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipio-digital/dif-api/internal/application/dif"
	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
)

func newConsultaUC(store *memStore) *dif.ConsultaUseCase {
	return dif.NewConsultaUseCase(
		&memInventarioRepo{store: store},
		&memMovimientoRepo{store: store},
		&memApoyoRepo{store: store},
		&memBeneficiarioRepo{store: store},
	)
}

func TestGetMovimientos_TipoInvalidoEsRechazado(t *testing.T) {
	store := newMemStore()
	uc := newConsultaUC(store)

	_, err := uc.GetMovimientos(context.Background(), testMunicipioID, repository.MovimientoFiltro{Tipo: "TRANSFERENCIA"})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestGetMovimientos_FiltraPorTipoYOrdenaDescendente(t *testing.T) {
	store := newMemStore()
	ayer := time.Now().Add(-24 * time.Hour)
	hoy := time.Now()
	store.movimientos = []*entity.Movimiento{
		{ID: "m1", MunicipioID: testMunicipioID, Tipo: entity.MovimientoENTRADA, Fecha: ayer},
		{ID: "m2", MunicipioID: testMunicipioID, Tipo: entity.MovimientoSALIDA, Fecha: hoy},
		{ID: "m3", MunicipioID: testMunicipioID, Tipo: entity.MovimientoENTRADA, Fecha: hoy},
		{ID: "m4", MunicipioID: "otro-municipio", Tipo: entity.MovimientoENTRADA, Fecha: hoy},
	}
	uc := newConsultaUC(store)

	out, err := uc.GetMovimientos(context.Background(), testMunicipioID, repository.MovimientoFiltro{Tipo: entity.MovimientoENTRADA})
	require.NoError(t, err)
	require.Len(t, out, 2, "solo ENTRADA del municipio consultado")
	assert.Equal(t, "m3", out[0].ID, "el más reciente primero")
	assert.Equal(t, "m1", out[1].ID)
}

func TestFindApoyos_CURPInexistenteDevuelveListaVacia(t *testing.T) {
	store := newMemStore()
	uc := newConsultaUC(store)

	out, err := uc.FindApoyos(context.Background(), testMunicipioID, "XXXX000000XXXXXX00", repository.ApoyoFiltro{})
	require.NoError(t, err, "CURP sin registrar no es un error")
	assert.Empty(t, out)
}

func TestFindApoyos_ResuelveCURPABeneficiario(t *testing.T) {
	store := newMemStore()
	_, beneficiarioID := seedBase(store)
	store.apoyos = []*entity.Apoyo{
		{ID: "a1", MunicipioID: testMunicipioID, BeneficiarioID: beneficiarioID},
		{ID: "a2", MunicipioID: testMunicipioID, BeneficiarioID: "ben-otro"},
	}
	uc := newConsultaUC(store)

	out, err := uc.FindApoyos(context.Background(), testMunicipioID, "AAAA800101MDFXXX01", repository.ApoyoFiltro{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a1", out[0].ID)
}

func TestFindApoyoByID_IncluyeTotalDelBeneficiario(t *testing.T) {
	store := newMemStore()
	_, beneficiarioID := seedBase(store)
	store.apoyos = []*entity.Apoyo{
		{ID: "a1", MunicipioID: testMunicipioID, BeneficiarioID: beneficiarioID},
		{ID: "a2", MunicipioID: testMunicipioID, BeneficiarioID: beneficiarioID},
	}
	uc := newConsultaUC(store)

	out, err := uc.FindApoyoByID(context.Background(), "a1", testMunicipioID)
	require.NoError(t, err)
	assert.Equal(t, "a1", out.Apoyo.ID)
	assert.Equal(t, 2, out.TotalApoyos)
}

func TestFindApoyoByID_Inexistente(t *testing.T) {
	store := newMemStore()
	uc := newConsultaUC(store)

	_, err := uc.FindApoyoByID(context.Background(), "a-fantasma", testMunicipioID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
