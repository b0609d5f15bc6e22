package dif_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipio-digital/dif-api/internal/application/dif"
	"github.com/municipio-digital/dif-api/internal/application/dto"
	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
)

func newBeneficiarioUC(store *memStore) *dif.BeneficiarioUseCase {
	return dif.NewBeneficiarioUseCase(
		&memBeneficiarioRepo{store: store},
		&memApoyoRepo{store: store},
		&memProgramaRepo{store: store},
	)
}

func TestCrearBeneficiario_NormalizaCURPAMayusculas(t *testing.T) {
	store := newMemStore()
	uc := newBeneficiarioUC(store)

	b, err := uc.Crear(context.Background(), testMunicipioID, dto.CreateBeneficiarioRequest{
		Nombre:          "Juana",
		ApellidoPaterno: "Pérez",
		CURP:            "pejx850101mdfrrn09",
		GrupoVulnerable: []string{"adultos mayores"},
	})
	require.NoError(t, err)
	assert.Equal(t, "PEJX850101MDFRRN09", b.CURP)
	assert.True(t, b.Activo)
}

func TestCrearBeneficiario_CURPDuplicadaEsConflicto(t *testing.T) {
	store := newMemStore()
	_, _ = seedBase(store) // registra CURP AAAA800101MDFXXX01
	uc := newBeneficiarioUC(store)

	_, err := uc.Crear(context.Background(), testMunicipioID, dto.CreateBeneficiarioRequest{
		Nombre:          "Otra",
		ApellidoPaterno: "Persona",
		CURP:            "aaaa800101mdfxxx01",
		GrupoVulnerable: []string{"discapacidad"},
	})
	assert.ErrorIs(t, err, domain.ErrCurpDuplicada)
}

func TestCrearBeneficiario_FechaNacimientoInvalida(t *testing.T) {
	store := newMemStore()
	uc := newBeneficiarioUC(store)

	_, err := uc.Crear(context.Background(), testMunicipioID, dto.CreateBeneficiarioRequest{
		Nombre:          "Juana",
		ApellidoPaterno: "Pérez",
		CURP:            "PEJX850101MDFRRN09",
		FechaNacimiento: "01/01/1985",
		GrupoVulnerable: []string{"discapacidad"},
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestGetByCURP_ArmaElExpedienteCompleto(t *testing.T) {
	store := newMemStore()
	programaID, beneficiarioID := seedBase(store)
	otroProg := "prog-cobijas"
	store.programas[otroProg] = &entity.Programa{ID: otroProg, MunicipioID: testMunicipioID, Nombre: "Cobijas", Activo: true}
	ayer := time.Now().Add(-24 * time.Hour)
	hoy := time.Now()
	store.apoyos = []*entity.Apoyo{
		{ID: "a1", MunicipioID: testMunicipioID, BeneficiarioID: beneficiarioID, ProgramaID: programaID, Fecha: ayer},
		{ID: "a2", MunicipioID: testMunicipioID, BeneficiarioID: beneficiarioID, ProgramaID: otroProg, Fecha: hoy},
	}
	uc := newBeneficiarioUC(store)

	h, err := uc.GetByCURP(context.Background(), "aaaa800101mdfxxx01", testMunicipioID, dto.PageRequest{})
	require.NoError(t, err)

	assert.Equal(t, beneficiarioID, h.Beneficiario.ID)
	assert.Equal(t, 2, h.TotalApoyos)
	assert.Len(t, h.Programas, 2, "todos los programas donde ha recibido apoyo")
	require.NotNil(t, h.UltimoApoyo)
	assert.Equal(t, "a2", h.UltimoApoyo.ID, "el apoyo más reciente")
}

func TestGetByCURP_Inexistente(t *testing.T) {
	store := newMemStore()
	uc := newBeneficiarioUC(store)

	_, err := uc.GetByCURP(context.Background(), "XXXX000000XXXXXX00", testMunicipioID, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActualizarBeneficiario_CURPNuevaSeRevalida(t *testing.T) {
	store := newMemStore()
	_, beneficiarioID := seedBase(store)
	store.beneficiarios["ben-002"] = &entity.Beneficiario{
		ID: "ben-002", MunicipioID: testMunicipioID, CURP: "BBBB900202HDFXXX02", Activo: true,
	}
	uc := newBeneficiarioUC(store)

	curpOcupada := "bbbb900202hdfxxx02"
	_, err := uc.Actualizar(context.Background(), beneficiarioID, testMunicipioID, dto.UpdateBeneficiarioRequest{
		CURP: &curpOcupada,
	})
	assert.ErrorIs(t, err, domain.ErrCurpDuplicada)

	telefono := "555-0100"
	b, err := uc.Actualizar(context.Background(), beneficiarioID, testMunicipioID, dto.UpdateBeneficiarioRequest{
		Telefono: &telefono,
	})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", b.Telefono)
	assert.Equal(t, "AAAA800101MDFXXX01", b.CURP, "el CURP original se conserva")
}
