package entity

import "time"

// Beneficiario persona registrada en los programas DIF de un municipio.
// El CURP es único por municipio.
type Beneficiario struct {
	ID              string
	MunicipioID     string
	Nombre          string
	ApellidoPaterno string
	ApellidoMaterno string
	CURP            string
	FechaNacimiento *time.Time
	Telefono        string
	Email           string
	Domicilio       string
	Localidad       string
	GrupoVulnerable []string // adultos mayores, discapacidad, madres solteras...
	Observaciones   string
	Activo          bool
	FechaRegistro   time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
