package entity

import "time"

// Programa es un programa social DIF de un municipio (despensas, apoyo
// alimentario, aparatos funcionales, etc.).
type Programa struct {
	ID            string
	MunicipioID   string
	Nombre        string
	Descripcion   string
	Observaciones string
	Activo        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
