package entity

import "time"

// Roles de operador reconocidos por el RBAC.
const (
	RolAdmin    = "admin"
	RolOperador = "operador"
	RolConsulta = "consulta"
)

// Usuario operador autenticado del sistema, siempre ligado a un municipio.
type Usuario struct {
	ID           string
	MunicipioID  string
	Email        string
	PasswordHash string
	Nombre       string
	Rol          string // admin | operador | consulta
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
