package dto

// RegisterRequest alta de operador en un municipio.
type RegisterRequest struct {
	MunicipioID string `json:"municipio_id"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Nombre      string `json:"nombre"`
	Rol         string `json:"rol"` // admin | operador | consulta
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	MunicipioID string `json:"municipio_id"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// UsuarioResponse operador sin campos sensibles.
type UsuarioResponse struct {
	ID          string `json:"id"`
	MunicipioID string `json:"municipio_id"`
	Email       string `json:"email"`
	Nombre      string `json:"nombre"`
	Rol         string `json:"rol"`
}

// LoginResponse token emitido tras autenticación.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
