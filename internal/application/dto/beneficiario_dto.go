package dto

// CreateBeneficiarioRequest body para POST /api/dif/beneficiarios.
type CreateBeneficiarioRequest struct {
	Nombre          string   `json:"nombre"`
	ApellidoPaterno string   `json:"apellido_paterno"`
	ApellidoMaterno string   `json:"apellido_materno,omitempty"`
	CURP            string   `json:"curp"`
	FechaNacimiento string   `json:"fecha_nacimiento,omitempty"` // YYYY-MM-DD
	Telefono        string   `json:"telefono,omitempty"`
	Email           string   `json:"email,omitempty"`
	Domicilio       string   `json:"domicilio,omitempty"`
	Localidad       string   `json:"localidad,omitempty"`
	GrupoVulnerable []string `json:"grupo_vulnerable"`
	Observaciones   string   `json:"observaciones,omitempty"`
}

// UpdateBeneficiarioRequest campos actualizables; punteros para distinguir
// "no enviado" de "vaciar".
type UpdateBeneficiarioRequest struct {
	Nombre          *string   `json:"nombre,omitempty"`
	ApellidoPaterno *string   `json:"apellido_paterno,omitempty"`
	ApellidoMaterno *string   `json:"apellido_materno,omitempty"`
	CURP            *string   `json:"curp,omitempty"`
	Telefono        *string   `json:"telefono,omitempty"`
	Email           *string   `json:"email,omitempty"`
	Domicilio       *string   `json:"domicilio,omitempty"`
	Localidad       *string   `json:"localidad,omitempty"`
	GrupoVulnerable *[]string `json:"grupo_vulnerable,omitempty"`
	Observaciones   *string   `json:"observaciones,omitempty"`
	Activo          *bool     `json:"activo,omitempty"`
}

// BeneficiarioResponse beneficiario registrado.
type BeneficiarioResponse struct {
	ID              string   `json:"id"`
	Nombre          string   `json:"nombre"`
	ApellidoPaterno string   `json:"apellido_paterno"`
	ApellidoMaterno string   `json:"apellido_materno,omitempty"`
	CURP            string   `json:"curp"`
	FechaNacimiento string   `json:"fecha_nacimiento,omitempty"`
	Telefono        string   `json:"telefono,omitempty"`
	Email           string   `json:"email,omitempty"`
	Domicilio       string   `json:"domicilio,omitempty"`
	Localidad       string   `json:"localidad,omitempty"`
	GrupoVulnerable []string `json:"grupo_vulnerable"`
	Observaciones   string   `json:"observaciones,omitempty"`
	Activo          bool     `json:"activo"`
	FechaRegistro   string   `json:"fecha_registro"`
}

// BeneficiarioListResponse página de beneficiarios.
type BeneficiarioListResponse struct {
	Data []BeneficiarioResponse `json:"data"`
	Meta PageResponse           `json:"meta"`
}

// ExpedienteResponse expediente completo de un beneficiario por CURP.
type ExpedienteResponse struct {
	Beneficiario BeneficiarioResponse `json:"beneficiario"`
	Apoyos       []ApoyoResponse      `json:"apoyos"`
	TotalApoyos  int                  `json:"total_apoyos"`
	Programas    []ProgramaResponse   `json:"programas"`
	UltimoApoyo  *ApoyoResponse       `json:"ultimo_apoyo,omitempty"`
}

// CreateProgramaRequest body para POST /api/dif/programas.
type CreateProgramaRequest struct {
	Nombre        string `json:"nombre"`
	Descripcion   string `json:"descripcion,omitempty"`
	Observaciones string `json:"observaciones,omitempty"`
}

// ProgramaResponse programa social del municipio.
type ProgramaResponse struct {
	ID            string `json:"id"`
	Nombre        string `json:"nombre"`
	Descripcion   string `json:"descripcion,omitempty"`
	Observaciones string `json:"observaciones,omitempty"`
	Activo        bool   `json:"activo"`
}
