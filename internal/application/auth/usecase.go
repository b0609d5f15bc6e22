package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/municipio-digital/dif-api/internal/application/dto"
	"github.com/municipio-digital/dif-api/internal/domain"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
	"github.com/municipio-digital/dif-api/internal/domain/repository"
	"github.com/municipio-digital/dif-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro y login de operadores. El token emitido carga
// municipio, usuario y rol para que el middleware resuelva la tenencia
// sin consultar la DB.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Register crea un operador: hashea el password con bcrypt y persiste.
// Email repetido en el municipio devuelve ErrEmailDuplicado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	if in.MunicipioID == "" || in.Email == "" || in.Password == "" || in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	rol := in.Rol
	if rol == "" {
		rol = entity.RolOperador
	}
	if rol != entity.RolAdmin && rol != entity.RolOperador && rol != entity.RolConsulta {
		return nil, domain.ErrEntradaInvalida
	}

	existente, err := uc.usuarioRepo.GetByEmail(ctx, in.Email, in.MunicipioID)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrEmailDuplicado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.Usuario{
		ID:           uuid.New().String(),
		MunicipioID:  in.MunicipioID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Nombre:       in.Nombre,
		Rol:          rol,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.usuarioRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return &dto.UsuarioResponse{
		ID:          u.ID,
		MunicipioID: u.MunicipioID,
		Email:       u.Email,
		Nombre:      u.Nombre,
		Rol:         u.Rol,
	}, nil
}

// Login valida credenciales y emite el JWT. Usuario inexistente, inactivo o
// password incorrecto responden el mismo error para no filtrar cuentas.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.usuarioRepo.GetByEmail(ctx, in.Email, in.MunicipioID)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.Activo {
		return nil, domain.ErrCredencialesInvalidas
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrCredencialesInvalidas
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.MunicipioID, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		Usuario: dto.UsuarioResponse{
			ID:          u.ID,
			MunicipioID: u.MunicipioID,
			Email:       u.Email,
			Nombre:      u.Nombre,
			Rol:         u.Rol,
		},
	}, nil
}
