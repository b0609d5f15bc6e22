package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/municipio-digital/dif-api/internal/application/auth"
	"github.com/municipio-digital/dif-api/internal/application/dif"
	"github.com/municipio-digital/dif-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EntradaUC      *dif.RegistrarEntradaUseCase
	ApoyoUC        *dif.CrearApoyoUseCase
	AjusteUC       *dif.RegistrarAjusteUseCase
	ConsultaUC     *dif.ConsultaUseCase
	BeneficiarioUC *dif.BeneficiarioUseCase
	ProgramaUC     *dif.ProgramaUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/dif", AuthMiddleware(deps.JWTSecret))

	// Las mutaciones requieren rol operativo; las lecturas aceptan cualquier rol.
	escritura := RequireRole(entity.RolAdmin, entity.RolOperador)

	difHandler := NewDIFHandler(deps.EntradaUC, deps.ApoyoUC, deps.AjusteUC, deps.ConsultaUC)

	// Inventario
	inventario := protected.Group("/inventario")
	inventario.Get("/", difHandler.GetInventario)
	inventario.Post("/entradas", escritura, difHandler.RegistrarEntrada)
	inventario.Post("/ajustes", escritura, difHandler.RegistrarAjuste)
	inventario.Get("/:id/movimientos", difHandler.GetMovimientosDeInventario)

	// Movimientos (libro append-only, solo lectura vía API)
	protected.Get("/movimientos", difHandler.GetMovimientos)

	// Apoyos
	apoyos := protected.Group("/apoyos")
	apoyos.Post("/", escritura, difHandler.CrearApoyo)
	apoyos.Get("/", difHandler.GetApoyos)
	apoyos.Get("/:id", difHandler.GetApoyoByID)

	// Beneficiarios
	beneficiarios := protected.Group("/beneficiarios")
	beneficiarioHandler := NewBeneficiarioHandler(deps.BeneficiarioUC)
	beneficiarios.Post("/", escritura, beneficiarioHandler.Create)
	beneficiarios.Get("/", beneficiarioHandler.List)
	beneficiarios.Get("/curp/:curp", beneficiarioHandler.GetByCURP)
	beneficiarios.Get("/:id", beneficiarioHandler.GetByID)
	beneficiarios.Put("/:id", escritura, beneficiarioHandler.Update)

	// Programas
	programas := protected.Group("/programas")
	programaHandler := NewProgramaHandler(deps.ProgramaUC)
	programas.Post("/", escritura, programaHandler.Create)
	programas.Get("/", programaHandler.List)
	programas.Get("/:id", programaHandler.GetByID)
}
