package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/accounts-api/internal/application/auth"
	"github.com/jhoicas/accounts-api/internal/application/usecase"
	"github.com/jhoicas/accounts-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC *auth.AuthUseCase
	UserUC *usecase.UserUseCase
	JWT    config.JWTConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Sesiones (público)
	sessionHandler := NewSessionHandler(deps.AuthUC, deps.JWT)
	api.Post("/sessions", sessionHandler.Create)

	userHandler := NewUserHandler(deps.UserUC, deps.AuthUC)

	// Users: registro, activación y geo lookup son públicos
	api.Post("/users", userHandler.Create)
	api.Post("/users/activate_account/:ctoken", userHandler.ActivateAccount)
	api.Get("/users/geo_location", userHandler.GeoLocation)

	// Rutas protegidas (requieren X-USER-EMAIL + X-USER-TOKEN válidos)
	protected := api.Group("/", TokenAuth(deps.AuthUC))
	protected.Get("/users", userHandler.Index)
	protected.Get("/users/:id", userHandler.Show)
	protected.Put("/users/:id", userHandler.Update)
	protected.Delete("/users/:id", userHandler.Destroy)
	protected.Post("/users/:id/signout", userHandler.SignOut)
	protected.Post("/users/:id/approve", userHandler.Approve)
	protected.Post("/users/:id/unapprove", userHandler.Unapprove)
}
