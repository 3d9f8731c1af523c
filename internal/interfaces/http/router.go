package http

import (
	"github.com/gofiber/fiber/v2"

	apprebalance "github.com/jhoicas/ist-rebalancer/internal/application/rebalance"
	"github.com/jhoicas/ist-rebalancer/pkg/logger"
)

// Roles con acceso a las corridas cuando la API está protegida.
var rebalanceRoles = []string{"admin", "planner"}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RebalanceUC *apprebalance.UseCase
	Log         *logger.Logger
	AppName     string
	JWTSecret   string // vacío = API sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret), RequireRole(rebalanceRoles...))
	}

	rebalanceHandler := NewRebalanceHandler(deps.RebalanceUC, deps.Log)
	api.Post("/rebalance/:variant", rebalanceHandler.Run)
	api.Post("/assortment/allocate", rebalanceHandler.Allocate)
}
