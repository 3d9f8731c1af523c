package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/ist-rebalancer/docs"
	apprebalance "github.com/jhoicas/ist-rebalancer/internal/application/rebalance"
	engine "github.com/jhoicas/ist-rebalancer/internal/domain/rebalance"
	infrapdf "github.com/jhoicas/ist-rebalancer/internal/infrastructure/pdf"
	"github.com/jhoicas/ist-rebalancer/internal/infrastructure/tabular"
	httpRouter "github.com/jhoicas/ist-rebalancer/internal/interfaces/http"
	"github.com/jhoicas/ist-rebalancer/pkg/config"
	"github.com/jhoicas/ist-rebalancer/pkg/logger"
)

// @title                      IST Rebalancer API
// @version                    1.0
// @description                Traslados entre tiendas y reparto de surtido a partir de planillas CSV/XLSX.
// @BasePath                   /
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("default_variant", cfg.IST.DefaultVariant).
		Bool("auth", cfg.JWT.Secret != "").
		Msg("iniciando aplicación")

	rebalanceUC := apprebalance.NewUseCase(
		tabular.NewReader(),
		tabular.NewWriter(),
		infrapdf.NewMarotoPDFGenerator(),
		apprebalance.Defaults{
			Variant:              cfg.IST.DefaultVariant,
			SellThroughThreshold: cfg.IST.SellThroughThreshold,
			DaysThreshold:        cfg.IST.DaysThreshold,
			NegativeNet:          engine.NegativeNetPolicy(cfg.IST.NegativeNet),
		},
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "IST Rebalancer API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		RebalanceUC: rebalanceUC,
		Log:         log,
		AppName:     cfg.App.Name,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
