// @title        Zervidtronics Storefront BFF
// @version      1.0
// @description  Sesiones del marketplace de componentes electrónicos sobre la API REST.
// @BasePath     /
// @securityDefinitions.apikey  Session
// @in                          header
// @name                        Cookie
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
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/zervidtronics-storefront/docs"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/state"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/apiclient"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/marketplace"
	infrapdf "github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/pdf"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/zervidtronics-storefront/internal/interfaces/http"
	"github.com/jhoicas/zervidtronics-storefront/pkg/config"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	provider, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de sesiones")
	}
	defer provider.Close()

	apiOpts := apiclient.Options{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}
	registry := httpRouter.NewRegistry(func(id string) *state.Session {
		return marketplace.NewSession(apiOpts, provider.Scope(id), cfg.Session.FlashTTL, log.WithStr("session", id))
	}, cfg.Session.IdleTimeout, log)
	if err := registry.Start("@every 1m"); err != nil {
		log.Fatal().Err(err).Msg("barrido de sesiones")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.API.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // imágenes de componentes
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Zervidtronics Storefront",
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "sessions": registry.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Registry: registry,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
			MaxAge: cfg.Session.IdleTimeout,
		},
		PDF: infrapdf.NewBudgetGenerator(),
		Log: log,
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
	registry.Stop()

	log.Info().Msg("aplicación detenida")
}
