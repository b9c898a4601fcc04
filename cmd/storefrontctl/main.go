// storefrontctl cliente de terminal del marketplace. Las credenciales se guardan
// en el almacenamiento configurado (STORAGE_DRIVER) bajo el namespace "default".
//
// Uso:
//
//	storefrontctl login --email ana@zt.co --password ******
//	storefrontctl components list --search esp32 --sort price_asc
//	storefrontctl stores list --lat 6.2442 --lon -75.5812 --max-distance 5
//	storefrontctl wishlist budget --pdf presupuesto.pdf
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/state"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/apiclient"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/marketplace"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/storage"
	"github.com/jhoicas/zervidtronics-storefront/pkg/config"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

const namespace = "default"

// env dependencias resueltas en Before.
type env struct {
	cfg      *config.Config
	log      *logger.Logger
	provider ports.StorageProvider
	sess     *state.Session
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(&env{}).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", apiclient.Message(err, err.Error()))
		os.Exit(1)
	}
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:  "storefrontctl",
		Usage: "cliente de terminal del marketplace Zervidtronics",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "archivo de variables de entorno"},
			&cli.BoolFlag{Name: "json", Usage: "salida en JSON"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "logs de depuración"},
		},
		Before: e.setup,
		After:  e.close,
		Commands: []*cli.Command{
			loginCommand(e),
			logoutCommand(e),
			whoamiCommand(e),
			componentsCommand(e),
			storesCommand(e),
			reviewsCommand(e),
			wishlistCommand(e),
			inventoryCommand(e),
			alertsCommand(e),
			analyticsCommand(e),
		},
	}
}

func (e *env) setup(c *cli.Context) error {
	if err := godotenv.Load(c.String("env-file")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("leer %s: %w", c.String("env-file"), err)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := cfg.App.LogLevel
	if c.Bool("verbose") {
		level = "debug"
	} else if level == "info" {
		level = "warn"
	}
	e.cfg = cfg
	e.log = logger.New(logger.Config{Env: "development", Level: level})

	e.provider, err = storage.Open(c.Context, cfg)
	if err != nil {
		return err
	}
	e.sess = marketplace.NewSession(
		apiclient.Options{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout},
		e.provider.Scope(namespace), cfg.Session.FlashTTL, e.log,
	)
	if _, err := e.sess.Auth.Restore(c.Context); err != nil {
		e.log.Warn().Err(err).Msg("no se pudo restaurar la sesión")
	}
	return nil
}

func (e *env) close(*cli.Context) error {
	if e.sess != nil {
		e.sess.Close()
	}
	if e.provider != nil {
		return e.provider.Close()
	}
	return nil
}

// requireRole falla si no hay sesión o el rol no coincide.
func (e *env) requireRole(roles ...string) error {
	if !e.sess.Auth.IsAuthenticated() {
		return cli.Exit("Inicie sesión para continuar (storefrontctl login)", 2)
	}
	if len(roles) > 0 && !e.sess.Auth.HasRole(roles...) {
		return cli.Exit("No tiene permisos para esta sección", 3)
	}
	return nil
}
