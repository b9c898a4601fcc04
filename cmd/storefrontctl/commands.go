package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/catalog"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/geo"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/pdf"
)

func loginCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "iniciar sesión",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", EnvVars: []string{"STOREFRONT_PASSWORD"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			out, err := e.sess.Auth.Login(c.Context, dto.LoginRequest{Email: c.String("email"), Password: c.String("password")})
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(out)
			}
			fmt.Fprintf(stdout, "Sesión iniciada como %s (%s)\n", out.User.Email, out.User.Role)
			return nil
		},
	}
}

func logoutCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "cerrar sesión y borrar credenciales",
		Action: func(c *cli.Context) error {
			if err := e.sess.Auth.Logout(c.Context); err != nil {
				return err
			}
			fmt.Fprintln(stdout, "Sesión cerrada")
			return nil
		},
	}
}

func whoamiCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "usuario actual y vencimiento del token",
		Action: func(c *cli.Context) error {
			if err := e.requireRole(); err != nil {
				return err
			}
			info, err := e.sess.Auth.Session(c.Context, nowFunc())
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(info)
			}
			u := info.User
			fmt.Fprintf(stdout, "%s <%s> rol=%s\n", u.Username, u.Email, u.Role)
			switch {
			case info.ExpiresAt == nil:
				fmt.Fprintln(stdout, "token sin vencimiento conocido")
			case info.Expired:
				fmt.Fprintln(stdout, "token vencido; se renovará en la próxima llamada")
			default:
				fmt.Fprintln(stdout, "token vence:", info.ExpiresAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func componentsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "components",
		Usage: "catálogo de componentes",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "listar con filtros",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search"},
					&cli.StringFlag{Name: "category", Value: "all"},
					&cli.StringFlag{Name: "min-price"},
					&cli.StringFlag{Name: "max-price"},
					&cli.StringFlag{Name: "mounting"},
					&cli.StringFlag{Name: "mpn"},
					&cli.StringFlag{Name: "sort", Usage: "price_asc | price_desc | name"},
				},
				Action: func(c *cli.Context) error {
					f := catalog.ProductFilter{
						Search:   c.String("search"),
						Category: c.String("category"),
						Mounting: c.String("mounting"),
						MPN:      c.String("mpn"),
						Sort:     c.String("sort"),
					}
					var err error
					if f.MinPrice, err = priceFlag(c, "min-price"); err != nil {
						return err
					}
					if f.MaxPrice, err = priceFlag(c, "max-price"); err != nil {
						return err
					}
					if err := e.sess.Catalog.Fetch(c.Context); err != nil {
						return errors.New(e.sess.Catalog.Error())
					}
					if f.Search != "" && e.sess.Auth.IsAuthenticated() {
						if err := e.sess.Ports.Search.SaveSearch(c.Context, f.Search); err != nil {
							e.log.Debug().Err(err).Msg("no se guardó la búsqueda")
						}
					}
					snap := e.sess.Catalog.Apply(f)
					if c.Bool("json") {
						return printJSON(snap)
					}
					printComponents(snap.Products)
					fmt.Fprintf(stdout, "\n%d de %d componentes\n", len(snap.Products), snap.AllProducts)
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "detalle y comparación de precios",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id, err := argID(c, 0)
					if err != nil {
						return err
					}
					comp, err := e.sess.Ports.Components.Get(c.Context, id)
					if err != nil {
						return err
					}
					others, err := e.sess.Ports.Components.PriceComparison(c.Context, id)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(map[string]any{"component": comp, "price_comparison": others})
					}
					printComponents([]entity.Component{*comp})
					if len(others) > 0 {
						fmt.Fprintln(stdout, "\nEn otras tiendas:")
						printComponents(others)
					}
					return nil
				},
			},
		},
	}
}

func storesCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "stores",
		Usage: "tiendas del mapa",
		Subcommands: []*cli.Command{{
			Name:  "list",
			Usage: "listar con filtros y distancia",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "search"},
				&cli.Float64Flag{Name: "min-rating", Value: catalog.DefaultMinRating},
				&cli.Float64Flag{Name: "max-distance", Value: catalog.DefaultMaxDistance, Usage: "km"},
				&cli.Float64Flag{Name: "lat"},
				&cli.Float64Flag{Name: "lon"},
				&cli.StringFlag{Name: "sort", Usage: "distance | rating | name"},
			},
			Action: func(c *cli.Context) error {
				f := catalog.StoreFilter{
					Search:        c.String("search"),
					MinRating:     c.Float64("min-rating"),
					MaxDistanceKm: c.Float64("max-distance"),
					Sort:          c.String("sort"),
				}
				if c.IsSet("lat") && c.IsSet("lon") {
					p := geo.Point{Lat: c.Float64("lat"), Lon: c.Float64("lon")}
					if !p.Valid() {
						return cli.Exit("Ubicación inválida", 1)
					}
					f.Origin = &p
				}
				if err := e.sess.Stores.Fetch(c.Context); err != nil {
					return err
				}
				views := e.sess.Stores.Apply(f)
				if c.Bool("json") {
					return printJSON(views)
				}
				printStores(views)
				return nil
			},
		}},
	}
}

func reviewsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "reviews",
		Usage: "reseñas de tiendas",
		Subcommands: []*cli.Command{
			{
				Name:      "list",
				ArgsUsage: "STORE_ID",
				Action: func(c *cli.Context) error {
					storeID, err := argID(c, 0)
					if err != nil {
						return err
					}
					rows, err := e.sess.Reviews.Load(c.Context, storeID)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(rows)
					}
					printReviews(rows)
					return nil
				},
			},
			{
				Name:      "add",
				ArgsUsage: "STORE_ID",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "rating", Required: true},
					&cli.StringFlag{Name: "comment"},
				},
				Action: func(c *cli.Context) error {
					if err := e.requireRole(); err != nil {
						return err
					}
					storeID, err := argID(c, 0)
					if err != nil {
						return err
					}
					rows, err := e.sess.Reviews.Create(c.Context, dto.ReviewInput{Store: storeID, Rating: c.Int("rating"), Comment: c.String("comment")})
					if err != nil {
						return err
					}
					printFlash(e)
					printReviews(rows)
					return nil
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "STORE_ID REVIEW_ID",
				Action: func(c *cli.Context) error {
					if err := e.requireRole(); err != nil {
						return err
					}
					storeID, err := argID(c, 0)
					if err != nil {
						return err
					}
					id, err := argID(c, 1)
					if err != nil {
						return err
					}
					if _, err := e.sess.Reviews.Load(c.Context, storeID); err != nil {
						return err
					}
					if err := e.sess.Reviews.RequestDelete(storeID, id); err != nil {
						return err
					}
					if err := e.sess.Reviews.ConfirmDelete(c.Context, storeID, id); err != nil {
						return err
					}
					printFlash(e)
					return nil
				},
			},
		},
	}
}

func wishlistCommand(e *env) *cli.Command {
	load := func(c *cli.Context) error {
		if err := e.requireRole(entity.RoleCliente); err != nil {
			return err
		}
		return e.sess.Wishlists.Fetch(c.Context)
	}
	show := func(c *cli.Context, wl *entity.Wishlist) error {
		if c.Bool("json") {
			return printJSON(wl)
		}
		printWishlist(wl)
		return nil
	}
	return &cli.Command{
		Name:  "wishlist",
		Usage: "lista de deseos seleccionada",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "mostrar la lista",
				Action: func(c *cli.Context) error {
					if err := load(c); err != nil {
						return err
					}
					return show(c, e.sess.Wishlists.Selected())
				},
			},
			{
				Name:      "toggle",
				Usage:     "agregar o quitar un componente",
				ArgsUsage: "COMPONENT_ID",
				Action: func(c *cli.Context) error {
					id, err := argID(c, 0)
					if err != nil {
						return err
					}
					if err := load(c); err != nil {
						return err
					}
					wl, err := e.sess.Wishlists.ToggleSelected(c.Context, id)
					if err != nil {
						return err
					}
					return show(c, wl)
				},
			},
			{
				Name:      "qty",
				Usage:     "cambiar la cantidad de un componente",
				ArgsUsage: "COMPONENT_ID CANTIDAD",
				Action: func(c *cli.Context) error {
					id, err := argID(c, 0)
					if err != nil {
						return err
					}
					qty, err := strconv.Atoi(c.Args().Get(1))
					if err != nil {
						return cli.Exit("Cantidad inválida", 1)
					}
					if err := load(c); err != nil {
						return err
					}
					sel := e.sess.Wishlists.Selected()
					if sel == nil {
						return cli.Exit("No hay lista seleccionada", 1)
					}
					wl, err := e.sess.Wishlists.UpdateQuantity(c.Context, sel.ID, id, qty)
					if err != nil {
						return err
					}
					return show(c, wl)
				},
			},
			{
				Name:  "clear",
				Usage: "vaciar la lista",
				Action: func(c *cli.Context) error {
					if err := load(c); err != nil {
						return err
					}
					wl, err := e.sess.Wishlists.Clear(c.Context)
					if err != nil {
						return err
					}
					return show(c, wl)
				},
			},
			{
				Name:  "budget",
				Usage: "presupuesto de la lista",
				Flags: []cli.Flag{&cli.StringFlag{Name: "pdf", Usage: "guardar en PDF (ruta o '-' para el nombre sugerido)"}},
				Action: func(c *cli.Context) error {
					if err := load(c); err != nil {
						return err
					}
					b, err := e.sess.Wishlists.Budget(c.Context)
					if err != nil {
						return err
					}
					out := c.String("pdf")
					if out == "" {
						if c.Bool("json") {
							return printJSON(b)
						}
						printBudget(b)
						return nil
					}
					data, err := pdf.NewBudgetGenerator().GenerateBudgetPDF(c.Context, b)
					if err != nil {
						return err
					}
					if out == "-" {
						out = pdf.FileName(b.ProjectName)
					}
					if err := os.WriteFile(out, data, 0o644); err != nil {
						return fmt.Errorf("guardar %s: %w", out, err)
					}
					fmt.Fprintln(stdout, "Presupuesto guardado en", out)
					return nil
				},
			},
		},
	}
}

func inventoryCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "inventory",
		Usage: "inventario del proveedor",
		Before: func(*cli.Context) error {
			return e.requireRole(entity.RoleProveedor)
		},
		Subcommands: []*cli.Command{
			{
				Name: "list",
				Action: func(c *cli.Context) error {
					items, err := e.sess.Inventory.Fetch(c.Context)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(items)
					}
					printComponents(items)
					return nil
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "COMPONENT_ID",
				Action: func(c *cli.Context) error {
					id, err := argID(c, 0)
					if err != nil {
						return err
					}
					return e.sess.Inventory.Delete(c.Context, id)
				},
			},
			{
				Name:  "export",
				Usage: "descargar el inventario en Excel",
				Flags: []cli.Flag{&cli.StringFlag{Name: "out", Usage: "ruta de salida (por defecto el nombre sugerido)"}},
				Action: func(c *cli.Context) error {
					f, err := e.sess.Inventory.Export(c.Context)
					if err != nil {
						return err
					}
					out := c.String("out")
					if out == "" {
						out = f.Name
					}
					if err := os.WriteFile(out, f.Data, 0o644); err != nil {
						return fmt.Errorf("guardar %s: %w", out, err)
					}
					fmt.Fprintln(stdout, "Inventario guardado en", out)
					return nil
				},
			},
		},
	}
}

func alertsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "alerts",
		Usage: "componentes con stock bajo (proveedor)",
		Action: func(c *cli.Context) error {
			if err := e.requireRole(entity.RoleProveedor); err != nil {
				return err
			}
			list, err := e.sess.Ports.Components.LowStockAlerts(c.Context)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(list)
			}
			printComponents(list)
			return nil
		},
	}
}

func analyticsCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "analytics",
		Usage: "estadísticas de la plataforma (admin)",
		Action: func(c *cli.Context) error {
			if err := e.requireRole(entity.RoleAdmin); err != nil {
				return err
			}
			stats, err := e.sess.Ports.Analytics.Stats(c.Context)
			if err != nil {
				return err
			}
			platform, err := e.sess.Ports.Analytics.PlatformStats(c.Context)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{"analytics": stats, "platform": platform})
		},
	}
}

func argID(c *cli.Context, i int) (int64, error) {
	id, err := strconv.ParseInt(c.Args().Get(i), 10, 64)
	if err != nil || id <= 0 {
		return 0, cli.Exit(fmt.Sprintf("ID inválido: %q", c.Args().Get(i)), 1)
	}
	return id, nil
}

func priceFlag(c *cli.Context, name string) (decimal.NullDecimal, error) {
	v := c.String(name)
	if v == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}, cli.Exit("Precio inválido en --"+name, 1)
	}
	return decimal.NewNullDecimal(d), nil
}
