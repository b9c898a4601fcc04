package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Registry *Registry
	Cookie   CookieConfig
	PDF      ports.BudgetPDFGenerator
	Log      *logger.Logger
}

// Router registra las rutas del BFF. Todas pasan por SessionMiddleware.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", SessionMiddleware(deps.Registry, deps.Cookie))

	authHandler := NewAuthHandler(deps.Log)
	catalogHandler := NewCatalogHandler(deps.Log)
	storeHandler := NewStoreHandler()
	wishlistHandler := NewWishlistHandler(deps.PDF, deps.Log)
	inventoryHandler := NewInventoryHandler(deps.Log)
	analyticsHandler := NewAnalyticsHandler()

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authHandler.Me)
	authGroup.Post("/password-reset", authHandler.RequestPasswordReset)
	authGroup.Post("/password-reset/confirm", authHandler.ConfirmPasswordReset)
	authGroup.Get("/session", RequireAuth(), authHandler.SessionInfo)
	authGroup.Post("/change-password", RequireAuth(), authHandler.ChangePassword)
	authGroup.Delete("/account", RequireAuth(), authHandler.DeleteAccount)

	api.Get("/session/flash", authHandler.Flash)

	// Catálogo (público salvo recomendaciones y avisos)
	components := api.Group("/components")
	components.Get("/", catalogHandler.List)
	components.Get("/recommendations", RequireAuth(), catalogHandler.Recommendations)
	components.Get("/:id", catalogHandler.Get)
	components.Get("/:id/price-comparison", catalogHandler.PriceComparison)
	components.Post("/:id/notify", RequireAuth(), catalogHandler.ToggleNotification)
	api.Get("/categories", catalogHandler.Categories)
	api.Get("/search/suggestions", catalogHandler.Suggestions)
	api.Post("/search", catalogHandler.SaveSearch)

	// Tiendas y reseñas
	stores := api.Group("/stores")
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.Get)
	reviews := stores.Group("/:storeId/reviews")
	reviews.Get("/", storeHandler.Reviews)
	requireAuth := RequireAuth()
	reviews.Post("/", requireAuth, storeHandler.CreateReview)
	reviews.Post("/cancel", requireAuth, storeHandler.Cancel)
	reviews.Post("/:id/delete/request", requireAuth, storeHandler.RequestDelete)
	reviews.Post("/:id/delete/confirm", requireAuth, storeHandler.ConfirmDelete)
	reviews.Post("/:id/edit", requireAuth, storeHandler.StartEdit)
	reviews.Put("/:id/draft", requireAuth, storeHandler.UpdateDraft)
	reviews.Post("/:id/save", requireAuth, storeHandler.SaveEdit)

	// Listas de deseos (cliente)
	wishlists := api.Group("/wishlists", RequireRole(entity.RoleCliente))
	wishlists.Get("/", wishlistHandler.List)
	wishlists.Post("/", wishlistHandler.Create)
	wishlists.Post("/selected/toggle", wishlistHandler.ToggleSelected)
	wishlists.Post("/selected/clear", wishlistHandler.Clear)
	wishlists.Get("/selected/budget", wishlistHandler.Budget)
	wishlists.Put("/:id/components", wishlistHandler.SetComponents)
	wishlists.Delete("/:id", wishlistHandler.Delete)
	wishlists.Post("/:id/toggle", wishlistHandler.Toggle)
	wishlists.Patch("/:id/quantity", wishlistHandler.UpdateQuantity)

	// Inventario y tienda (proveedor)
	inventory := api.Group("/inventory", RequireRole(entity.RoleProveedor))
	inventory.Get("/", inventoryHandler.List)
	inventory.Post("/", inventoryHandler.Create)
	inventory.Get("/export", inventoryHandler.Export)
	inventory.Get("/alerts", inventoryHandler.Alerts)
	inventory.Get("/store", inventoryHandler.MyStore)
	inventory.Patch("/store/:id", inventoryHandler.UpdateStore)
	inventory.Patch("/:id", inventoryHandler.Update)
	inventory.Delete("/:id", inventoryHandler.Delete)

	// Administración
	admin := api.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Get("/analytics", analyticsHandler.Stats)
	admin.Get("/platform-stats", analyticsHandler.PlatformStats)
}
