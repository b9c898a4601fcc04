package state

import (
	"time"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

// Ports puertos que necesita una sesión.
type Ports struct {
	Auth       ports.AuthAPI
	Components ports.ComponentAPI
	Categories ports.CategoryAPI
	Stores     ports.StoreAPI
	Reviews    ports.ReviewAPI
	Wishlists  ports.WishlistAPI
	Search     ports.SearchAPI
	Analytics  ports.AnalyticsAPI
}

// Session todos los stores de un usuario de la interfaz.
type Session struct {
	Ports     Ports
	Storage   ports.Storage
	Flash     *Flash
	Auth      *AuthState
	Catalog   *CatalogState
	Stores    *StoreState
	Inventory *InventoryState
	Wishlists *WishlistState
	Reviews   *ReviewsState
}

// NewSession arma los stores sobre p. storage debe ser el mismo namespace que usa el cliente HTTP.
func NewSession(p Ports, storage ports.Storage, flashTTL time.Duration, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	flash := NewFlash(flashTTL)
	auth := NewAuthState(p.Auth, storage, log)
	s := &Session{
		Ports:     p,
		Storage:   storage,
		Flash:     flash,
		Auth:      auth,
		Catalog:   NewCatalogState(p.Components, p.Categories, log),
		Stores:    NewStoreState(p.Stores),
		Inventory: NewInventoryState(p.Components),
		Wishlists: NewWishlistState(p.Wishlists, storage, log),
		Reviews:   NewReviewsState(p.Reviews, auth, flash, log),
	}
	// Listas e inventario son del usuario; se descartan al cambiar de cuenta.
	auth.OnUserChange(func() {
		s.Wishlists.Reset()
		s.Inventory.Reset()
	})
	return s
}

// Expire cierra la sesión en memoria cuando las credenciales dejaron de servir.
func (s *Session) Expire() {
	s.Auth.Expire()
}

// Close cancela los temporizadores de la sesión.
func (s *Session) Close() {
	s.Flash.Close()
}
