package ports

import (
	"context"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
)

// Puertos de salida hacia la API REST del marketplace. Cada método es una llamada HTTP;
// los errores son *apiclient.APIError con un mensaje apto para el usuario.

// AuthAPI sesión y cuenta del usuario.
type AuthAPI interface {
	// Login guarda token, refresh_token, user_role y user_data en el Storage de la sesión.
	Login(ctx context.Context, req dto.LoginRequest) (*entity.User, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*entity.User, error)
	// Logout elimina las cuatro claves de sesión; no llama al backend.
	Logout(ctx context.Context) error
	// RequestPasswordReset, ConfirmPasswordReset y ChangePassword devuelven el detail del backend.
	RequestPasswordReset(ctx context.Context, req dto.PasswordResetRequest) (string, error)
	ConfirmPasswordReset(ctx context.Context, req dto.PasswordResetConfirm) (string, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (string, error)
	DeleteAccount(ctx context.Context) error
}

// ComponentAPI catálogo e inventario de componentes.
type ComponentAPI interface {
	List(ctx context.Context, q dto.ComponentQuery) ([]entity.Component, error)
	Get(ctx context.Context, id int64) (*entity.Component, error)
	Create(ctx context.Context, in dto.ComponentInput) (*entity.Component, error)
	Update(ctx context.Context, id int64, in dto.ComponentInput) (*entity.Component, error)
	Delete(ctx context.Context, id int64) error
	LowStockAlerts(ctx context.Context) ([]entity.Component, error)
	ToggleNotification(ctx context.Context, id int64) (*entity.NotificationStatus, error)
	PriceComparison(ctx context.Context, id int64) ([]entity.Component, error)
	Recommendations(ctx context.Context) ([]entity.Component, error)
	// DownloadExcel devuelve el reporte de inventario con el nombre sugerido para guardarlo.
	DownloadExcel(ctx context.Context) (*dto.Upload, error)
}

// CategoryAPI categorías.
type CategoryAPI interface {
	List(ctx context.Context) ([]entity.Category, error)
}

// StoreAPI tiendas.
type StoreAPI interface {
	List(ctx context.Context, manage bool) ([]entity.Store, error)
	Get(ctx context.Context, id int64) (*entity.Store, error)
	Update(ctx context.Context, id int64, in dto.StoreInput) (*entity.Store, error)
}

// ReviewAPI reseñas de tiendas.
type ReviewAPI interface {
	ListByStore(ctx context.Context, storeID int64) ([]entity.Review, error)
	Create(ctx context.Context, in dto.ReviewInput) (*entity.Review, error)
	Update(ctx context.Context, id int64, in dto.ReviewPatch) (*entity.Review, error)
	Delete(ctx context.Context, id int64) error
}

// WishlistAPI listas de deseos. Las operaciones sobre ítems devuelven la lista completa.
type WishlistAPI interface {
	List(ctx context.Context) ([]entity.Wishlist, error)
	Create(ctx context.Context, name string) (*entity.Wishlist, error)
	SetComponents(ctx context.Context, id int64, componentIDs []int64) (*entity.Wishlist, error)
	Delete(ctx context.Context, id int64) error
	ToggleItem(ctx context.Context, id, componentID int64) (*entity.Wishlist, error)
	UpdateQuantity(ctx context.Context, id, componentID int64, quantity int) (*entity.Wishlist, error)
	Clear(ctx context.Context, id int64) (*entity.Wishlist, error)
	ExportBudget(ctx context.Context, id int64) (*entity.Budget, error)
}

// SearchAPI historial y sugerencias de búsqueda.
type SearchAPI interface {
	Suggestions(ctx context.Context) (*entity.SearchSuggestions, error)
	// SaveSearch ignora consultas de menos de 3 caracteres (sin llamar al backend).
	SaveSearch(ctx context.Context, query string) error
}

// AnalyticsAPI tablero del administrador.
type AnalyticsAPI interface {
	Stats(ctx context.Context) (*entity.Analytics, error)
	PlatformStats(ctx context.Context) (*entity.PlatformStats, error)
}

// BudgetPDFGenerator renderiza el presupuesto de una lista.
type BudgetPDFGenerator interface {
	GenerateBudgetPDF(ctx context.Context, b *entity.Budget) ([]byte, error)
}
