package marketplace

import (
	"time"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/state"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/apiclient"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

// Services todos los adaptadores de una sesión, sobre el mismo cliente.
type Services struct {
	Auth       *AuthService
	Components *ComponentService
	Categories *CategoryService
	Stores     *StoreService
	Reviews    *ReviewService
	Wishlists  *WishlistService
	Search     *SearchService
	Analytics  *AnalyticsService
}

// NewServices construye los adaptadores sobre api.
func NewServices(api *apiclient.Client) *Services {
	return &Services{
		Auth:       NewAuthService(api),
		Components: NewComponentService(api),
		Categories: NewCategoryService(api),
		Stores:     NewStoreService(api),
		Reviews:    NewReviewService(api),
		Wishlists:  NewWishlistService(api),
		Search:     NewSearchService(api),
		Analytics:  NewAnalyticsService(api),
	}
}

// Ports los adaptadores como puertos de la capa de estado.
func (s *Services) Ports() state.Ports {
	return state.Ports{
		Auth:       s.Auth,
		Components: s.Components,
		Categories: s.Categories,
		Stores:     s.Stores,
		Reviews:    s.Reviews,
		Wishlists:  s.Wishlists,
		Search:     s.Search,
		Analytics:  s.Analytics,
	}
}

// NewSession arma cliente HTTP, servicios y stores sobre el namespace st.
// Un refresh fallido cierra la sesión en memoria además de borrar las credenciales.
func NewSession(opts apiclient.Options, st ports.Storage, flashTTL time.Duration, log *logger.Logger) *state.Session {
	var sess *state.Session
	expired := opts.OnSessionExpired
	opts.OnSessionExpired = func() {
		if sess != nil {
			sess.Expire()
		}
		if expired != nil {
			expired()
		}
	}
	api := apiclient.New(opts, st, log)
	sess = state.NewSession(NewServices(api).Ports(), st, flashTTL, log)
	return sess
}
