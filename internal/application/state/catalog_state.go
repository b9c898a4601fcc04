package state

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/catalog"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

// ConnectionError mensaje cuando el catálogo no pudo cargarse por falta de respuesta.
const ConnectionError = "Error de conexión con el servidor"

// CatalogState componentes, categorías y filtros del catálogo.
type CatalogState struct {
	components ports.ComponentAPI
	categories ports.CategoryAPI
	log        *logger.Logger

	mu       sync.Mutex
	products []entity.Component
	cats     []entity.Category
	filter   catalog.ProductFilter
	loading  bool
	errMsg   string

	// vista memorizada por (version de products, filter)
	version     uint64
	memoVersion uint64
	memoFilter  catalog.ProductFilter
	memo        []entity.Component
	memoOK      bool
}

// NewCatalogState construye el store.
func NewCatalogState(components ports.ComponentAPI, categories ports.CategoryAPI, log *logger.Logger) *CatalogState {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogState{
		components: components,
		categories: categories,
		log:        log.Component("catalog_state"),
		filter:     catalog.ProductFilter{Category: catalog.CategoryAll},
	}
}

// Fetch carga componentes y categorías a la vez. Si alguna falla no se reemplaza nada.
func (s *CatalogState) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading, s.errMsg = true, ""
	s.mu.Unlock()

	var (
		products []entity.Component
		cats     []entity.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.components.List(gctx, dto.ComponentQuery{})
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.categories.List(gctx)
		return err
	})
	err := g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = fetchMessage(err)
		s.log.Warn().Err(err).Msg("no se pudo cargar el catálogo")
		return err
	}
	s.products, s.cats = products, cats
	s.version++
	return nil
}

func fetchMessage(err error) string {
	if errors.Is(err, domain.ErrUnreachable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ConnectionError
	}
	return domain.Message(err, ConnectionError)
}

// Snapshot estado del catálogo para la interfaz.
type Snapshot struct {
	Products    []entity.Component    `json:"products"`
	AllProducts int                   `json:"all_products"`
	Categories  []entity.Category     `json:"categories"`
	Mountings   []string              `json:"mountings"`
	Filter      catalog.ProductFilter `json:"filter"`
	Loading     bool                  `json:"loading"`
	Error       string                `json:"error,omitempty"`
}

// Snapshot vista filtrada junto con categorías, filtros y estado de carga.
func (s *CatalogState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Apply fija el filtro y devuelve la vista resultante en una sola sección crítica,
// así dos pedidos concurrentes de la misma sesión no se cruzan los resultados.
func (s *CatalogState) Apply(f catalog.ProductFilter) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = normalizeFilter(f)
	return s.snapshotLocked()
}

func (s *CatalogState) snapshotLocked() Snapshot {
	return Snapshot{
		Products:    s.viewLocked(),
		AllProducts: len(s.products),
		Categories:  append([]entity.Category(nil), s.cats...),
		Mountings:   catalog.MountingOptions(s.products),
		Filter:      s.filter,
		Loading:     s.loading,
		Error:       s.errMsg,
	}
}

// View componentes que cumplen el filtro actual.
func (s *CatalogState) View() []entity.Component {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// viewLocked solo recalcula si cambió la lista de origen o el filtro.
func (s *CatalogState) viewLocked() []entity.Component {
	if !s.memoOK || s.memoVersion != s.version || !s.memoFilter.Equal(s.filter) {
		s.memo = catalog.FilterProducts(s.products, s.filter)
		s.memoVersion, s.memoFilter, s.memoOK = s.version, s.filter, true
	}
	return append([]entity.Component(nil), s.memo...)
}

// AllProducts lista completa sin filtrar.
func (s *CatalogState) AllProducts() []entity.Component {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Component(nil), s.products...)
}

// Filter filtro actual.
func (s *CatalogState) Filter() catalog.ProductFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetFilter reemplaza el filtro. Categoría vacía equivale a "all".
func (s *CatalogState) SetFilter(f catalog.ProductFilter) {
	s.mu.Lock()
	s.filter = normalizeFilter(f)
	s.mu.Unlock()
}

func normalizeFilter(f catalog.ProductFilter) catalog.ProductFilter {
	if f.Category == "" {
		f.Category = catalog.CategoryAll
	}
	return f
}

// ResetFilter vuelve a los filtros iniciales.
func (s *CatalogState) ResetFilter() { s.SetFilter(catalog.ProductFilter{}) }

// Loaded indica si ya hubo una carga exitosa.
func (s *CatalogState) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version > 0
}

// Error último mensaje de error de carga.
func (s *CatalogState) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
