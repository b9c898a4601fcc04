package state

import (
	"context"
	"sync"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/forms"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/catalog"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
)

// StoreState tiendas y filtros del mapa.
type StoreState struct {
	api ports.StoreAPI

	mu     sync.Mutex
	stores []entity.Store
	filter catalog.StoreFilter
	loaded bool
}

// NewStoreState construye el store con los filtros iniciales.
func NewStoreState(api ports.StoreAPI) *StoreState {
	return &StoreState{api: api, filter: catalog.DefaultStoreFilter()}
}

// Fetch carga todas las tiendas.
func (s *StoreState) Fetch(ctx context.Context) error {
	stores, err := s.api.List(ctx, false)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.stores, s.loaded = stores, true
	s.mu.Unlock()
	return nil
}

// Loaded indica si ya hubo una carga exitosa.
func (s *StoreState) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// SetFilter reemplaza los filtros.
func (s *StoreState) SetFilter(f catalog.StoreFilter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
}

// Apply fija los filtros y devuelve la vista bajo el mismo lock.
func (s *StoreState) Apply(f catalog.StoreFilter) []catalog.StoreView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
	return catalog.FilterStores(s.stores, s.filter)
}

// Filter filtros actuales.
func (s *StoreState) Filter() catalog.StoreFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// View tiendas que cumplen los filtros, con su distancia al usuario.
func (s *StoreState) View() []catalog.StoreView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.FilterStores(s.stores, s.filter)
}

// MyStore tienda del proveedor autenticado.
func (s *StoreState) MyStore(ctx context.Context) (*entity.Store, error) {
	stores, err := s.api.List(ctx, true)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, nil
	}
	return &stores[0], nil
}

// UpdateStore valida y guarda los cambios de la tienda.
func (s *StoreState) UpdateStore(ctx context.Context, id int64, in dto.StoreInput) (*entity.Store, error) {
	if err := forms.Validate(in); err != nil {
		return nil, err
	}
	updated, err := s.api.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.stores {
		if s.stores[i].ID == updated.ID {
			s.stores[i] = *updated
		}
	}
	s.mu.Unlock()
	return updated, nil
}
