package state

import (
	"context"
	"sync"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/forms"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
)

// InventoryState inventario propio del proveedor. Tras cada escritura se vuelve a pedir la lista.
type InventoryState struct {
	api ports.ComponentAPI

	mu    sync.Mutex
	items []entity.Component
}

// NewInventoryState construye el store.
func NewInventoryState(api ports.ComponentAPI) *InventoryState {
	return &InventoryState{api: api}
}

// Fetch carga el inventario (manage=true).
func (s *InventoryState) Fetch(ctx context.Context) ([]entity.Component, error) {
	items, err := s.api.List(ctx, dto.ComponentQuery{Manage: true})
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return append([]entity.Component(nil), items...), nil
}

// Items inventario cargado.
func (s *InventoryState) Items() []entity.Component {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Component(nil), s.items...)
}

// Create valida y publica un componente.
func (s *InventoryState) Create(ctx context.Context, in dto.ComponentInput) (*entity.Component, error) {
	if err := forms.Validate(in); err != nil {
		return nil, err
	}
	c, err := s.api.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	_, err = s.Fetch(ctx)
	return c, err
}

// Update valida y modifica un componente.
func (s *InventoryState) Update(ctx context.Context, id int64, in dto.ComponentInput) (*entity.Component, error) {
	if err := forms.Validate(in); err != nil {
		return nil, err
	}
	c, err := s.api.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	_, err = s.Fetch(ctx)
	return c, err
}

// Delete elimina un componente y recarga.
func (s *InventoryState) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return err
	}
	_, err := s.Fetch(ctx)
	return err
}

// Export reporte Excel del inventario.
func (s *InventoryState) Export(ctx context.Context) (*dto.Upload, error) {
	return s.api.DownloadExcel(ctx)
}

// Reset olvida el inventario cargado.
func (s *InventoryState) Reset() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}
