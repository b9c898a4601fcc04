package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

// WishlistState listas de deseos del usuario. La lista seleccionada es siempre la primera.
// Cada mutación reemplaza la lista completa con la respuesta del backend.
type WishlistState struct {
	api     ports.WishlistAPI
	storage ports.Storage
	log     *logger.Logger

	mu    sync.Mutex
	lists []entity.Wishlist
}

// NewWishlistState construye el store.
func NewWishlistState(api ports.WishlistAPI, storage ports.Storage, log *logger.Logger) *WishlistState {
	if log == nil {
		log = logger.Nop()
	}
	return &WishlistState{api: api, storage: storage, log: log.Component("wishlist_state")}
}

// Fetch reemplaza las listas por las del backend. Sin token no hace nada; si el usuario
// no tiene ninguna se crea "Mi Lista de Deseos" y queda como única lista.
func (s *WishlistState) Fetch(ctx context.Context) error {
	token, ok, err := s.storage.Get(ctx, ports.KeyToken)
	if err != nil {
		return fmt.Errorf("wishlist: leer token: %w", err)
	}
	if !ok || token == "" {
		return nil
	}
	lists, err := s.api.List(ctx)
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		wl, err := s.api.Create(ctx, entity.DefaultWishlistName)
		if err != nil {
			return err
		}
		lists = []entity.Wishlist{*wl}
	}
	s.mu.Lock()
	s.lists = lists
	s.mu.Unlock()
	return nil
}

// Create crea una lista y la agrega al final.
func (s *WishlistState) Create(ctx context.Context, name string) (*entity.Wishlist, error) {
	wl, err := s.api.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.lists = append(s.lists, *wl)
	s.mu.Unlock()
	return wl, nil
}

// Lists copia de todas las listas.
func (s *WishlistState) Lists() []entity.Wishlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Wishlist(nil), s.lists...)
}

// Selected lista seleccionada (índice 0) o nil si aún no hay.
func (s *WishlistState) Selected() *entity.Wishlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lists) == 0 {
		return nil
	}
	wl := s.lists[0]
	return &wl
}

func (s *WishlistState) selectedID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lists) == 0 {
		return 0, domain.ErrNoWishlist
	}
	return s.lists[0].ID, nil
}

// replace sustituye la lista con el mismo id por la versión del backend.
func (s *WishlistState) replace(wl *entity.Wishlist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lists {
		if s.lists[i].ID == wl.ID {
			s.lists[i] = *wl
			return
		}
	}
}

// Toggle agrega o quita el componente de la lista id.
func (s *WishlistState) Toggle(ctx context.Context, id, componentID int64) (*entity.Wishlist, error) {
	wl, err := s.api.ToggleItem(ctx, id, componentID)
	if err != nil {
		s.log.Warn().Err(err).Int64("component_id", componentID).Msg("error al alternar componente")
		return nil, err
	}
	s.replace(wl)
	return wl, nil
}

// ToggleSelected Toggle sobre la lista seleccionada.
func (s *WishlistState) ToggleSelected(ctx context.Context, componentID int64) (*entity.Wishlist, error) {
	id, err := s.selectedID()
	if err != nil {
		return nil, err
	}
	return s.Toggle(ctx, id, componentID)
}

// UpdateQuantity fija la cantidad. Una cantidad menor que 1 se rechaza sin llamar al backend.
func (s *WishlistState) UpdateQuantity(ctx context.Context, id, componentID int64, quantity int) (*entity.Wishlist, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: la cantidad mínima es 1", domain.ErrInvalidInput)
	}
	wl, err := s.api.UpdateQuantity(ctx, id, componentID, quantity)
	if err != nil {
		s.log.Warn().Err(err).Int64("component_id", componentID).Msg("error al actualizar cantidad")
		return nil, err
	}
	s.replace(wl)
	return wl, nil
}

// Clear vacía la lista seleccionada.
func (s *WishlistState) Clear(ctx context.Context) (*entity.Wishlist, error) {
	id, err := s.selectedID()
	if err != nil {
		return nil, err
	}
	wl, err := s.api.Clear(ctx, id)
	if err != nil {
		return nil, err
	}
	s.replace(wl)
	return wl, nil
}

// SetComponents reemplaza los componentes de la lista id.
func (s *WishlistState) SetComponents(ctx context.Context, id int64, componentIDs []int64) (*entity.Wishlist, error) {
	wl, err := s.api.SetComponents(ctx, id, componentIDs)
	if err != nil {
		return nil, err
	}
	s.replace(wl)
	return wl, nil
}

// Delete elimina la lista id.
func (s *WishlistState) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lists {
		if s.lists[i].ID == id {
			s.lists = append(s.lists[:i], s.lists[i+1:]...)
			break
		}
	}
	return nil
}

// Budget presupuesto de la lista seleccionada.
func (s *WishlistState) Budget(ctx context.Context) (*entity.Budget, error) {
	id, err := s.selectedID()
	if err != nil {
		return nil, err
	}
	return s.api.ExportBudget(ctx, id)
}

// Contains indica si el componente está en la lista id.
func (s *WishlistState) Contains(id, componentID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lists {
		if s.lists[i].ID == id {
			return s.lists[i].Contains(componentID)
		}
	}
	return false
}

// Reset olvida las listas (logout).
func (s *WishlistState) Reset() {
	s.mu.Lock()
	s.lists = nil
	s.mu.Unlock()
}
