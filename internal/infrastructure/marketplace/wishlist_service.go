package marketplace

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/apiclient"
)

var (
	_ ports.WishlistAPI = (*WishlistService)(nil)
	_ ports.SearchAPI   = (*SearchService)(nil)
)

// WishlistService listas de deseos y presupuestos.
type WishlistService struct {
	api *apiclient.Client
}

// NewWishlistService construye el servicio.
func NewWishlistService(api *apiclient.Client) *WishlistService {
	return &WishlistService{api: api}
}

func wishlistPath(id int64, action string) string {
	if action == "" {
		return fmt.Sprintf("/wishlist/%d/", id)
	}
	return fmt.Sprintf("/wishlist/%d/%s/", id, action)
}

func (s *WishlistService) one(ctx context.Context, call apiclient.Call) (*entity.Wishlist, error) {
	var out entity.Wishlist
	if err := s.api.Do(ctx, call, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List listas del usuario.
func (s *WishlistService) List(ctx context.Context) ([]entity.Wishlist, error) {
	var out []entity.Wishlist
	if err := s.api.Do(ctx, apiclient.Call{Method: http.MethodGet, Path: "/wishlist/", Default: "Error al obtener las listas"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create crea una lista vacía.
func (s *WishlistService) Create(ctx context.Context, name string) (*entity.Wishlist, error) {
	return s.one(ctx, apiclient.Call{Method: http.MethodPost, Path: "/wishlist/", Body: dto.WishlistCreate{Name: name}, Default: "Error al crear la lista"})
}

// SetComponents reemplaza el conjunto de componentes de la lista.
func (s *WishlistService) SetComponents(ctx context.Context, id int64, componentIDs []int64) (*entity.Wishlist, error) {
	if componentIDs == nil {
		componentIDs = []int64{}
	}
	return s.one(ctx, apiclient.Call{
		Method:  http.MethodPatch,
		Path:    wishlistPath(id, ""),
		Body:    dto.WishlistComponents{Components: componentIDs},
		Default: "Error al actualizar componentes",
	})
}

// Delete elimina la lista.
func (s *WishlistService) Delete(ctx context.Context, id int64) error {
	return s.api.Do(ctx, apiclient.Call{Method: http.MethodDelete, Path: wishlistPath(id, ""), Default: "No se pudo eliminar la lista"}, nil)
}

// ToggleItem agrega el componente si no está o lo quita si está. Devuelve la lista completa.
func (s *WishlistService) ToggleItem(ctx context.Context, id, componentID int64) (*entity.Wishlist, error) {
	return s.one(ctx, apiclient.Call{
		Method:  http.MethodPost,
		Path:    wishlistPath(id, "toggle_item"),
		Body:    dto.ToggleItemRequest{ProductID: componentID},
		Default: "Error al actualizar la lista",
	})
}

// UpdateQuantity fija la cantidad de una línea. Devuelve la lista completa.
func (s *WishlistService) UpdateQuantity(ctx context.Context, id, componentID int64, quantity int) (*entity.Wishlist, error) {
	return s.one(ctx, apiclient.Call{
		Method:  http.MethodPost,
		Path:    wishlistPath(id, "update_quantity"),
		Body:    dto.UpdateQuantityRequest{ProductID: componentID, Quantity: quantity},
		Default: "Error al actualizar cantidad",
	})
}

// Clear vacía la lista. Devuelve la lista completa.
func (s *WishlistService) Clear(ctx context.Context, id int64) (*entity.Wishlist, error) {
	return s.one(ctx, apiclient.Call{Method: http.MethodPost, Path: wishlistPath(id, "clear_all"), Default: "Error al vaciar la lista"})
}

// ExportBudget presupuesto de la lista.
func (s *WishlistService) ExportBudget(ctx context.Context, id int64) (*entity.Budget, error) {
	var out entity.Budget
	if err := s.api.Do(ctx, apiclient.Call{Method: http.MethodGet, Path: wishlistPath(id, "export_budget"), Default: "No se pudo generar el presupuesto"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MinSearchLength longitud mínima de una consulta para guardarla en el historial.
const MinSearchLength = 3

// SearchService sugerencias e historial de búsqueda.
type SearchService struct {
	api *apiclient.Client
}

// NewSearchService construye el servicio.
func NewSearchService(api *apiclient.Client) *SearchService {
	return &SearchService{api: api}
}

// Suggestions búsquedas populares y recientes.
func (s *SearchService) Suggestions(ctx context.Context) (*entity.SearchSuggestions, error) {
	var out entity.SearchSuggestions
	if err := s.api.Do(ctx, apiclient.Call{Method: http.MethodGet, Path: "/wishlist/search-suggestions/", Default: "Error al cargar sugerencias"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveSearch registra la consulta. Las de menos de MinSearchLength caracteres no se envían.
func (s *SearchService) SaveSearch(ctx context.Context, query string) error {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < MinSearchLength {
		return nil
	}
	return s.api.Do(ctx, apiclient.Call{
		Method:  http.MethodPost,
		Path:    "/wishlist/save-search/",
		Body:    dto.SaveSearchRequest{Query: q},
		Default: "Error al guardar historial",
	}, nil)
}
