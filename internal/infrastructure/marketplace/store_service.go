package marketplace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/apiclient"
)

var (
	_ ports.StoreAPI    = (*StoreService)(nil)
	_ ports.CategoryAPI = (*CategoryService)(nil)
)

// StoreService tiendas.
type StoreService struct {
	api *apiclient.Client
}

// NewStoreService construye el servicio.
func NewStoreService(api *apiclient.Client) *StoreService {
	return &StoreService{api: api}
}

// List todas las tiendas, o solo la del proveedor con manage.
func (s *StoreService) List(ctx context.Context, manage bool) ([]entity.Store, error) {
	call := apiclient.Call{Method: http.MethodGet, Path: "/stores/", Default: "Error al sincronizar con la base de datos de tiendas."}
	if manage {
		call.Query = url.Values{"manage": {"true"}}
	}
	var out []entity.Store
	if err := s.api.Do(ctx, call, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get detalle de una tienda.
func (s *StoreService) Get(ctx context.Context, id int64) (*entity.Store, error) {
	var out entity.Store
	if err := s.api.Do(ctx, apiclient.Call{Method: http.MethodGet, Path: fmt.Sprintf("/stores/%d/", id), Default: "Error al cargar la tienda"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edita la tienda (PATCH multipart). id debe ser > 0.
func (s *StoreService) Update(ctx context.Context, id int64, in dto.StoreInput) (*entity.Store, error) {
	if id <= 0 {
		return nil, &apiclient.APIError{Kind: apiclient.KindValidation, Message: "ID de tienda no proporcionado", Err: domain.ErrInvalidInput}
	}
	call := apiclient.Call{
		Method:  http.MethodPatch,
		Path:    fmt.Sprintf("/stores/%d/", id),
		Form:    in.Form(),
		Default: "Error al actualizar la tienda.",
	}
	if in.Image != nil {
		call.Files = []apiclient.File{{Field: "image", Name: in.Image.Name, ContentType: in.Image.ContentType, Data: in.Image.Data}}
	}
	var out entity.Store
	if err := s.api.Do(ctx, call, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CategoryService categorías.
type CategoryService struct {
	api *apiclient.Client
}

// NewCategoryService construye el servicio.
func NewCategoryService(api *apiclient.Client) *CategoryService {
	return &CategoryService{api: api}
}

// List todas las categorías.
func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	if err := s.api.Do(ctx, apiclient.Call{Method: http.MethodGet, Path: "/categories/", Default: "Error al cargar categorías"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
