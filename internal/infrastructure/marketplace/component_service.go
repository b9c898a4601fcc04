package marketplace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/apiclient"
)

var _ ports.ComponentAPI = (*ComponentService)(nil)

// ExcelFileName nombre sugerido para el reporte de inventario.
func ExcelFileName(now time.Time) string {
	return fmt.Sprintf("Inventario_Zervidtronics_%d.xlsx", now.UnixMilli())
}

// ComponentService catálogo e inventario.
type ComponentService struct {
	api *apiclient.Client
	now func() time.Time
}

// NewComponentService construye el servicio.
func NewComponentService(api *apiclient.Client) *ComponentService {
	return &ComponentService{api: api, now: time.Now}
}

func componentPath(id int64, action string) string {
	if action == "" {
		return fmt.Sprintf("/components/%d/", id)
	}
	return fmt.Sprintf("/components/%d/%s/", id, action)
}

// List catálogo completo, o solo el inventario propio con q.Manage.
func (s *ComponentService) List(ctx context.Context, q dto.ComponentQuery) ([]entity.Component, error) {
	call := apiclient.Call{Method: http.MethodGet, Path: "/components/", Default: "Error al cargar los componentes electrónicos"}
	if q.Manage {
		call.Query = url.Values{"manage": {"true"}}
	}
	var out []entity.Component
	if err := s.api.Do(ctx, call, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get detalle de un componente.
func (s *ComponentService) Get(ctx context.Context, id int64) (*entity.Component, error) {
	var out entity.Component
	if err := s.api.Do(ctx, apiclient.Call{
		Method:  http.MethodGet,
		Path:    componentPath(id, ""),
		Default: "No se pudo encontrar el componente especificado",
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func componentCall(method, path string, in dto.ComponentInput, def string) apiclient.Call {
	call := apiclient.Call{Method: method, Path: path, Form: in.Form(), Default: def}
	if in.Image != nil {
		call.Files = []apiclient.File{{Field: "image", Name: in.Image.Name, ContentType: in.Image.ContentType, Data: in.Image.Data}}
	}
	return call
}

// Create publica un componente en la tienda del proveedor autenticado.
func (s *ComponentService) Create(ctx context.Context, in dto.ComponentInput) (*entity.Component, error) {
	var out entity.Component
	if err := s.api.Do(ctx, componentCall(http.MethodPost, "/components/", in, "Error en el servidor. Verifique el MPN o la conexión."), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update modifica un componente (PATCH multipart).
func (s *ComponentService) Update(ctx context.Context, id int64, in dto.ComponentInput) (*entity.Component, error) {
	var out entity.Component
	if err := s.api.Do(ctx, componentCall(http.MethodPatch, componentPath(id, ""), in, "Error en el servidor. Verifique el MPN o la conexión."), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina un componente.
func (s *ComponentService) Delete(ctx context.Context, id int64) error {
	return s.api.Do(ctx, apiclient.Call{Method: http.MethodDelete, Path: componentPath(id, ""), Default: "Error al eliminar el componente"}, nil)
}

// LowStockAlerts componentes con alerta de stock activa para el usuario.
func (s *ComponentService) LowStockAlerts(ctx context.Context) ([]entity.Component, error) {
	var out []entity.Component
	if err := s.api.Do(ctx, apiclient.Call{Method: http.MethodGet, Path: "/components/low_stock_alerts/", Default: "Error al cargar alertas"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleNotification activa o desactiva el aviso de reposición de un componente.
func (s *ComponentService) ToggleNotification(ctx context.Context, id int64) (*entity.NotificationStatus, error) {
	var out entity.NotificationStatus
	if err := s.api.Do(ctx, apiclient.Call{Method: http.MethodPost, Path: componentPath(id, "toggle_notification"), Default: "Error al actualizar la notificación"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PriceComparison ofertas de otras tiendas para el mismo MPN.
func (s *ComponentService) PriceComparison(ctx context.Context, id int64) ([]entity.Component, error) {
	var out []entity.Component
	if err := s.api.Do(ctx, apiclient.Call{Method: http.MethodGet, Path: componentPath(id, "price_comparison"), Default: "Error al comparar precios"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Recommendations sugerencias según las listas del usuario.
func (s *ComponentService) Recommendations(ctx context.Context) ([]entity.Component, error) {
	var out []entity.Component
	if err := s.api.Do(ctx, apiclient.Call{Method: http.MethodGet, Path: "/components/recommendations/", Default: "Error al cargar recomendaciones"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DownloadExcel descarga el reporte de inventario. El nombre siempre es Inventario_Zervidtronics_<ms>.xlsx.
func (s *ComponentService) DownloadExcel(ctx context.Context) (*dto.Upload, error) {
	f, err := s.api.Download(ctx, apiclient.Call{Method: http.MethodGet, Path: "/components/download_excel/", Default: "Error al descargar el archivo"})
	if err != nil {
		return nil, err
	}
	return &dto.Upload{Name: ExcelFileName(s.now()), ContentType: f.ContentType, Data: f.Data}, nil
}
