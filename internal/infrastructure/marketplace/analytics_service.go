package marketplace

import (
	"context"
	"net/http"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/apiclient"
)

var _ ports.AnalyticsAPI = (*AnalyticsService)(nil)

// AnalyticsService tablero del administrador.
type AnalyticsService struct {
	api *apiclient.Client
}

// NewAnalyticsService construye el servicio.
func NewAnalyticsService(api *apiclient.Client) *AnalyticsService {
	return &AnalyticsService{api: api}
}

// Stats búsquedas más frecuentes, demanda de stock y resumen de inventario.
func (s *AnalyticsService) Stats(ctx context.Context) (*entity.Analytics, error) {
	var out entity.Analytics
	if err := s.api.Do(ctx, apiclient.Call{Method: http.MethodGet, Path: "/analytics/", Default: "Error al cargar estadísticas"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlatformStats totales de la plataforma (solo staff).
func (s *AnalyticsService) PlatformStats(ctx context.Context) (*entity.PlatformStats, error) {
	var out entity.PlatformStats
	if err := s.api.Do(ctx, apiclient.Call{Method: http.MethodGet, Path: "/users/platform-stats/", Default: "Error al cargar estadísticas"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
