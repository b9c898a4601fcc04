package http

import (
	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler tablero del administrador.
type AnalyticsHandler struct{}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler() *AnalyticsHandler { return &AnalyticsHandler{} }

// Stats godoc
// @Summary      Búsquedas, demanda sin stock y resumen de inventario
// @Tags         admin
// @Security     Session
// @Produce      json
// @Success      200  {object}  entity.Analytics
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/analytics [get]
func (h *AnalyticsHandler) Stats(c *fiber.Ctx) error {
	out, err := GetSession(c).Ports.Analytics.Stats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PlatformStats godoc
// @Summary      Usuarios y tiendas registradas
// @Tags         admin
// @Security     Session
// @Produce      json
// @Success      200  {object}  entity.PlatformStats
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/platform-stats [get]
func (h *AnalyticsHandler) PlatformStats(c *fiber.Ctx) error {
	out, err := GetSession(c).Ports.Analytics.PlatformStats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
