package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

// CatalogHandler catálogo público de componentes, categorías y búsquedas.
type CatalogHandler struct {
	log *logger.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(log *logger.Logger) *CatalogHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogHandler{log: log.Component("http.catalog")}
}

// List godoc
// @Summary      Catálogo filtrado
// @Description  Carga componentes y categorías la primera vez (o con refresh=true) y aplica los filtros
//
//	sobre la copia en memoria de la sesión.
//
// @Tags         catalog
// @Produce      json
// @Param        search     query  string   false  "Texto en nombre, descripción o MPN"
// @Param        category   query  string   false  "Nombre o id de la categoría; all = todas"
// @Param        min_price  query  number   false  "Precio mínimo"
// @Param        max_price  query  number   false  "Precio máximo"
// @Param        mounting   query  string   false  "Montaje (technical_specs.montaje)"
// @Param        mpn        query  string   false  "Parte del MPN (sin distinguir mayúsculas)"
// @Param        sort       query  string   false  "price_asc | price_desc | name"
// @Param        refresh    query  boolean  false  "Volver a pedir el catálogo al backend"
// @Success      200  {object}  state.Snapshot
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/components [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	f, err := productFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	cat := GetSession(c).Catalog
	if !cat.Loaded() || c.QueryBool("refresh") {
		if err := cat.Fetch(c.Context()); err != nil {
			h.log.Warn().Err(err).Msg("catálogo no disponible")
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "CATALOG_UNAVAILABLE", Message: cat.Error()})
		}
	}
	return c.JSON(cat.Apply(f))
}

// Get godoc
// @Summary      Detalle de componente
// @Tags         catalog
// @Produce      json
// @Param        id   path  int  true  "ID del componente"
// @Success      200  {object}  entity.Component
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/components/{id} [get]
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	comp, err := GetSession(c).Ports.Components.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(comp)
}

// PriceComparison godoc
// @Summary      Mismo MPN en otras tiendas
// @Tags         catalog
// @Produce      json
// @Param        id   path  int  true  "ID del componente"
// @Success      200  {array}   entity.Component
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/components/{id}/price-comparison [get]
func (h *CatalogHandler) PriceComparison(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	list, err := GetSession(c).Ports.Components.PriceComparison(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Categories godoc
// @Summary      Categorías
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   entity.Category
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := GetSession(c).Ports.Categories.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cats)
}

// Suggestions godoc
// @Summary      Historial y búsquedas populares
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  entity.SearchSuggestions
// @Router       /api/search/suggestions [get]
func (h *CatalogHandler) Suggestions(c *fiber.Ctx) error {
	out, err := GetSession(c).Ports.Search.Suggestions(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SaveSearch godoc
// @Summary      Guardar término buscado
// @Description  Las consultas de menos de 3 caracteres se ignoran.
// @Tags         catalog
// @Accept       json
// @Param        body  body  dto.SaveSearchRequest  true  "query"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/search [post]
func (h *CatalogHandler) SaveSearch(c *fiber.Ctx) error {
	var in dto.SaveSearchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := GetSession(c).Ports.Search.SaveSearch(c.Context(), in.Query); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Recommendations godoc
// @Summary      Recomendaciones para el usuario
// @Tags         catalog
// @Security     Session
// @Produce      json
// @Success      200  {array}   entity.Component
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/components/recommendations [get]
func (h *CatalogHandler) Recommendations(c *fiber.Ctx) error {
	list, err := GetSession(c).Ports.Components.Recommendations(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// ToggleNotification godoc
// @Summary      Activar o desactivar aviso de reposición
// @Tags         catalog
// @Security     Session
// @Produce      json
// @Param        id   path  int  true  "ID del componente"
// @Success      200  {object}  entity.NotificationStatus
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/components/{id}/notify [post]
func (h *CatalogHandler) ToggleNotification(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	st, err := GetSession(c).Ports.Components.ToggleNotification(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(st)
}
