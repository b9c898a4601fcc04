package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/review"
)

// StoreHandler tiendas del mapa y sus reseñas.
type StoreHandler struct{}

// NewStoreHandler construye el handler.
func NewStoreHandler() *StoreHandler { return &StoreHandler{} }

// ReviewsResponse filas del tablero de reseñas de una tienda.
type ReviewsResponse struct {
	StoreID int64        `json:"store_id"`
	Rows    []review.Row `json:"rows"`
}

// List godoc
// @Summary      Tiendas filtradas
// @Description  Con lat/lon se calcula la distancia (haversine) y se aplica max_distance;
//
//	sin ubicación no se filtra por distancia.
//
// @Tags         stores
// @Produce      json
// @Param        search        query  string   false  "Nombre o dirección"
// @Param        min_rating    query  number   false  "Calificación mínima (0-5)"
// @Param        max_distance  query  number   false  "Radio en km (default 10)"
// @Param        lat           query  number   false  "Latitud del usuario"
// @Param        lon           query  number   false  "Longitud del usuario"
// @Param        sort          query  string   false  "distance | rating | name"
// @Param        refresh       query  boolean  false  "Volver a pedir las tiendas"
// @Success      200  {array}   catalog.StoreView
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	f, err := storeFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	stores := GetSession(c).Stores
	if !stores.Loaded() || c.QueryBool("refresh") {
		if err := stores.Fetch(c.Context()); err != nil {
			return writeError(c, err)
		}
	}
	return c.JSON(stores.Apply(f))
}

// Get godoc
// @Summary      Detalle de tienda
// @Tags         stores
// @Produce      json
// @Param        id   path  int  true  "ID de la tienda"
// @Success      200  {object}  entity.Store
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [get]
func (h *StoreHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	s, err := GetSession(c).Ports.Stores.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s)
}

// Reviews godoc
// @Summary      Reseñas de una tienda
// @Description  Cada fila indica si el usuario de la sesión puede editarla o eliminarla.
// @Tags         reviews
// @Produce      json
// @Param        storeId  path  int  true  "ID de la tienda"
// @Success      200  {object}  ReviewsResponse
// @Router       /api/stores/{storeId}/reviews [get]
func (h *StoreHandler) Reviews(c *fiber.Ctx) error {
	storeID, ok := paramID(c, "storeId")
	if !ok {
		return badID(c, "storeId")
	}
	rows, err := GetSession(c).Reviews.Load(c.Context(), storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ReviewsResponse{StoreID: storeID, Rows: rows})
}

// CreateReview godoc
// @Summary      Calificar una tienda
// @Tags         reviews
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        storeId  path  int               true  "ID de la tienda"
// @Param        body     body  dto.ReviewPatch   true  "rating (1-5), comment"
// @Success      201  {object}  ReviewsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reviews [post]
func (h *StoreHandler) CreateReview(c *fiber.Ctx) error {
	storeID, ok := paramID(c, "storeId")
	if !ok {
		return badID(c, "storeId")
	}
	var in dto.ReviewPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	rows, err := GetSession(c).Reviews.Create(c.Context(), dto.ReviewInput{Store: storeID, Rating: in.Rating, Comment: in.Comment})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ReviewsResponse{StoreID: storeID, Rows: rows})
}

// reviewIDs lee storeId e id de la ruta.
func reviewIDs(c *fiber.Ctx) (storeID, id int64, ok bool) {
	if storeID, ok = paramID(c, "storeId"); !ok {
		return 0, 0, false
	}
	id, ok = paramID(c, "id")
	return storeID, id, ok
}

func (h *StoreHandler) rows(c *fiber.Ctx, storeID int64) error {
	return c.JSON(ReviewsResponse{StoreID: storeID, Rows: GetSession(c).Reviews.Rows(storeID)})
}

// RequestDelete godoc
// @Summary      Pedir confirmación para eliminar una reseña propia
// @Tags         reviews
// @Security     Session
// @Produce      json
// @Param        storeId  path  int  true  "ID de la tienda"
// @Param        id       path  int  true  "ID de la reseña"
// @Success      200  {object}  ReviewsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reviews/{id}/delete/request [post]
func (h *StoreHandler) RequestDelete(c *fiber.Ctx) error {
	storeID, id, ok := reviewIDs(c)
	if !ok {
		return badID(c, "id")
	}
	if err := GetSession(c).Reviews.RequestDelete(storeID, id); err != nil {
		return writeError(c, err)
	}
	return h.rows(c, storeID)
}

// ConfirmDelete godoc
// @Summary      Confirmar eliminación de una reseña
// @Tags         reviews
// @Security     Session
// @Produce      json
// @Param        storeId  path  int  true  "ID de la tienda"
// @Param        id       path  int  true  "ID de la reseña"
// @Success      200  {object}  ReviewsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reviews/{id}/delete/confirm [post]
func (h *StoreHandler) ConfirmDelete(c *fiber.Ctx) error {
	storeID, id, ok := reviewIDs(c)
	if !ok {
		return badID(c, "id")
	}
	if err := GetSession(c).Reviews.ConfirmDelete(c.Context(), storeID, id); err != nil {
		return writeError(c, err)
	}
	return h.rows(c, storeID)
}

// StartEdit godoc
// @Summary      Editar una reseña propia
// @Tags         reviews
// @Security     Session
// @Produce      json
// @Param        storeId  path  int  true  "ID de la tienda"
// @Param        id       path  int  true  "ID de la reseña"
// @Success      200  {object}  ReviewsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reviews/{id}/edit [post]
func (h *StoreHandler) StartEdit(c *fiber.Ctx) error {
	storeID, id, ok := reviewIDs(c)
	if !ok {
		return badID(c, "id")
	}
	if err := GetSession(c).Reviews.StartEdit(storeID, id); err != nil {
		return writeError(c, err)
	}
	return h.rows(c, storeID)
}

// UpdateDraft godoc
// @Summary      Actualizar el borrador de la reseña en edición
// @Tags         reviews
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        storeId  path  int           true  "ID de la tienda"
// @Param        id       path  int           true  "ID de la reseña"
// @Param        body     body  review.Draft  true  "rating, comment"
// @Success      200  {object}  ReviewsResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reviews/{id}/draft [put]
func (h *StoreHandler) UpdateDraft(c *fiber.Ctx) error {
	storeID, id, ok := reviewIDs(c)
	if !ok {
		return badID(c, "id")
	}
	var d review.Draft
	if err := c.BodyParser(&d); err != nil {
		return badBody(c)
	}
	if err := GetSession(c).Reviews.UpdateDraft(storeID, id, d); err != nil {
		return writeError(c, err)
	}
	return h.rows(c, storeID)
}

// SaveEdit godoc
// @Summary      Guardar la reseña en edición
// @Tags         reviews
// @Security     Session
// @Produce      json
// @Param        storeId  path  int  true  "ID de la tienda"
// @Param        id       path  int  true  "ID de la reseña"
// @Success      200  {object}  ReviewsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/reviews/{id}/save [post]
func (h *StoreHandler) SaveEdit(c *fiber.Ctx) error {
	storeID, id, ok := reviewIDs(c)
	if !ok {
		return badID(c, "id")
	}
	rows, err := GetSession(c).Reviews.SaveEdit(c.Context(), storeID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ReviewsResponse{StoreID: storeID, Rows: rows})
}

// Cancel godoc
// @Summary      Cancelar edición o eliminación pendiente
// @Tags         reviews
// @Security     Session
// @Produce      json
// @Param        storeId  path  int  true  "ID de la tienda"
// @Success      200  {object}  ReviewsResponse
// @Router       /api/stores/{storeId}/reviews/cancel [post]
func (h *StoreHandler) Cancel(c *fiber.Ctx) error {
	storeID, ok := paramID(c, "storeId")
	if !ok {
		return badID(c, "storeId")
	}
	GetSession(c).Reviews.Cancel(storeID)
	return h.rows(c, storeID)
}
