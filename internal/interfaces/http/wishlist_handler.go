package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/forms"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/state"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/pdf"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

// WishlistHandler listas de deseos del cliente. Cada respuesta es la lista tal como la devolvió el backend.
type WishlistHandler struct {
	pdf ports.BudgetPDFGenerator
	log *logger.Logger
}

// NewWishlistHandler construye el handler.
func NewWishlistHandler(gen ports.BudgetPDFGenerator, log *logger.Logger) *WishlistHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &WishlistHandler{pdf: gen, log: log.Component("http.wishlist")}
}

// loaded carga las listas si la sesión aún no las tiene.
func loaded(c *fiber.Ctx) (*state.WishlistState, error) {
	wl := GetSession(c).Wishlists
	if len(wl.Lists()) == 0 {
		if err := wl.Fetch(c.Context()); err != nil {
			return nil, err
		}
	}
	return wl, nil
}

// List godoc
// @Summary      Listas de deseos
// @Description  Si el usuario no tiene ninguna se crea "Mi Lista de Deseos".
// @Tags         wishlist
// @Security     Session
// @Produce      json
// @Success      200  {array}   entity.Wishlist
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/wishlists [get]
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	wl := GetSession(c).Wishlists
	if err := wl.Fetch(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(wl.Lists())
}

// Create godoc
// @Summary      Crear lista
// @Tags         wishlist
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WishlistCreate  true  "name"
// @Success      201   {object}  entity.Wishlist
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/wishlists [post]
func (h *WishlistHandler) Create(c *fiber.Ctx) error {
	var in dto.WishlistCreate
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := forms.Validate(in); err != nil {
		return writeError(c, err)
	}
	out, err := GetSession(c).Wishlists.Create(c.Context(), in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetComponents godoc
// @Summary      Reemplazar componentes de una lista
// @Tags         wishlist
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la lista"
// @Param        body  body  dto.WishlistComponents  true  "components"
// @Success      200   {object}  entity.Wishlist
// @Router       /api/wishlists/{id}/components [put]
func (h *WishlistHandler) SetComponents(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	var in dto.WishlistComponents
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := GetSession(c).Wishlists.SetComponents(c.Context(), id, in.Components)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar lista
// @Tags         wishlist
// @Security     Session
// @Param        id   path  int  true  "ID de la lista"
// @Success      204
// @Router       /api/wishlists/{id} [delete]
func (h *WishlistHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	if err := GetSession(c).Wishlists.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Toggle godoc
// @Summary      Agregar o quitar un componente de la lista
// @Tags         wishlist
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID de la lista"
// @Param        body  body  dto.ToggleItemRequest  true  "product_id"
// @Success      200   {object}  entity.Wishlist
// @Router       /api/wishlists/{id}/toggle [post]
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	var in dto.ToggleItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := forms.Validate(in); err != nil {
		return writeError(c, err)
	}
	out, err := GetSession(c).Wishlists.Toggle(c.Context(), id, in.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleSelected godoc
// @Summary      Agregar o quitar un componente de la lista seleccionada
// @Description  Botón de favorito del catálogo; usa la primera lista del usuario.
// @Tags         wishlist
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ToggleItemRequest  true  "product_id"
// @Success      200   {object}  entity.Wishlist
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/wishlists/selected/toggle [post]
func (h *WishlistHandler) ToggleSelected(c *fiber.Ctx) error {
	var in dto.ToggleItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := forms.Validate(in); err != nil {
		return writeError(c, err)
	}
	wl, err := loaded(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := wl.ToggleSelected(c.Context(), in.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateQuantity godoc
// @Summary      Cambiar la cantidad de una línea
// @Description  Cantidades menores a 1 se rechazan sin llamar al backend.
// @Tags         wishlist
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        id    path  int                        true  "ID de la lista"
// @Param        body  body  dto.UpdateQuantityRequest  true  "product_id, quantity"
// @Success      200   {object}  entity.Wishlist
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/wishlists/{id}/quantity [patch]
func (h *WishlistHandler) UpdateQuantity(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	var in dto.UpdateQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := GetSession(c).Wishlists.UpdateQuantity(c.Context(), id, in.ProductID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vaciar la lista seleccionada
// @Tags         wishlist
// @Security     Session
// @Produce      json
// @Success      200  {object}  entity.Wishlist
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/wishlists/selected/clear [post]
func (h *WishlistHandler) Clear(c *fiber.Ctx) error {
	wl, err := loaded(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := wl.Clear(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Budget godoc
// @Summary      Presupuesto de la lista seleccionada
// @Description  Con format=pdf devuelve el documento para descargar.
// @Tags         wishlist
// @Security     Session
// @Produce      json
// @Produce      application/pdf
// @Param        format  query  string  false  "json (default) | pdf"
// @Success      200  {object}  entity.Budget
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/wishlists/selected/budget [get]
func (h *WishlistHandler) Budget(c *fiber.Ctx) error {
	wl, err := loaded(c)
	if err != nil {
		return writeError(c, err)
	}
	b, err := wl.Budget(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	if c.Query("format") != "pdf" {
		return c.JSON(b)
	}
	data, err := h.pdf.GenerateBudgetPDF(c.Context(), b)
	if err != nil {
		h.log.Error().Err(err).Msg("generar presupuesto")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: "No se pudo generar el presupuesto"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, pdf.FileName(b.ProjectName)))
	return c.Send(data)
}
