package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

// InventoryHandler inventario y tienda del proveedor (protegido, rol proveedor).
type InventoryHandler struct {
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(log *logger.Logger) *InventoryHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryHandler{log: log.Component("http.inventory")}
}

// List godoc
// @Summary      Inventario propio
// @Tags         inventory
// @Security     Session
// @Produce      json
// @Success      200  {array}   entity.Component
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := GetSession(c).Inventory.Fetch(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

// Create godoc
// @Summary      Publicar componente
// @Description  multipart/form-data; technical_specs viaja como JSON y la imagen en el campo image.
// @Tags         inventory
// @Security     Session
// @Accept       multipart/form-data
// @Produce      json
// @Param        name             formData  string  true   "Nombre"
// @Param        mpn              formData  string  true   "MPN"
// @Param        category         formData  int     true   "ID de categoría"
// @Param        price            formData  number  true   "Precio"
// @Param        stock            formData  int     true   "Stock"
// @Param        description      formData  string  false  "Descripción"
// @Param        datasheet_url    formData  string  false  "URL de la hoja de datos"
// @Param        technical_specs  formData  string  false  "Ficha técnica JSON"
// @Param        is_available     formData  bool    false  "Disponible (default true)"
// @Param        is_on_offer      formData  bool    false  "En oferta"
// @Param        offer_price      formData  number  false  "Precio de oferta"
// @Param        image            formData  file    false  "Imagen"
// @Success      201  {object}  entity.Component
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	in, err := componentForm(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := GetSession(c).Inventory.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	h.log.Info().Int64("component_id", out.ID).Str("mpn", out.MPN).Msg("componente publicado")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar componente
// @Description  Mismos campos que el alta (multipart/form-data).
// @Tags         inventory
// @Security     Session
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path  int  true  "ID del componente"
// @Success      200  {object}  entity.Component
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [patch]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	in, err := componentForm(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := GetSession(c).Inventory.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar componente
// @Tags         inventory
// @Security     Session
// @Param        id   path  int  true  "ID del componente"
// @Success      204
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	if err := GetSession(c).Inventory.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Descargar inventario en Excel
// @Tags         inventory
// @Security     Session
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/inventory/export [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	f, err := GetSession(c).Inventory.Export(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	ct := f.ContentType
	if ct == "" {
		ct = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	c.Set(fiber.HeaderContentType, ct)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, f.Name))
	return c.Send(f.Data)
}

// Alerts godoc
// @Summary      Componentes con stock bajo
// @Tags         inventory
// @Security     Session
// @Produce      json
// @Success      200  {array}   entity.Component
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	list, err := GetSession(c).Ports.Components.LowStockAlerts(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// MyStore godoc
// @Summary      Tienda del proveedor
// @Tags         inventory
// @Security     Session
// @Produce      json
// @Success      200  {object}  entity.Store
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/store [get]
func (h *InventoryHandler) MyStore(c *fiber.Ctx) error {
	s, err := GetSession(c).Stores.MyStore(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	if s == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_STORE", Message: "No tiene una tienda registrada"})
	}
	return c.JSON(s)
}

// UpdateStore godoc
// @Summary      Editar la tienda
// @Tags         inventory
// @Security     Session
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      int     true   "ID de la tienda"
// @Param        name         formData  string  false  "Nombre"
// @Param        description  formData  string  false  "Descripción"
// @Param        address      formData  string  false  "Dirección"
// @Param        latitude     formData  number  false  "Latitud"
// @Param        longitude    formData  number  false  "Longitud"
// @Param        image        formData  file    false  "Imagen"
// @Success      200  {object}  entity.Store
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/store/{id} [patch]
func (h *InventoryHandler) UpdateStore(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	in, err := storeForm(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := GetSession(c).Stores.UpdateStore(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
