package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Estados de stock calculados por el backend.
const (
	StockOut       = "Agotado"
	StockLow       = "Baja Disponibilidad"
	StockAvailable = "Disponible"
)

// SpecMounting clave de technical_specs con el tipo de montaje (SMD, THT).
const SpecMounting = "montaje"

// Component componente electrónico publicado por una tienda.
// Price y OfferPrice son decimales; el backend los envía como texto.
type Component struct {
	ID             int64               `json:"id"`
	Store          int64               `json:"store"`
	StoreName      string              `json:"store_name"`
	Category       int64               `json:"category"`
	CategoryName   string              `json:"category_name"`
	Name           string              `json:"name"`
	MPN            string              `json:"mpn"`
	Description    string              `json:"description"`
	Price          decimal.Decimal     `json:"price"`
	OfferPrice     decimal.NullDecimal `json:"offer_price"`
	IsOnOffer      bool                `json:"is_on_offer"`
	Stock          int                 `json:"stock"`
	StockStatus    string              `json:"stock_status"`
	Image          string              `json:"image"`
	DatasheetURL   string              `json:"datasheet_url"`
	TechnicalSpecs map[string]any      `json:"technical_specs"`
	IsAvailable    bool                `json:"is_available"`
	TimesInWish    int                 `json:"times_in_wishlist"`
	IsNotifying    bool                `json:"is_notifying,omitempty"`
}

// EffectivePrice precio que paga el cliente: la oferta si está activa, si no el precio de lista.
func (c Component) EffectivePrice() decimal.Decimal {
	if c.IsOnOffer && c.OfferPrice.Valid {
		return c.OfferPrice.Decimal
	}
	return c.Price
}

// Spec devuelve technical_specs[key] como texto ("" si no existe).
func (c Component) Spec(key string) string {
	v, ok := c.TechnicalSpecs[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Mounting tipo de montaje declarado en la ficha técnica.
func (c Component) Mounting() string { return c.Spec(SpecMounting) }

// NotificationStatus respuesta de toggle_notification.
type NotificationStatus struct {
	IsActive bool   `json:"is_active"`
	Status   string `json:"status,omitempty"`
}
