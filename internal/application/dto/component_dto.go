package dto

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// ComponentInput formulario de alta/edición de componentes (multipart).
type ComponentInput struct {
	Name           string              `json:"name" validate:"required,notblank"`
	MPN            string              `json:"mpn" validate:"required,notblank"`
	Description    string              `json:"description"`
	Category       int64               `json:"category" validate:"required,gt=0"`
	Price          decimal.Decimal     `json:"price" validate:"gt=0"`
	Stock          *int                `json:"stock" validate:"required,gte=0"`
	DatasheetURL   string              `json:"datasheet_url" validate:"omitempty,http_url"`
	TechnicalSpecs map[string]string   `json:"technical_specs"`
	IsAvailable    bool                `json:"is_available"`
	IsOnOffer      bool                `json:"is_on_offer"`
	OfferPrice     decimal.NullDecimal `json:"offer_price"`
	Image          *Upload             `json:"-"`
}

// Form campos del multipart tal como los espera el backend.
// technical_specs viaja como JSON; las claves vacías se descartan.
func (in ComponentInput) Form() map[string]string {
	specs := map[string]string{}
	for k, v := range in.TechnicalSpecs {
		if k != "" {
			specs[k] = v
		}
	}
	rawSpecs, _ := json.Marshal(specs)

	form := map[string]string{
		"name":            in.Name,
		"mpn":             in.MPN,
		"description":     in.Description,
		"price":           in.Price.StringFixed(2),
		"category":        strconv.FormatInt(in.Category, 10),
		"is_available":    strconv.FormatBool(in.IsAvailable),
		"is_on_offer":     strconv.FormatBool(in.IsOnOffer),
		"technical_specs": string(rawSpecs),
	}
	if in.Stock != nil {
		form["stock"] = strconv.Itoa(*in.Stock)
	}
	if in.DatasheetURL != "" {
		form["datasheet_url"] = in.DatasheetURL
	}
	if in.IsOnOffer && in.OfferPrice.Valid {
		form["offer_price"] = in.OfferPrice.Decimal.StringFixed(2)
	}
	return form
}

// StoreInput edición de la tienda del proveedor (multipart). Campos vacíos no se envían.
type StoreInput struct {
	Name        string              `json:"name" validate:"omitempty,notblank"`
	Description string              `json:"description"`
	Address     string              `json:"address" validate:"omitempty,notblank"`
	Latitude    decimal.NullDecimal `json:"latitude"`
	Longitude   decimal.NullDecimal `json:"longitude"`
	Image       *Upload             `json:"-"`
}

// Form campos del multipart.
func (in StoreInput) Form() map[string]string {
	form := map[string]string{}
	if in.Name != "" {
		form["name"] = in.Name
	}
	if in.Description != "" {
		form["description"] = in.Description
	}
	if in.Address != "" {
		form["address"] = in.Address
	}
	if in.Latitude.Valid {
		form["latitude"] = in.Latitude.Decimal.StringFixed(6)
	}
	if in.Longitude.Valid {
		form["longitude"] = in.Longitude.Decimal.StringFixed(6)
	}
	return form
}

// ComponentQuery parámetros de listado de componentes.
type ComponentQuery struct {
	Manage bool // solo el inventario propio (proveedor)
}
