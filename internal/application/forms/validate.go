// Package forms valida los formularios de la interfaz con go-playground/validator
// y traduce cada error a un mensaje en español por campo.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
)

// FieldErrors errores por campo (nombre json -> mensaje).
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "formulario inválido (" + strings.Join(parts, "; ") + ")"
}

func (f FieldErrors) Unwrap() error { return domain.ErrInvalidInput }

// First mensaje del primer campo en orden alfabético.
func (f FieldErrors) First() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return f[keys[0]]
}

// AsFieldErrors extrae los errores por campo.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// messages mensajes por "campo.tag"; si no hay, se usa el del tag.
var messages = map[string]string{
	"email.required":    "Email inválido",
	"email.email":       "Email inválido",
	"username.required": "Mínimo 4 caracteres",
	"username.min":      "Mínimo 4 caracteres",
	"password.required": "Mínimo 6 caracteres",
	"password.min":      "Mínimo 6 caracteres",
	"new_password.min":  "Mínimo 6 caracteres",
	"store_name":        "Nombre de tienda requerido",
	"store_address":     "Dirección requerida",
	"name.required":     "El nombre es requerido",
	"name.notblank":     "El nombre es requerido",
	"mpn":               "El MPN es obligatorio",
	"category":          "Seleccione una categoría",
	"price":             "Precio inválido",
	"stock":             "Stock inválido",
	"datasheet_url":     "La URL no es válida. Debe incluir http:// o https://",
	"offer_price":       "El precio de oferta debe ser menor al precio original.",
	"rating.required":   "Debes seleccionar una puntuación",
	"rating":            "La calificación debe estar entre 1 y 5",
	"comment":           "El comentario es requerido",
	"quantity":          "La cantidad mínima es 1",
	"product_id":        "Componente inválido",
}

var tagMessages = map[string]string{
	"required": "Requerido",
	"notblank": "Requerido",
	"email":    "Email inválido",
	"min":      "Valor demasiado corto",
	"max":      "Valor demasiado largo",
	"oneof":    "Valor no permitido",
	"http_url": "La URL no es válida. Debe incluir http:// o https://",
}

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})
		v.RegisterStructValidation(componentOffer, dto.ComponentInput{})
		v.RegisterStructValidation(providerStore, dto.RegisterRequest{})
		instance = v
	})
	return instance
}

// decimalValue expone los decimales al validador como float64 (nil si NullDecimal no es válido).
func decimalValue(field reflect.Value) any {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		return d.InexactFloat64()
	case decimal.NullDecimal:
		if d.Valid {
			return d.Decimal.InexactFloat64()
		}
	}
	return nil
}

// providerStore: un proveedor debe indicar nombre y dirección de su tienda.
func providerStore(sl validator.StructLevel) {
	in := sl.Current().Interface().(dto.RegisterRequest)
	if in.Role != entity.RoleProveedor {
		return
	}
	if strings.TrimSpace(in.StoreName) == "" {
		sl.ReportError(in.StoreName, "store_name", "StoreName", "required", "")
	}
	if strings.TrimSpace(in.StoreAddress) == "" {
		sl.ReportError(in.StoreAddress, "store_address", "StoreAddress", "required", "")
	}
}

// componentOffer: con oferta activa, offer_price debe existir y ser menor que price.
func componentOffer(sl validator.StructLevel) {
	in := sl.Current().Interface().(dto.ComponentInput)
	if !in.IsOnOffer {
		return
	}
	if !in.OfferPrice.Valid || !in.OfferPrice.Decimal.LessThan(in.Price) || !in.OfferPrice.Decimal.IsPositive() {
		sl.ReportError(in.OfferPrice, "offer_price", "OfferPrice", "offer_lt_price", "")
	}
}

// Validate valida s. Devuelve FieldErrors (que envuelve domain.ErrInvalidInput) o nil.
func Validate(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		if _, dup := out[field]; dup {
			continue
		}
		out[field] = message(field, fe.Tag())
	}
	return out
}

func message(field, tag string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	if m, ok := messages[field]; ok {
		return m
	}
	if m, ok := tagMessages[tag]; ok {
		return m
	}
	return "Valor inválido"
}
