package dto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
)

func TestComponentInput_Form(t *testing.T) {
	stock := 12
	in := dto.ComponentInput{
		Name:           "Capacitor 100uF",
		MPN:            "ECA-1CM101",
		Category:       4,
		Price:          decimal.RequireFromString("0.3"),
		Stock:          &stock,
		TechnicalSpecs: map[string]string{"montaje": "THT", "": "descartado"},
		IsAvailable:    true,
		OfferPrice:     decimal.NewNullDecimal(decimal.RequireFromString("0.2")),
	}
	form := in.Form()

	assert.Equal(t, "0.30", form["price"])
	assert.Equal(t, "12", form["stock"])
	assert.Equal(t, "4", form["category"])
	assert.Equal(t, "true", form["is_available"])
	assert.JSONEq(t, `{"montaje":"THT"}`, form["technical_specs"])
	assert.NotContains(t, form, "datasheet_url")
	// Sin oferta activa no se envía offer_price.
	assert.NotContains(t, form, "offer_price")
}
