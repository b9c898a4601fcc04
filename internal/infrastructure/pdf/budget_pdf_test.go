package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/pdf"
)

func TestGenerateBudgetPDF(t *testing.T) {
	b := &entity.Budget{
		ProjectName: "Robot seguidor",
		User:        "ana@zt.co",
		Date:        "14/10/2026",
		TotalBudget: decimal.NewFromInt(93000),
		Items: []entity.BudgetItem{
			{Component: "ESP32", Store: "ElectroAndes", Quantity: 2, UnitPrice: decimal.NewFromInt(45000), Subtotal: decimal.NewFromInt(90000)},
			{Component: "LED rojo", Store: "Voltio", Quantity: 10, UnitPrice: decimal.NewFromInt(300), Subtotal: decimal.NewFromInt(3000)},
		},
	}
	out, err := pdf.NewBudgetGenerator().GenerateBudgetPDF(context.Background(), b)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateBudgetPDF_ListaVacia(t *testing.T) {
	out, err := pdf.NewBudgetGenerator().GenerateBudgetPDF(context.Background(), &entity.Budget{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = pdf.NewBudgetGenerator().GenerateBudgetPDF(context.Background(), nil)
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0", pdf.Money(decimal.Zero))
	assert.Equal(t, "$950", pdf.Money(decimal.NewFromInt(950)))
	assert.Equal(t, "$25.000", pdf.Money(decimal.NewFromInt(25000)))
	assert.Equal(t, "$1.250.000", pdf.Money(decimal.RequireFromString("1249999.6")))
	assert.Equal(t, "-$3.000", pdf.Money(decimal.NewFromInt(-3000)))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Prototipo_Robot seguidor.pdf", pdf.FileName("Robot seguidor"))
	assert.Equal(t, "Prototipo_a_b.pdf", pdf.FileName("a/b"))
	assert.Equal(t, "Prototipo_Mi Lista de Deseos.pdf", pdf.FileName("  "))
}
