// Package pdf genera el presupuesto de una lista de deseos en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Zervidtronics + proyecto  │  Fecha + usuario        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Componente | Tienda | P.Unit | Subtotal       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL PRESUPUESTO                                           │
//	│  Leyenda: precios sujetos a disponibilidad                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
)

var _ ports.BudgetPDFGenerator = (*BudgetGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 88, Green: 28, Blue: 135}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// BudgetGenerator implementa ports.BudgetPDFGenerator con Maroto v2.
type BudgetGenerator struct{}

// NewBudgetGenerator construye el generador.
func NewBudgetGenerator() *BudgetGenerator { return &BudgetGenerator{} }

// GenerateBudgetPDF genera el PDF del presupuesto y devuelve sus bytes.
func (g *BudgetGenerator) GenerateBudgetPDF(_ context.Context, b *entity.Budget) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("pdf: presupuesto nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Presupuesto "+nonEmpty(b.ProjectName, entity.DefaultWishlistName), true).
		WithAuthor("Zervidtronics", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(b.Items) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("La lista no tiene componentes.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(itemRows(b.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(b.TotalBudget))
	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New("Precios y disponibilidad sujetos a cambios por parte de cada tienda.", props.Text{
			Size: 6.5, Color: colorGray, Top: 3,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(b *entity.Budget) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("ZERVIDTRONICS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(b.ProjectName, entity.DefaultWishlistName), props.Text{
				Size: 10, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("PRESUPUESTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+nonEmpty(b.Date, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New(nonEmpty(b.User, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Componente", 4, align.Left),
		h("Tienda", 3, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRows(items []entity.BudgetItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(it.Component, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(it.Store, "-"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(Money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(Money(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL PRESUPUESTO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New(Money(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// Money formatea pesos sin decimales con puntos de miles. Ej: 1250000 → "$1.250.000".
func Money(d decimal.Decimal) string {
	s := d.Round(0).Abs().StringFixed(0)
	n := len(s)
	buf := make([]byte, 0, n+n/3+2)
	if d.Round(0).IsNegative() {
		buf = append(buf, '-')
	}
	buf = append(buf, '$')
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// FileName nombre sugerido para guardar el presupuesto de la lista.
func FileName(projectName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(projectName))
	if name == "" {
		name = entity.DefaultWishlistName
	}
	return "Prototipo_" + name + ".pdf"
}
