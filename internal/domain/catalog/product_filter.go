package catalog

import (
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
)

// CategoryAll valor del selector que equivale a "sin filtro de categoría".
const CategoryAll = "all"

// Órdenes disponibles para la vista de productos.
const (
	SortRelevance = ""           // orden de origen
	SortPriceAsc  = "price_asc"  // precio de lista ascendente
	SortPriceDesc = "price_desc" // precio de lista descendente
	SortName      = "name"
)

// ProductFilter estado de los filtros del catálogo. Un campo vacío no filtra.
type ProductFilter struct {
	Search   string              `json:"search,omitempty"`
	Category string              `json:"category,omitempty"` // nombre o id de la categoría
	MinPrice decimal.NullDecimal `json:"min_price"`
	MaxPrice decimal.NullDecimal `json:"max_price"`
	Mounting string              `json:"mounting,omitempty"` // technical_specs.montaje
	MPN      string              `json:"mpn,omitempty"`
	Sort     string              `json:"sort,omitempty"`
}

// folded normaliza s para comparaciones sin distinción de mayúsculas.
// cases.Caser guarda estado: uno nuevo por llamada.
func folded(s string) string { return cases.Fold().String(s) }

// Match indica si c cumple TODOS los filtros activos.
func (f ProductFilter) Match(c entity.Component) bool {
	if q := strings.TrimSpace(f.Search); q != "" {
		q = folded(q)
		if !containsFolded(c.Name, q) && !containsFolded(c.Description, q) && !containsFolded(c.MPN, q) {
			return false
		}
	}
	if cat := strings.TrimSpace(f.Category); cat != "" && cat != CategoryAll {
		if c.CategoryName != cat && strconv.FormatInt(c.Category, 10) != cat {
			return false
		}
	}
	if f.MinPrice.Valid && c.Price.LessThan(f.MinPrice.Decimal) {
		return false
	}
	if f.MaxPrice.Valid && c.Price.GreaterThan(f.MaxPrice.Decimal) {
		return false
	}
	if m := strings.TrimSpace(f.Mounting); m != "" && !strings.EqualFold(c.Mounting(), m) {
		return false
	}
	if mpn := strings.TrimSpace(f.MPN); mpn != "" && !containsFolded(c.MPN, folded(mpn)) {
		return false
	}
	return true
}

// Active indica si hay al menos un filtro aplicado.
func (f ProductFilter) Active() bool {
	cat := strings.TrimSpace(f.Category)
	return strings.TrimSpace(f.Search) != "" ||
		(cat != "" && cat != CategoryAll) ||
		f.MinPrice.Valid || f.MaxPrice.Valid ||
		strings.TrimSpace(f.Mounting) != "" ||
		strings.TrimSpace(f.MPN) != ""
}

// FilterProducts devuelve una nueva lista con los componentes que cumplen f, ordenada según f.Sort.
// source no se modifica.
func FilterProducts(source []entity.Component, f ProductFilter) []entity.Component {
	out := make([]entity.Component, 0, len(source))
	for _, c := range source {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	switch f.Sort {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b entity.Component) int { return a.Price.Cmp(b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b entity.Component) int { return b.Price.Cmp(a.Price) })
	case SortName:
		slices.SortStableFunc(out, func(a, b entity.Component) int {
			return strings.Compare(folded(a.Name), folded(b.Name))
		})
	}
	return out
}

// MountingOptions tipos de montaje presentes en source, en orden de aparición.
func MountingOptions(source []entity.Component) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range source {
		m := strings.TrimSpace(c.Mounting())
		if m == "" || seen[strings.ToUpper(m)] {
			continue
		}
		seen[strings.ToUpper(m)] = true
		out = append(out, m)
	}
	return out
}

func containsFolded(s, foldedNeedle string) bool {
	return strings.Contains(folded(s), foldedNeedle)
}

// Equal compara dos filtros por valor (los decimales con Decimal.Equal).
func (f ProductFilter) Equal(o ProductFilter) bool {
	return f.Search == o.Search &&
		f.Category == o.Category &&
		f.Mounting == o.Mounting &&
		f.MPN == o.MPN &&
		f.Sort == o.Sort &&
		nullEqual(f.MinPrice, o.MinPrice) &&
		nullEqual(f.MaxPrice, o.MaxPrice)
}

func nullEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}
