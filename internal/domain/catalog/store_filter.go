package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/geo"
)

// Valores iniciales del panel de filtros de tiendas.
const (
	DefaultMinRating   = 0
	DefaultMaxDistance = 10
)

// Órdenes de la vista de tiendas.
const (
	SortDistance = "distance"
	SortRating   = "rating"
)

// StoreFilter filtros del mapa de tiendas. MinRating y MaxDistanceKm en 0 no filtran.
type StoreFilter struct {
	Search        string     `json:"search,omitempty"`
	MinRating     float64    `json:"min_rating"`
	MaxDistanceKm float64    `json:"max_distance"`
	Origin        *geo.Point `json:"origin,omitempty"` // ubicación del usuario, nil si la negó
	Sort          string     `json:"sort,omitempty"`
}

// DefaultStoreFilter filtros iniciales (0 estrellas, 10 km).
func DefaultStoreFilter() StoreFilter {
	return StoreFilter{MinRating: DefaultMinRating, MaxDistanceKm: DefaultMaxDistance}
}

// StoreView tienda con su distancia al usuario. DistanceKm es nil si no se pudo calcular.
type StoreView struct {
	entity.Store
	DistanceKm *float64 `json:"distance_km"`
}

// Match indica si la tienda (con distancia d, ok=false si se desconoce) cumple los filtros.
// El filtro de distancia solo aplica cuando la distancia es conocida.
func (f StoreFilter) Match(s entity.Store, d float64, ok bool) bool {
	if q := strings.TrimSpace(f.Search); q != "" {
		q = folded(q)
		if !containsFolded(s.Name, q) && !containsFolded(s.Address, q) {
			return false
		}
	}
	if f.MinRating > 0 && s.RatingAverage < f.MinRating {
		return false
	}
	if f.MaxDistanceKm > 0 && ok && d > f.MaxDistanceKm {
		return false
	}
	return true
}

// FilterStores calcula distancias, filtra y ordena. source no se modifica.
func FilterStores(source []entity.Store, f StoreFilter) []StoreView {
	out := make([]StoreView, 0, len(source))
	for _, s := range source {
		d, ok := geo.DistanceKm(f.Origin, s.Location())
		if !f.Match(s, d, ok) {
			continue
		}
		v := StoreView{Store: s}
		if ok {
			v.DistanceKm = &d
		}
		out = append(out, v)
	}
	switch f.Sort {
	case SortDistance:
		slices.SortStableFunc(out, func(a, b StoreView) int {
			switch {
			case a.DistanceKm == nil && b.DistanceKm == nil:
				return 0
			case a.DistanceKm == nil:
				return 1
			case b.DistanceKm == nil:
				return -1
			}
			return cmp.Compare(*a.DistanceKm, *b.DistanceKm)
		})
	case SortRating:
		slices.SortStableFunc(out, func(a, b StoreView) int { return cmp.Compare(b.RatingAverage, a.RatingAverage) })
	case SortName:
		slices.SortStableFunc(out, func(a, b StoreView) int {
			return strings.Compare(folded(a.Name), folded(b.Name))
		})
	}
	return out
}
