package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zervidtronics-storefront/internal/domain/catalog"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/geo"
)

func store(id int64, name string, rating float64, lat, lon string) entity.Store {
	s := entity.Store{ID: id, Name: name, Address: "Calle " + name, RatingAverage: rating}
	if lat != "" {
		s.Latitude = decimal.NewNullDecimal(decimal.RequireFromString(lat))
		s.Longitude = decimal.NewNullDecimal(decimal.RequireFromString(lon))
	}
	return s
}

func storeIDs(list []catalog.StoreView) []int64 {
	out := make([]int64, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestFilterStores_DistanciaSoloConCoordenadas(t *testing.T) {
	origin := &geo.Point{Lat: 4.7110, Lon: -74.0721}
	source := []entity.Store{
		store(1, "Cerca", 4, "4.7150", "-74.0700"),
		store(2, "Lejos", 5, "6.2442", "-75.5812"),
		store(3, "SinCoordenadas", 3, "", ""),
	}
	f := catalog.DefaultStoreFilter()
	f.Origin = origin

	out := catalog.FilterStores(source, f)
	require.Equal(t, []int64{1, 3}, storeIDs(out))
	require.NotNil(t, out[0].DistanceKm)
	assert.Less(t, *out[0].DistanceKm, 1.0)
	assert.Nil(t, out[1].DistanceKm)
}

func TestFilterStores_SinUbicacionNoFiltraPorDistancia(t *testing.T) {
	source := []entity.Store{store(1, "A", 0, "6.2", "-75.5"), store(2, "B", 0, "", "")}
	assert.Equal(t, []int64{1, 2}, storeIDs(catalog.FilterStores(source, catalog.DefaultStoreFilter())))
}

func TestFilterStores_CalificacionYTexto(t *testing.T) {
	source := []entity.Store{store(1, "Electro Norte", 4.5, "", ""), store(2, "Electro Sur", 3.9, "", ""), store(3, "Ferretería", 5, "", "")}

	assert.Equal(t, []int64{1, 3}, storeIDs(catalog.FilterStores(source, catalog.StoreFilter{MinRating: 4})))
	assert.Equal(t, []int64{1, 2}, storeIDs(catalog.FilterStores(source, catalog.StoreFilter{Search: "electro"})))
	assert.Equal(t, []int64{2}, storeIDs(catalog.FilterStores(source, catalog.StoreFilter{Search: "calle electro sur"})))
}

func TestFilterStores_OrdenPorDistanciaDesconocidasAlFinal(t *testing.T) {
	origin := &geo.Point{Lat: 0, Lon: 0}
	source := []entity.Store{
		store(1, "SinCoordenadas", 0, "", ""),
		store(2, "Lejos", 0, "0.05", "0"),
		store(3, "Cerca", 0, "0.01", "0"),
	}
	f := catalog.StoreFilter{Origin: origin, Sort: catalog.SortDistance}
	assert.Equal(t, []int64{3, 2, 1}, storeIDs(catalog.FilterStores(source, f)))

	f.Sort = catalog.SortRating
	source[0].RatingAverage = 5
	assert.Equal(t, []int64{1, 2, 3}, storeIDs(catalog.FilterStores(source, f)))
}
