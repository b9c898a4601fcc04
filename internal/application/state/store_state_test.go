package state_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/state"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/catalog"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
)

type fakeStores struct {
	ports.StoreAPI
	list []entity.Store
}

func (f *fakeStores) List(context.Context, bool) ([]entity.Store, error) {
	return f.list, nil
}

func TestStoreState_ApplyFijaFiltroYOrdena(t *testing.T) {
	s := state.NewStoreState(&fakeStores{list: []entity.Store{
		{ID: 1, Name: "Zeta Electrónica", RatingAverage: 4.5},
		{ID: 2, Name: "alfa componentes", RatingAverage: 3},
		{ID: 3, Name: "Beta Chips", RatingAverage: 1},
	}})
	require.NoError(t, s.Fetch(context.Background()))

	views := s.Apply(catalog.StoreFilter{MinRating: 2, Sort: catalog.SortName})
	require.Len(t, views, 2)
	assert.Equal(t, int64(2), views[0].ID)
	assert.Equal(t, int64(1), views[1].ID)
	assert.Equal(t, catalog.SortName, s.Filter().Sort)
	assert.Equal(t, views, s.View())

	views = s.Apply(catalog.StoreFilter{Sort: catalog.SortRating})
	require.Len(t, views, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{views[0].ID, views[1].ID, views[2].ID})
}
