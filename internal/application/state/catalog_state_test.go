package state_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/state"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/catalog"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
)

func TestCatalogState_FiltraTrasCargar(t *testing.T) {
	comps := &fakeComponents{list: []entity.Component{
		{ID: 1, Name: "Resistencia", Price: decimal.NewFromInt(10), CategoryName: "Pasivos"},
		{ID: 2, Name: "Capacitor", Price: decimal.NewFromInt(25), CategoryName: "Pasivos"},
		{ID: 3, Name: "ESP32", Price: decimal.NewFromInt(50), CategoryName: "Microcontroladores"},
	}}
	s := state.NewCatalogState(comps, &fakeCategories{list: []entity.Category{{ID: 1, Name: "Pasivos"}}}, nil)
	require.NoError(t, s.Fetch(context.Background()))
	assert.Len(t, s.View(), 3)

	s.SetFilter(catalog.ProductFilter{MinPrice: decimal.NewNullDecimal(decimal.NewFromInt(20))})
	snap := s.Snapshot()
	require.Len(t, snap.Products, 2)
	assert.Equal(t, int64(2), snap.Products[0].ID)
	assert.Equal(t, int64(3), snap.Products[1].ID)
	assert.Equal(t, 3, snap.AllProducts)
	assert.Equal(t, catalog.CategoryAll, snap.Filter.Category)
	assert.Len(t, snap.Categories, 1)

	s.ResetFilter()
	assert.Len(t, s.View(), 3)
}

func TestCatalogState_ErrorDeConexion(t *testing.T) {
	comps := &fakeComponents{err: domain.ErrUnreachable}
	s := state.NewCatalogState(comps, &fakeCategories{}, nil)
	require.Error(t, s.Fetch(context.Background()))
	assert.Equal(t, "Error de conexión con el servidor", s.Error())
	assert.Empty(t, s.View())
}

func TestCatalogState_ErrorDelBackend(t *testing.T) {
	comps := &fakeComponents{err: fakeErr{msg: "Error al cargar los componentes electrónicos"}}
	s := state.NewCatalogState(comps, &fakeCategories{}, nil)
	require.Error(t, s.Fetch(context.Background()))
	assert.Equal(t, "Error al cargar los componentes electrónicos", s.Error())
}

func TestFlash_ExpiraYSeCancela(t *testing.T) {
	f := state.NewFlash(20 * time.Millisecond)
	f.Success("listo")
	_, ok := f.Current()
	assert.True(t, ok)
	assert.Eventually(t, func() bool {
		_, ok := f.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)

	f.Error("falló")
	f.Close()
	_, ok = f.Current()
	assert.False(t, ok)
	f.Success("ignorado")
	_, ok = f.Current()
	assert.False(t, ok)
}

func TestCatalogState_ApplyDevuelveLaVistaDeSuFiltro(t *testing.T) {
	comps := &fakeComponents{list: []entity.Component{
		{ID: 1, Name: "Resistencia", Price: decimal.NewFromInt(10), CategoryName: "Pasivos"},
		{ID: 2, Name: "ESP32", Price: decimal.NewFromInt(50), CategoryName: "Microcontroladores"},
	}}
	s := state.NewCatalogState(comps, &fakeCategories{}, nil)
	require.NoError(t, s.Fetch(context.Background()))

	snap := s.Apply(catalog.ProductFilter{Category: "Microcontroladores"})
	require.Len(t, snap.Products, 1)
	assert.Equal(t, int64(2), snap.Products[0].ID)
	assert.Equal(t, "Microcontroladores", snap.Filter.Category)

	// categoría vacía equivale a "todas"
	snap = s.Apply(catalog.ProductFilter{})
	assert.Len(t, snap.Products, 2)
	assert.Equal(t, catalog.CategoryAll, snap.Filter.Category)
	assert.Equal(t, catalog.CategoryAll, s.Filter().Category)
}
