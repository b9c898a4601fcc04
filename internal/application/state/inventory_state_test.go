package state_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/forms"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/state"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
)

func TestInventoryState_FetchPideInventarioPropio(t *testing.T) {
	comps := &fakeComponents{list: []entity.Component{{ID: 1, Name: "ESP32"}}}
	s := state.NewInventoryState(comps)

	items, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.True(t, comps.manage)
	assert.Equal(t, items, s.Items())
}

func TestInventoryState_CreateValidaAntesDeLlamar(t *testing.T) {
	comps := &fakeComponents{}
	s := state.NewInventoryState(comps)

	_, err := s.Create(context.Background(), dto.ComponentInput{Name: "Sin MPN", Price: decimal.NewFromInt(10)})
	require.Error(t, err)
	fe, ok := forms.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fe, "mpn")
	assert.Empty(t, comps.created)
	assert.Zero(t, comps.lists)
}

func TestInventoryState_CreateYDeleteRecargan(t *testing.T) {
	comps := &fakeComponents{}
	s := state.NewInventoryState(comps)
	stock := 5

	c, err := s.Create(context.Background(), dto.ComponentInput{
		Name: "LM7805", MPN: "LM7805CT", Category: 1, Price: decimal.NewFromInt(2500), Stock: &stock,
	})
	require.NoError(t, err)
	assert.Equal(t, "LM7805CT", c.MPN)
	assert.Len(t, s.Items(), 1)
	assert.Equal(t, 1, comps.lists)

	require.NoError(t, s.Delete(context.Background(), c.ID))
	assert.Empty(t, s.Items())
	assert.Equal(t, 2, comps.lists)

	err = s.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, comps.lists)
}
