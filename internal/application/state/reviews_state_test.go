package state_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/state"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/review"
)

func newReviews(t *testing.T) (*state.ReviewsState, *fakeReviews, *state.Flash) {
	t.Helper()
	auth, _, _ := newAuth(t)
	_, err := auth.Login(context.Background(), dto.LoginRequest{Email: "cli@zt.co", Password: "secreto"})
	require.NoError(t, err)

	api := &fakeReviews{reviews: []entity.Review{
		{ID: 10, Store: 5, User: 3, Rating: 4, Comment: "Buena atención"},
		{ID: 11, Store: 5, User: 8, Rating: 2, Comment: "Demoraron"},
	}}
	flash := state.NewFlash(time.Minute)
	t.Cleanup(flash.Close)
	return state.NewReviewsState(api, auth, flash, nil), api, flash
}

func TestReviewsState_SoloElAutorVeControles(t *testing.T) {
	s, _, _ := newReviews(t)
	rows, err := s.Load(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].CanEdit)
	assert.False(t, rows[1].CanEdit)

	assert.ErrorIs(t, s.RequestDelete(5, 11), domain.ErrNotOwner)
	assert.ErrorIs(t, s.StartEdit(5, 11), domain.ErrNotOwner)
}

func TestReviewsState_EliminarConExito(t *testing.T) {
	s, api, flash := newReviews(t)
	ctx := context.Background()
	_, err := s.Load(ctx, 5)
	require.NoError(t, err)

	require.NoError(t, s.RequestDelete(5, 10))
	assert.Equal(t, review.ModeConfirmingDelete, s.Rows(5)[0].Mode)
	require.NoError(t, s.ConfirmDelete(ctx, 5, 10))

	rows := s.Rows(5)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(11), rows[0].ID)
	assert.Len(t, api.reviews, 1)
	msg, ok := flash.Current()
	require.True(t, ok)
	assert.Equal(t, state.FlashMessage{Kind: state.FlashSuccess, Text: "Reseña eliminada con éxito"}, msg)
}

func TestReviewsState_EliminarConErrorVuelveAViewing(t *testing.T) {
	s, api, flash := newReviews(t)
	api.failDelete = true
	ctx := context.Background()
	_, err := s.Load(ctx, 5)
	require.NoError(t, err)

	require.NoError(t, s.RequestDelete(5, 10))
	require.Error(t, s.ConfirmDelete(ctx, 5, 10))

	rows := s.Rows(5)
	require.Len(t, rows, 2)
	assert.Equal(t, review.ModeViewing, rows[0].Mode)
	msg, _ := flash.Current()
	assert.Equal(t, "Error al procesar la solicitud", msg.Text)
}

func TestReviewsState_EditarRecargaLaLista(t *testing.T) {
	s, api, _ := newReviews(t)
	ctx := context.Background()
	_, err := s.Load(ctx, 5)
	require.NoError(t, err)

	require.NoError(t, s.StartEdit(5, 10))
	require.NoError(t, s.UpdateDraft(5, 10, review.Draft{Rating: 5, Comment: "Excelente"}))
	rows, err := s.SaveEdit(ctx, 5, 10)
	require.NoError(t, err)

	assert.Equal(t, 2, api.lists)
	assert.Equal(t, []dto.ReviewPatch{{Rating: 5, Comment: "Excelente"}}, api.patched)
	assert.Equal(t, review.ModeViewing, rows[0].Mode)
	assert.Equal(t, "Excelente", rows[0].Comment)
}

func TestReviewsState_CrearConComentarioVacio(t *testing.T) {
	s, api, _ := newReviews(t)
	rows, err := s.Create(context.Background(), dto.ReviewInput{Store: 5, Rating: 3})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, state.DefaultComment, api.reviews[2].Comment)

	_, err = s.Create(context.Background(), dto.ReviewInput{Store: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
