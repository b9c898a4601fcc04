package review_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/review"
)

func reviews() []entity.Review {
	return []entity.Review{
		{ID: 1, User: 7, Store: 3, Rating: 5, Comment: "Excelente"},
		{ID: 2, User: 8, Store: 3, Rating: 2, Comment: "Lento"},
		{ID: 3, User: 7, Store: 3, Rating: 4, Comment: "Bien"},
	}
}

func TestBoard_SoloElAutorTieneControles(t *testing.T) {
	b := review.NewBoard(7, reviews())
	rows := b.Rows()
	require.Len(t, rows, 3)
	assert.True(t, rows[0].CanEdit)
	assert.False(t, rows[1].CanEdit)
	assert.True(t, rows[2].CanEdit)

	assert.ErrorIs(t, b.RequestDelete(2), domain.ErrNotOwner)
	assert.ErrorIs(t, b.StartEdit(2), domain.ErrNotOwner)
	assert.ErrorIs(t, b.StartEdit(99), domain.ErrNotFound)
}

func TestBoard_AnonimoSinControles(t *testing.T) {
	b := review.NewBoard(0, reviews())
	for _, r := range b.Rows() {
		assert.False(t, r.CanEdit)
	}
	assert.ErrorIs(t, b.RequestDelete(1), domain.ErrNotOwner)
}

func TestBoard_BorradoExitosoEliminaFila(t *testing.T) {
	b := review.NewBoard(7, reviews())
	require.NoError(t, b.RequestDelete(1))
	assert.Equal(t, review.ModeConfirmingDelete, b.Rows()[0].Mode)

	require.NoError(t, b.ConfirmDelete(1))
	assert.ErrorIs(t, b.StartEdit(1), domain.ErrReviewBusy)
	assert.ErrorIs(t, b.ConfirmDelete(1), domain.ErrReviewBusy)

	b.FinishDelete(1, nil)
	rows := b.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].ID)
	for _, r := range rows {
		assert.Equal(t, review.ModeViewing, r.Mode)
	}
}

func TestBoard_BorradoFallidoVuelveAViewing(t *testing.T) {
	b := review.NewBoard(7, reviews())
	require.NoError(t, b.RequestDelete(1))
	require.NoError(t, b.ConfirmDelete(1))
	b.FinishDelete(1, errors.New("500"))

	rows := b.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, review.ModeViewing, rows[0].Mode)
	assert.False(t, rows[0].Busy)
}

func TestBoard_ConfirmarSinSolicitar(t *testing.T) {
	b := review.NewBoard(7, reviews())
	assert.ErrorIs(t, b.ConfirmDelete(1), domain.ErrInvalidInput)
}

func TestBoard_EdicionYCancelar(t *testing.T) {
	b := review.NewBoard(7, reviews())
	require.NoError(t, b.StartEdit(3))
	row := b.Rows()[2]
	assert.Equal(t, review.ModeEditing, row.Mode)
	require.NotNil(t, row.Draft)
	assert.Equal(t, review.Draft{Rating: 4, Comment: "Bien"}, *row.Draft)

	require.NoError(t, b.UpdateDraft(3, review.Draft{Rating: 1, Comment: "Cambió"}))
	b.Cancel()
	row = b.Rows()[2]
	assert.Equal(t, review.ModeViewing, row.Mode)
	assert.Nil(t, row.Draft)
	assert.Equal(t, "Bien", row.Comment)
}

func TestBoard_GuardarValidaBorrador(t *testing.T) {
	b := review.NewBoard(7, reviews())
	require.NoError(t, b.StartEdit(1))
	require.NoError(t, b.UpdateDraft(1, review.Draft{Rating: 6, Comment: "x"}))
	_, err := b.BeginSave(1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, b.UpdateDraft(1, review.Draft{Rating: 3, Comment: "Regular"}))
	d, err := b.BeginSave(1)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Rating)

	_, err = b.BeginSave(1)
	assert.ErrorIs(t, err, domain.ErrReviewBusy)

	b.FinishSave(1, errors.New("timeout"))
	assert.Equal(t, review.ModeEditing, b.Rows()[0].Mode)

	_, err = b.BeginSave(1)
	require.NoError(t, err)
	b.FinishSave(1, nil)
	assert.Equal(t, review.ModeViewing, b.Rows()[0].Mode)
}

func TestBoard_UnaSolaFilaActiva(t *testing.T) {
	b := review.NewBoard(7, reviews())
	require.NoError(t, b.StartEdit(1))
	require.NoError(t, b.RequestDelete(3))

	rows := b.Rows()
	assert.Equal(t, review.ModeViewing, rows[0].Mode)
	assert.Nil(t, rows[0].Draft)
	assert.Equal(t, review.ModeConfirmingDelete, rows[2].Mode)
	assert.ErrorIs(t, b.UpdateDraft(1, review.Draft{Rating: 1, Comment: "x"}), domain.ErrInvalidInput)
}

func TestBoard_ReplaceDescartaFilaDesaparecida(t *testing.T) {
	b := review.NewBoard(7, reviews())
	require.NoError(t, b.StartEdit(3))
	b.Replace(reviews()[:2])
	for _, r := range b.Rows() {
		assert.Equal(t, review.ModeViewing, r.Mode)
	}
}
