package state

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/forms"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/review"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

// Mensajes de las acciones sobre reseñas.
const (
	MsgReviewDeleted   = "Reseña eliminada con éxito"
	MsgReviewPublished = "Reseña publicada con éxito"
	MsgReviewUpdated   = "Reseña actualizada"
	MsgReviewFailed    = "Error al procesar la solicitud"
	MsgReviewDuplicate = "Ya has calificado esta tienda anteriormente"
	DefaultComment     = "Sin comentarios"
)

// ReviewsState reseñas por tienda, cada una con su tablero de edición.
type ReviewsState struct {
	api   ports.ReviewAPI
	auth  *AuthState
	flash *Flash
	log   *logger.Logger

	mu     sync.Mutex
	boards map[int64]*review.Board
}

// NewReviewsState construye el store. El dueño de cada reseña se compara con auth.UserID().
func NewReviewsState(api ports.ReviewAPI, auth *AuthState, flash *Flash, log *logger.Logger) *ReviewsState {
	if log == nil {
		log = logger.Nop()
	}
	return &ReviewsState{api: api, auth: auth, flash: flash, log: log.Component("reviews_state"), boards: map[int64]*review.Board{}}
}

// board tablero de la tienda, sincronizado con el usuario actual de la sesión.
func (s *ReviewsState) board(storeID int64) *review.Board {
	uid := s.auth.UserID()
	s.mu.Lock()
	b, ok := s.boards[storeID]
	if !ok {
		b = review.NewBoard(uid, nil)
		s.boards[storeID] = b
	}
	s.mu.Unlock()
	if b.UserID() != uid {
		b.SetUser(uid)
	}
	return b
}

// Load vuelve a pedir las reseñas de la tienda.
func (s *ReviewsState) Load(ctx context.Context, storeID int64) ([]review.Row, error) {
	reviews, err := s.api.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	b := s.board(storeID)
	b.Replace(reviews)
	return b.Rows(), nil
}

// Rows filas actuales de la tienda con sus controles.
func (s *ReviewsState) Rows(storeID int64) []review.Row {
	return s.board(storeID).Rows()
}

// Create publica una reseña y recarga la lista. Un comentario vacío se envía como "Sin comentarios".
func (s *ReviewsState) Create(ctx context.Context, in dto.ReviewInput) ([]review.Row, error) {
	if strings.TrimSpace(in.Comment) == "" {
		in.Comment = DefaultComment
	}
	if err := forms.Validate(in); err != nil {
		return nil, err
	}
	if _, err := s.api.Create(ctx, in); err != nil {
		s.flash.Error(errorMessage(err, MsgReviewDuplicate))
		return nil, err
	}
	s.flash.Success(MsgReviewPublished)
	return s.Load(ctx, in.Store)
}

// RequestDelete pide confirmación para borrar id (solo el autor).
func (s *ReviewsState) RequestDelete(storeID, id int64) error {
	return s.board(storeID).RequestDelete(id)
}

// ConfirmDelete borra la reseña en el backend. Con éxito la fila desaparece.
func (s *ReviewsState) ConfirmDelete(ctx context.Context, storeID, id int64) error {
	b := s.board(storeID)
	if err := b.ConfirmDelete(id); err != nil {
		return err
	}
	err := s.api.Delete(ctx, id)
	b.FinishDelete(id, err)
	if err != nil {
		s.log.Warn().Err(err).Int64("review_id", id).Msg("no se pudo eliminar la reseña")
		s.flash.Error(MsgReviewFailed)
		return err
	}
	s.flash.Success(MsgReviewDeleted)
	return nil
}

// StartEdit abre el borrador de id (solo el autor).
func (s *ReviewsState) StartEdit(storeID, id int64) error {
	return s.board(storeID).StartEdit(id)
}

// UpdateDraft modifica el borrador en edición.
func (s *ReviewsState) UpdateDraft(storeID, id int64, d review.Draft) error {
	return s.board(storeID).UpdateDraft(id, d)
}

// SaveEdit envía el borrador y, con éxito, recarga toda la lista de la tienda.
func (s *ReviewsState) SaveEdit(ctx context.Context, storeID, id int64) ([]review.Row, error) {
	b := s.board(storeID)
	d, err := b.BeginSave(id)
	if err != nil {
		return nil, err
	}
	_, err = s.api.Update(ctx, id, dto.ReviewPatch{Rating: d.Rating, Comment: d.Comment})
	b.FinishSave(id, err)
	if err != nil {
		s.flash.Error(MsgReviewFailed)
		return nil, err
	}
	s.flash.Success(MsgReviewUpdated)
	return s.Load(ctx, storeID)
}

// Cancel descarta la confirmación o el borrador activo de la tienda.
func (s *ReviewsState) Cancel(storeID int64) {
	s.board(storeID).Cancel()
}

// Reviews reseñas cargadas de la tienda.
func (s *ReviewsState) Reviews(storeID int64) []entity.Review {
	return s.board(storeID).Reviews()
}
