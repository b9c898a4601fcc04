package marketplace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/apiclient"
)

var _ ports.ReviewAPI = (*ReviewService)(nil)

const reviewError = "Error al procesar la solicitud"

// ReviewService reseñas.
type ReviewService struct {
	api *apiclient.Client
}

// NewReviewService construye el servicio.
func NewReviewService(api *apiclient.Client) *ReviewService {
	return &ReviewService{api: api}
}

// ListByStore reseñas de una tienda.
func (s *ReviewService) ListByStore(ctx context.Context, storeID int64) ([]entity.Review, error) {
	var out []entity.Review
	if err := s.api.Do(ctx, apiclient.Call{
		Method:  http.MethodGet,
		Path:    "/reviews/",
		Query:   url.Values{"store": {strconv.FormatInt(storeID, 10)}},
		Default: "Error al cargar las reseñas",
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create publica una reseña. El backend rechaza reseñas duplicadas o a la propia tienda.
func (s *ReviewService) Create(ctx context.Context, in dto.ReviewInput) (*entity.Review, error) {
	var out entity.Review
	if err := s.api.Do(ctx, apiclient.Call{Method: http.MethodPost, Path: "/reviews/", Body: in, Default: reviewError}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edita calificación y comentario.
func (s *ReviewService) Update(ctx context.Context, id int64, in dto.ReviewPatch) (*entity.Review, error) {
	var out entity.Review
	if err := s.api.Do(ctx, apiclient.Call{Method: http.MethodPatch, Path: fmt.Sprintf("/reviews/%d/", id), Body: in, Default: reviewError}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina una reseña.
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	return s.api.Do(ctx, apiclient.Call{Method: http.MethodDelete, Path: fmt.Sprintf("/reviews/%d/", id), Default: reviewError}, nil)
}
