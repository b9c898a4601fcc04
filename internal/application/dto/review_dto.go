package dto

// ReviewInput creación de reseña.
type ReviewInput struct {
	Store   int64  `json:"store" validate:"required,gt=0"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,notblank"`
}

// ReviewPatch edición de reseña.
type ReviewPatch struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,notblank"`
}
