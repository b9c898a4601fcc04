package dto

// WishlistCreate alta de lista.
type WishlistCreate struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// WishlistComponents reemplazo del conjunto de componentes de una lista.
type WishlistComponents struct {
	Components []int64 `json:"components"`
}

// ToggleItemRequest agrega o quita un componente.
type ToggleItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// UpdateQuantityRequest nueva cantidad de una línea.
type UpdateQuantityRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"min=1"`
}

// SaveSearchRequest término buscado para el historial.
type SaveSearchRequest struct {
	Query string `json:"query"`
}
