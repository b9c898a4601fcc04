package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultWishlistName nombre de la lista que se crea cuando el usuario no tiene ninguna.
const DefaultWishlistName = "Mi Lista de Deseos"

// WishlistItem línea de una lista: el componente va anidado completo.
type WishlistItem struct {
	ID        int64           `json:"id"`
	Component Component       `json:"component"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	AddedAt   time.Time       `json:"added_at"`
}

// Wishlist lista de deseos / presupuesto de un usuario.
// El backend es dueño de TotalBudget; el cliente nunca lo recalcula.
type Wishlist struct {
	ID          int64           `json:"id"`
	User        int64           `json:"user"`
	UserEmail   string          `json:"user_email"`
	Name        string          `json:"name"`
	Items       []WishlistItem  `json:"items"`
	TotalBudget decimal.Decimal `json:"total_budget"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Contains indica si el componente está en la lista.
func (w *Wishlist) Contains(componentID int64) bool {
	return w.Item(componentID) != nil
}

// Item devuelve la línea del componente o nil.
func (w *Wishlist) Item(componentID int64) *WishlistItem {
	if w == nil {
		return nil
	}
	for i := range w.Items {
		if w.Items[i].Component.ID == componentID {
			return &w.Items[i]
		}
	}
	return nil
}

// Budget presupuesto exportable (export_budget).
type Budget struct {
	ProjectName string          `json:"project_name"`
	User        string          `json:"user"`
	Date        string          `json:"date"`
	TotalBudget decimal.Decimal `json:"total_budget"`
	Items       []BudgetItem    `json:"items"`
}

// BudgetItem línea del presupuesto.
type BudgetItem struct {
	Component string          `json:"component"`
	Store     string          `json:"store"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
