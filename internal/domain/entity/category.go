package entity

// Category categoría de componentes (Resistencias, Microcontroladores, ...).
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
