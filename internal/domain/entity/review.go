package entity

import "time"

// Review calificación (1 a 5) de un cliente a una tienda.
type Review struct {
	ID        int64     `json:"id"`
	User      int64     `json:"user"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name,omitempty"`
	Store     int64     `json:"store"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Author nombre a mostrar: user_name si existe, si no el email.
func (r Review) Author() string {
	if r.UserName != "" {
		return r.UserName
	}
	return r.UserEmail
}
