package entity

import "slices"

// Roles válidos para User.
const (
	RoleCliente   = "cliente"
	RoleProveedor = "proveedor"
	RoleAdmin     = "admin"
)

// User usuario autenticado tal como lo devuelve el backend en el login (user_data).
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"` // cliente, proveedor, admin
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// HasRole indica si el usuario tiene alguno de los roles dados.
func (u *User) HasRole(roles ...string) bool {
	if u == nil {
		return false
	}
	return slices.Contains(roles, u.Role)
}

// ValidRole indica si role es uno de los tres roles del marketplace.
func ValidRole(role string) bool {
	switch role {
	case RoleCliente, RoleProveedor, RoleAdmin:
		return true
	}
	return false
}

// HomePath ruta a la que se redirige tras el login según el rol.
func HomePath(role string) string {
	switch role {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleProveedor:
		return "/inventory"
	default:
		return "/"
	}
}
