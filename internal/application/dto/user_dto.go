package dto

import "github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"

// LoginRequest credenciales para /users/login/.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse respuesta del backend: par de tokens, rol y usuario.
type LoginResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	Role    string       `json:"role"`
	User    *entity.User `json:"user"`
}

// LoginResult resultado del login para la interfaz: usuario y ruta de destino.
type LoginResult struct {
	User     entity.User `json:"user"`
	Redirect string      `json:"redirect"`
}

// RegisterRequest formulario de registro. store_name y store_address son obligatorios solo para proveedores.
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Username     string `json:"username" validate:"required,min=4"`
	Password     string `json:"password" validate:"required,min=6"`
	FirstName    string `json:"first_name" validate:"required,notblank"`
	LastName     string `json:"last_name" validate:"required,notblank"`
	Role         string `json:"role" validate:"required,oneof=cliente proveedor"`
	StoreName    string `json:"store_name,omitempty"`
	StoreAddress string `json:"store_address,omitempty"`
}

// RegisterResult resultado del registro; AutoLogin indica si el login automático funcionó.
type RegisterResult struct {
	User      entity.User  `json:"user"`
	AutoLogin bool         `json:"auto_login"`
	Login     *LoginResult `json:"login,omitempty"`
	// LoginMessage motivo si el login automático falló.
	LoginMessage string `json:"login_message,omitempty"`
}

// PasswordResetRequest solicitud de correo de recuperación.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirm confirmación con el enlace recibido por correo.
type PasswordResetConfirm struct {
	UID         string `json:"uidb64" validate:"required"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ChangePasswordRequest cambio de contraseña autenticado.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// DetailResponse respuesta genérica {"detail": "..."} del backend.
type DetailResponse struct {
	Detail string `json:"detail"`
}
