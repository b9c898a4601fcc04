// Package marketplace implementa los puertos de la API REST del marketplace:
// un adaptador delgado por recurso sobre apiclient.Client.
package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/apiclient"
)

var _ ports.AuthAPI = (*AuthService)(nil)

// AuthService login, registro y gestión de la cuenta.
type AuthService struct {
	api *apiclient.Client
}

// NewAuthService construye el servicio.
func NewAuthService(api *apiclient.Client) *AuthService {
	return &AuthService{api: api}
}

// Login autentica y guarda las credenciales en el Storage de la sesión.
// Si el backend no incluye el usuario se guarda {email, role}.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*entity.User, error) {
	var resp dto.LoginResponse
	if err := s.api.Do(ctx, apiclient.Call{
		Method:  http.MethodPost,
		Path:    apiclient.LoginPath,
		Body:    req,
		Default: "Error al intentar iniciar sesión",
	}, &resp); err != nil {
		return nil, err
	}
	if resp.Access == "" {
		return nil, &apiclient.APIError{Kind: apiclient.KindUnexpected, Message: "No se recibió el token de acceso."}
	}

	user := resp.User
	if user == nil {
		user = &entity.User{Email: req.Email, Role: resp.Role}
	}
	if user.Role == "" {
		user.Role = resp.Role
	}
	if err := s.saveSession(ctx, resp.Access, resp.Refresh, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) saveSession(ctx context.Context, access, refresh string, user *entity.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("auth: serializar usuario: %w", err)
	}
	st := s.api.Storage()
	for _, kv := range [][2]string{
		{ports.KeyToken, access},
		{ports.KeyRefreshToken, refresh},
		{ports.KeyUserRole, user.Role},
		{ports.KeyUserData, string(raw)},
	} {
		if err := st.Set(ctx, kv[0], kv[1]); err != nil {
			return fmt.Errorf("auth: guardar %s: %w", kv[0], err)
		}
	}
	return nil
}

// Register crea la cuenta. No inicia sesión: eso lo decide quien llama.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*entity.User, error) {
	var resp dto.LoginResponse
	if err := s.api.Do(ctx, apiclient.Call{
		Method:  http.MethodPost,
		Path:    apiclient.RegisterPath,
		Body:    req,
		Default: "Error al crear la cuenta",
	}, &resp); err != nil {
		return nil, err
	}
	if resp.User != nil {
		if resp.User.Username == "" {
			resp.User.Username = req.Username
		}
		return resp.User, nil
	}
	return &entity.User{Email: req.Email, Username: req.Username, Role: req.Role, FirstName: req.FirstName, LastName: req.LastName}, nil
}

// Logout elimina las credenciales locales.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.api.Storage().Delete(ctx, ports.SessionKeys...); err != nil {
		return fmt.Errorf("auth: logout: %w", err)
	}
	return nil
}

func (s *AuthService) detail(ctx context.Context, method, path string, body any, def string) (string, error) {
	var resp dto.DetailResponse
	if err := s.api.Do(ctx, apiclient.Call{Method: method, Path: path, Body: body, Default: def}, &resp); err != nil {
		return "", err
	}
	return resp.Detail, nil
}

// RequestPasswordReset pide el correo de recuperación. El backend responde igual exista o no el email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req dto.PasswordResetRequest) (string, error) {
	return s.detail(ctx, http.MethodPost, "/users/password-reset/", req, "Error al solicitar la recuperación")
}

// ConfirmPasswordReset fija la nueva contraseña con el enlace recibido.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, req dto.PasswordResetConfirm) (string, error) {
	return s.detail(ctx, http.MethodPost, "/users/password-reset-confirm/", req, "Enlace inválido o expirado.")
}

// ChangePassword cambia la contraseña del usuario autenticado.
func (s *AuthService) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (string, error) {
	return s.detail(ctx, http.MethodPost, "/users/change-password/", req, "Error al cambiar la contraseña")
}

// DeleteAccount elimina la cuenta del usuario autenticado.
func (s *AuthService) DeleteAccount(ctx context.Context) error {
	return s.api.Do(ctx, apiclient.Call{
		Method:  http.MethodDelete,
		Path:    "/users/delete-account/",
		Default: "Error al eliminar la cuenta",
	}, nil)
}
