// Package state contiene los stores de estado de una sesión: usuario, catálogo,
// tiendas, listas de deseos y reseñas. Cada store recibe sus puertos al construirse
// y pertenece a una sola sesión; no hay singletons globales.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/forms"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/pkg/jwt"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

// AuthState usuario autenticado de la sesión.
type AuthState struct {
	api     ports.AuthAPI
	storage ports.Storage
	log     *logger.Logger

	mu        sync.RWMutex
	user      *entity.User
	listeners []func()
}

// NewAuthState construye el store. storage es el mismo namespace que usa el cliente HTTP.
func NewAuthState(api ports.AuthAPI, storage ports.Storage, log *logger.Logger) *AuthState {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthState{api: api, storage: storage, log: log.Component("auth_state")}
}

// Restore recupera el usuario guardado. Requiere user_data y token; si user_data
// está corrupto se cierra la sesión.
func (s *AuthState) Restore(ctx context.Context) (*entity.User, error) {
	raw, okUser, err := s.storage.Get(ctx, ports.KeyUserData)
	if err != nil {
		return nil, fmt.Errorf("auth: leer user_data: %w", err)
	}
	token, okToken, err := s.storage.Get(ctx, ports.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("auth: leer token: %w", err)
	}
	if !okUser || !okToken || token == "" {
		s.setUser(nil)
		return nil, nil
	}
	var u entity.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.Warn().Err(err).Msg("user_data inválido, cerrando sesión")
		if lerr := s.Logout(ctx); lerr != nil {
			return nil, lerr
		}
		return nil, nil
	}
	s.setUser(&u)
	return s.User(), nil
}

// User copia del usuario actual o nil.
func (s *AuthState) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// UserID id del usuario actual (0 si no hay sesión).
func (s *AuthState) UserID() int64 {
	if u := s.User(); u != nil {
		return u.ID
	}
	return 0
}

// IsAuthenticated indica si hay usuario en sesión.
func (s *AuthState) IsAuthenticated() bool { return s.User() != nil }

// HasRole indica si el usuario de la sesión tiene alguno de los roles.
func (s *AuthState) HasRole(roles ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.HasRole(roles...)
}

// OnUserChange registra fn para cuando cambia el usuario de la sesión: login con
// otra cuenta, logout o credenciales vencidas.
func (s *AuthState) OnUserChange(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *AuthState) setUser(u *entity.User) {
	s.mu.Lock()
	changed := !sameUser(s.user, u)
	s.user = u
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()
	if !changed {
		return
	}
	for _, fn := range listeners {
		fn()
	}
}

func sameUser(a, b *entity.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

// Expire olvida el usuario en memoria tras un refresh fallido. El cliente HTTP ya
// borró las credenciales guardadas.
func (s *AuthState) Expire() {
	if s.IsAuthenticated() {
		s.log.Info().Msg("sesión vencida")
	}
	s.setUser(nil)
}

// Login valida el formulario, inicia sesión y devuelve la ruta de destino según el rol.
func (s *AuthState) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error) {
	if err := forms.Validate(req); err != nil {
		return nil, err
	}
	u, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	s.setUser(u)
	s.log.Info().Str("role", u.Role).Msg("sesión iniciada")
	return &dto.LoginResult{User: *u, Redirect: entity.HomePath(u.Role)}, nil
}

// Register crea la cuenta e intenta iniciar sesión con las mismas credenciales.
// Si el login automático falla el registro sigue siendo exitoso.
func (s *AuthState) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResult, error) {
	if err := forms.Validate(req); err != nil {
		return nil, err
	}
	u, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	res := &dto.RegisterResult{User: *u}
	login, err := s.Login(ctx, dto.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		s.log.Warn().Err(err).Msg("registro sin login automático")
		res.LoginMessage = errorMessage(err, "Cuenta creada. Inicie sesión para continuar.")
		return res, nil
	}
	res.AutoLogin = true
	res.Login = login
	return res, nil
}

// Logout borra las credenciales y el usuario en memoria.
func (s *AuthState) Logout(ctx context.Context) error {
	s.setUser(nil)
	return s.api.Logout(ctx)
}

// DeleteAccount elimina la cuenta y cierra la sesión.
func (s *AuthState) DeleteAccount(ctx context.Context) error {
	if err := s.api.DeleteAccount(ctx); err != nil {
		return err
	}
	return s.Logout(ctx)
}

// ChangePassword valida y cambia la contraseña. Devuelve el mensaje del backend.
func (s *AuthState) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (string, error) {
	if err := forms.Validate(req); err != nil {
		return "", err
	}
	return s.api.ChangePassword(ctx, req)
}

// RequestPasswordReset pide el correo de recuperación.
func (s *AuthState) RequestPasswordReset(ctx context.Context, req dto.PasswordResetRequest) (string, error) {
	if err := forms.Validate(req); err != nil {
		return "", err
	}
	return s.api.RequestPasswordReset(ctx, req)
}

// ConfirmPasswordReset fija la nueva contraseña.
func (s *AuthState) ConfirmPasswordReset(ctx context.Context, req dto.PasswordResetConfirm) (string, error) {
	if err := forms.Validate(req); err != nil {
		return "", err
	}
	return s.api.ConfirmPasswordReset(ctx, req)
}

// SessionInfo lo que se sabe del access token guardado, sin verificar la firma.
type SessionInfo struct {
	User      *entity.User `json:"user"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	Expired   bool         `json:"expired"`
}

// Session describe la sesión actual. ErrUnauthorized si no hay token.
func (s *AuthState) Session(ctx context.Context, now time.Time) (*SessionInfo, error) {
	token, ok, err := s.storage.Get(ctx, ports.KeyToken)
	if err != nil {
		return nil, fmt.Errorf("auth: leer token: %w", err)
	}
	if !ok || token == "" {
		return nil, domain.ErrUnauthorized
	}
	info := &SessionInfo{User: s.User()}
	ti, err := jwt.Inspect(token)
	if err != nil {
		// tokens opacos: no hay expiración que mostrar
		return info, nil
	}
	if !ti.ExpiresAt.IsZero() {
		exp := ti.ExpiresAt
		info.ExpiresAt = &exp
	}
	info.Expired = ti.Expired(now, 0)
	return info, nil
}

func errorMessage(err error, def string) string {
	if fe, ok := forms.AsFieldErrors(err); ok {
		return fe.First()
	}
	return domain.Message(err, def)
}
