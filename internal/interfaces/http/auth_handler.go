package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/state"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

// AuthHandler login, registro y cuenta del usuario de la sesión.
type AuthHandler struct {
	log *logger.Logger
	now func() time.Time
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(log *logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthHandler{log: log.Component("http.auth"), now: time.Now}
}

// MeResponse usuario de la sesión y mensaje flash vigente.
type MeResponse struct {
	Authenticated bool                `json:"authenticated"`
	User          *entity.User        `json:"user,omitempty"`
	Home          string              `json:"home,omitempty"`
	Flash         *state.FlashMessage `json:"flash,omitempty"`
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Guarda el par de tokens en la sesión y devuelve la ruta de inicio según el rol.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := GetSession(c).Auth.Login(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	h.log.Info().Int64("user_id", out.User.ID).Str("role", out.User.Role).Msg("login")
	return c.JSON(out)
}

// Register godoc
// @Summary      Crear cuenta
// @Description  Registra al usuario e intenta el login automático. Si el login falla la cuenta igual queda creada.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "datos del usuario; store_name y store_address para proveedores"
// @Success      201   {object}  dto.RegisterResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := GetSession(c).Auth.Register(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := GetSession(c)
	if err := sess.Auth.Logout(c.Context()); err != nil {
		return writeError(c, err)
	}
	sess.Wishlists.Reset()
	return c.JSON(dto.MessageResponse{Message: "Sesión cerrada"})
}

// Me godoc
// @Summary      Usuario de la sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  MeResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := GetSession(c)
	out := MeResponse{}
	if u := sess.Auth.User(); u != nil {
		out.Authenticated = true
		out.User = u
		out.Home = entity.HomePath(u.Role)
	}
	if msg, ok := sess.Flash.Current(); ok {
		out.Flash = &msg
	}
	return c.JSON(out)
}

// SessionInfo godoc
// @Summary      Vencimiento del token de acceso
// @Tags         auth
// @Security     Session
// @Produce      json
// @Success      200  {object}  state.SessionInfo
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) SessionInfo(c *fiber.Ctx) error {
	info, err := GetSession(c).Auth.Session(c.Context(), h.now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(info)
}

// RequestPasswordReset godoc
// @Summary      Solicitar correo de recuperación
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordResetRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var in dto.PasswordResetRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	msg, err := GetSession(c).Auth.RequestPasswordReset(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// ConfirmPasswordReset godoc
// @Summary      Restablecer contraseña con el enlace del correo
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordResetConfirm  true  "uidb64, token, new_password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var in dto.PasswordResetConfirm
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	msg, err := GetSession(c).Auth.ConfirmPasswordReset(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         auth
// @Security     Session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "old_password, new_password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	msg, err := GetSession(c).Auth.ChangePassword(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// DeleteAccount godoc
// @Summary      Eliminar la cuenta
// @Description  Borra la cuenta en el backend y cierra la sesión.
// @Tags         auth
// @Security     Session
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/account [delete]
func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	sess := GetSession(c)
	uid := sess.Auth.UserID()
	if err := sess.Auth.DeleteAccount(c.Context()); err != nil {
		return writeError(c, err)
	}
	sess.Wishlists.Reset()
	h.log.Info().Int64("user_id", uid).Msg("cuenta eliminada")
	return c.SendStatus(fiber.StatusNoContent)
}

// Flash godoc
// @Summary      Mensaje flash vigente
// @Description  Devuelve el último aviso de éxito o error mientras no haya expirado.
// @Tags         session
// @Produce      json
// @Success      200  {object}  state.FlashMessage
// @Success      204
// @Router       /api/session/flash [get]
func (h *AuthHandler) Flash(c *fiber.Ctx) error {
	msg, ok := GetSession(c).Flash.Current()
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(msg)
}
