package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/state"
)

// Locals keys del contexto Fiber.
const (
	LocalSession   = "session"
	LocalSessionID = "session_id"
)

// CookieConfig cookie de sesión.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// SessionMiddleware resuelve la sesión de la cookie (o crea una) y la deja en c.Locals.
func SessionMiddleware(reg *Registry, cookie CookieConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, id, created := reg.Get(c.UserContext(), c.Cookies(cookie.Name))
		if created {
			c.Cookie(&fiber.Cookie{
				Name:     cookie.Name,
				Value:    id,
				Path:     "/",
				HTTPOnly: true,
				Secure:   cookie.Secure,
				SameSite: fiber.CookieSameSiteLaxMode,
				MaxAge:   int(cookie.MaxAge.Seconds()),
			})
		}
		c.Locals(LocalSession, sess)
		c.Locals(LocalSessionID, id)
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después de SessionMiddleware).
func GetSession(c *fiber.Ctx) *state.Session {
	s, _ := c.Locals(LocalSession).(*state.Session)
	return s
}

// RequireAuth exige usuario en sesión.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if sess == nil || !sess.Auth.IsAuthenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Inicie sesión para continuar"})
		}
		return c.Next()
	}
}

// RequireRole exige que el usuario tenga alguno de los roles. Sin sesión responde 401; con otro rol, 403.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if sess == nil || !sess.Auth.IsAuthenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Inicie sesión para continuar"})
		}
		if len(roles) > 0 && !sess.Auth.HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "No tiene permisos para esta sección"})
		}
		return c.Next()
	}
}

// GetRole rol del usuario en sesión ("" si no hay).
func GetRole(c *fiber.Ctx) string {
	if sess := GetSession(c); sess != nil {
		if u := sess.Auth.User(); u != nil {
			return u.Role
		}
	}
	return ""
}
