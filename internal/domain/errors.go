package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrSessionExpired = errors.New("la sesión expiró, inicie sesión nuevamente")
	ErrNotOwner       = errors.New("solo el autor puede modificar esta reseña")
	ErrReviewBusy     = errors.New("la reseña tiene una operación en curso")
	ErrNoWishlist     = errors.New("no hay una lista de deseos seleccionada")
	ErrUnreachable    = errors.New("servidor inalcanzable")
)

// UserMessenger lo implementan los errores que traen un mensaje apto para el usuario.
type UserMessenger interface {
	UserMessage() string
}

// Message mensaje para el usuario contenido en err, o def.
func Message(err error, def string) string {
	var m UserMessenger
	if errors.As(err, &m) {
		if s := m.UserMessage(); s != "" {
			return s
		}
	}
	return def
}
