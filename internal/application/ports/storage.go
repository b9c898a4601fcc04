package ports

import "context"

// Claves del almacenamiento del cliente (equivalente al localStorage del navegador).
const (
	KeyToken        = "token"
	KeyRefreshToken = "refresh_token"
	KeyUserRole     = "user_role"
	KeyUserData     = "user_data"
)

// SessionKeys todas las claves que guarda una sesión autenticada.
var SessionKeys = []string{KeyToken, KeyRefreshToken, KeyUserRole, KeyUserData}

// Storage almacenamiento clave/valor de una sola sesión (un namespace).
// Get devuelve ok=false si la clave no existe.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	// Clear elimina todas las claves del namespace.
	Clear(ctx context.Context) error
}

// StorageProvider entrega un Storage aislado por namespace (una sesión del BFF, o "default" en el CLI).
type StorageProvider interface {
	Scope(namespace string) Storage
	Close() error
}
