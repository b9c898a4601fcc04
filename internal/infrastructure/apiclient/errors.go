package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
)

// NetworkMessage mensaje para fallos sin respuesta del servidor.
const NetworkMessage = "No hay conexión con el servidor. Verifique su internet."

// Kind clasifica el origen de un error remoto.
type Kind string

const (
	KindNetwork    Kind = "network"    // no hubo respuesta
	KindHTTP       Kind = "http"       // respuesta de error del backend
	KindValidation Kind = "validation" // 400 con errores por campo
	KindUnexpected Kind = "unexpected" // respuesta ilegible o request mal armado
)

// APIError error de toda llamada al backend. Message siempre es apto para mostrar al usuario.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api %s %d: %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// UserMessage implementa domain.UserMessenger.
func (e *APIError) UserMessage() string { return e.Message }

// FieldMessages primer mensaje de cada campo.
func (e *APIError) FieldMessages() map[string]string {
	if len(e.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.Fields))
	for k, v := range e.Fields {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// AsAPIError extrae el *APIError de err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Message mensaje para el usuario: el del APIError o def si err es de otro tipo.
func Message(err error, def string) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return def
}

// IsStatus indica si err es un APIError con ese código HTTP.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == status
}

func networkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: NetworkMessage, Err: errors.Join(domain.ErrUnreachable, err)}
}

func unexpectedError(msg string, err error) *APIError {
	return &APIError{Kind: KindUnexpected, Message: msg, Err: err}
}

// sentinelFor error de dominio equivalente a un código HTTP.
func sentinelFor(status int) error {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrInvalidInput
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}

// httpError interpreta el cuerpo de error de Django REST Framework:
// {"detail": "..."}, {"error": "..."}, {"non_field_errors": [...]},
// {"campo": ["..."]} o una lista de mensajes.
func httpError(status int, body []byte, def string) *APIError {
	e := &APIError{Kind: KindHTTP, Status: status, Message: def, Err: sentinelFor(status)}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if json.Unmarshal(body, &list) == nil && len(list) > 0 {
			e.Message = list[0]
		}
		return e
	}

	var payload map[string]json.RawMessage
	if json.Unmarshal(body, &payload) != nil {
		return e
	}

	var msg string
	for _, key := range []string{"detail", "error", "message"} {
		if raw, ok := payload[key]; ok {
			if s := messages(raw); len(s) > 0 {
				msg = s[0]
				break
			}
		}
	}
	if raw, ok := payload["non_field_errors"]; ok && msg == "" {
		if s := messages(raw); len(s) > 0 {
			msg = s[0]
		}
	}

	fields := map[string][]string{}
	for key, raw := range payload {
		switch key {
		case "detail", "error", "message", "non_field_errors", "code", "status":
			continue
		}
		if s := messages(raw); len(s) > 0 {
			fields[key] = s
		}
	}
	if len(fields) > 0 {
		e.Fields = fields
		if status == http.StatusBadRequest {
			e.Kind = KindValidation
		}
		if msg == "" && status == http.StatusBadRequest {
			msg = firstField(fields)
		}
	}
	if msg != "" {
		e.Message = msg
	}
	return e
}

// messages acepta "texto" o ["texto", ...].
func messages(raw json.RawMessage) []string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if s == "" {
			return nil
		}
		return []string{s}
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return list
	}
	return nil
}

func firstField(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fields[keys[0]][0]
}
