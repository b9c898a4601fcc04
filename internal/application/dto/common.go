package dto

// ErrorResponse cuerpo de error HTTP. Fields trae el mensaje de cada campo inválido.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse respuesta con solo un mensaje (flash).
type MessageResponse struct {
	Message string `json:"message"`
}

// Upload archivo recibido en un formulario (imagen de componente o tienda).
type Upload struct {
	Name        string `json:"-"`
	ContentType string `json:"-"`
	Data        []byte `json:"-"`
}
