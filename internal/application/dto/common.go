package dto

// ErrorResponse cuerpo de error HTTP. Fields solo aparece en errores de validación (campo -> mensaje).
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse respuesta de confirmación sin datos.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse confirmación que además entrega un token re-emitido.
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// SearchQuery parámetro ?name= de las búsquedas por nombre.
type SearchQuery struct {
	Name string `query:"name" validate:"required,max=100"`
}
