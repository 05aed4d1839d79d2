package dto

// ErrorResponse cuerpo de error HTTP. Field es la ruta JSON del primer campo inválido (si aplica).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
