package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
)

// ValidationError describe la primera violación encontrada en una entrada (campo + mensaje).
// Envuelve ErrInvalidInput o ErrDuplicate para que los callers usen errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implementa error.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap expone el sentinel subyacente.
func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidInput
	}
	return e.Err
}

// NewValidationError construye un ValidationError de entrada inválida.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: ErrInvalidInput}
}

// NewDuplicateError construye un ValidationError por clave única repetida (sku, grnNo, dispatchNo).
func NewDuplicateError(field, value string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%q ya existe", value),
		Err:     ErrDuplicate,
	}
}
