package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrBatchIDExhausted  = errors.New("no se pudo asignar un batch_id único")
)

// ValidationError error corregible por el usuario. Field identifica el campo ofensivo
// y Message es el texto que se muestra tal cual al llamador.
type ValidationError struct {
	Field   string
	Message string
	Kind    error // ErrInvalidInput o ErrInsufficientStock
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Kind }

// NewValidationError construye un ValidationError de tipo ErrInvalidInput.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Kind: ErrInvalidInput}
}

// ConflictError violación de unicidad (código de producto, batch_id).
type ConflictError struct {
	Resource string
	Field    string
	Value    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %q ya existe", e.Resource, e.Field, e.Value)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NotFound envuelve ErrNotFound con el recurso que falta.
func NotFound(resource, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, resource, id)
}
