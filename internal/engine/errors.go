package engine

import "errors"

// Business-rule failures: these reject and callers are expected to catch
// them. Validation failures (bad credentials, duplicates) are returned as
// Result values instead, and unknown routes resolve to an empty object.
var (
	ErrSessionExpired   = errors.New("sesión expirada en modo demo")
	ErrExamNotFound     = errors.New("examen no encontrado")
	ErrTopicNotFound    = errors.New("tema no encontrado")
	ErrPostNotFound     = errors.New("respuesta no encontrada")
	ErrResourceNotFound = errors.New("recurso no encontrado")
	ErrForbidden        = errors.New("operación no permitida")
)

// Result is the soft-failure/success envelope for validation outcomes.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
