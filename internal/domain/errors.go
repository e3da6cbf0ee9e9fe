package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrSyncInProgress = errors.New("ya hay una sincronización en curso")
	ErrNotConfigured  = errors.New("integración no configurada")
	ErrInvalidDates   = errors.New("la fecha de fin es anterior a la de inicio")
)
