package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUsernameExists     = errors.New("el username ya está registrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrValidation         = errors.New("validación de campos fallida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAlreadyDeleted     = errors.New("el recurso ya está eliminado")
	ErrNotDeleted         = errors.New("el recurso no está eliminado")
	ErrRoleImmutable      = errors.New("el rol admin no puede cambiarse")
)
