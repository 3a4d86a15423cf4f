package domain

import "errors"

// Errores de dominio compartidos. El cliente REST los mapea desde los códigos
// HTTP del backend para que los llamadores usen errors.Is en vez de números.
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnavailable      = errors.New("servicio no disponible")
	ErrNotAuthenticated = errors.New("sesión no iniciada")
)
