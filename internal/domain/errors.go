package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Las fallas de autenticación y
// autorización son terminales para la request: el núcleo nunca reintenta.
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrEmailTaken      = errors.New("el email ya está registrado")
	ErrValidation      = errors.New("entrada inválida")
	ErrUnauthenticated = errors.New("no autenticado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrInternal        = errors.New("error interno")
)

// Unauthenticatedf envuelve ErrUnauthenticated con la razón concreta de la falla
// (email no registrado, no activado, no aprobado, password inválido, sesión expirada).
// El mensaje nunca incluye el token ni el hash; solo la razón.
func Unauthenticatedf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUnauthenticated)
}

// Unauthorizedf envuelve ErrUnauthorized: el actor está autenticado pero su rol o
// ámbito no alcanza para la operación.
func Unauthorizedf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUnauthorized)
}

// Validationf envuelve ErrValidation con el detalle del campo rechazado.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}
