package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/accounts-api/internal/application/auth"
	"github.com/jhoicas/accounts-api/internal/application/dto"
	"github.com/jhoicas/accounts-api/internal/domain/entity"
)

// Headers de autenticación de la API (forma histórica: el cliente presenta su email
// y el token de sesión opaco por separado; el token se busca en el ledger, nunca se
// decodifica).
const (
	HeaderUserEmail = "X-USER-EMAIL"
	HeaderUserToken = "X-USER-TOKEN"
)

// Locals keys para el usuario autenticado y el token presentado.
const (
	localCurrentUser    = "current_user"
	localPresentedToken = "presented_token"
)

// TokenAuth valida los headers X-USER-EMAIL / X-USER-TOKEN contra el núcleo de auth
// y deja el usuario resuelto en c.Locals. El estado de la cuenta (activada, aprobada)
// se re-verifica en cada request; un gate fallido ya purgó los tokens del usuario
// antes de llegar aquí.
func TokenAuth(uc *auth.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.Get(HeaderUserEmail)
		token := c.Get(HeaderUserToken)

		user, err := uc.VerifyRequest(c.Context(), email, token)
		if err != nil {
			c.Set("WWW-Authenticate", "Token realm=Application")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    unauthenticatedCode(err),
				Message: err.Error(),
			})
		}

		c.Locals(localCurrentUser, user)
		c.Locals(localPresentedToken, token)
		return c.Next()
	}
}

// CurrentUser devuelve el usuario autenticado del contexto (después de TokenAuth).
// El valor viaja siempre explícito por locals, nunca en estado ambiente.
func CurrentUser(c *fiber.Ctx) *entity.User {
	v := c.Locals(localCurrentUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// PresentedToken devuelve el token de sesión presentado por la request actual.
func PresentedToken(c *fiber.Ctx) string {
	v := c.Locals(localPresentedToken)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// unauthenticatedCode mapea cada razón de falla de autenticación a su código estable.
func unauthenticatedCode(err error) string {
	switch {
	case errors.Is(err, auth.ErrEmailNotRegistered):
		return "EMAIL_NOT_REGISTERED"
	case errors.Is(err, auth.ErrNotActivated):
		return "NOT_ACTIVATED"
	case errors.Is(err, auth.ErrNotApproved):
		return "NOT_APPROVED"
	case errors.Is(err, auth.ErrInvalidPassword):
		return "INVALID_PASSWORD"
	case errors.Is(err, auth.ErrSessionExpired):
		return "SESSION_EXPIRED"
	case errors.Is(err, auth.ErrInvalidToken):
		return "INVALID_TOKEN"
	default:
		return "UNAUTHORIZED_USER"
	}
}
