package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/accounts-api/internal/application/auth"
	"github.com/jhoicas/accounts-api/internal/application/dto"
	"github.com/jhoicas/accounts-api/internal/domain"
	"github.com/jhoicas/accounts-api/internal/domain/entity"
	"github.com/jhoicas/accounts-api/pkg/config"
	pkgjwt "github.com/jhoicas/accounts-api/pkg/jwt"
)

// SessionHandler maneja el login.
type SessionHandler struct {
	uc     *auth.AuthUseCase
	jwtCfg config.JWTConfig
}

// NewSessionHandler construye el handler de sesiones.
func NewSessionHandler(uc *auth.AuthUseCase, jwtCfg config.JWTConfig) *SessionHandler {
	return &SessionHandler{uc: uc, jwtCfg: jwtCfg}
}

// Create godoc
// @Summary      Iniciar sesión
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSessionRequest  true  "email, password"
// @Success      201   {object}  dto.CreateSessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}

	rc := entity.RequestContext{IP: c.IP(), UserAgent: c.Get("User-Agent")}
	out, err := h.uc.Login(c.Context(), in.Email, in.Password, rc)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: unauthenticatedCode(err), Message: err.Error()})
		}
		if errors.Is(err, domain.ErrConflict) {
			// emisión de token agotó los reintentos por colisión
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TOKEN_CONFLICT", Message: "no se pudo emitir la sesión, intente de nuevo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "algo salió mal, intente de nuevo"})
	}

	// Forma histórica de la respuesta: el resumen del usuario y su token de sesión
	// viajan dentro de un sobre JWT firmado. La verificación posterior NO usa el
	// sobre: el cliente presenta email y token en headers y el token se busca en
	// el ledger.
	envelope, err := pkgjwt.Generate(
		h.jwtCfg.Secret,
		out.User.ID, out.User.Email, out.User.Name, out.User.Role,
		out.Token,
		h.jwtCfg.Issuer, h.jwtCfg.Expiration,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "algo salió mal, intente de nuevo"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateSessionResponse{Token: envelope})
}
