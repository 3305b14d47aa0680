package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/accounts-api/internal/application/auth"
	"github.com/jhoicas/accounts-api/internal/application/dto"
	"github.com/jhoicas/accounts-api/internal/application/usecase"
	"github.com/jhoicas/accounts-api/internal/domain"
)

// UserHandler maneja el recurso User: registro, activación, CRUD, aprobación,
// signout y lookup geográfico.
type UserHandler struct {
	users  *usecase.UserUseCase
	authUC *auth.AuthUseCase
}

// NewUserHandler construye el handler inyectando los casos de uso.
func NewUserHandler(users *usecase.UserUseCase, authUC *auth.AuthUseCase) *UserHandler {
	return &UserHandler{users: users, authUC: authUC}
}

// Create godoc
// @Summary      Registrar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.users.Register(c.Context(), in, c.IP())
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ActivateAccount godoc
// @Summary      Activar cuenta con el token de confirmación
// @Tags         users
// @Produce      json
// @Param        ctoken  path  string  true  "Token de confirmación"
// @Success      200     {object}  dto.UserResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/v1/users/activate_account/{ctoken} [post]
func (h *UserHandler) ActivateAccount(c *fiber.Ctx) error {
	out, err := h.users.Activate(c.Context(), c.Params("ctoken"))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_CTOKEN", Message: "falta el token de confirmación"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_CTOKEN", Message: "token de confirmación inválido"})
		}
		return internalError(c)
	}
	return c.JSON(out)
}

// Index godoc
// @Summary      Listar clientes del ámbito del actor
// @Tags         users
// @Produce      json
// @Param        page      query  int  false  "Página"              default(1)
// @Param        per_page  query  int  false  "Registros por página" default(20)
// @Success      200  {object}  dto.UserListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/v1/users [get]
func (h *UserHandler) Index(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 20),
	}
	out, err := h.users.List(c.Context(), CurrentUser(c), page)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return forbidden(c)
		}
		return internalError(c)
	}
	return c.JSON(out)
}

// Show godoc
// @Summary      Detalle de usuario
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Show(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario (campos whitelisted)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.users.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return notFound(c)
		}
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return internalError(c)
	}
	return c.JSON(out)
}

// Destroy godoc
// @Summary      Borrar usuario (físico para SuperAdmin, lógico para el resto)
// @Tags         users
// @Param        id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Destroy(c *fiber.Ctx) error {
	err := h.users.Delete(c.Context(), CurrentUser(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return notFound(c)
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			return forbidden(c)
		}
		return internalError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SignOut godoc
// @Summary      Expirar la sesión actual
// @Tags         users
// @Param        id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id}/signout [post]
func (h *UserHandler) SignOut(c *fiber.Ctx) error {
	err := h.authUC.SignOut(c.Context(), CurrentUser(c), PresentedToken(c))
	if err != nil {
		// El cliente intentó expirar un token inválido o ya expirado.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Approve godoc
// @Summary      Aprobar cuenta (gate administrativo)
// @Tags         users
// @Param        id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id}/approve [post]
func (h *UserHandler) Approve(c *fiber.Ctx) error {
	return h.setApproved(c, true)
}

// Unapprove godoc
// @Summary      Desaprobar cuenta y purgar sus sesiones
// @Tags         users
// @Param        id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/users/{id}/unapprove [post]
func (h *UserHandler) Unapprove(c *fiber.Ctx) error {
	return h.setApproved(c, false)
}

func (h *UserHandler) setApproved(c *fiber.Ctx, approved bool) error {
	err := h.users.SetApproved(c.Context(), CurrentUser(c), c.Params("id"), approved)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return notFound(c)
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			return forbidden(c)
		}
		return internalError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GeoLocation godoc
// @Summary      Lookup geográfico best-effort de la IP del cliente
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.GeoLocationResponse
// @Router       /api/v1/users/geo_location [get]
func (h *UserHandler) GeoLocation(c *fiber.Ctx) error {
	return c.JSON(dto.GeoLocationResponse{Location: h.users.GeoLocate(c.IP())})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no autorizado para esta operación"})
}

// internalError nunca filtra detalle interno al caller.
func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "algo salió mal, intente de nuevo"})
}
