package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/accounts-api/internal/application/auth"
	"github.com/jhoicas/accounts-api/internal/application/dto"
	"github.com/jhoicas/accounts-api/internal/application/ports"
	"github.com/jhoicas/accounts-api/internal/domain"
	"github.com/jhoicas/accounts-api/internal/domain/entity"
	"github.com/jhoicas/accounts-api/internal/domain/repository"
	"github.com/jhoicas/accounts-api/pkg/logger"
)

// emailRegex formato mínimo de email aceptado en el registro.
var emailRegex = regexp.MustCompile(`^[\w+\-.]+@[a-zA-Z\-.]+\.[a-zA-Z]+$`)

// UserUseCase ciclo de vida de cuentas: registro, activación por token de
// confirmación, aprobación administrativa, actualización, listado paginado y
// borrado (físico o lógico según rol). Las mutaciones destructivas o privilegiadas
// pasan primero por el Authorizer y purgan los tokens del afectado.
type UserUseCase struct {
	users     repository.UserRepository
	ledger    *auth.TokenLedger
	authz     *auth.Authorizer
	passwords *auth.PasswordVerifier
	mailer    ports.Mailer
	geo       ports.GeoResolver
	log       *logger.Logger
}

// NewUserUseCase construye el caso de uso. mailer y geo pueden ser nil (colaboradores
// best-effort); el resto es obligatorio.
func NewUserUseCase(
	users repository.UserRepository,
	ledger *auth.TokenLedger,
	authz *auth.Authorizer,
	passwords *auth.PasswordVerifier,
	mailer ports.Mailer,
	geo ports.GeoResolver,
	log *logger.Logger,
) *UserUseCase {
	return &UserUseCase{
		users:     users,
		ledger:    ledger,
		authz:     authz,
		passwords: passwords,
		mailer:    mailer,
		geo:       geo,
		log:       log,
	}
}

// Register crea la cuenta sin activar y sin aprobar, hashea el password, enriquece
// el country code vía geo-IP (best-effort) y envía el mail de activación.
func (uc *UserUseCase) Register(ctx context.Context, in dto.RegisterUserRequest, clientIP string) (*dto.UserResponse, error) {
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	hash, err := uc.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}
	ctoken, err := auth.RandomToken(24)
	if err != nil {
		return nil, fmt.Errorf("token de confirmación: %w", err)
	}

	role := in.Role
	if role == "" {
		role = entity.RoleCustomer
	}

	now := time.Now()
	user := &entity.User{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Email:              entity.NormalizeEmail(in.Email),
		PasswordHash:       hash,
		Role:               role,
		Activated:          false,
		Approved:           false,
		PrimaryMobile:      in.PrimaryMobile,
		CountryCode:        in.CountryCode,
		ConfirmationToken:  ctoken,
		ConfirmationSentAt: &now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	uc.enrichCountryCode(user, clientIP)

	addresses := make([]entity.Address, 0, len(in.Addresses))
	for _, a := range in.Addresses {
		addresses = append(addresses, entity.Address{
			ID:          uuid.New().String(),
			UserID:      user.ID,
			AddressType: a.AddressType,
			Street:      a.Street,
			City:        a.City,
			State:       a.State,
			Zipcode:     a.Zipcode,
		})
	}

	if err := uc.users.Create(ctx, user, addresses); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("crear usuario: %w", err)
	}

	if uc.mailer != nil {
		if err := uc.mailer.SendActivation(user, ctoken); err != nil {
			uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("mail de activación no enviado")
		}
	}

	resp := toUserResponse(user)
	resp.Addresses = toAddressResponses(addresses)
	return resp, nil
}

// Activate intercambia el token de confirmación emitido por email: marca la cuenta
// como activada, invalida el token y envía el mail de bienvenida.
func (uc *UserUseCase) Activate(ctx context.Context, ctoken string) (*dto.UserResponse, error) {
	if ctoken == "" {
		return nil, domain.Validationf("falta el token de confirmación")
	}
	user, err := uc.users.GetByConfirmationToken(ctx, ctoken)
	if err != nil {
		return nil, fmt.Errorf("buscar por token de confirmación: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	user.Activated = true
	user.ActivatedAt = &now
	user.ConfirmationToken = ""
	user.UpdatedAt = now
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("activar usuario: %w", err)
	}

	if uc.mailer != nil {
		if err := uc.mailer.SendWelcome(user); err != nil {
			uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("mail de bienvenida no enviado")
		}
	}
	return toUserResponse(user), nil
}

// GetByID devuelve el detalle del usuario con sus direcciones.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	addresses, err := uc.users.ListAddresses(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	resp.Addresses = toAddressResponses(addresses)
	return resp, nil
}

// Update aplica los campos whitelisted (nombre, rol, móvil, country code, zona
// horaria). Email y password no se tocan por esta vía.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Name != nil {
		if *in.Name == "" || len(*in.Name) > 50 {
			return nil, domain.Validationf("name debe tener entre 1 y 50 caracteres")
		}
		user.Name = *in.Name
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.Validationf("role inválido: %s", *in.Role)
		}
		user.Role = *in.Role
	}
	if in.PrimaryMobile != nil {
		if *in.PrimaryMobile != "" && len(*in.PrimaryMobile) < 10 {
			return nil, domain.Validationf("primary_mobile debe tener al menos 10 dígitos")
		}
		user.PrimaryMobile = *in.PrimaryMobile
	}
	if in.CountryCode != nil {
		user.CountryCode = *in.CountryCode
	}
	if in.TimeZone != nil {
		user.TimeZone = *in.TimeZone
	}
	user.UpdatedAt = time.Now()

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("actualizar usuario: %w", err)
	}
	return toUserResponse(user), nil
}

// List lista los clientes visibles para el actor, paginados. Un UtilityAdmin ve solo
// su utility; un SuperAdmin ve todo.
func (uc *UserUseCase) List(ctx context.Context, actor *entity.User, page dto.PageRequest) (*dto.UserListResponse, error) {
	if !uc.authz.CanListCustomers(actor) {
		return nil, domain.Unauthorizedf("el rol %s no puede listar clientes", actor.Role)
	}
	page.DefaultPage()

	scope := ""
	if actor.IsUtilityAdmin() {
		scope = actor.UtilityID
	}

	total, err := uc.users.CountCustomers(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("contar clientes: %w", err)
	}
	users, err := uc.users.ListCustomers(ctx, scope, page.PerPage, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}

	out := &dto.UserListResponse{
		Users: make([]dto.UserResponse, 0, len(users)),
		Meta:  dto.NewPageMeta(page.Page, page.PerPage, total),
	}
	for _, u := range users {
		out.Users = append(out.Users, *toUserResponse(u))
	}
	return out, nil
}

// Delete borra al usuario objetivo según la política de roles: SuperAdmin destruye
// la fila (irreversible); cualquier otro rol autorizado marca deleted=true. En ambos
// casos se purgan todos los tokens del objetivo.
func (uc *UserUseCase) Delete(ctx context.Context, actor *entity.User, targetID string) error {
	target, err := uc.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrUserNotFound
	}
	if !uc.authz.CanDelete(actor) {
		return domain.Unauthorizedf("el rol %s no puede borrar usuarios", actor.Role)
	}
	if !uc.authz.CanManageUtilityScope(actor, target) {
		return domain.Unauthorizedf("el usuario pertenece a otra utility")
	}

	if uc.authz.HardDeletes(actor) {
		err = uc.users.Delete(ctx, target.ID)
	} else {
		err = uc.users.SoftDelete(ctx, target.ID)
	}
	if err != nil {
		return fmt.Errorf("borrar usuario: %w", err)
	}
	if err := uc.ledger.PurgeAll(ctx, target); err != nil {
		return fmt.Errorf("purgar tokens del usuario borrado: %w", err)
	}
	return nil
}

// SetApproved cambia el gate administrativo de la cuenta. Aprobar una cuenta ya
// aprobada es un no-op (no se re-envía el mail). Desaprobar purga todos los tokens:
// el usuario no debe conservar sesión usable.
func (uc *UserUseCase) SetApproved(ctx context.Context, actor *entity.User, targetID string, approved bool) error {
	target, err := uc.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrUserNotFound
	}
	if !uc.authz.CanApprove(actor) {
		return domain.Unauthorizedf("el rol %s no puede aprobar cuentas", actor.Role)
	}
	if !uc.authz.CanManageUtilityScope(actor, target) {
		return domain.Unauthorizedf("el usuario pertenece a otra utility")
	}

	if approved {
		if target.Approved {
			return nil
		}
		target.Approved = true
		target.UpdatedAt = time.Now()
		if err := uc.users.Update(ctx, target); err != nil {
			return fmt.Errorf("aprobar usuario: %w", err)
		}
		if uc.mailer != nil {
			if err := uc.mailer.SendApproved(target); err != nil {
				uc.log.Warn().Err(err).Str("user_id", target.ID).Msg("mail de aprobación no enviado")
			}
		}
		return nil
	}

	target.Approved = false
	target.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, target); err != nil {
		return fmt.Errorf("desaprobar usuario: %w", err)
	}
	if err := uc.ledger.PurgeAll(ctx, target); err != nil {
		return fmt.Errorf("purgar tokens del usuario desaprobado: %w", err)
	}
	return nil
}

// GeoLocate lookup best-effort de la IP del cliente. Sin resolver o con error,
// devuelve un mapa vacío; nunca falla la request por esto.
func (uc *UserUseCase) GeoLocate(ip string) map[string]any {
	if uc.geo == nil {
		return map[string]any{}
	}
	loc, err := uc.geo.City(ip)
	if err != nil || loc == nil {
		return map[string]any{}
	}
	return map[string]any{
		"country_code2": loc.CountryCode,
		"country_name":  loc.CountryName,
		"city":          loc.City,
		"timezone":      loc.TimeZone,
	}
}

// enrichCountryCode fija el prefijo telefónico según el país de la IP de registro.
// Solo se conoce el mapeo de India; cualquier otro país deja el campo como vino.
func (uc *UserUseCase) enrichCountryCode(user *entity.User, clientIP string) {
	if uc.geo == nil || user.CountryCode != "" || clientIP == "" {
		return
	}
	loc, err := uc.geo.City(clientIP)
	if err != nil || loc == nil {
		return
	}
	if loc.CountryCode == "IN" {
		user.CountryCode = "91"
	}
}

func validateRegister(in dto.RegisterUserRequest) error {
	if in.Name == "" || len(in.Name) > 50 {
		return domain.Validationf("name es requerido (máx 50 caracteres)")
	}
	if !emailRegex.MatchString(in.Email) {
		return domain.Validationf("email inválido")
	}
	if len(in.Password) < 8 {
		return domain.Validationf("password debe tener al menos 8 caracteres")
	}
	if in.Password != in.PasswordConfirmation {
		return domain.Validationf("password_confirmation no coincide")
	}
	if in.Role != "" && !entity.ValidRole(in.Role) {
		return domain.Validationf("role inválido: %s", in.Role)
	}
	if in.PrimaryMobile != "" && len(in.PrimaryMobile) < 10 {
		return domain.Validationf("primary_mobile debe tener al menos 10 dígitos")
	}
	for _, a := range in.Addresses {
		if a.AddressType == "" || a.Zipcode == "" {
			return domain.Validationf("cada dirección requiere address_type y zipcode")
		}
	}
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		UtilityID:     u.UtilityID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		Activated:     u.Activated,
		Approved:      u.Approved,
		Deleted:       u.Deleted,
		PrimaryMobile: u.PrimaryMobile,
		CountryCode:   u.CountryCode,
		TimeZone:      u.TimeZone,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func toAddressResponses(addresses []entity.Address) []dto.AddressResponse {
	if len(addresses) == 0 {
		return nil
	}
	out := make([]dto.AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, dto.AddressResponse{
			ID:          a.ID,
			AddressType: a.AddressType,
			Street:      a.Street,
			City:        a.City,
			State:       a.State,
			Zipcode:     a.Zipcode,
		})
	}
	return out
}
