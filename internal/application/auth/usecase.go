package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/accounts-api/internal/domain"
	"github.com/jhoicas/accounts-api/internal/domain/entity"
	"github.com/jhoicas/accounts-api/internal/domain/repository"
)

// Razones de falla de autenticación. Cada gate insatisfecho produce una razón
// distinta; todas envuelven domain.ErrUnauthenticated (401 hacia afuera).
var (
	ErrEmailNotRegistered = domain.Unauthenticatedf("el email no está registrado")
	ErrNotActivated       = domain.Unauthenticatedf("la cuenta no ha sido activada; revise su email y siga el link de activación")
	ErrNotApproved        = domain.Unauthenticatedf("la cuenta no ha sido aprobada por un administrador")
	ErrInvalidPassword    = domain.Unauthenticatedf("password inválido")
	ErrUnauthorizedUser   = domain.Unauthenticatedf("usuario no autorizado")
	ErrSessionExpired     = domain.Unauthenticatedf("la sesión expiró; vuelva a iniciar sesión")
	ErrInvalidToken       = domain.Unauthenticatedf("token inválido")
)

// LoginResult token de sesión recién emitido más el resumen del usuario.
type LoginResult struct {
	Token string
	User  entity.Summary
}

// AuthUseCase orquesta login (credencial → gates de estado → emisión de token) y la
// verificación por request (header → gates de estado → match en el ledger). El estado
// de la cuenta se re-verifica en CADA request: revocar activación o aprobación
// invalida de inmediato todas las sesiones vivas, sin blacklist.
type AuthUseCase struct {
	users     repository.UserRepository
	ledger    *TokenLedger
	passwords *PasswordVerifier
}

// NewAuthUseCase construye el caso de uso de autenticación.
func NewAuthUseCase(users repository.UserRepository, ledger *TokenLedger, passwords *PasswordVerifier) *AuthUseCase {
	return &AuthUseCase{users: users, ledger: ledger, passwords: passwords}
}

// Login verifica credenciales en orden fijo: registrado → activado → aprobado →
// password. Cada gate insatisfecho corta con su propia razón. En éxito emite un
// token ligado al fingerprint de la request y devuelve token + resumen.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string, rc entity.RequestContext) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return nil, ErrEmailNotRegistered
	}
	if !user.Activated {
		return nil, ErrNotActivated
	}
	if !user.Approved {
		return nil, ErrNotApproved
	}
	if !uc.passwords.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidPassword
	}

	// Acota la acumulación de tokens viejos en el único punto de escritura regular.
	_ = uc.ledger.PurgeStale(ctx, user)

	token, err := uc.ledger.Issue(ctx, user, rc)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user.Summarize()}, nil
}

// VerifyRequest resuelve los headers de autenticación de una request ya iniciada.
// Si un gate de estado falla, primero purga TODOS los tokens del usuario (limpieza
// defensiva: aunque el caller ignorara el error, no queda token reproducible) y
// recién después corta con la razón.
func (uc *AuthUseCase) VerifyRequest(ctx context.Context, emailHeader, tokenHeader string) (*entity.User, error) {
	if emailHeader == "" {
		return nil, ErrUnauthorizedUser
	}
	user, err := uc.users.GetByEmail(ctx, entity.NormalizeEmail(emailHeader))
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorizedUser
	}
	if !user.Activated {
		_ = uc.ledger.PurgeAll(ctx, user)
		return nil, ErrNotActivated
	}
	if !user.Approved {
		_ = uc.ledger.PurgeAll(ctx, user)
		return nil, ErrNotApproved
	}
	match, err := uc.ledger.Find(ctx, user, tokenHeader)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, ErrSessionExpired
	}
	return user, nil
}

// SignOut expira el token presentado por la request actual. Si el cliente intentó
// expirar un token inválido o ya expirado, devuelve ErrInvalidToken.
func (uc *AuthUseCase) SignOut(ctx context.Context, user *entity.User, tokenHeader string) error {
	ok, err := uc.ledger.Expire(ctx, user, tokenHeader)
	if err != nil {
		return fmt.Errorf("expirar token: %w", err)
	}
	if !ok {
		return ErrInvalidToken
	}
	return nil
}
