package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/accounts-api/internal/domain"
	"github.com/jhoicas/accounts-api/internal/domain/entity"
	"github.com/jhoicas/accounts-api/internal/domain/repository"
)

// LedgerConfig parámetros del ciclo de vida de los tokens de sesión.
type LedgerConfig struct {
	TokenLength int           // bytes de entropía
	MaxAge      time.Duration // ventana de retención; fuera de ella el token no matchea
	MaxRetries  int           // intentos de emisión ante colisión
}

// TokenLedger es el dueño del ciclo de vida de los tokens de sesión: emisión,
// búsqueda, expiración y purga. Los tokens son opacos; se buscan, nunca se decodifican.
type TokenLedger struct {
	repo repository.SessionTokenRepository
	cfg  LedgerConfig
	now  func() time.Time
}

// NewTokenLedger construye el ledger sobre el puerto de persistencia.
func NewTokenLedger(repo repository.SessionTokenRepository, cfg LedgerConfig) *TokenLedger {
	if cfg.TokenLength <= 0 {
		cfg.TokenLength = 32
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 14 * 24 * time.Hour
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	return &TokenLedger{repo: repo, cfg: cfg, now: time.Now}
}

// Issue genera un token aleatorio y lo persiste ligado al usuario y al fingerprint
// de la request. La unicidad global la garantiza la constraint única del store:
// ante colisión (repo devuelve ErrConflict) se regenera, con reintentos acotados.
// Es la única vez que el valor se expone en claro.
func (l *TokenLedger) Issue(ctx context.Context, user *entity.User, rc entity.RequestContext) (string, error) {
	for attempt := 0; attempt < l.cfg.MaxRetries; attempt++ {
		raw, err := RandomToken(l.cfg.TokenLength)
		if err != nil {
			return "", fmt.Errorf("generar token: %w", err)
		}
		tok := &entity.SessionToken{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Token:     raw,
			IP:        rc.IP,
			UserAgent: rc.UserAgent,
			CreatedAt: l.now(),
		}
		err = l.repo.Create(ctx, tok)
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return "", fmt.Errorf("persistir token: %w", err)
		}
		// colisión: regenerar
	}
	return "", fmt.Errorf("emisión de token agotó %d intentos: %w", l.cfg.MaxRetries, domain.ErrConflict)
}

// Find busca el token presentado entre los del usuario. Comparación exacta en tiempo
// constante; los tokens fuera de la ventana de retención no matchean. Devuelve
// (nil, nil) si no hay match.
func (l *TokenLedger) Find(ctx context.Context, user *entity.User, presented string) (*entity.SessionToken, error) {
	if presented == "" {
		return nil, nil
	}
	tokens, err := l.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listar tokens: %w", err)
	}
	now := l.now()
	for _, tok := range tokens {
		if tok.ExpiredAt(now, l.cfg.MaxAge) {
			continue
		}
		if SecureCompare(tok.Token, presented) {
			return tok, nil
		}
	}
	return nil, nil
}

// PurgeStale borra los tokens del usuario más viejos que la ventana de retención.
// Se invoca en el camino de login para acotar la acumulación sin necesidad de un
// scheduler propio.
func (l *TokenLedger) PurgeStale(ctx context.Context, user *entity.User) error {
	cutoff := l.now().Add(-l.cfg.MaxAge)
	return l.repo.DeleteOlderThan(ctx, user.ID, cutoff)
}

// PurgeAll borra todos los tokens del usuario: sign-out global, desactivación,
// desaprobación o borrado de la cuenta. Un usuario cuyo estado cambió no debe
// conservar ninguna sesión usable.
func (l *TokenLedger) PurgeAll(ctx context.Context, user *entity.User) error {
	return l.repo.DeleteByUser(ctx, user.ID)
}

// Expire borra el token puntual presentado por la request actual (sign-out explícito).
// Devuelve false si no existía: el cliente intentó expirar una sesión inválida.
func (l *TokenLedger) Expire(ctx context.Context, user *entity.User, presented string) (bool, error) {
	if presented == "" {
		return false, nil
	}
	return l.repo.DeleteToken(ctx, user.ID, presented)
}

// RandomToken produce un string opaco URL-safe con n bytes de crypto/rand. Lo usan
// la emisión de tokens de sesión y el token de confirmación de email.
func RandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
