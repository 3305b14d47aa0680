package repository

import (
	"context"
	"time"

	"github.com/jhoicas/accounts-api/internal/domain/entity"
)

// SessionTokenRepository define el puerto de persistencia del ledger de tokens.
// Create debe fallar con violación de constraint única si el valor del token ya
// existe para CUALQUIER usuario: la unicidad es global, no por usuario.
type SessionTokenRepository interface {
	Create(ctx context.Context, token *entity.SessionToken) error
	ListByUser(ctx context.Context, userID string) ([]*entity.SessionToken, error)
	// DeleteToken borra un token puntual del usuario; devuelve true si existía.
	DeleteToken(ctx context.Context, userID, token string) (bool, error)
	// DeleteByUser borra todos los tokens del usuario.
	DeleteByUser(ctx context.Context, userID string) error
	// DeleteOlderThan borra los tokens del usuario creados antes del instante dado.
	DeleteOlderThan(ctx context.Context, userID string, cutoff time.Time) error
}
