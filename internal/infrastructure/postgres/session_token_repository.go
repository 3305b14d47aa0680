package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/accounts-api/internal/domain"
	"github.com/jhoicas/accounts-api/internal/domain/entity"
	"github.com/jhoicas/accounts-api/internal/domain/repository"
)

var _ repository.SessionTokenRepository = (*SessionTokenRepo)(nil)

// SessionTokenRepo implementación del ledger de tokens sobre PostgreSQL. La columna
// token tiene constraint UNIQUE global: el insert es atómico respecto a la unicidad
// aun con emisiones concurrentes para usuarios distintos.
type SessionTokenRepo struct {
	q Querier
}

// NewSessionTokenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionTokenRepository(q Querier) *SessionTokenRepo {
	return &SessionTokenRepo{q: q}
}

// Create inserta el token; colisión del valor → domain.ErrConflict (el ledger
// regenera y reintenta).
func (r *SessionTokenRepo) Create(ctx context.Context, token *entity.SessionToken) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO session_tokens (id, user_id, token, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		token.ID, token.UserID, token.Token, token.IP, token.UserAgent, token.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("token duplicado: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert session token: %w", err)
	}
	return nil
}

// ListByUser tokens vigentes y vencidos del usuario (el ledger filtra por edad).
func (r *SessionTokenRepo) ListByUser(ctx context.Context, userID string) ([]*entity.SessionToken, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, token, ip, user_agent, created_at
		FROM session_tokens WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list session tokens: %w", err)
	}
	defer rows.Close()
	var list []*entity.SessionToken
	for rows.Next() {
		var t entity.SessionToken
		if err := rows.Scan(&t.ID, &t.UserID, &t.Token, &t.IP, &t.UserAgent, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session token: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// DeleteToken borra un token puntual del usuario; true si la fila existía.
func (r *SessionTokenRepo) DeleteToken(ctx context.Context, userID, token string) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM session_tokens WHERE user_id = $1 AND token = $2`, userID, token)
	if err != nil {
		return false, fmt.Errorf("delete session token: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByUser borra todos los tokens del usuario.
func (r *SessionTokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM session_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete session tokens by user: %w", err)
	}
	return nil
}

// DeleteOlderThan borra los tokens del usuario creados antes del corte.
func (r *SessionTokenRepo) DeleteOlderThan(ctx context.Context, userID string, cutoff time.Time) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM session_tokens WHERE user_id = $1 AND created_at < $2`, userID, cutoff)
	if err != nil {
		return fmt.Errorf("delete stale session tokens: %w", err)
	}
	return nil
}
