package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/accounts-api/internal/domain"
	"github.com/jhoicas/accounts-api/internal/domain/entity"
	"github.com/jhoicas/accounts-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, utility_id, name, email, password_hash, role, activated, activated_at,
	approved, deleted, primary_mobile, country_code, time_zone,
	confirmation_token, confirmation_sent_at, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Las búsquedas normales excluyen soft-deleted; GetByID no, porque el detalle de un
// usuario marcado deleted sigue siendo consultable (dato histórico).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste el usuario y sus direcciones en una sola transacción. Una
// violación de la constraint única de email se mapea a domain.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, user *entity.User, addresses []entity.Address) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = tx.Exec(ctx, query,
		user.ID, nullIfEmpty(user.UtilityID), user.Name, user.Email, user.PasswordHash, user.Role,
		user.Activated, user.ActivatedAt, user.Approved, user.Deleted,
		user.PrimaryMobile, user.CountryCode, user.TimeZone,
		nullIfEmpty(user.ConfirmationToken), user.ConfirmationSentAt,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email duplicado: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	for _, a := range addresses {
		_, err = tx.Exec(ctx, `
			INSERT INTO addresses (id, user_id, address_type, street, city, state, zipcode)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			a.ID, a.UserID, a.AddressType, a.Street, a.City, a.State, a.Zipcode,
		)
		if err != nil {
			return fmt.Errorf("insert address: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID (incluye soft-deleted).
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email normalizado; excluye soft-deleted.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanOne(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND deleted = FALSE LIMIT 1`, email)
}

// GetByConfirmationToken resuelve el token de activación emitido por email.
func (r *UserRepo) GetByConfirmationToken(ctx context.Context, token string) (*entity.User, error) {
	return r.scanOne(ctx,
		`SELECT `+userColumns+` FROM users WHERE confirmation_token = $1 AND deleted = FALSE LIMIT 1`, token)
}

// Update actualiza los campos mutables del usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET name = $2, role = $3, activated = $4, activated_at = $5,
			approved = $6, primary_mobile = $7, country_code = $8, time_zone = $9,
			confirmation_token = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Role, user.Activated, user.ActivatedAt,
		user.Approved, user.PrimaryMobile, user.CountryCode, user.TimeZone,
		nullIfEmpty(user.ConfirmationToken), user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete borra la fila definitivamente. Las FKs de addresses y session_tokens
// cascadean.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// SoftDelete marca deleted=true; la fila se conserva.
func (r *UserRepo) SoftDelete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET deleted = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	return nil
}

// ListCustomers lista clientes no borrados, opcionalmente acotados a una utility.
func (r *UserRepo) ListCustomers(ctx context.Context, utilityID string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE role = $1 AND deleted = FALSE AND ($2 = '' OR utility_id = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, entity.RoleCustomer, utilityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// CountCustomers total de clientes visibles para la paginación.
func (r *UserRepo) CountCustomers(ctx context.Context, utilityID string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users
		WHERE role = $1 AND deleted = FALSE AND ($2 = '' OR utility_id = $2)`,
		entity.RoleCustomer, utilityID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return total, nil
}

// ListAddresses direcciones del usuario, en orden de creación.
func (r *UserRepo) ListAddresses(ctx context.Context, userID string) ([]entity.Address, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, address_type, street, city, state, zipcode
		FROM addresses WHERE user_id = $1 ORDER BY address_type`, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()
	var list []entity.Address
	for rows.Next() {
		var a entity.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.AddressType, &a.Street, &a.City, &a.State, &a.Zipcode); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// scanUser mapea una fila a la entidad; los NULLables van por punteros/strings vacíos.
func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var utilityID, confirmationToken *string
	err := row.Scan(
		&u.ID, &utilityID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.Activated, &u.ActivatedAt, &u.Approved, &u.Deleted,
		&u.PrimaryMobile, &u.CountryCode, &u.TimeZone,
		&confirmationToken, &u.ConfirmationSentAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if utilityID != nil {
		u.UtilityID = *utilityID
	}
	if confirmationToken != nil {
		u.ConfirmationToken = *confirmationToken
	}
	return &u, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
