package repository

import (
	"context"

	"github.com/jhoicas/accounts-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByEmail y GetByConfirmationToken devuelven (nil, nil) si no hay fila;
// los soft-deleted quedan excluidos de todas las búsquedas normales.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User, addresses []entity.Address) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByConfirmationToken(ctx context.Context, token string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete borra la fila definitivamente (solo SuperAdmin llega aquí).
	Delete(ctx context.Context, id string) error
	// SoftDelete marca deleted=true; el registro se conserva.
	SoftDelete(ctx context.Context, id string) error
	// ListCustomers lista los clientes visibles para el ámbito dado.
	// utilityID vacío = sin restricción de ámbito (SuperAdmin).
	ListCustomers(ctx context.Context, utilityID string, limit, offset int) ([]*entity.User, error)
	CountCustomers(ctx context.Context, utilityID string) (int, error)
	ListAddresses(ctx context.Context, userID string) ([]entity.Address, error)
}
