package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/accounts-api/internal/application/ports"
	"github.com/jhoicas/accounts-api/internal/domain"
	"github.com/jhoicas/accounts-api/internal/domain/entity"
	"github.com/jhoicas/accounts-api/internal/domain/repository"
)

// Fakes en memoria para el ciclo de vida de cuentas: persistencia, ledger de
// tokens, mailer que registra envíos y resolver geográfico programable.

var _ repository.UserRepository = (*memUserRepo)(nil)

type memUserRepo struct {
	mu    sync.RWMutex
	users map[string]*entity.User
	addrs map[string][]entity.Address
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}, addrs: map[string][]entity.Address{}}
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User, addresses []entity.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("email duplicado: %w", domain.ErrConflict)
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	r.addrs[user.ID] = append([]entity.Address(nil), addresses...)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email && !u.Deleted {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByConfirmationToken(_ context.Context, token string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ConfirmationToken == token && token != "" && !u.Deleted {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	delete(r.addrs, id)
	return nil
}

func (r *memUserRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.Deleted = true
	}
	return nil
}

func (r *memUserRepo) ListCustomers(_ context.Context, utilityID string, limit, offset int) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.User
	for _, u := range r.users {
		if u.Role != entity.RoleCustomer || u.Deleted {
			continue
		}
		if utilityID != "" && u.UtilityID != utilityID {
			continue
		}
		cp := *u
		list = append(list, &cp)
	}
	if offset > len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *memUserRepo) CountCustomers(_ context.Context, utilityID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, u := range r.users {
		if u.Role != entity.RoleCustomer || u.Deleted {
			continue
		}
		if utilityID != "" && u.UtilityID != utilityID {
			continue
		}
		total++
	}
	return total, nil
}

func (r *memUserRepo) ListAddresses(_ context.Context, userID string) ([]entity.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Address(nil), r.addrs[userID]...), nil
}

var _ repository.SessionTokenRepository = (*memTokenRepo)(nil)

type memTokenRepo struct {
	mu     sync.Mutex
	tokens []*entity.SessionToken
}

func newMemTokenRepo() *memTokenRepo { return &memTokenRepo{} }

func (r *memTokenRepo) Create(_ context.Context, token *entity.SessionToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.Token == token.Token {
			return fmt.Errorf("token duplicado: %w", domain.ErrConflict)
		}
	}
	cp := *token
	r.tokens = append(r.tokens, &cp)
	return nil
}

func (r *memTokenRepo) ListByUser(_ context.Context, userID string) ([]*entity.SessionToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.SessionToken
	for _, t := range r.tokens {
		if t.UserID == userID {
			cp := *t
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memTokenRepo) DeleteToken(_ context.Context, userID, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tokens {
		if t.UserID == userID && t.Token == token {
			r.tokens = append(r.tokens[:i], r.tokens[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memTokenRepo) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.tokens[:0]
	for _, t := range r.tokens {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	r.tokens = kept
	return nil
}

func (r *memTokenRepo) DeleteOlderThan(_ context.Context, userID string, cutoff time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.tokens[:0]
	for _, t := range r.tokens {
		if t.UserID == userID && t.CreatedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, t)
	}
	r.tokens = kept
	return nil
}

func (r *memTokenRepo) countFor(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

// recordingMailer registra cada envío; failActivation simula un SMTP caído en el
// mail de activación.
var _ ports.Mailer = (*recordingMailer)(nil)

type recordingMailer struct {
	mu             sync.Mutex
	activations    []string // emails destinatarios
	welcomes       []string
	approvals      []string
	lastCtoken     string
	failActivation bool
}

func (m *recordingMailer) SendActivation(user *entity.User, ctoken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failActivation {
		return errors.New("smtp no disponible")
	}
	m.activations = append(m.activations, user.Email)
	m.lastCtoken = ctoken
	return nil
}

func (m *recordingMailer) SendWelcome(user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes = append(m.welcomes, user.Email)
	return nil
}

func (m *recordingMailer) SendApproved(user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approvals = append(m.approvals, user.Email)
	return nil
}

// staticGeoResolver devuelve siempre la misma ubicación (o error si err != nil).
var _ ports.GeoResolver = (*staticGeoResolver)(nil)

type staticGeoResolver struct {
	loc *ports.GeoLocation
	err error
}

func (g *staticGeoResolver) City(string) (*ports.GeoLocation, error) {
	return g.loc, g.err
}
