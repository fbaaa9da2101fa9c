package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-users-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-users-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the in-memory user store. Records keep insertion order and every
// lookup is a linear scan; a single lock serialises all operations.
type Repository struct {
	mu    sync.RWMutex
	users []*domain.User
}

func NewRepository() *Repository {
	return &Repository{users: []*domain.User{}}
}

// Seed appends the given users in order. It stops at the first invalid or duplicate record.
func (r *Repository) Seed(ctx context.Context, users []domain.User) error {
	for i := range users {
		if _, err := r.Append(ctx, &users[i]); err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
	}
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ports.ErrNotFound
	}
	clone := *r.users[idx]
	return &clone, nil
}

func (r *Repository) Append(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if strings.TrimSpace(user.ID) == "" {
		return nil, domain.ErrEmptyID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(user.ID) >= 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrDuplicateID, user.ID)
	}
	clone := *user
	r.users = append(r.users, &clone)
	result := clone
	return &result, nil
}

func (r *Repository) RemoveByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return ports.ErrNotFound
	}
	r.users = slices.Delete(r.users, idx, idx+1)
	return nil
}

func (r *Repository) UpdateByID(_ context.Context, id string, patch domain.Patch, policy domain.UpdatePolicy) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ports.ErrNotFound
	}
	r.users[idx].Apply(patch, policy)
	clone := *r.users[idx]
	return &clone, nil
}

// indexOf must be called with the lock held.
func (r *Repository) indexOf(id string) int {
	for i, user := range r.users {
		if user.ID == id {
			return i
		}
	}
	return -1
}
