package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-users-api/internal/domains/users/domain"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrDuplicateID = errors.New("user id already exists")
)

// Repository is the ordered user store. Lookups match on the exact id and the
// first match wins.
type Repository interface {
	List(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Append adds the user at the end. The id must be set and unused.
	Append(ctx context.Context, user *domain.User) (*domain.User, error)
	RemoveByID(ctx context.Context, id string) error
	// UpdateByID applies the patch in place and returns the updated record.
	UpdateByID(ctx context.Context, id string, patch domain.Patch, policy domain.UpdatePolicy) (*domain.User, error)
}
