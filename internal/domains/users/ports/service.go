package ports

import (
	"context"

	"github.com/Apurer/go-gin-users-api/internal/domains/users/domain"
)

// CreateUserInput is the client-supplied part of a new user. Any client id is
// dropped before it reaches the service.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, patch domain.Patch) (*domain.User, error)
}
