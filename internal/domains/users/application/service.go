package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-users-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-users-api/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo   ports.Repository
	newID  func() string
	policy domain.UpdatePolicy
}

// Option customizes a Service built by NewService.
type Option func(*Service)

// WithIDGenerator replaces the UUIDv4 generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithUpdatePolicy selects how empty strings in updates are handled.
func WithUpdatePolicy(policy domain.UpdatePolicy) Option {
	return func(s *Service) { s.policy = policy }
}

// NewService wires the user use cases to repo. Ids default to UUIDv4 and
// updates default to IgnoreEmpty.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, newID: uuid.NewString, policy: domain.IgnoreEmpty}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	user, err := domain.NewUser(s.newID(), input.FirstName, input.LastName, input.Email)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Append(ctx, user)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.RemoveByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, patch domain.Patch) (*domain.User, error) {
	return s.repo.UpdateByID(ctx, id, patch, s.policy)
}

var _ ports.Service = (*Service)(nil)
