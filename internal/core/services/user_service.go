package services

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) ports.UserService {
	return &UserService{
		repo: repo,
	}
}

// Sync records the identity resolved by the authenticator so polls and votes
// can reference it.
func (s *UserService) Sync(ctx context.Context, identity *domain.Identity) (*domain.User, error) {
	if identity == nil || identity.ID == "" {
		return nil, domain.ErrUnauthenticated
	}

	user := &domain.User{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
	}
	if err := s.repo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to sync user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
