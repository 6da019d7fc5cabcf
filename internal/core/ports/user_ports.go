package ports

import (
	"context"

	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

type UserRepository interface {
	Upsert(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type UserService interface {
	Sync(ctx context.Context, identity *domain.Identity) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
