package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Poll, error)
	Search(ctx context.Context, limit, offset int, query string) ([]*domain.Poll, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// PollCache is a read-through cache of poll views. Get returns (nil, nil) on
// a miss. Set never replaces a cached view whose Version is higher than the
// given poll's, so a slow reader cannot overwrite what a writer stored after
// committing. Invalidate drops the view but keeps that fence.
type PollCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	Set(ctx context.Context, poll *domain.Poll) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

type CreatePollInput struct {
	Title       string
	Description string
	Options     []string
	ExpiresAt   *time.Time
}

type ListPollsInput struct {
	Page  int
	Query string
}

type PollService interface {
	Create(ctx context.Context, identity *domain.Identity, input CreatePollInput) (*domain.Poll, error)
	GetPoll(ctx context.Context, id string) (*domain.Poll, error)
	ListPolls(ctx context.Context, input ListPollsInput) ([]*domain.Poll, error)
	Close(ctx context.Context, identity *domain.Identity, id string) (*domain.Poll, error)
}
