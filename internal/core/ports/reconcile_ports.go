package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

type ReconcileRepository interface {
	ListPollIDs(ctx context.Context) ([]uuid.UUID, error)
	FindDrift(ctx context.Context, pollID uuid.UUID) ([]domain.OptionDrift, error)
}

type ReconcileService interface {
	Audit(ctx context.Context) ([]domain.OptionDrift, error)
}
