package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

// VoteLedger owns the Vote rows and the per-option counters.
//
// RecordVote inserts the vote and increments the option counter in one atomic
// unit. It fails with domain.ErrDuplicateVote when the voter already has a
// vote on the poll, domain.ErrUnknownPoll / domain.ErrUnknownOption on
// referential violations, domain.ErrPollClosed when the poll no longer accepts
// votes and wraps domain.ErrStoreUnavailable for transient store failures.
type VoteLedger interface {
	RecordVote(ctx context.Context, pollID, optionID uuid.UUID, voterID string) (*domain.Vote, error)
	GetVote(ctx context.Context, pollID uuid.UUID, voterID string) (*domain.Vote, error)
}

// VoteEventPublisher announces committed votes to downstream consumers.
type VoteEventPublisher interface {
	PublishVoteRecorded(ctx context.Context, vote *domain.Vote) error
}

type VoteInput struct {
	PollID   uuid.UUID
	OptionID uuid.UUID
}

type VoteResult struct {
	Vote *domain.Vote `json:"vote"`
	Poll *domain.Poll `json:"poll"`
}

type VoteService interface {
	Submit(ctx context.Context, identity *domain.Identity, input VoteInput) (*VoteResult, error)
	GetMyVote(ctx context.Context, identity *domain.Identity, pollID uuid.UUID) (*domain.Vote, error)
}
