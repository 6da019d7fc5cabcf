package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

// postCommitTimeout bounds the cache refresh, event publish and poll reload
// that follow a committed vote.
const postCommitTimeout = 3 * time.Second

type voteService struct {
	pollRepo          ports.PollRepository
	ledger            ports.VoteLedger
	cache             ports.PollCache
	publisher         ports.VoteEventPublisher
	log               zerolog.Logger
	now               func() time.Time
	postCommitTimeout time.Duration
}

// NewVoteService returns the vote submission service. cache and publisher are
// optional.
func NewVoteService(
	pollRepo ports.PollRepository,
	ledger ports.VoteLedger,
	cache ports.PollCache,
	publisher ports.VoteEventPublisher,
	log zerolog.Logger,
) ports.VoteService {
	return &voteService{
		pollRepo:  pollRepo,
		ledger:    ledger,
		cache:     cache,
		publisher: publisher,
		log:       log.With().Str("component", "vote_service").Logger(),
		now:       time.Now,

		postCommitTimeout: postCommitTimeout,
	}
}

// Submit validates the request against the poll and hands it to the ledger.
// The checks here are early exits only; the ledger enforces uniqueness and
// referential integrity on its own.
func (s *voteService) Submit(ctx context.Context, identity *domain.Identity, input ports.VoteInput) (*ports.VoteResult, error) {
	if identity == nil || identity.ID == "" {
		return nil, domain.ErrUnauthenticated
	}

	poll, err := s.pollRepo.GetByID(ctx, input.PollID)
	if err != nil {
		return nil, err
	}

	if !poll.HasOption(input.OptionID) {
		return nil, domain.ErrInvalidOption
	}

	if !poll.IsOpen(s.now()) {
		return nil, domain.ErrPollClosed
	}

	vote, err := s.ledger.RecordVote(ctx, poll.ID, input.OptionID, identity.ID)
	if err != nil {
		return nil, translateLedgerError(err)
	}

	s.log.Info().
		Str("poll_id", vote.PollID.String()).
		Str("option_id", vote.OptionID.String()).
		Str("vote_id", vote.ID.String()).
		Msg("vote recorded")

	// The vote is committed. Nothing below may fail the request.
	postCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.postCommitTimeout)
	defer cancel()

	result := &ports.VoteResult{Vote: vote}
	updated, err := s.pollRepo.GetByID(postCtx, poll.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("poll_id", poll.ID.String()).Msg("failed to reload poll after vote")
	} else {
		updated.ComputeTotals()
		result.Poll = updated
	}

	s.afterCommit(postCtx, vote, result.Poll)
	return result, nil
}

func (s *voteService) GetMyVote(ctx context.Context, identity *domain.Identity, pollID uuid.UUID) (*domain.Vote, error) {
	if identity == nil || identity.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.ledger.GetVote(ctx, pollID, identity.ID)
}

// afterCommit refreshes the cached view with the reloaded poll, or drops it
// when the reload failed, and publishes the vote event.
func (s *voteService) afterCommit(ctx context.Context, vote *domain.Vote, updated *domain.Poll) {
	if s.cache != nil {
		refreshCachedPoll(ctx, s.cache, s.log, vote.PollID, updated)
	}
	if s.publisher != nil {
		if err := s.publisher.PublishVoteRecorded(ctx, vote); err != nil {
			s.log.Warn().Err(err).Str("vote_id", vote.ID.String()).Msg("failed to publish vote event")
		}
	}
}

// refreshCachedPoll stores updated as the cached view of pollID. With no
// fresh view it invalidates instead.
func refreshCachedPoll(ctx context.Context, cache ports.PollCache, log zerolog.Logger, pollID uuid.UUID, updated *domain.Poll) {
	if updated != nil {
		err := cache.Set(ctx, updated)
		if err == nil {
			return
		}
		log.Warn().Err(err).Str("poll_id", pollID.String()).Msg("poll cache refresh failed")
	}
	if err := cache.Invalidate(ctx, pollID); err != nil {
		log.Warn().Err(err).Str("poll_id", pollID.String()).Msg("poll cache invalidation failed")
	}
}

func translateLedgerError(err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateVote):
		return domain.ErrAlreadyVoted
	case errors.Is(err, domain.ErrUnknownPoll):
		return domain.ErrPollNotFound
	case errors.Is(err, domain.ErrUnknownOption):
		return domain.ErrInvalidOption
	default:
		return err
	}
}
