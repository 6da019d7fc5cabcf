package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

const (
	pageSize       = 10
	maxTitleLength = 200
	maxOptions     = 20
)

type pollService struct {
	repo  ports.PollRepository
	cache ports.PollCache
	log   zerolog.Logger
	now   func() time.Time
}

// NewPollService returns the poll query and creation service. cache may be
// nil, in which case every read goes to the repository.
func NewPollService(repo ports.PollRepository, cache ports.PollCache, log zerolog.Logger) ports.PollService {
	return &pollService{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("component", "poll_service").Logger(),
		now:   time.Now,
	}
}

func (s *pollService) Create(ctx context.Context, identity *domain.Identity, input ports.CreatePollInput) (*domain.Poll, error) {
	if identity == nil || identity.ID == "" {
		return nil, domain.ErrUnauthenticated
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, fmt.Errorf("%w: title must be at most %d characters", domain.ErrInvalidInput, maxTitleLength)
	}

	now := s.now()
	if input.ExpiresAt != nil && !input.ExpiresAt.After(now) {
		return nil, fmt.Errorf("%w: expires_at must be in the future", domain.ErrInvalidInput)
	}

	pollID := uuid.New()
	poll := &domain.Poll{
		ID:          pollID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		OwnerID:     identity.ID,
		IsActive:    true,
		CreatedAt:   now,
		ExpiresAt:   input.ExpiresAt,
	}

	for _, optText := range input.Options {
		optText = strings.TrimSpace(optText)
		if optText == "" {
			continue
		}
		poll.Options = append(poll.Options, domain.PollOption{
			ID:       uuid.New(),
			PollID:   pollID,
			Text:     optText,
			Position: len(poll.Options),
		})
	}

	if len(poll.Options) < 2 {
		return nil, fmt.Errorf("%w: at least two valid options are required", domain.ErrInvalidInput)
	}
	if len(poll.Options) > maxOptions {
		return nil, fmt.Errorf("%w: at most %d options are allowed", domain.ErrInvalidInput, maxOptions)
	}

	if err := s.repo.Save(ctx, poll); err != nil {
		return nil, err
	}

	poll.ComputeTotals()
	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, pollID)
		if err != nil {
			s.log.Warn().Err(err).Str("poll_id", pollID.String()).Msg("poll cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	poll.ComputeTotals()

	if s.cache != nil {
		if err := s.cache.Set(ctx, poll); err != nil {
			s.log.Warn().Err(err).Str("poll_id", pollID.String()).Msg("poll cache write failed")
		}
	}

	return poll, nil
}

func (s *pollService) ListPolls(ctx context.Context, input ports.ListPollsInput) ([]*domain.Poll, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var (
		polls []*domain.Poll
		err   error
	)
	if q := strings.TrimSpace(input.Query); q != "" {
		polls, err = s.repo.Search(ctx, pageSize, offset, q)
	} else {
		polls, err = s.repo.List(ctx, pageSize, offset)
	}
	if err != nil {
		return nil, err
	}

	for _, p := range polls {
		p.ComputeTotals()
	}
	return polls, nil
}

func (s *pollService) Close(ctx context.Context, identity *domain.Identity, id string) (*domain.Poll, error) {
	if identity == nil || identity.ID == "" {
		return nil, domain.ErrUnauthenticated
	}

	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	poll, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.OwnerID != identity.ID {
		return nil, fmt.Errorf("%w: only the poll owner can close it", domain.ErrForbidden)
	}

	if err := s.repo.Deactivate(ctx, pollID); err != nil {
		return nil, err
	}

	closed, err := s.repo.GetByID(ctx, pollID)
	if err != nil {
		s.log.Warn().Err(err).Str("poll_id", pollID.String()).Msg("failed to reload poll after close")
		closed = nil
	} else {
		closed.ComputeTotals()
	}
	if s.cache != nil {
		refreshCachedPoll(ctx, s.cache, s.log, pollID, closed)
	}

	if closed == nil {
		closed = poll
		closed.IsActive = false
		closed.ComputeTotals()
	}
	return closed, nil
}
