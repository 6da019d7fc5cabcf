package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

type mockPollRepository struct {
	mock.Mock
}

func (m *mockPollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	return m.Called(ctx, poll).Error(0)
}

func (m *mockPollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	args := m.Called(ctx, id)
	poll, _ := args.Get(0).(*domain.Poll)
	return poll, args.Error(1)
}

func (m *mockPollRepository) List(ctx context.Context, limit, offset int) ([]*domain.Poll, error) {
	args := m.Called(ctx, limit, offset)
	polls, _ := args.Get(0).([]*domain.Poll)
	return polls, args.Error(1)
}

func (m *mockPollRepository) Search(ctx context.Context, limit, offset int, query string) ([]*domain.Poll, error) {
	args := m.Called(ctx, limit, offset, query)
	polls, _ := args.Get(0).([]*domain.Poll)
	return polls, args.Error(1)
}

func (m *mockPollRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockVoteLedger struct {
	mock.Mock
}

func (m *mockVoteLedger) RecordVote(ctx context.Context, pollID, optionID uuid.UUID, voterID string) (*domain.Vote, error) {
	args := m.Called(ctx, pollID, optionID, voterID)
	vote, _ := args.Get(0).(*domain.Vote)
	return vote, args.Error(1)
}

func (m *mockVoteLedger) GetVote(ctx context.Context, pollID uuid.UUID, voterID string) (*domain.Vote, error) {
	args := m.Called(ctx, pollID, voterID)
	vote, _ := args.Get(0).(*domain.Vote)
	return vote, args.Error(1)
}

type mockPollCache struct {
	mock.Mock
}

func (m *mockPollCache) Get(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	args := m.Called(ctx, id)
	poll, _ := args.Get(0).(*domain.Poll)
	return poll, args.Error(1)
}

func (m *mockPollCache) Set(ctx context.Context, poll *domain.Poll) error {
	return m.Called(ctx, poll).Error(0)
}

func (m *mockPollCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// memoryPollCache keeps the same version fence as the redis cache.
type memoryPollCache struct {
	mu       sync.Mutex
	views    map[uuid.UUID]domain.Poll
	versions map[uuid.UUID]int64
}

func newMemoryPollCache() *memoryPollCache {
	return &memoryPollCache{
		views:    make(map[uuid.UUID]domain.Poll),
		versions: make(map[uuid.UUID]int64),
	}
}

func (c *memoryPollCache) Get(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	view, ok := c.views[id]
	if !ok {
		return nil, nil
	}
	return clonePoll(&view), nil
}

func (c *memoryPollCache) Set(_ context.Context, poll *domain.Poll) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if current, ok := c.versions[poll.ID]; ok && current > poll.Version() {
		return nil
	}
	c.views[poll.ID] = *clonePoll(poll)
	c.versions[poll.ID] = poll.Version()
	return nil
}

func (c *memoryPollCache) Invalidate(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.views, id)
	return nil
}

// stallingPollRepository serves a single poll. When stallNext is set, the next
// GetByID takes its snapshot, signals reading, and waits for release before
// returning it.
type stallingPollRepository struct {
	mockPollRepository

	mu        sync.Mutex
	poll      *domain.Poll
	stallNext bool
	reading   chan struct{}
	release   chan struct{}
}

func (r *stallingPollRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	r.mu.Lock()
	if r.poll.ID != id {
		r.mu.Unlock()
		return nil, domain.ErrPollNotFound
	}
	snapshot := clonePoll(r.poll)
	stall := r.stallNext
	r.stallNext = false
	r.mu.Unlock()

	if stall {
		close(r.reading)
		<-r.release
	}
	return snapshot, nil
}

func (r *stallingPollRepository) addVote(optionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.poll.Options {
		if r.poll.Options[i].ID == optionID {
			r.poll.Options[i].VoteCount++
		}
	}
}

func clonePoll(p *domain.Poll) *domain.Poll {
	c := *p
	c.Options = append([]domain.PollOption(nil), p.Options...)
	return &c
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishVoteRecorded(ctx context.Context, vote *domain.Vote) error {
	return m.Called(ctx, vote).Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type mockReconcileRepository struct {
	mock.Mock
}

func (m *mockReconcileRepository) ListPollIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *mockReconcileRepository) FindDrift(ctx context.Context, pollID uuid.UUID) ([]domain.OptionDrift, error) {
	args := m.Called(ctx, pollID)
	drift, _ := args.Get(0).([]domain.OptionDrift)
	return drift, args.Error(1)
}
