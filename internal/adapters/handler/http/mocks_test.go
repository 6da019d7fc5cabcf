package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

const validToken = "valid-token"

var caller = &domain.Identity{ID: "user-1", Email: "u1@example.com", Name: "U1"}

type mockPollService struct {
	mock.Mock
}

func (m *mockPollService) Create(ctx context.Context, identity *domain.Identity, input ports.CreatePollInput) (*domain.Poll, error) {
	args := m.Called(ctx, identity, input)
	poll, _ := args.Get(0).(*domain.Poll)
	return poll, args.Error(1)
}

func (m *mockPollService) GetPoll(ctx context.Context, id string) (*domain.Poll, error) {
	args := m.Called(ctx, id)
	poll, _ := args.Get(0).(*domain.Poll)
	return poll, args.Error(1)
}

func (m *mockPollService) ListPolls(ctx context.Context, input ports.ListPollsInput) ([]*domain.Poll, error) {
	args := m.Called(ctx, input)
	polls, _ := args.Get(0).([]*domain.Poll)
	return polls, args.Error(1)
}

func (m *mockPollService) Close(ctx context.Context, identity *domain.Identity, id string) (*domain.Poll, error) {
	args := m.Called(ctx, identity, id)
	poll, _ := args.Get(0).(*domain.Poll)
	return poll, args.Error(1)
}

type mockVoteService struct {
	mock.Mock
}

func (m *mockVoteService) Submit(ctx context.Context, identity *domain.Identity, input ports.VoteInput) (*ports.VoteResult, error) {
	args := m.Called(ctx, identity, input)
	result, _ := args.Get(0).(*ports.VoteResult)
	return result, args.Error(1)
}

func (m *mockVoteService) GetMyVote(ctx context.Context, identity *domain.Identity, pollID uuid.UUID) (*domain.Vote, error) {
	args := m.Called(ctx, identity, pollID)
	vote, _ := args.Get(0).(*domain.Vote)
	return vote, args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Sync(ctx context.Context, identity *domain.Identity) (*domain.User, error) {
	args := m.Called(ctx, identity)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

// stubVerifier accepts validToken only.
type stubVerifier struct{}

func (stubVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	if token != validToken {
		return nil, domain.ErrUnauthenticated
	}
	return caller, nil
}

type testServer struct {
	polls   *mockPollService
	votes   *mockVoteService
	users   *mockUserService
	metrics *Metrics
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		polls:   &mockPollService{},
		votes:   &mockVoteService{},
		users:   &mockUserService{},
		metrics: NewMetrics(),
	}
	s.users.On("Sync", mock.Anything, caller).Return(&domain.User{ID: caller.ID}, nil).Maybe()

	s.handler = NewHandler(
		NewPollHandler(s.polls),
		NewVoteHandler(s.votes, s.metrics),
		NewUserHandler(s.users),
		NewAuthMiddleware(stubVerifier{}, s.users),
		Options{
			AllowedOrigins: []string{"https://app.example"},
			Logger:         zerolog.Nop(),
			Metrics:        s.metrics,
		},
	)
	t.Cleanup(func() {
		s.polls.AssertExpectations(t)
		s.votes.AssertExpectations(t)
	})
	return s
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+validToken)
	return req
}
