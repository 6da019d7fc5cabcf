package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

func TestAudit_NoDrift(t *testing.T) {
	repo := &mockReconcileRepository{}
	svc := NewReconcileService(repo, 2)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	repo.On("ListPollIDs", mock.Anything).Return(ids, nil).Once()
	for _, id := range ids {
		repo.On("FindDrift", mock.Anything, id).Return([]domain.OptionDrift(nil), nil).Once()
	}

	drift, err := svc.Audit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drift)
	repo.AssertExpectations(t)
}

func TestAudit_CollectsDriftAndErrors(t *testing.T) {
	repo := &mockReconcileRepository{}
	svc := NewReconcileService(repo, 0)

	healthy, drifted, broken := uuid.New(), uuid.New(), uuid.New()
	report := domain.OptionDrift{PollID: drifted, OptionID: uuid.New(), StoredCount: 3, ActualCount: 2}

	repo.On("ListPollIDs", mock.Anything).Return([]uuid.UUID{healthy, drifted, broken}, nil).Once()
	repo.On("FindDrift", mock.Anything, healthy).Return([]domain.OptionDrift(nil), nil).Once()
	repo.On("FindDrift", mock.Anything, drifted).Return([]domain.OptionDrift{report}, nil).Once()
	repo.On("FindDrift", mock.Anything, broken).Return(nil, errors.New("connection reset")).Once()

	drift, err := svc.Audit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), broken.String())
	assert.Equal(t, []domain.OptionDrift{report}, drift)
	repo.AssertExpectations(t)
}

func TestAudit_ListFailure(t *testing.T) {
	repo := &mockReconcileRepository{}
	svc := NewReconcileService(repo, 1)

	repo.On("ListPollIDs", mock.Anything).Return(nil, errors.New("boom")).Once()

	_, err := svc.Audit(context.Background())
	assert.Error(t, err)
}
