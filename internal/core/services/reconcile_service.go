package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

const defaultAuditConcurrency = 8

type reconcileService struct {
	repo        ports.ReconcileRepository
	concurrency int
}

// NewReconcileService returns a read-only audit of the denormalized vote
// counters. It reports drift and never writes.
func NewReconcileService(repo ports.ReconcileRepository, concurrency int) ports.ReconcileService {
	if concurrency <= 0 {
		concurrency = defaultAuditConcurrency
	}
	return &reconcileService{
		repo:        repo,
		concurrency: concurrency,
	}
}

func (s *reconcileService) Audit(ctx context.Context) ([]domain.OptionDrift, error) {
	pollIDs, err := s.repo.ListPollIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all polls: %w", err)
	}

	var (
		mu     sync.Mutex
		drift  []domain.OptionDrift
		result *multierror.Error
		g      errgroup.Group
	)
	g.SetLimit(s.concurrency)

	for _, pollID := range pollIDs {
		pollID := pollID
		g.Go(func() error {
			found, err := s.repo.FindDrift(ctx, pollID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("failed to audit poll %s: %w", pollID, err))
				return nil
			}
			drift = append(drift, found...)
			return nil
		})
	}
	// Per-poll failures are collected in result; no goroutine returns an error.
	g.Wait()

	sort.Slice(drift, func(i, j int) bool {
		if drift[i].PollID != drift[j].PollID {
			return lessUUID(drift[i].PollID, drift[j].PollID)
		}
		return lessUUID(drift[i].OptionID, drift[j].OptionID)
	})

	return drift, result.ErrorOrNil()
}

func lessUUID(a, b uuid.UUID) bool {
	return a.String() < b.String()
}
