package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

type voteLedger struct {
	db *sql.DB

	// afterInsert runs between the vote insert and the counter increment.
	// Tests use it to kill the backend mid-transaction; nil in production.
	afterInsert func(ctx context.Context, tx *sql.Tx) error
}

func NewVoteLedger(db *sql.DB) ports.VoteLedger {
	return &voteLedger{
		db: db,
	}
}

// RecordVote inserts the vote row and increments the option counter in a
// single transaction. Either both become visible or neither does.
//
// The poll row is locked FOR SHARE so a concurrent close (FOR UPDATE) either
// waits for this vote or makes it observe the poll as closed. Two votes by the
// same voter race on the (poll_id, voter_id) unique index; the loser blocks
// until the winner commits and then sees the conflict.
func (l *voteLedger) RecordVote(ctx context.Context, pollID, optionID uuid.UUID, voterID string) (*domain.Vote, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapStoreError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	var open bool
	err = tx.QueryRowContext(ctx, `
		SELECT is_active AND (expires_at IS NULL OR expires_at > NOW())
		FROM polls
		WHERE id = $1
		FOR SHARE
	`, pollID).Scan(&open)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUnknownPoll
		}
		return nil, wrapStoreError("failed to lock poll", err)
	}
	if !open {
		return nil, domain.ErrPollClosed
	}

	vote := &domain.Vote{
		ID:       uuid.New(),
		PollID:   pollID,
		OptionID: optionID,
		VoterID:  voterID,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO votes (id, poll_id, option_id, voter_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (poll_id, voter_id) DO NOTHING
		RETURNING created_at
	`, vote.ID, vote.PollID, vote.OptionID, vote.VoterID).Scan(&vote.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDuplicateVote
		}
		if outcome, ok := foreignKeyOutcome(err); ok {
			return nil, outcome
		}
		return nil, wrapStoreError("failed to insert vote", err)
	}

	if l.afterInsert != nil {
		if err := l.afterInsert(ctx, tx); err != nil {
			return nil, wrapStoreError("vote transaction interrupted", err)
		}
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE poll_options
		SET vote_count = vote_count + 1
		WHERE id = $1 AND poll_id = $2
	`, optionID, pollID)
	if err != nil {
		return nil, wrapStoreError("failed to increment vote count", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, wrapStoreError("failed to increment vote count", err)
	}
	if affected == 0 {
		return nil, domain.ErrUnknownOption
	}

	// The outcome of a failed commit is unknown; always report it as retryable.
	if err := tx.Commit(); err != nil {
		return nil, storeUnavailable("failed to commit vote", err)
	}

	return vote, nil
}

func (l *voteLedger) GetVote(ctx context.Context, pollID uuid.UUID, voterID string) (*domain.Vote, error) {
	query := `
		SELECT id, poll_id, option_id, voter_id, created_at
		FROM votes
		WHERE poll_id = $1 AND voter_id = $2
	`
	var vote domain.Vote
	err := l.db.QueryRowContext(ctx, query, pollID, voterID).Scan(
		&vote.ID, &vote.PollID, &vote.OptionID, &vote.VoterID, &vote.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVoteNotFound
		}
		return nil, wrapStoreError("failed to get vote", err)
	}
	return &vote, nil
}
