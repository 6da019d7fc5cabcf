package domain

import "errors"

var (
	ErrPollNotFound  = errors.New("poll not found")
	ErrInvalidPollID = errors.New("invalid poll id")
	ErrInvalidOption = errors.New("invalid option for this poll")
	ErrAlreadyVoted  = errors.New("user has already voted")
	ErrVoteNotFound  = errors.New("user did not vote on this poll")
	ErrPollClosed    = errors.New("poll is closed for voting")
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("forbidden")

	ErrUnauthenticated = errors.New("unauthenticated")
)

// Ledger outcomes. The vote service translates these into the user facing
// errors above.
var (
	ErrDuplicateVote    = errors.New("vote already recorded for this poll and voter")
	ErrUnknownPoll      = errors.New("unknown poll")
	ErrUnknownOption    = errors.New("option does not belong to poll")
	ErrStoreUnavailable = errors.New("store unavailable")
)
