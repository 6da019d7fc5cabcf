package domain

import (
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	OptionID  uuid.UUID `json:"option_id"`
	VoterID   string    `json:"voter_id"`
	CreatedAt time.Time `json:"created_at"`
}

// OptionDrift describes an option whose stored counter disagrees with the
// number of votes referencing it.
type OptionDrift struct {
	PollID      uuid.UUID `json:"poll_id"`
	OptionID    uuid.UUID `json:"option_id"`
	StoredCount int64     `json:"stored_count"`
	ActualCount int64     `json:"actual_count"`
}
