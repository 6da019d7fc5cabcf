package domain

import (
	"time"

	"github.com/google/uuid"
)

type Poll struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Options     []PollOption `json:"options"`
	OwnerID     string       `json:"owner_id"`
	IsActive    bool         `json:"is_active"`
	TotalVotes  int64        `json:"total_votes"`
	CreatedAt   time.Time    `json:"created_at"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
}

type PollOption struct {
	ID         uuid.UUID `json:"id"`
	PollID     uuid.UUID `json:"poll_id"`
	Text       string    `json:"text"`
	Position   int       `json:"position"`
	VoteCount  int64     `json:"vote_count"`
	Percentage float64   `json:"percentage"`
}

// IsOpen reports whether the poll accepts votes at the given instant.
func (p *Poll) IsOpen(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	return p.ExpiresAt == nil || now.Before(*p.ExpiresAt)
}

// HasOption reports whether optionID is one of the poll's options.
func (p *Poll) HasOption(optionID uuid.UUID) bool {
	for _, opt := range p.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// ComputeTotals fills TotalVotes and each option's Percentage from the stored
// vote counts.
func (p *Poll) ComputeTotals() {
	var total int64
	for _, opt := range p.Options {
		total += opt.VoteCount
	}
	p.TotalVotes = total

	for i := range p.Options {
		p.Options[i].Percentage = 0
		if total > 0 {
			p.Options[i].Percentage = float64(p.Options[i].VoteCount) / float64(total) * 100
		}
	}
}

// Version orders views of the same poll. Counters only grow and a poll only
// goes from active to inactive, so a later view never has a lower version.
// ComputeTotals must have been called.
func (p *Poll) Version() int64 {
	v := p.TotalVotes * 2
	if !p.IsActive {
		v++
	}
	return v
}
