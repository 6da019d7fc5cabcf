package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
)

const (
	EventVoteRecorded = "vote.recorded"

	dialAttempts = 5
	dialBackoff  = 500 * time.Millisecond
)

// VoteEvent is the message body published for every committed vote.
type VoteEvent struct {
	Type      string    `json:"type"`
	VoteID    string    `json:"vote_id"`
	PollID    string    `json:"poll_id"`
	OptionID  string    `json:"option_id"`
	VoterID   string    `json:"voter_id"`
	CreatedAt time.Time `json:"created_at"`
}

func newVoteEvent(vote *domain.Vote) VoteEvent {
	return VoteEvent{
		Type:      EventVoteRecorded,
		VoteID:    vote.ID.String(),
		PollID:    vote.PollID.String(),
		OptionID:  vote.OptionID.String(),
		VoterID:   vote.VoterID,
		CreatedAt: vote.CreatedAt,
	}
}

// Dial connects to the broker, retrying with exponential backoff.
func Dial(ctx context.Context, url string, log zerolog.Logger) (*amqp.Connection, error) {
	backoff, err := retry.NewExponential(dialBackoff)
	if err != nil {
		return nil, fmt.Errorf("failed to build backoff: %w", err)
	}
	backoff = retry.WithMaxRetries(dialAttempts, backoff)

	var conn *amqp.Connection
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		c, err := amqp.Dial(url)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to rabbitmq, retrying")
			return retry.RetryableError(err)
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to rabbitmq after multiple retries: %w", err)
	}
	return conn, nil
}

type Publisher struct {
	channel *amqp.Channel
	queue   string

	// sem serializes use of the channel, which is not safe for concurrent
	// publishing. Waiting for it honours the caller's context.
	sem chan struct{}
}

// NewPublisher opens a channel on conn and declares queue as durable.
func NewPublisher(conn *amqp.Connection, queue string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	return &Publisher{
		channel: ch,
		queue:   queue,
		sem:     make(chan struct{}, 1),
	}, nil
}

var _ ports.VoteEventPublisher = (*Publisher)(nil)

func (p *Publisher) PublishVoteRecorded(ctx context.Context, vote *domain.Vote) error {
	body, err := json.Marshal(newVoteEvent(vote))
	if err != nil {
		return fmt.Errorf("failed to encode vote event: %w", err)
	}

	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("failed to publish vote event: %w", ctx.Err())
	}
	defer func() { <-p.sem }()

	err = p.channel.PublishWithContext(ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    vote.ID.String(),
			Type:         EventVoteRecorded,
			Timestamp:    vote.CreatedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish vote event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.sem <- struct{}{}
	defer func() { <-p.sem }()
	return p.channel.Close()
}
