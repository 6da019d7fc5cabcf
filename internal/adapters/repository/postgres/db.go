package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

const (
	connectAttempts = 8
	connectBackoff  = 250 * time.Millisecond
)

// Open connects to PostgreSQL and pings it with exponential backoff until the
// server answers or the attempts run out.
func Open(ctx context.Context, dsn string, log zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	backoff, err := retry.NewExponential(connectBackoff)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to build backoff: %w", err)
	}
	backoff = retry.WithMaxRetries(connectAttempts, backoff)

	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := db.PingContext(ctx); err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("database not ready")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
