package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vncsmyrnk/pollbooth/internal/core/domain"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, connStr, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db, zerolog.Nop()))
	return db
}

func createUser(t require.TestingT, db *sql.DB) string {
	id := "user-" + uuid.NewString()
	err := NewUserRepository(db).Upsert(context.Background(), &domain.User{
		ID:    id,
		Email: id + "@example.com",
		Name:  id,
	})
	require.NoError(t, err)
	return id
}

func createPoll(t require.TestingT, db *sql.DB, optionCount int) *domain.Poll {
	ownerID := createUser(t, db)
	pollID := uuid.New()
	poll := &domain.Poll{
		ID:        pollID,
		Title:     "poll " + pollID.String()[:8],
		OwnerID:   ownerID,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	for i := 0; i < optionCount; i++ {
		poll.Options = append(poll.Options, domain.PollOption{
			ID:       uuid.New(),
			PollID:   pollID,
			Text:     fmt.Sprintf("option %d", i),
			Position: i,
		})
	}
	require.NoError(t, NewPollRepository(db).Save(context.Background(), poll))
	return poll
}

func voteCount(t require.TestingT, db *sql.DB, optionID uuid.UUID) int64 {
	var count int64
	err := db.QueryRow(`SELECT vote_count FROM poll_options WHERE id = $1`, optionID).Scan(&count)
	require.NoError(t, err)
	return count
}

func voteRows(t require.TestingT, db *sql.DB, pollID uuid.UUID, optionID uuid.UUID) int64 {
	var count int64
	err := db.QueryRow(`SELECT COUNT(*) FROM votes WHERE poll_id = $1 AND option_id = $2`, pollID, optionID).Scan(&count)
	require.NoError(t, err)
	return count
}
