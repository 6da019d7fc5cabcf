package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/vncsmyrnk/pollbooth/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollbooth/internal/config"
	"github.com/vncsmyrnk/pollbooth/internal/core/services"
	"github.com/vncsmyrnk/pollbooth/internal/logging"
)

const (
	exitConsistent = 0
	exitDrift      = 1
	exitIncomplete = 2
)

// votereconciler compares every option's stored vote_count with its vote rows
// and exits non-zero when they disagree. It never modifies data.
func main() {
	_ = godotenv.Load()

	var (
		dsn         string
		concurrency int
		timeout     time.Duration
	)
	flag.StringVar(&dsn, "database-url", config.DatabaseURL(os.Getenv), "PostgreSQL connection URL")
	flag.IntVar(&concurrency, "concurrency", 8, "Polls audited in parallel")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "Maximum duration of the audit")
	flag.Parse()

	log := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_PRETTY") == "true")

	if dsn == "" {
		log.Fatal().Msg("a database url is required (-database-url, DATABASE_URL or POSTGRES_*)")
	}

	os.Exit(run(log, dsn, concurrency, timeout))
}

func run(log zerolog.Logger, dsn string, concurrency int, timeout time.Duration) int {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := postgres.Open(ctx, dsn, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to database")
		return exitIncomplete
	}
	defer db.Close()

	reconcileService := services.NewReconcileService(postgres.NewReconcileRepository(db), concurrency)

	log.Info().Msg("starting vote count audit")
	drift, err := reconcileService.Audit(ctx)
	for _, d := range drift {
		log.Warn().
			Str("poll_id", d.PollID.String()).
			Str("option_id", d.OptionID.String()).
			Int64("stored_count", d.StoredCount).
			Int64("actual_count", d.ActualCount).
			Msg("vote count drift")
	}
	if err != nil {
		log.Error().Err(err).Msg("audit incomplete")
		return exitIncomplete
	}
	if len(drift) > 0 {
		log.Error().Int("options", len(drift)).Msg("vote counts disagree with vote rows")
		return exitDrift
	}

	log.Info().Msg("vote counts consistent")
	return exitConsistent
}
