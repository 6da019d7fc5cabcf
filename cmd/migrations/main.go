package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vncsmyrnk/pollbooth/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollbooth/internal/config"
	"github.com/vncsmyrnk/pollbooth/internal/logging"
)

func main() {
	_ = godotenv.Load()

	var (
		dsn  string
		list bool
	)
	flag.StringVar(&dsn, "database-url", config.DatabaseURL(os.Getenv), "PostgreSQL connection URL")
	flag.BoolVar(&list, "list", false, "Print the embedded migrations and exit")
	flag.Parse()

	log := logging.New(os.Getenv("LOG_LEVEL"), true)

	if list {
		names, err := postgres.MigrationNames()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to list migrations")
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	if dsn == "" {
		log.Fatal().Msg("a database url is required (-database-url, DATABASE_URL or POSTGRES_*)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, dsn, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	log.Info().Msg("migrations applied successfully")
}
