package main

import (
	"context"
	"errors"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/vncsmyrnk/pollbooth/internal/adapters/auth/jwt"
	rediscache "github.com/vncsmyrnk/pollbooth/internal/adapters/cache/redis"
	"github.com/vncsmyrnk/pollbooth/internal/adapters/events/rabbitmq"
	"github.com/vncsmyrnk/pollbooth/internal/adapters/handler/http"
	"github.com/vncsmyrnk/pollbooth/internal/adapters/oauth/google"
	"github.com/vncsmyrnk/pollbooth/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollbooth/internal/config"
	"github.com/vncsmyrnk/pollbooth/internal/core/ports"
	"github.com/vncsmyrnk/pollbooth/internal/core/services"
	"github.com/vncsmyrnk/pollbooth/internal/logging"
)

// @title        pollbooth API
// @version      1.0
// @description  Polls with one vote per user and live counts.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	var cache ports.PollCache
	if cfg.RedisURL != "" {
		client, err := rediscache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		cache = rediscache.NewPollCache(client, cfg.PollCacheTTL)
	}

	var publisher ports.VoteEventPublisher
	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Dial(ctx, cfg.RabbitMQURL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to rabbitmq")
		}
		defer conn.Close()

		p, err := rabbitmq.NewPublisher(conn, cfg.RabbitMQQueue)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up vote publisher")
		}
		defer p.Close()
		publisher = p
	}

	var verifier ports.TokenVerifier
	switch cfg.AuthProvider {
	case config.AuthProviderGoogle:
		verifier = google.NewVerifier(cfg.GoogleClientID)
	default:
		verifier = jwt.NewVerifier(cfg.JWTSecret, cfg.JWTAudience)
	}

	// Repositories
	pollRepo := postgres.NewPollRepository(db)
	ledger := postgres.NewVoteLedger(db)
	userRepo := postgres.NewUserRepository(db)

	// Services
	pollService := services.NewPollService(pollRepo, cache, log)
	voteService := services.NewVoteService(pollRepo, ledger, cache, publisher, log)
	userService := services.NewUserService(userRepo)

	metrics := http.NewMetrics()
	handler := http.NewHandler(
		http.NewPollHandler(pollService),
		http.NewVoteHandler(voteService, metrics),
		http.NewUserHandler(userService),
		http.NewAuthMiddleware(verifier, userService),
		http.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			Logger:         log,
			Metrics:        metrics,
			Health:         db,
			RequestTimeout: cfg.RequestTimeout,
		},
	)

	server := &stdhttp.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
