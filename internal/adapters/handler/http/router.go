package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/vncsmyrnk/pollbooth/docs"
)

// HealthChecker is satisfied by *sql.DB.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

const defaultRequestTimeout = 10 * time.Second

type Options struct {
	AllowedOrigins []string
	Logger         zerolog.Logger
	Metrics        *Metrics
	Health         HealthChecker
	// RequestTimeout bounds every /api request; zero means 10s.
	RequestTimeout time.Duration
}

func NewHandler(pollHandler *PollHandler, voteHandler *VoteHandler, userHandler *UserHandler, auth *AuthMiddleware, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	r.Get("/healthz", healthz(opts.Health))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(timeout))

		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListPolls)
			r.Get("/{id}", pollHandler.GetPoll)

			r.Group(func(r chi.Router) {
				r.Use(auth.Handler)
				r.Post("/", pollHandler.CreatePoll)
				r.Post("/{id}/close", pollHandler.ClosePoll)
				r.Post("/{id}/votes", voteHandler.VoteOnPoll)
				r.Get("/{id}/my-vote", voteHandler.GetMyVote)
			})
		})

		r.With(auth.Handler).Get("/me", userHandler.GetMe)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
			http.MethodHead},
	})

	return c.Handler(r)
}

func healthz(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := checker.PingContext(ctx); err != nil {
				hlog.FromRequest(r).Warn().Err(err).Msg("health check failed")
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
