package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	authjwt "github.com/vncsmyrnk/pollbooth/internal/adapters/auth/jwt"
	handler "github.com/vncsmyrnk/pollbooth/internal/adapters/handler/http"
	repo "github.com/vncsmyrnk/pollbooth/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollbooth/internal/core/services"
)

const jwtSecret = "test-secret"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
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
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := repo.Open(ctx, dbURL, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(ctx, db, zerolog.Nop()))

	pollRepo := repo.NewPollRepository(db)
	ledger := repo.NewVoteLedger(db)
	userRepo := repo.NewUserRepository(db)

	pollSvc := services.NewPollService(pollRepo, nil, zerolog.Nop())
	voteSvc := services.NewVoteService(pollRepo, ledger, nil, nil, zerolog.Nop())
	userSvc := services.NewUserService(userRepo)

	router := handler.NewHandler(
		handler.NewPollHandler(pollSvc),
		handler.NewVoteHandler(voteSvc, nil),
		handler.NewUserHandler(userSvc),
		handler.NewAuthMiddleware(authjwt.NewVerifier(jwtSecret, ""), userSvc),
		handler.Options{AllowedOrigins: []string{"*"}, Logger: zerolog.Nop(), Health: db},
	)
	server := httptest.NewServer(router)

	app := &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
	t.Cleanup(func() { app.Teardown(t) })
	return app
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// newToken signs an access token for a fresh identity. The user row is
// created by the auth middleware on first use.
func newToken(t *testing.T) (token, subject string) {
	t.Helper()

	subject = uuid.NewString()
	claims := jwt.MapClaims{
		"sub":           subject,
		"email":         fmt.Sprintf("user-%s@example.com", subject),
		"user_metadata": map[string]interface{}{"full_name": "User " + subject[:8]},
		"exp":           time.Now().Add(15 * time.Minute).Unix(),
		"iat":           time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return token, subject
}

func (app *TestApp) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}
