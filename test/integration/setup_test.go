//go:build integration

// Package integration runs the API and reminder scheduler against a real
// PostgreSQL started in Docker. Run with: go test -tags integration ./test/...
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/warrify/internal/app"
	"github.com/turtacn/warrify/internal/config"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
)

const (
	dbName     = "warrify_test"
	dbUser     = "warrify"
	dbPassword = "warrify"
)

// startPostgres launches PostgreSQL 16 and returns its host and mapped port.
func startPostgres(t *testing.T) (string, int) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase(dbName),
		tcpostgres.WithUsername(dbUser),
		tcpostgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	return host, port.Int()
}

// env is a wired container over a fresh database plus its router.
type env struct {
	c      *app.Container
	router *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()
	host, port := startPostgres(t)

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Server.Mode = "test"
	cfg.Database.Host = host
	cfg.Database.Port = port
	cfg.Database.User = dbUser
	cfg.Database.Password = dbPassword
	cfg.Database.DBName = dbName
	cfg.Database.SSLMode = "disable"
	cfg.Database.AutoMigrate = true
	cfg.Redis.Enabled = false
	cfg.Kafka.Enabled = false
	cfg.MinIO.Enabled = false
	cfg.RateLimit.Enabled = false
	cfg.Metrics.Enabled = false
	require.NoError(t, cfg.Validate())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	c, err := app.New(ctx, cfg, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return &env{c: c, router: c.Router()}
}

func (e *env) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}

// signupAndLogin registers a user and returns their bearer token.
func (e *env) signupAndLogin(t *testing.T, name, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	decode(t, w, &res)
	require.NotEmpty(t, res.Token)
	return res.Token
}

func productPath(id int64, suffix string) string {
	return "/api/products/" + strconv.FormatInt(id, 10) + suffix
}
