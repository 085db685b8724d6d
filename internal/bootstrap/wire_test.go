package bootstrap

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/skillmarket/internal/application/profile"
	"github.com/baechuer/skillmarket/internal/config"
	"github.com/baechuer/skillmarket/internal/domain"
	"github.com/baechuer/skillmarket/internal/infrastructure/redis"
	"github.com/baechuer/skillmarket/internal/transport/http/router"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:                "test",
		HTTPAddr:           ":0",
		HTTPReadTimeout:    time.Second,
		HTTPWriteTimeout:   time.Second,
		HTTPIdleTimeout:    time.Second,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		RateLimitPerMinute: 100,
		JWTSecret:          "test-secret",
		JWTIssuer:          "skillmarket",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
		BcryptCost:         4,
		DBAddr:             "postgres://ignored",
		ProfileCacheTTL:    time.Minute,
		RabbitExchange:     "skillmarket.events",
	}
}

type testHarness struct {
	deps   Deps
	mock   sqlmock.Sqlmock
	cfg    *config.Config
	closed bool
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	h := &testHarness{mock: mock, cfg: testConfig()}
	h.deps = Deps{
		LoadConfig: func() (*config.Config, error) { return h.cfg, nil },
		NewDB: func(string, bool, zerolog.Logger) (*sql.DB, error) {
			return db, nil
		},
		Migrate:  func(context.Context, *sql.DB) error { return nil },
		NewRedis: redis.New,
		NewPublisher: func(string, string) (Publisher, error) {
			return nil, errors.New("rabbit down")
		},
		NewAvatars: func(context.Context, config.S3Config) (profile.AvatarStorage, error) {
			return nil, errors.New("s3 misconfigured")
		},
		NewRouter: router.New,
		Logger:    zerolog.Nop(),
	}
	return h
}

func get(t *testing.T, srv *http.Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestNewServer_ConfigLoadFails(t *testing.T) {
	h := newHarness(t)
	h.deps.LoadConfig = func() (*config.Config, error) { return nil, errors.New("missing JWT_SECRET") }

	srv, cleanup, err := NewServerWithDeps(h.deps)
	assert.Error(t, err)
	assert.Nil(t, srv)
	assert.Nil(t, cleanup)
}

func TestNewServer_DBFails(t *testing.T) {
	h := newHarness(t)
	h.deps.NewDB = func(string, bool, zerolog.Logger) (*sql.DB, error) {
		return nil, domain.ErrDBUnavailable(errors.New("refused"))
	}

	_, _, err := NewServerWithDeps(h.deps)
	assert.True(t, domain.Is(err, "db_unavailable"))
}

func TestNewServer_NilDB(t *testing.T) {
	h := newHarness(t)
	h.deps.NewDB = func(string, bool, zerolog.Logger) (*sql.DB, error) { return nil, nil }

	_, _, err := NewServerWithDeps(h.deps)
	assert.ErrorIs(t, err, ErrNoDB)
}

func TestNewServer_MigrationFailureClosesDB(t *testing.T) {
	h := newHarness(t)
	h.cfg.AutoMigrate = true
	h.deps.Migrate = func(context.Context, *sql.DB) error { return errors.New("bad migration") }
	h.mock.ExpectClose()

	_, _, err := NewServerWithDeps(h.deps)
	assert.ErrorContains(t, err, "bad migration")
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestNewServer_DegradedWithoutOptionalBackends(t *testing.T) {
	h := newHarness(t)
	h.cfg.RabbitURL = "amqp://nowhere"

	srv, cleanup, err := NewServerWithDeps(h.deps)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, ":0", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)
	assert.Equal(t, http.StatusOK, get(t, srv, "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(t, srv, "/api/work").Code)
	assert.Equal(t, http.StatusOK, get(t, srv, "/readyz").Code)
	assert.Equal(t, http.StatusUnauthorized, get(t, srv, "/api/users/profile").Code)
}

func TestNewServer_RedisUnreachableFallsBack(t *testing.T) {
	h := newHarness(t)
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	h.cfg.RedisAddr = addr

	srv, cleanup, err := NewServerWithDeps(h.deps)
	require.NoError(t, err)
	defer cleanup()

	var body struct {
		Checks map[string]string `json:"checks"`
	}
	rr := get(t, srv, "/readyz")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.NotContains(t, body.Checks, "redis")
}

func TestNewServer_WithRedis(t *testing.T) {
	h := newHarness(t)
	mr := miniredis.RunT(t)
	h.cfg.RedisAddr = mr.Addr()

	srv, cleanup, err := NewServerWithDeps(h.deps)
	require.NoError(t, err)
	defer cleanup()

	var body struct {
		Checks map[string]string `json:"checks"`
	}
	rr := get(t, srv, "/readyz")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Checks["redis"])

	// the fixed-window limiter is keyed in redis
	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	srv.Handler.ServeHTTP(rr, req)
	assert.NotEmpty(t, rr.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, mr.Keys())
}

func TestNewServer_S3FailureIsFatal(t *testing.T) {
	h := newHarness(t)
	h.cfg.S3 = config.S3Config{Bucket: "avatars"}
	h.mock.ExpectClose()

	_, _, err := NewServerWithDeps(h.deps)
	assert.ErrorContains(t, err, "s3 misconfigured")
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestNewServer_RouterFailureCleansUp(t *testing.T) {
	h := newHarness(t)
	h.deps.NewRouter = func(router.Deps) (http.Handler, error) { return nil, errors.New("router") }
	h.mock.ExpectClose()

	_, _, err := NewServerWithDeps(h.deps)
	assert.ErrorContains(t, err, "router")
	assert.NoError(t, h.mock.ExpectationsWereMet())
}

func TestAuditLogger_WritesFields(t *testing.T) {
	var buf jsonBuffer
	auditLogger(zerolog.New(&buf))("profile_updated", map[string]string{"user_id": "u1"})

	assert.Equal(t, true, buf.line["audit"])
	assert.Equal(t, "profile_updated", buf.line["action"])
	assert.Equal(t, "u1", buf.line["user_id"])
}

type jsonBuffer struct{ line map[string]any }

func (b *jsonBuffer) Write(p []byte) (int, error) {
	b.line = map[string]any{}
	return len(p), json.Unmarshal(p, &b.line)
}
