package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/skillmarket/internal/pkg/reqctx"
)

// fakeServer mimics the auth and profile routes with a single account.
type fakeServer struct {
	mu            sync.Mutex
	user          User
	token         string
	expireNext    bool
	refreshCalls  int
	lastRequestID string
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()

	writeAuth := func(w http.ResponseWriter, status int) {
		f.token = "tok-" + time.Now().Format("150405.000000000")
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "r1", Path: "/api/auth", HttpOnly: true})
		writeData(w, status, map[string]any{
			"user":   f.user,
			"tokens": map[string]any{"accessToken": f.token, "tokenType": "Bearer", "expiresIn": 900},
		})
	}

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastRequestID = r.Header.Get("X-Request-ID")
		var c credentials
		_ = json.NewDecoder(r.Body).Decode(&c)
		if c.Password != "s3cret-pass" {
			writeErr(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		f.user = User{ID: "u1", Email: c.Email, FullName: "Ada"}
		writeAuth(w, http.StatusOK)
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var c credentials
		_ = json.NewDecoder(r.Body).Decode(&c)
		f.user = User{ID: "u2", Email: c.Email}
		writeAuth(w, http.StatusCreated)
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.refreshCalls++
		if ck, err := r.Cookie("refresh_token"); err != nil || ck.Value != "r1" {
			writeErr(w, http.StatusUnauthorized, "refresh_token_invalid")
			return
		}
		writeAuth(w, http.StatusOK)
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.authorized(w, r) {
			return
		}
		writeData(w, http.StatusOK, f.user)
	})
	mux.HandleFunc("PATCH /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.authorized(w, r) {
			return
		}
		var p ProfilePatch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid_json")
			return
		}
		f.user = p.Apply(f.user)
		writeData(w, http.StatusOK, f.user)
	})
	return mux
}

func (f *fakeServer) authorized(w http.ResponseWriter, r *http.Request) bool {
	if f.expireNext {
		f.expireNext = false
		writeErr(w, http.StatusUnauthorized, "token_expired")
		return false
	}
	if r.Header.Get("Authorization") != "Bearer "+f.token {
		writeErr(w, http.StatusUnauthorized, "token_invalid")
		return false
	}
	return true
}

func writeData(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": v})
}

func writeErr(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": strings.ReplaceAll(code, "_", " "), "request_id": "rid-1"},
	})
}

func newTestClient(t *testing.T) (*Client, *fakeServer) {
	t.Helper()
	fs := &fakeServer{}
	srv := httptest.NewServer(fs.handler())
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/", DefaultClientConfig())
	require.NoError(t, err)
	return c, fs
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("not a url", DefaultClientConfig())
	require.Error(t, err)
}

func TestClient_LoginThenProfile(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	u, err := c.Login(ctx, "ada@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "ada@example.com", u.Email)

	got, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestClient_LoginFailureDecodesErrorEnvelope(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "invalid_credentials", se.Code)
	assert.Equal(t, "rid-1", se.RequestID)
	assert.True(t, IsCode(err, "invalid_credentials"))
}

func TestClient_ProfileWithoutLogin(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Profile(context.Background())
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestClient_UpdateProfile(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.Register(ctx, "new@example.com", "whatever-pass")
	require.NoError(t, err)

	u, err := c.UpdateProfile(ctx, ProfilePatch{Location: String("Berlin")})
	require.NoError(t, err)
	assert.Equal(t, "Berlin", u.Location)
	assert.Equal(t, "new@example.com", u.Email)
}

func TestClient_ExpiredTokenRefreshesOnce(t *testing.T) {
	c, fs := newTestClient(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "ada@example.com", "s3cret-pass")
	require.NoError(t, err)

	fs.mu.Lock()
	fs.expireNext = true
	fs.mu.Unlock()

	u, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	fs.mu.Lock()
	defer fs.mu.Unlock()
	assert.Equal(t, 1, fs.refreshCalls)
}

func TestClient_LogoutDropsToken(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "ada@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, c.Logout(ctx))

	_, err = c.Profile(ctx)
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestClient_PropagatesRequestID(t *testing.T) {
	c, fs := newTestClient(t)
	ctx := reqctx.WithRequestID(context.Background(), "cli-42")

	_, err := c.Login(ctx, "ada@example.com", "s3cret-pass")
	require.NoError(t, err)

	fs.mu.Lock()
	defer fs.mu.Unlock()
	assert.Equal(t, "cli-42", fs.lastRequestID)
}

func TestClient_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewClient(base, DefaultClientConfig())
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "a@example.com", "x")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_UnexpectedStatusWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, DefaultClientConfig())
	require.NoError(t, err)

	_, err = c.Register(context.Background(), "a@example.com", "x")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Equal(t, "unexpected_status", se.Code)
}
