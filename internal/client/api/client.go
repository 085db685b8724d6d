package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/baechuer/skillmarket/internal/logger"
	"github.com/baechuer/skillmarket/internal/pkg/reqctx"
)

// ClientConfig holds timeouts for the HTTP client.
type ClientConfig struct {
	// ReadTimeout is used for GET requests
	ReadTimeout time.Duration
	// WriteTimeout is used for POST, PATCH and friends
	WriteTimeout time.Duration
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Client is the HTTP Backend. The refresh token lives in the cookie jar,
// the access token in memory only.
type Client struct {
	baseURL string
	http    *http.Client
	config  ClientConfig

	mu          sync.Mutex
	accessToken string
}

func NewClient(baseURL string, cfg ClientConfig) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		config:  cfg,
	}, nil
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authData struct {
	User   User `json:"user"`
	Tokens struct {
		AccessToken string `json:"accessToken"`
		TokenType   string `json:"tokenType"`
		ExpiresIn   int64  `json:"expiresIn"`
	} `json:"tokens"`
}

func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	return c.authenticate(ctx, "/api/auth/login", credentials{Email: email, Password: password})
}

func (c *Client) Register(ctx context.Context, email, password string) (User, error) {
	return c.authenticate(ctx, "/api/auth/register", credentials{Email: email, Password: password})
}

// Refresh trades the refresh cookie for a new access token.
func (c *Client) Refresh(ctx context.Context) (User, error) {
	return c.authenticate(ctx, "/api/auth/refresh", nil)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (User, error) {
	data, err := doJSON[authData](ctx, c, http.MethodPost, path, body, false)
	if err != nil {
		return User{}, err
	}
	c.setToken(data.Tokens.AccessToken)
	return data.User, nil
}

// Logout drops the local access token even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.setToken("")
	_, err := doJSON[struct{}](ctx, c, http.MethodPost, "/api/auth/logout", nil, false)
	return err
}

func (c *Client) Profile(ctx context.Context) (User, error) {
	return doJSON[User](ctx, c, http.MethodGet, "/api/users/profile", nil, true)
}

func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (User, error) {
	return doJSON[User](ctx, c, http.MethodPatch, "/api/users/profile", patch, true)
}

func (c *Client) setToken(tok string) {
	c.mu.Lock()
	c.accessToken = tok
	c.mu.Unlock()
}

func (c *Client) token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// doJSON sends body as JSON and unwraps the {"data": ...} envelope into T.
// With authed set, an expired access token triggers one refresh and a retry.
func doJSON[T any](ctx context.Context, c *Client, method, path string, body any, authed bool) (T, error) {
	var zero T

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return zero, err
		}
		payload = b
	}

	if authed && c.token() == "" {
		return zero, ErrNotLoggedIn
	}

	out, err := roundTrip[T](ctx, c, method, path, payload, authed)
	if authed && IsCode(err, "token_expired") {
		if _, rerr := c.Refresh(ctx); rerr != nil {
			return zero, err
		}
		return roundTrip[T](ctx, c, method, path, payload, authed)
	}
	return out, err
}

func roundTrip[T any](ctx context.Context, c *Client, method, path string, payload []byte, authed bool) (T, error) {
	var zero T

	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token())
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, decodeError(resp)
	}
	if resp.StatusCode == http.StatusNoContent {
		return zero, nil
	}

	var env dataEnvelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return env.Data, nil
}

// do injects the request id, applies the per-method timeout and logs the call.
func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if id := reqctx.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	timeout := c.config.ReadTimeout
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		timeout = c.config.WriteTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		req = req.WithContext(ctx)
		resp, err := c.send(req)
		if err != nil {
			cancel()
			return nil, err
		}
		resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
		return resp, nil
	}
	return c.send(req)
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	log := logger.WithCtx(req.Context()).With().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Logger()

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Dur("duration", time.Since(start)).Msg("api_request_failed")
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, ErrTimeout
		}
		return nil, ErrUnavailable
	}
	log.Debug().Int("status", resp.StatusCode).Dur("duration", time.Since(start)).Msg("api_request_completed")
	return resp, nil
}

// cancelOnClose keeps the timeout context alive until the body is consumed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
