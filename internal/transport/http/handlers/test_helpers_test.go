package http_handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baechuer/skillmarket/internal/application/auth"
	"github.com/baechuer/skillmarket/internal/application/catalog"
	"github.com/baechuer/skillmarket/internal/application/identity"
	"github.com/baechuer/skillmarket/internal/application/profile"
	"github.com/baechuer/skillmarket/internal/domain"
	"github.com/baechuer/skillmarket/internal/infrastructure/memory"
	"github.com/baechuer/skillmarket/internal/infrastructure/security"
	"github.com/baechuer/skillmarket/internal/transport/http/middleware"
)

type fakeAvatars struct{}

func (fakeAvatars) PresignPut(_ context.Context, key, _ string) (string, time.Duration, error) {
	return "https://upload.test/" + key + "?sig=1", 15 * time.Minute, nil
}

func (fakeAvatars) PublicURL(key string) string { return "https://cdn.test/" + key }

type testEnv struct {
	users    *memory.UserRepo
	store    *identity.Store
	auth     *auth.Service
	profile  *profile.Service
	catalog  *catalog.Service
	signer   *security.JWTSigner
	sessions *memory.SessionStore
}

func newTestEnv(t *testing.T, avatars profile.AvatarStorage) *testEnv {
	t.Helper()

	users := memory.NewUserRepo()
	store := identity.NewStore(users, security.NewBcryptHasher(4))
	signer := security.NewJWTSigner("test-secret", "skillmarket")
	sessions := memory.NewSessionStore()
	pub := memory.NoopPublisher{}

	return &testEnv{
		users:    users,
		store:    store,
		auth:     auth.NewService(store, signer, sessions, pub, auth.Config{AccessTTL: time.Minute, RefreshTTL: time.Hour}),
		profile:  profile.NewService(store, nil, pub, avatars),
		catalog:  catalog.NewService(memory.NewCatalogStore(catalog.SeedWork(time.Now()), catalog.SeedCandidates(time.Now()))),
		signer:   signer,
		sessions: sessions,
	}
}

func (e *testEnv) mustCreateUser(t *testing.T, email, password string) domain.PublicUser {
	t.Helper()
	u, err := e.store.Create(context.Background(), email, password, domain.ProfileFields{FullName: "Test"})
	require.NoError(t, err)
	return u
}

func jsonReq(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()

	var body io.Reader = http.NoBody
	switch x := v.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(x)
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// mustReadData decodes the {"data": ...} envelope into out.
func mustReadData(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	require.NotEmpty(t, env.Data, rr.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out), rr.Body.String())
}

func mustErrorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body.Error.Code
}

func readCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func withUserCtx(req *http.Request, userID string) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), userID))
}
