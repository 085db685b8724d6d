package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/baechuer/skillmarket/internal/domain"
)

type fakeIdentity struct {
	mu sync.Mutex

	users     map[string]domain.PublicUser
	passwords map[string]string // email -> plaintext

	createErr error
	findErr   error
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{users: map[string]domain.PublicUser{}, passwords: map[string]string{}}
}

func (f *fakeIdentity) Create(_ context.Context, email, password string, fields domain.ProfileFields) (domain.PublicUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.PublicUser{}, f.createErr
	}
	if _, taken := f.passwords[email]; taken {
		return domain.PublicUser{}, domain.ErrEmailAlreadyExists()
	}
	u := domain.PublicUser{ID: fmt.Sprintf("u%d", len(f.users)+1), Email: email, FullName: fields.FullName}
	f.users[u.ID] = u
	f.passwords[email] = password
	return u, nil
}

func (f *fakeIdentity) FindByID(_ context.Context, id string) (domain.PublicUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return domain.PublicUser{}, f.findErr
	}
	u, ok := f.users[id]
	if !ok {
		return domain.PublicUser{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeIdentity) VerifyCredentials(_ context.Context, email, password string) (domain.PublicUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pw, ok := f.passwords[email]
	if !ok || pw != password {
		return domain.PublicUser{}, domain.ErrInvalidCredentials()
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.PublicUser{}, domain.ErrInvalidCredentials()
}

type fakeSigner struct {
	signErr error
}

func (s *fakeSigner) SignAccessToken(userID string, ttl time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	return "access:" + userID, nil
}

func (s *fakeSigner) VerifyAccessToken(token string) (domain.AccessClaims, error) {
	return domain.AccessClaims{}, errors.New("not used")
}

type fakeSessions struct {
	mu      sync.Mutex
	seq     int
	byToken map[string]string

	createErr error
	getErr    error
	rotateErr error
	revoked   []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byToken: map[string]string{}}
}

func (f *fakeSessions) CreateRefreshToken(_ context.Context, userID string, _ time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return "", f.createErr
	}
	f.seq++
	tok := fmt.Sprintf("rt-%d", f.seq)
	f.byToken[tok] = userID
	return tok, nil
}

func (f *fakeSessions) GetUserIDByRefreshToken(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return "", f.getErr
	}
	uid, ok := f.byToken[token]
	if !ok {
		return "", domain.ErrRefreshTokenInvalid()
	}
	return uid, nil
}

func (f *fakeSessions) RotateRefreshToken(ctx context.Context, oldToken string, ttl time.Duration) (string, error) {
	if f.rotateErr != nil {
		return "", f.rotateErr
	}
	uid, err := f.GetUserIDByRefreshToken(ctx, oldToken)
	if err != nil {
		return "", err
	}
	_ = f.RevokeRefreshToken(ctx, oldToken)
	return f.CreateRefreshToken(ctx, uid, ttl)
}

func (f *fakeSessions) RevokeRefreshToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.byToken, token)
	f.revoked = append(f.revoked, token)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []domain.UserRegisteredEvent
}

func (p *fakePublisher) PublishUserRegistered(_ context.Context, evt domain.UserRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, evt)
	return p.err
}

type testDeps struct {
	identity *fakeIdentity
	signer   *fakeSigner
	sessions *fakeSessions
	pub      *fakePublisher
	audit    *[]string
}

func newSvcForTest(t *testing.T) (*Service, testDeps) {
	t.Helper()

	d := testDeps{
		identity: newFakeIdentity(),
		signer:   &fakeSigner{},
		sessions: newFakeSessions(),
		pub:      &fakePublisher{},
		audit:    &[]string{},
	}
	svc := NewService(d.identity, d.signer, d.sessions, d.pub, Config{AccessTTL: time.Minute, RefreshTTL: time.Hour}).
		WithAudit(func(action string, _ map[string]string) { *d.audit = append(*d.audit, action) })
	return svc, d
}
