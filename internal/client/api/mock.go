package api

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Mock is an offline Backend. Login and register succeed for any
// credentials and synthesize a fixed user carrying the given email.
type Mock struct {
	// Latency is slept before every call, honoring ctx.
	Latency time.Duration

	mu   sync.Mutex
	user *User
}

func NewMock(latency time.Duration) *Mock {
	return &Mock{Latency: latency}
}

func (m *Mock) Login(ctx context.Context, email, _ string) (User, error) {
	if err := m.wait(ctx); err != nil {
		return User{}, err
	}
	u := User{
		ID:        "1",
		Email:     normalizeEmail(email),
		FullName:  "Test User",
		Specialty: "Full Stack Development",
		Location:  "Remote",
		Phone:     "+1 (555) 123-4567",
	}
	m.set(&u)
	return u, nil
}

func (m *Mock) Register(ctx context.Context, email, _ string) (User, error) {
	if err := m.wait(ctx); err != nil {
		return User{}, err
	}
	u := User{ID: "1", Email: normalizeEmail(email), FullName: "Test User"}
	m.set(&u)
	return u, nil
}

func (m *Mock) Logout(ctx context.Context) error {
	m.set(nil)
	return m.wait(ctx)
}

func (m *Mock) Profile(ctx context.Context) (User, error) {
	if err := m.wait(ctx); err != nil {
		return User{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return User{}, ErrNotLoggedIn
	}
	return *m.user, nil
}

func (m *Mock) UpdateProfile(ctx context.Context, patch ProfilePatch) (User, error) {
	if err := m.wait(ctx); err != nil {
		return User{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return User{}, ErrNotLoggedIn
	}
	next := patch.Apply(*m.user)
	m.user = &next
	return next, nil
}

func (m *Mock) set(u *User) {
	m.mu.Lock()
	m.user = u
	m.mu.Unlock()
}

func (m *Mock) wait(ctx context.Context) error {
	if m.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
