package profile

import (
	"context"
	"sync"
	"time"

	"github.com/baechuer/skillmarket/internal/domain"
)

type fakeUsers struct {
	mu      sync.Mutex
	byID    map[string]domain.PublicUser
	findErr error
	updErr  error

	finds   int
	updated []string
}

func newFakeUsers(users ...domain.PublicUser) *fakeUsers {
	f := &fakeUsers{byID: map[string]domain.PublicUser{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (domain.PublicUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.finds++
	if f.findErr != nil {
		return domain.PublicUser{}, f.findErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.PublicUser{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUsers) Update(_ context.Context, id string, patch domain.ProfilePatch) (domain.PublicUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updErr != nil {
		return domain.PublicUser{}, f.updErr
	}
	pu, ok := f.byID[id]
	if !ok {
		return domain.PublicUser{}, domain.ErrUserNotFound()
	}
	u := domain.User{ID: pu.ID, Email: pu.Email, FullName: pu.FullName, Specialty: pu.Specialty,
		Location: pu.Location, Phone: pu.Phone, ImageURL: pu.ImageURL}
	patch.ApplyTo(&u)
	f.byID[id] = u.Public()
	f.updated = append(f.updated, id)
	return u.Public(), nil
}

type fakeCache struct {
	mu     sync.Mutex
	byID   map[string]domain.PublicUser
	getErr error
	setErr error
}

func newFakeCache() *fakeCache { return &fakeCache{byID: map[string]domain.PublicUser{}} }

func (c *fakeCache) Get(_ context.Context, id string) (domain.PublicUser, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getErr != nil {
		return domain.PublicUser{}, false, c.getErr
	}
	u, ok := c.byID[id]
	return u, ok, nil
}

func (c *fakeCache) Set(_ context.Context, u domain.PublicUser) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.setErr != nil {
		return c.setErr
	}
	c.byID[u.ID] = u
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []domain.ProfileUpdatedEvent
}

func (p *fakePublisher) PublishProfileUpdated(_ context.Context, evt domain.ProfileUpdatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, evt)
	return p.err
}

type fakeAvatars struct {
	err  error
	keys []string
}

func (a *fakeAvatars) PresignPut(_ context.Context, key, contentType string) (string, time.Duration, error) {
	if a.err != nil {
		return "", 0, a.err
	}
	a.keys = append(a.keys, key)
	return "https://s3.test/" + key + "?sig=1", 15 * time.Minute, nil
}

func (a *fakeAvatars) PublicURL(key string) string { return "https://cdn.test/" + key }
