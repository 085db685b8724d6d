// Package session holds the client's current authenticated user.
//
// A Store is owned by one client program and passed to whatever renders it.
// Views learn about changes through Subscribe instead of polling.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/baechuer/skillmarket/internal/client/api"
)

// Listener receives the user after a change; nil means logged out.
type Listener func(user *api.User)

type subscription struct {
	id int
	fn Listener
}

type Store struct {
	backend api.Backend
	log     zerolog.Logger

	mu     sync.Mutex
	user   *api.User
	subs   []subscription
	nextID int
	// gen changes on every login, register and logout
	gen uint64
}

func New(backend api.Backend) *Store {
	return &Store{backend: backend, log: zerolog.Nop()}
}

func (s *Store) WithLogger(lg zerolog.Logger) *Store {
	s.log = lg
	return s
}

// Login replaces the stored user on success; on failure the previous
// session is left as it was.
func (s *Store) Login(ctx context.Context, email, password string) error {
	u, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.set(&u)
	return nil
}

func (s *Store) Register(ctx context.Context, email, password string) error {
	u, err := s.backend.Register(ctx, email, password)
	if err != nil {
		return err
	}
	s.set(&u)
	return nil
}

// Logout always ends in an anonymous session. The remote call is best effort.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.backend.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("remote logout failed")
	}
	s.set(nil)
	return nil
}

// UpdateProfile merges patch into the current user. Without a user it does
// nothing and returns nil.
func (s *Store) UpdateProfile(ctx context.Context, patch api.ProfilePatch) error {
	if patch.Empty() {
		return nil
	}
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil
	}
	gen := s.gen
	s.mu.Unlock()

	u, err := s.backend.UpdateProfile(ctx, patch)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.user == nil || s.gen != gen {
		// the session changed while the request was in flight
		s.mu.Unlock()
		return nil
	}
	merged := patch.Apply(*s.user)
	if u.ID != "" {
		merged = u
	}
	s.user = &merged
	subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(subs, &merged)
	return nil
}

// Reload refetches the profile for the current user.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return api.ErrNotLoggedIn
	}
	gen := s.gen
	s.mu.Unlock()

	u, err := s.backend.Profile(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.user == nil || s.gen != gen {
		s.mu.Unlock()
		return nil
	}
	s.user = &u
	subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(subs, &u)
	return nil
}

// User returns a copy of the stored user, or nil.
func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) LoggedIn() bool {
	return s.User() != nil
}

// Subscribe registers fn and returns a func that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) set(u *api.User) {
	s.mu.Lock()
	if s.user == nil && u == nil {
		s.mu.Unlock()
		return
	}
	s.user = u
	s.gen++
	subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(subs, u)
}

func (s *Store) snapshotLocked() []Listener {
	out := make([]Listener, 0, len(s.subs))
	for _, sub := range s.subs {
		out = append(out, sub.fn)
	}
	return out
}

// notify runs outside the lock so listeners may call back into the store.
func notify(subs []Listener, u *api.User) {
	for _, fn := range subs {
		if u == nil {
			fn(nil)
			continue
		}
		cp := *u
		fn(&cp)
	}
}
