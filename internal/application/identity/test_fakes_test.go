package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/baechuer/skillmarket/internal/domain"
)

type fakeUserRepo struct {
	mu sync.Mutex

	byID map[string]domain.User

	// injected errors
	getByIDErr    error
	getByEmailErr error
	createErr     error
	updateErr     error

	updates []domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]domain.User{}}
}

func (f *fakeUserRepo) emailTaken(email, exceptID string) bool {
	for id, u := range f.byID {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func (f *fakeUserRepo) Create(_ context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if f.emailTaken(u.Email, "") {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (f *fakeUserRepo) Update(_ context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return domain.User{}, f.updateErr
	}
	if _, ok := f.byID[u.ID]; !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	if f.emailTaken(u.Email, u.ID) {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	f.byID[u.ID] = u
	f.updates = append(f.updates, u)
	return u, nil
}

func (f *fakeUserRepo) stored(id string) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

// fakeHasher is deterministic: hash(pw) = "hash:" + pw.
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(pw string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hash:" + pw, nil
}

func (h *fakeHasher) Compare(hash, pw string) error {
	if !strings.HasPrefix(hash, "hash:") || strings.TrimPrefix(hash, "hash:") != pw {
		return errors.New("mismatch")
	}
	return nil
}

func newStoreForTest() (*Store, *fakeUserRepo, *fakeHasher) {
	repo := newFakeUserRepo()
	h := &fakeHasher{}
	s := NewStore(repo, h)

	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("user-%d", seq)
	}
	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s, repo, h
}
