package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_LoginSynthesizesFixedUser(t *testing.T) {
	m := NewMock(0)

	u, err := m.Login(context.Background(), " A@Example.com ", "x")
	require.NoError(t, err)
	assert.Equal(t, User{
		ID:        "1",
		Email:     "a@example.com",
		FullName:  "Test User",
		Specialty: "Full Stack Development",
		Location:  "Remote",
		Phone:     "+1 (555) 123-4567",
	}, u)
}

func TestMock_RegisterThenUpdate(t *testing.T) {
	m := NewMock(0)
	ctx := context.Background()

	u, err := m.Register(ctx, "b@example.com", "x")
	require.NoError(t, err)
	assert.Equal(t, User{ID: "1", Email: "b@example.com", FullName: "Test User"}, u)

	u, err = m.UpdateProfile(ctx, ProfilePatch{Location: String("Berlin"), Password: String("ignored")})
	require.NoError(t, err)
	assert.Equal(t, "Berlin", u.Location)
	assert.Equal(t, "b@example.com", u.Email)

	got, err := m.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestMock_RequiresLogin(t *testing.T) {
	m := NewMock(0)
	ctx := context.Background()

	_, err := m.Profile(ctx)
	require.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = m.UpdateProfile(ctx, ProfilePatch{Location: String("x")})
	require.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = m.Login(ctx, "a@example.com", "x")
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	_, err = m.Profile(ctx)
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestMock_LatencyHonorsContext(t *testing.T) {
	m := NewMock(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Login(ctx, "a@example.com", "x")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProfilePatch_Apply(t *testing.T) {
	base := User{ID: "1", Email: "a@example.com", FullName: "A"}

	assert.True(t, ProfilePatch{}.Empty())
	assert.Equal(t, base, ProfilePatch{}.Apply(base))

	got := ProfilePatch{FullName: String(""), Email: String(" NEW@example.com")}.Apply(base)
	assert.Equal(t, "", got.FullName)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "1", got.ID)
}
