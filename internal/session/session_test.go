package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prism/internal/store"
)

func openRepo(t *testing.T) store.SessionRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "prism.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.SessionRepo()
}

func TestLogin(t *testing.T) {
	tests := []struct {
		user, pass string
		role       Role
		wantErr    bool
	}{
		{"admin", "admin", RoleAdmin, false},
		{"student", "student", RoleStudent, false},
		{"admin", "student", "", true},
		{"root", "root", "", true},
		{"", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.user+"/"+tt.pass, func(t *testing.T) {
			a := NewAuth(openRepo(t))
			u, err := a.Login(context.Background(), tt.user, tt.pass)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.False(t, a.LoggedIn())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, u.Role)
			assert.True(t, a.LoggedIn())
		})
	}
}

func TestInitRestoresPersistedLogin(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	first := NewAuth(repo)
	first.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	_, err := first.Login(ctx, "student", "student")
	require.NoError(t, err)

	second := NewAuth(repo)
	assert.False(t, second.LoggedIn())
	require.NoError(t, second.Init(ctx))

	u, ok := second.Current()
	require.True(t, ok)
	assert.Equal(t, "student", u.Username)
	assert.Equal(t, RoleStudent, u.Role)
	assert.True(t, u.LoggedInAt.Equal(time.UnixMilli(1_700_000_000_000)))
}

func TestClear(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	a := NewAuth(repo)
	_, err := a.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	require.NoError(t, a.Clear(ctx))
	assert.False(t, a.LoggedIn())

	b := NewAuth(repo)
	require.NoError(t, b.Init(ctx))
	assert.False(t, b.LoggedIn())
}

type failingRepo struct{ store.SessionRepo }

func (failingRepo) Save(context.Context, store.SessionRecord) error { return errors.New("disk full") }

func TestLogin_PersistFailureLeavesLoggedOut(t *testing.T) {
	a := NewAuth(failingRepo{})
	_, err := a.Login(context.Background(), "admin", "admin")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
	assert.False(t, a.LoggedIn())
}
