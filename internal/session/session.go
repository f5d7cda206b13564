// Package session is the login context. It is created once at startup,
// initialized from the local store and passed explicitly to the screens and
// commands that need identity.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/prism/internal/store"
)

// Role is the kind of account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// InvalidCredentialsMessage is shown on a failed login.
const InvalidCredentialsMessage = "Invalid username or password"

// ErrInvalidCredentials is returned by Login for unknown credentials.
var ErrInvalidCredentials = errors.New("invalid username or password")

// accounts are the built-in logins; there is no authentication backend.
var accounts = map[string]struct {
	password string
	role     Role
}{
	"admin":   {"admin", RoleAdmin},
	"student": {"student", RoleStudent},
}

// User is a logged-in identity.
type User struct {
	Username   string
	Role       Role
	LoggedInAt time.Time
}

// Auth holds the current login and persists it through a SessionRepo.
type Auth struct {
	repo store.SessionRepo
	now  func() time.Time

	mu      sync.RWMutex
	current *User
}

// NewAuth creates a logged-out Auth. Call Init to restore a saved login.
func NewAuth(repo store.SessionRepo) *Auth {
	return &Auth{repo: repo, now: time.Now}
}

// Init restores the persisted login, if any.
func (a *Auth) Init(ctx context.Context) error {
	rec, err := a.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = nil
	if rec != nil {
		a.current = &User{Username: rec.Username, Role: Role(rec.Role), LoggedInAt: rec.LoggedInAt}
	}
	return nil
}

// Login checks credentials and persists the session.
func (a *Auth) Login(ctx context.Context, username, password string) (User, error) {
	acct, ok := accounts[username]
	if !ok || acct.password != password {
		return User{}, ErrInvalidCredentials
	}

	u := User{Username: username, Role: acct.role, LoggedInAt: a.now()}
	if err := a.repo.Save(ctx, store.SessionRecord{
		Username:   u.Username,
		Role:       string(u.Role),
		LoggedInAt: u.LoggedInAt,
	}); err != nil {
		return User{}, fmt.Errorf("save session: %w", err)
	}

	a.mu.Lock()
	a.current = &u
	a.mu.Unlock()
	return u, nil
}

// Clear logs out and forgets the persisted session.
func (a *Auth) Clear(ctx context.Context) error {
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()

	if err := a.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Current returns the logged-in user.
func (a *Auth) Current() (User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil {
		return User{}, false
	}
	return *a.current, true
}

// LoggedIn reports whether someone is logged in.
func (a *Auth) LoggedIn() bool {
	_, ok := a.Current()
	return ok
}
