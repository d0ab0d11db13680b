package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/daniilsolovey/news-cms/internal/cache"
	"github.com/daniilsolovey/news-cms/internal/db"
)

var (
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	testNow    = time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)
)

// memoryUsers is an in-memory UserStore.
type memoryUsers struct {
	mu     sync.Mutex
	users  []*db.User
	resets []*db.PasswordReset
}

func (m *memoryUsers) UserByID(_ context.Context, userID int) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.ID == userID {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) UserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) UserByProvider(_ context.Context, provider, providerID string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Provider != nil && *u.Provider == provider && u.ProviderID != nil && *u.ProviderID == providerID {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) AddUser(_ context.Context, user *db.User) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user.ID = len(m.users) + 1
	c := *user
	m.users = append(m.users, &c)
	return user, nil
}

func (m *memoryUsers) UpdateUser(_ context.Context, user *db.User, _ ...string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, u := range m.users {
		if u.ID == user.ID {
			c := *user
			m.users[i] = &c
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryUsers) AddPasswordReset(_ context.Context, reset *db.PasswordReset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.resets[:0]
	for _, r := range m.resets {
		if r.Email != reset.Email || r.UsedAt != nil {
			kept = append(kept, r)
		}
	}
	c := *reset
	m.resets = append(kept, &c)
	return nil
}

func (m *memoryUsers) UsePasswordReset(_ context.Context, tokenHash string, now time.Time) (*db.PasswordReset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.resets {
		if r.TokenHash == tokenHash && r.UsedAt == nil && r.ExpiresAt.After(now) {
			r.UsedAt = &now
			c := *r
			return &c, nil
		}
	}
	return nil, nil
}

type captureNotifier struct {
	email, token string
}

func (n *captureNotifier) PasswordReset(_ context.Context, email, token string) error {
	n.email, n.token = email, token
	return nil
}

// failingCache fails every read.
type failingCache struct {
	*cache.Memory
}

func (failingCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func newTestService(store UserStore, providers ...*Provider) (*Service, *captureNotifier) {
	n := &captureNotifier{}
	cfg := DefaultConfig()
	cfg.Secret = "test-secret"

	s := NewService(store, cache.NewMemory(), n, cfg, testLogger, providers...)
	s.now = func() time.Time { return testNow }
	s.tokens.now = s.now
	return s, n
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:                 "Jane",
		Email:                "jane@example.com",
		Password:             "password123",
		PasswordConfirmation: "password123",
		Role:                 db.RoleAuthor,
	}
}

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()

	var ve validation.Errors
	require.True(t, errors.As(err, &ve), "expected validation errors, got %v", err)
	return ve
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := &memoryUsers{}
		s, _ := newTestService(store)

		session, err := s.Register(ctx, registerInput())
		require.NoError(t, err)
		assert.Equal(t, 1, session.User.ID)
		assert.Equal(t, 3600, session.ExpiresIn)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.users[0].PasswordHash), []byte("password123")))

		claims, err := s.Authenticate(ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, db.RoleAuthor, claims.Role)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		store := &memoryUsers{}
		s, _ := newTestService(store)
		_, err := s.Register(ctx, registerInput())
		require.NoError(t, err)

		in := registerInput()
		in.Email = "JANE@example.com"
		_, err = s.Register(ctx, in)
		assert.Contains(t, fieldErrors(t, err), "email")
	})

	t.Run("Validation", func(t *testing.T) {
		s, _ := newTestService(&memoryUsers{})

		_, err := s.Register(ctx, RegisterInput{
			Email:                "not-an-email",
			Password:             "short",
			PasswordConfirmation: "short",
			Role:                 db.RoleAdmin,
		})
		ve := fieldErrors(t, err)
		for _, field := range []string{"name", "email", "password", "role"} {
			assert.Contains(t, ve, field)
		}
	})

	t.Run("PasswordTooLong", func(t *testing.T) {
		store := &memoryUsers{}
		s, _ := newTestService(store)

		in := registerInput()
		in.Password = strings.Repeat("a", 80)
		in.PasswordConfirmation = in.Password
		_, err := s.Register(ctx, in)
		ve := fieldErrors(t, err)
		assert.Equal(t, []string{"password"}, keys(ve))
		assert.Empty(t, store.users)
	})

	t.Run("ConfirmationMismatch", func(t *testing.T) {
		s, _ := newTestService(&memoryUsers{})

		in := registerInput()
		in.PasswordConfirmation = "password124"
		_, err := s.Register(ctx, in)
		ve := fieldErrors(t, err)
		assert.Equal(t, []string{"password"}, keys(ve))
	})
}

func keys(ve validation.Errors) []string {
	out := make([]string, 0, len(ve))
	for k := range ve {
		out = append(out, k)
	}
	return out
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	store := &memoryUsers{}
	s, _ := newTestService(store)
	_, err := s.Register(ctx, registerInput())
	require.NoError(t, err)

	session, err := s.Login(ctx, "jane@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Jane", session.User.Name)

	_, err = s.Login(ctx, "jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, "", "")
	ve := fieldErrors(t, err)
	assert.Contains(t, ve, "email")
	assert.Contains(t, ve, "password")
}

func TestService_LogoutRefresh(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(&memoryUsers{})

	session, err := s.Register(ctx, registerInput())
	require.NoError(t, err)
	claims, err := s.Authenticate(ctx, session.Token)
	require.NoError(t, err)

	refreshed, err := s.Refresh(ctx, claims)
	require.NoError(t, err)
	assert.NotEqual(t, session.Token, refreshed.Token)

	_, err = s.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, ErrUnauthorized, "refreshed token is revoked")

	newClaims, err := s.Authenticate(ctx, refreshed.Token)
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, newClaims))
	_, err = s.Authenticate(ctx, refreshed.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_Authenticate_CacheError(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(&memoryUsers{})
	s.cache = failingCache{Memory: cache.NewMemory()}

	token, _, err := s.tokens.Issue(1, db.RoleUser)
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestService_User_Deleted(t *testing.T) {
	s, _ := newTestService(&memoryUsers{})

	_, err := s.User(context.Background(), &Claims{UserID: 42})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	store := &memoryUsers{}
	s, notifier := newTestService(store)
	_, err := s.Register(ctx, registerInput())
	require.NoError(t, err)

	t.Run("UnknownEmailIsSilent", func(t *testing.T) {
		require.NoError(t, s.ForgotPassword(ctx, "nobody@example.com"))
		assert.Empty(t, notifier.token)
	})

	require.NoError(t, s.ForgotPassword(ctx, "jane@example.com"))
	require.NotEmpty(t, notifier.token)
	assert.Equal(t, "jane@example.com", notifier.email)
	assert.NotEqual(t, notifier.token, store.resets[0].TokenHash, "only the hash is stored")
	assert.Equal(t, testNow.Add(time.Hour), store.resets[0].ExpiresAt)

	reset := ResetInput{
		Email:                "jane@example.com",
		Token:                notifier.token,
		Password:             "new-password",
		PasswordConfirmation: "new-password",
	}

	t.Run("WrongEmail", func(t *testing.T) {
		in := reset
		in.Email = "john@example.com"
		in.Token = "unknown"
		assert.Contains(t, fieldErrors(t, s.ResetPassword(ctx, in)), "token")
	})

	t.Run("PasswordTooLong", func(t *testing.T) {
		in := reset
		in.Password = strings.Repeat("ü", 40)
		in.PasswordConfirmation = in.Password
		assert.Equal(t, []string{"password"}, keys(fieldErrors(t, s.ResetPassword(ctx, in))))
	})

	require.NoError(t, s.ResetPassword(ctx, reset))

	_, err = s.Login(ctx, "jane@example.com", "new-password")
	require.NoError(t, err)
	_, err = s.Login(ctx, "jane@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	t.Run("SingleUse", func(t *testing.T) {
		assert.Contains(t, fieldErrors(t, s.ResetPassword(ctx, reset)), "token")
	})

	t.Run("Expired", func(t *testing.T) {
		require.NoError(t, s.ForgotPassword(ctx, "jane@example.com"))
		in := reset
		in.Token = notifier.token

		s.now = func() time.Time { return testNow.Add(2 * time.Hour) }
		defer func() { s.now = func() time.Time { return testNow } }()

		assert.Contains(t, fieldErrors(t, s.ResetPassword(ctx, in)), "token")
	})
}
