package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/daniilsolovey/news-cms/internal/cache"
	"github.com/daniilsolovey/news-cms/internal/db"
)

const (
	minPasswordLength = 8
	// bcrypt only accepts up to 72 bytes.
	maxPasswordBytes = 72
	revokedKeyPrefix  = "revoked-token:"
)

var (
	ErrUnauthorized       = errors.New("unauthenticated")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidState       = errors.New("invalid oauth state")
	ErrUnknownProvider    = errors.New("invalid provider")
	ErrOAuthFailed        = errors.New("oauth exchange failed")
)

// UserStore is the persistence the auth service needs.
type UserStore interface {
	UserByID(ctx context.Context, userID int) (*db.User, error)
	UserByEmail(ctx context.Context, email string) (*db.User, error)
	UserByProvider(ctx context.Context, provider, providerID string) (*db.User, error)
	AddUser(ctx context.Context, user *db.User) (*db.User, error)
	UpdateUser(ctx context.Context, user *db.User, columns ...string) (bool, error)
	AddPasswordReset(ctx context.Context, reset *db.PasswordReset) error
	UsePasswordReset(ctx context.Context, tokenHash string, now time.Time) (*db.PasswordReset, error)
}

// Notifier delivers password reset tokens.
type Notifier interface {
	PasswordReset(ctx context.Context, email, token string) error
}

// LogNotifier writes reset tokens to the log. Useful until a mailer is wired.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) PasswordReset(ctx context.Context, email, token string) error {
	n.Logger.InfoContext(ctx, "password reset requested", "email", email, "token", token)
	return nil
}

type Config struct {
	Secret   string
	TokenTTL time.Duration
	ResetTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		TokenTTL: time.Hour,
		ResetTTL: time.Hour,
	}
}

// Session is an issued bearer token together with its user.
type Session struct {
	User      *db.User
	Token     string
	ExpiresIn int
}

type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
	Role                 string
}

type ResetInput struct {
	Email                string
	Token                string
	Password             string
	PasswordConfirmation string
}

type Service struct {
	db        UserStore
	cache     cache.Cache
	tokens    *Tokens
	notifier  Notifier
	providers map[string]*Provider
	resetTTL  time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(store UserStore, c cache.Cache, notifier Notifier, cfg Config, logger *slog.Logger, providers ...*Provider) *Service {
	s := &Service{
		db:        store,
		cache:     c,
		tokens:    NewTokens(cfg.Secret, cfg.TokenTTL),
		notifier:  notifier,
		providers: make(map[string]*Provider, len(providers)),
		resetTTL:  cfg.ResetTTL,
		logger:    logger,
		now:       time.Now,
	}

	for _, p := range providers {
		s.providers[p.Name] = p
	}

	return s
}

func validatePassword(password, confirmation string) error {
	return validation.Validate(password,
		validation.Required,
		validation.RuneLength(minPasswordLength, 0),
		validation.By(func(any) error {
			if len(password) > maxPasswordBytes {
				return validation.NewError("validation_length_too_long", "the length must be no more than 72 bytes")
			}
			if password != confirmation {
				return validation.NewError("validation_confirmed", "confirmation does not match")
			}
			return nil
		}),
	)
}

func (in RegisterInput) validate() error {
	return validation.Errors{
		"name":     validation.Validate(in.Name, validation.Required, validation.RuneLength(1, 255)),
		"email":    validation.Validate(in.Email, validation.Required, validation.RuneLength(1, 255), is.EmailFormat),
		"password": validatePassword(in.Password, in.PasswordConfirmation),
		"role":     validation.Validate(in.Role, validation.Required, validation.In(db.RoleUser, db.RoleAuthor)),
	}.Filter()
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

func (s *Service) session(user *db.User) (*Session, error) {
	token, _, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &Session{
		User:      user,
		Token:     token,
		ExpiresIn: int(s.tokens.TTL().Seconds()),
	}, nil
}

// Register creates a user with a password and signs them in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.db.UserByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("db get user: %w", err)
	} else if existing != nil {
		return nil, emailTaken()
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.db.AddUser(ctx, &db.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    s.now(),
	})
	if _, ok := db.UniqueViolation(err); ok {
		return nil, emailTaken()
	} else if err != nil {
		return nil, fmt.Errorf("db add user: %w", err)
	}

	return s.session(user)
}

func emailTaken() error {
	return validation.Errors{"email": validation.NewError("validation_unique", "has already been taken")}
}

// Login checks email and password. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	err := validation.Errors{
		"email":    validation.Validate(email, validation.Required, is.EmailFormat),
		"password": validation.Validate(password, validation.Required),
	}.Filter()
	if err != nil {
		return nil, err
	}

	user, err := s.db.UserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("db get user: %w", err)
	} else if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.session(user)
}

// Authenticate verifies a bearer token and rejects revoked ones.
func (s *Service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	_, err = s.cache.Get(ctx, revokedKeyPrefix+claims.ID)
	switch {
	case err == nil:
		return nil, ErrUnauthorized
	case errors.Is(err, cache.ErrMiss):
		return claims, nil
	default:
		return nil, fmt.Errorf("check token revocation: %w", err)
	}
}

// Logout revokes the token until it expires.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Set(ctx, revokedKeyPrefix+claims.ID, []byte("1"), ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

// Refresh issues a new token for the same user and revokes the old one.
func (s *Service) Refresh(ctx context.Context, claims *Claims) (*Session, error) {
	user, err := s.User(ctx, claims)
	if err != nil {
		return nil, err
	}

	session, err := s.session(user)
	if err != nil {
		return nil, err
	}

	if err := s.Logout(ctx, claims); err != nil {
		return nil, err
	}

	return session, nil
}

// User returns the user behind claims.
func (s *Service) User(ctx context.Context, claims *Claims) (*db.User, error) {
	user, err := s.db.UserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("db get user: %w", err)
	} else if user == nil {
		return nil, ErrUnauthorized
	}

	return user, nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ForgotPassword sends a reset token when the email belongs to a user. The
// result does not reveal whether it does.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validation.Validate(email, validation.Required, is.EmailFormat); err != nil {
		return validation.Errors{"email": err}
	}

	user, err := s.db.UserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("db get user: %w", err)
	} else if user == nil {
		s.logger.DebugContext(ctx, "password reset for unknown email", "email", email)
		return nil
	}

	token := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	now := s.now()
	err = s.db.AddPasswordReset(ctx, &db.PasswordReset{
		Email:     user.Email,
		TokenHash: hashResetToken(token),
		ExpiresAt: now.Add(s.resetTTL),
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("db add password reset: %w", err)
	}

	if err := s.notifier.PasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("notify password reset: %w", err)
	}

	return nil
}

// ResetPassword consumes a reset token and sets a new password.
func (s *Service) ResetPassword(ctx context.Context, in ResetInput) error {
	in.Email = strings.TrimSpace(in.Email)
	err := validation.Errors{
		"email":    validation.Validate(in.Email, validation.Required, is.EmailFormat),
		"token":    validation.Validate(in.Token, validation.Required),
		"password": validatePassword(in.Password, in.PasswordConfirmation),
	}.Filter()
	if err != nil {
		return err
	}

	invalidToken := validation.Errors{"token": validation.NewError("validation_reset_token", "is invalid or expired")}

	reset, err := s.db.UsePasswordReset(ctx, hashResetToken(in.Token), s.now())
	if err != nil {
		return fmt.Errorf("db use password reset: %w", err)
	} else if reset == nil || !strings.EqualFold(reset.Email, in.Email) {
		return invalidToken
	}

	user, err := s.db.UserByEmail(ctx, reset.Email)
	if err != nil {
		return fmt.Errorf("db get user: %w", err)
	} else if user == nil {
		return invalidToken
	}

	if user.PasswordHash, err = hashPassword(in.Password); err != nil {
		return err
	}

	if _, err := s.db.UpdateUser(ctx, user, db.Columns.User.PasswordHash); err != nil {
		return fmt.Errorf("db update user: %w", err)
	}

	return nil
}
