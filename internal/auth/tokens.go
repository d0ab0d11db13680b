package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	stateAudience = "oauth-state"
	stateTTL      = 10 * time.Minute
)

// Claims is the bearer token payload.
type Claims struct {
	UserID int    `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the lifetime of issued bearer tokens.
func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

// Issue signs a bearer token for a user with a fresh token id.
func (t *Tokens) Issue(userID int, role string) (string, *Claims, error) {
	now := t.now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, claims, nil
}

// Parse verifies signature and expiry of a bearer token.
func (t *Tokens) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	if err := t.parse(token, claims); err != nil {
		return nil, err
	}

	if claims.UserID == 0 || claims.ID == "" {
		return nil, ErrUnauthorized
	}

	return claims, nil
}

// IssueState signs a short-lived OAuth state bound to a provider.
func (t *Tokens) IssueState(provider string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   provider,
		Audience:  jwt.ClaimStrings{stateAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// VerifyState checks that state was issued for provider and has not expired.
func (t *Tokens) VerifyState(state, provider string) error {
	claims := &jwt.RegisteredClaims{}
	if err := t.parse(state, claims, jwt.WithAudience(stateAudience)); err != nil {
		return ErrInvalidState
	}

	if claims.Subject != provider {
		return ErrInvalidState
	}

	return nil
}

func (t *Tokens) parse(token string, claims jwt.Claims, opts ...jwt.ParserOption) error {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, opts...)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	} else if err != nil {
		return ErrUnauthorized
	}

	return nil
}
