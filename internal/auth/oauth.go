package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/daniilsolovey/news-cms/internal/db"
)

const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"

	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	githubUserInfoURL = "https://api.github.com/user"
)

// SocialUser is the identity returned by an OAuth provider.
type SocialUser struct {
	ID     string
	Email  string
	Name   string
	Avatar string
}

// Provider is an OAuth2 authorization code provider with a user info endpoint.
type Provider struct {
	Name        string
	Config      *oauth2.Config
	UserInfoURL string
	decode      func(body []byte) (*SocialUser, error)
}

type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// NewProvider configures a known provider. Unknown names return ErrUnknownProvider.
func NewProvider(name string, cfg ProviderConfig) (*Provider, error) {
	p := &Provider{
		Name: name,
		Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
		},
	}

	switch name {
	case ProviderGoogle:
		p.Config.Endpoint = endpoints.Google
		p.Config.Scopes = []string{"openid", "email", "profile"}
		p.UserInfoURL = googleUserInfoURL
		p.decode = decodeGoogleUser
	case ProviderGitHub:
		p.Config.Endpoint = endpoints.GitHub
		p.Config.Scopes = []string{"read:user", "user:email"}
		p.UserInfoURL = githubUserInfoURL
		p.decode = decodeGitHubUser
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}

	return p, nil
}

func decodeGoogleUser(body []byte) (*SocialUser, error) {
	var u struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, err
	}

	return &SocialUser{ID: u.ID, Email: u.Email, Name: u.Name, Avatar: u.Picture}, nil
}

func decodeGitHubUser(body []byte) (*SocialUser, error) {
	var u struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, err
	}

	name := u.Name
	if name == "" {
		name = u.Login
	}

	return &SocialUser{ID: strconv.FormatInt(u.ID, 10), Email: u.Email, Name: name, Avatar: u.AvatarURL}, nil
}

// fetchUser exchanges code for a token and reads the provider's user info.
func (p *Provider) fetchUser(ctx context.Context, code string) (*SocialUser, error) {
	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.Config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("get user info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read user info: %w", err)
	} else if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get user info: status %d", resp.StatusCode)
	}

	user, err := p.decode(body)
	if err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	} else if user.ID == "" || user.Email == "" {
		return nil, fmt.Errorf("provider returned no id or email")
	}

	return user, nil
}

func (s *Service) provider(name string) (*Provider, error) {
	p, ok := s.providers[strings.ToLower(name)]
	if !ok {
		return nil, ErrUnknownProvider
	}

	return p, nil
}

// Redirect returns the provider consent URL and the state the callback must echo.
func (s *Service) Redirect(providerName string) (string, string, error) {
	p, err := s.provider(providerName)
	if err != nil {
		return "", "", err
	}

	state, err := s.tokens.IssueState(p.Name)
	if err != nil {
		return "", "", fmt.Errorf("issue state: %w", err)
	}

	return p.Config.AuthCodeURL(state), state, nil
}

// Exchange completes the OAuth flow. A user is matched by provider id, then by
// email, and created with the user role otherwise.
func (s *Service) Exchange(ctx context.Context, providerName, code, state string) (*Session, error) {
	p, err := s.provider(providerName)
	if err != nil {
		return nil, err
	}

	if code == "" {
		return nil, ErrOAuthFailed
	}

	if err := s.tokens.VerifyState(state, p.Name); err != nil {
		return nil, err
	}

	social, err := p.fetchUser(ctx, code)
	if err != nil {
		s.logger.ErrorContext(ctx, "oauth exchange failed", "provider", p.Name, "error", err)
		return nil, ErrOAuthFailed
	}

	user, err := s.linkUser(ctx, p.Name, social)
	if err != nil {
		return nil, err
	}

	return s.session(user)
}

func (s *Service) linkUser(ctx context.Context, provider string, social *SocialUser) (*db.User, error) {
	user, err := s.db.UserByProvider(ctx, provider, social.ID)
	if err != nil {
		return nil, fmt.Errorf("db get user by provider: %w", err)
	}

	if user == nil {
		if user, err = s.db.UserByEmail(ctx, social.Email); err != nil {
			return nil, fmt.Errorf("db get user: %w", err)
		}
	}

	var avatar *string
	if social.Avatar != "" {
		avatar = &social.Avatar
	}

	if user != nil {
		user.Provider, user.ProviderID = &provider, &social.ID
		if avatar != nil {
			user.Avatar = avatar
		}

		_, err := s.db.UpdateUser(ctx, user, db.Columns.User.Provider, db.Columns.User.ProviderID, db.Columns.User.Avatar)
		if err != nil {
			return nil, fmt.Errorf("db update user: %w", err)
		}

		return user, nil
	}

	// Social accounts get an unusable random password.
	hash, err := hashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}

	name := social.Name
	if name == "" {
		name = "User"
	}

	now := s.now()
	user, err = s.db.AddUser(ctx, &db.User{
		Name:            name,
		Email:           social.Email,
		PasswordHash:    hash,
		Role:            db.RoleUser,
		Avatar:          avatar,
		Provider:        &provider,
		ProviderID:      &social.ID,
		EmailVerifiedAt: &now,
		CreatedAt:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("db add user: %w", err)
	}

	return user, nil
}

// UnlinkProvider removes the OAuth link of the current user.
func (s *Service) UnlinkProvider(ctx context.Context, claims *Claims) (*db.User, error) {
	user, err := s.User(ctx, claims)
	if err != nil {
		return nil, err
	}

	user.Provider, user.ProviderID = nil, nil
	if _, err := s.db.UpdateUser(ctx, user, db.Columns.User.Provider, db.Columns.User.ProviderID); err != nil {
		return nil, fmt.Errorf("db update user: %w", err)
	}

	return user, nil
}
