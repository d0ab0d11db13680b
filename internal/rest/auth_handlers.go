package rest

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-cms/internal/auth"
)

type AuthHandler struct {
	svc         *auth.Service
	log         *slog.Logger
	frontendURL string
}

// NewAuthHandler creates the auth endpoints. frontendURL receives browser
// OAuth callbacks with a token or an error.
func NewAuthHandler(svc *auth.Service, log *slog.Logger, frontendURL string) *AuthHandler {
	return &AuthHandler{
		svc:         svc,
		log:         log,
		frontendURL: frontendURL,
	}
}

// Register handles POST /auth/register
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param body body rest.RegisterRequest true "New user"
// @Success 201 {object} rest.AuthResponse
// @Failure 400,422,500 {object} rest.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	session, err := h.svc.Register(c.Request().Context(), req.ToModel())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, NewAuthResponse("Register", session))
}

// Login handles POST /auth/login
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body rest.LoginRequest true "Credentials"
// @Success 200 {object} rest.AuthResponse
// @Failure 400,401,422,500 {object} rest.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	session, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewAuthResponse("Login successful", session))
}

// Logout handles POST /auth/logout
// @Summary Logout
// @Description Revokes the bearer token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} rest.StatusResponse
// @Failure 401,500 {object} rest.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.svc.Logout(c.Request().Context(), claimsFrom(c)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Logged out successfully"})
}

// Refresh handles POST /auth/refresh
// @Summary Refresh token
// @Description Issues a new token and revokes the current one.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} rest.AuthResponse
// @Failure 401,500 {object} rest.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	session, err := h.svc.Refresh(c.Request().Context(), claimsFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewAuthResponse("", session))
}

// User handles GET /auth/user
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} rest.UserResponse
// @Failure 401,500 {object} rest.ErrorResponse
// @Router /auth/user [get]
func (h *AuthHandler) User(c echo.Context) error {
	user, err := h.svc.User(c.Request().Context(), claimsFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, UserResponse{Status: "success", User: NewUser(user)})
}

// ForgotPassword handles POST /auth/password/forgot
// @Summary Request password reset
// @Description Always succeeds for a well-formed email.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body rest.ForgotPasswordRequest true "Email"
// @Success 200 {object} rest.StatusResponse
// @Failure 400,422,500 {object} rest.ErrorResponse
// @Router /auth/password/forgot [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.svc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, StatusResponse{
		Status:  "success",
		Message: "If the email exists, a password reset link has been sent",
	})
}

// ResetPassword handles POST /auth/password/reset
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body rest.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} rest.StatusResponse
// @Failure 400,422,500 {object} rest.ErrorResponse
// @Router /auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.svc.ResetPassword(c.Request().Context(), req.ToModel()); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Password has been reset"})
}

// UnlinkProvider handles POST /auth/unlink-provider
// @Summary Unlink OAuth provider
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} rest.UserResponse
// @Failure 401,500 {object} rest.ErrorResponse
// @Router /auth/unlink-provider [post]
func (h *AuthHandler) UnlinkProvider(c echo.Context) error {
	user, err := h.svc.UnlinkProvider(c.Request().Context(), claimsFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, UserResponse{Status: "success", User: NewUser(user)})
}

// Redirect handles GET /auth/:provider
// @Summary OAuth redirect URL
// @Tags auth
// @Produce json
// @Param provider path string true "google or github"
// @Success 200 {object} rest.RedirectResponse
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /auth/{provider} [get]
func (h *AuthHandler) Redirect(c echo.Context) error {
	redirectURL, state, err := h.svc.Redirect(c.Param("provider"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RedirectResponse{Status: "success", RedirectURL: redirectURL, State: state})
}

// Exchange handles POST /auth/:provider/callback
// @Summary OAuth code exchange
// @Tags auth
// @Accept json
// @Produce json
// @Param provider path string true "google or github"
// @Param body body rest.OAuthCallbackRequest true "Code and state"
// @Success 200 {object} rest.AuthResponse
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /auth/{provider}/callback [post]
func (h *AuthHandler) Exchange(c echo.Context) error {
	var req OAuthCallbackRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	session, err := h.svc.Exchange(c.Request().Context(), c.Param("provider"), req.Code, req.State)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NewAuthResponse("OAuth login successful", session))
}

// Callback handles GET /auth/:provider/callback, the browser leg of the
// OAuth flow. It always redirects to the frontend.
// @Summary OAuth browser callback
// @Tags auth
// @Param provider path string true "google or github"
// @Param code query string false "Authorization code"
// @Param state query string false "State from the redirect"
// @Success 302
// @Router /auth/{provider}/callback [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	var req OAuthCallbackQuery
	if err := bindQuery(c, &req); err != nil {
		return h.redirectFrontend(c, "", "oauth_failed")
	}

	if req.Error != "" {
		return h.redirectFrontend(c, "", "oauth_failed")
	}

	session, err := h.svc.Exchange(c.Request().Context(), c.Param("provider"), req.Code, req.State)
	if err != nil {
		h.log.WarnContext(c.Request().Context(), "oauth callback failed", "provider", c.Param("provider"), "error", err)
		return h.redirectFrontend(c, "", "oauth_failed")
	}

	return h.redirectFrontend(c, session.Token, "")
}

func (h *AuthHandler) redirectFrontend(c echo.Context, token, errCode string) error {
	target, err := url.Parse(h.frontendURL)
	if err != nil {
		return err
	}

	q := target.Query()
	if token != "" {
		q.Set("token", token)
	}
	if errCode != "" {
		q.Set("error", errCode)
	}
	target.RawQuery = q.Encode()

	return c.Redirect(http.StatusFound, target.String())
}
