package handler

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/api/metrics"
	"github.com/taskforge/task-management-api/internal/auth/strategy"
	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/ports"
)

const (
	stateCookieName = "oauth_state"
	stateCookieTTL  = 5 * time.Minute
)

// ExchangeStore holds token pairs under one-time codes during the OAuth
// redirect handshake.
type ExchangeStore interface {
	Save(ctx context.Context, code string, pair *ports.TokenPair) error
	Take(ctx context.Context, code string) (*ports.TokenPair, error)
}

// ConsentURLBuilder produces the provider consent-screen URL for a state.
type ConsentURLBuilder interface {
	AuthCodeURL(state string) string
}

// AuthHandler handles the authentication endpoints. The signin, refresh, and
// signout routes are authenticated by their strategies in the guard before
// these handlers run; the handlers work from the attached principal.
type AuthHandler struct {
	service           ports.AuthService
	google            ConsentURLBuilder
	googleStrategy    strategy.Strategy
	exchange          ExchangeStore
	clientCallbackURL string
}

func NewAuthHandler(service ports.AuthService, google ConsentURLBuilder, googleStrategy strategy.Strategy, exchange ExchangeStore, clientCallbackURL string) *AuthHandler {
	return &AuthHandler{
		service:           service,
		google:            google,
		googleStrategy:    googleStrategy,
		exchange:          exchange,
		clientCallbackURL: clientCallbackURL,
	}
}

// Signup registers a new local account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Signup(c.Request().Context(), ports.SignupInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusCreated, signupResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
}

// Signin issues a token pair for credentials already verified by the local
// strategy.
//
// @Summary      User login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Login credentials"
// @Success      200   {object}  signinResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	pair, err := h.service.Login(c.Request().Context(), *principal)
	if err != nil {
		return err
	}

	metrics.SigninsTotal.Inc()
	return c.JSON(http.StatusOK, signinResponse{
		ID:           pair.ID,
		Name:         pair.Name,
		Role:         pair.Role,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh rotates the session for a refresh token already verified by the
// refresh strategy.
//
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  refreshResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	presented, err := ctxRefreshToken(c)
	if err != nil {
		return err
	}

	pair, err := h.service.Refresh(c.Request().Context(), *principal, presented)
	if err != nil {
		return err
	}

	metrics.TokenRefreshesTotal.Inc()
	return c.JSON(http.StatusOK, refreshResponse{
		ID:           pair.ID,
		Name:         pair.Name,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// SignOut revokes the caller's session.
//
// @Summary      User logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.SignOut(c.Request().Context(), principal.ID); err != nil {
		return err
	}

	metrics.SignoutsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "signed out"})
}

// Protected is a demo endpoint restricted to ADMIN and EDITOR roles.
//
// @Summary      Protected endpoint
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /auth/protected [get]
func (h *AuthHandler) Protected(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "access granted",
		"userId":  principal.ID,
	})
}

// GoogleLogin redirects the browser to the provider consent screen.
//
// @Summary      Initiate Google OAuth flow
// @Tags         auth
// @Success      302
// @Router       /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	state := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, h.google.AuthCodeURL(state))
}

// GoogleCallback completes the federation handshake. The token pair is parked
// under a one-time code and only the opaque code travels in the redirect URL,
// so tokens never reach browser history or proxy logs.
//
// @Summary      Google OAuth callback
// @Tags         auth
// @Success      302
// @Failure      401  {object}  errorResponse
// @Router       /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	cookie, err := c.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != c.QueryParam("state") {
		return domain.ErrUnauthenticated
	}

	principal, err := h.googleStrategy.Authenticate(c)
	if err != nil {
		return err
	}

	pair, err := h.service.Login(c.Request().Context(), *principal)
	if err != nil {
		return err
	}

	code := uuid.NewString()
	if err := h.exchange.Save(c.Request().Context(), code, pair); err != nil {
		return domain.ErrStoreUnavailable
	}

	metrics.FederatedLoginsTotal.Inc()
	return c.Redirect(http.StatusFound, h.clientCallbackURL+"?code="+url.QueryEscape(code))
}

// GoogleExchange trades a one-time code from the callback redirect for the
// token pair.
//
// @Summary      Exchange a one-time code for tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      exchangeRequest  true  "One-time code"
// @Success      200   {object}  signinResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/google/exchange [post]
func (h *AuthHandler) GoogleExchange(c echo.Context) error {
	var req exchangeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := h.exchange.Take(c.Request().Context(), req.Code)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, signinResponse{
		ID:           pair.ID,
		Name:         pair.Name,
		Role:         pair.Role,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
