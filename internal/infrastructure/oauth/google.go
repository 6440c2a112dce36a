// Package oauth implements the identity federation bridge: it translates a
// Google OAuth authorization result into a verified local identity.
package oauth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const googleIssuer = "https://accounts.google.com"

// Identity is the verified subset of the provider's ID token that the rest
// of the system cares about.
type Identity struct {
	Email string
	Name  string
}

// Config carries the provider credentials and the redirect endpoint this
// service exposes.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// GoogleProvider exchanges authorization codes with Google and verifies the
// returned ID tokens against the provider's published keys.
type GoogleProvider struct {
	oauth2Config *oauth2.Config
	verifier     *oidc.IDTokenVerifier
}

// NewGoogleProvider discovers the Google OIDC endpoints and builds the
// provider. The context bounds the discovery request only.
func NewGoogleProvider(ctx context.Context, cfg Config) (*GoogleProvider, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("discover google oidc provider: %w", err)
	}

	return &GoogleProvider{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     provider.Endpoint(),
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// AuthCodeURL returns the consent-screen URL the browser is redirected to.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth2Config.AuthCodeURL(state)
}

// Exchange trades the authorization code for tokens and returns the verified
// identity from the ID token. Identities without a verified email are
// rejected: email is the key used to link federated logins to local users.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	oauth2Token, err := p.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("missing id_token in token response")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decode id token claims: %w", err)
	}
	if claims.Email == "" || !claims.EmailVerified {
		return nil, fmt.Errorf("provider did not return a verified email")
	}

	name := claims.Name
	if name == "" {
		name = claims.Email
	}
	return &Identity{Email: claims.Email, Name: name}, nil
}
