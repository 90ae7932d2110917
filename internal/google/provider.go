package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const calendarScope = "https://www.googleapis.com/auth/calendar.events"

// Tokens are the raw credentials returned by the Google token
// endpoint, normalized for storage.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Scope        string
	Expiry       time.Time
}

// Exchanger swaps an authorization code for provider tokens. Satisfied
// by Provider; handlers depend on the interface so tests can stub the
// network round trip.
type Exchanger interface {
	Exchange(ctx context.Context, code string) (*Tokens, error)
}

// Provider wraps the Google OAuth configuration for the calendar
// integration. Endpoints come from OIDC discovery rather than being
// hardcoded.
type Provider struct {
	oauthConfig *oauth2.Config
}

func New(
	ctx context.Context,
	clientID string,
	clientSecret string,
	redirectURL string,
) (*Provider, error) {

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("google oauth config missing required fields")
	}

	oidcProvider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, fmt.Errorf("failed to init google oidc provider: %w", err)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     oidcProvider.Endpoint(),
		Scopes: []string{
			calendarScope,
		},
	}

	return &Provider{
		oauthConfig: oauthCfg,
	}, nil
}

// AuthCodeURL builds the consent URL. Offline access with forced
// consent so Google returns a refresh token on every connect.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

func (p *Provider) Exchange(ctx context.Context, code string) (*Tokens, error) {
	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google token exchange failed: %w", err)
	}

	scope, _ := token.Extra("scope").(string)

	return &Tokens{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Scope:        scope,
		Expiry:       token.Expiry,
	}, nil
}
