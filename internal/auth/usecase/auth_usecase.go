package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"briefdesk-backend/internal/auth/domain"
	"briefdesk-backend/internal/auth/repository"
	"briefdesk-backend/pkg/config"
)

// GoogleScopes are requested during authorization: Gmail read/send/modify/
// labels plus full Calendar access.
var GoogleScopes = []string{
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/gmail.labels",
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.events",
}

// authUsecase implements TokenStore, OAuthFlow and UserService
type authUsecase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	cfg       *config.Config
	endpoint  oauth2.Endpoint
}

func NewAuthUsecase(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, cfg *config.Config) *authUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
		endpoint:  google.Endpoint,
	}
}

func (u *authUsecase) EnsureDefaultUser() (*domain.User, error) {
	return u.userRepo.EnsureByEmail(u.cfg.DefaultUserEmail, u.cfg.DefaultUserName, u.cfg.DefaultUserTimezone)
}

func (u *authUsecase) oauthConfig(redirectURI string) (*oauth2.Config, error) {
	if u.cfg.GoogleClientID == "" || u.cfg.GoogleClientSecret == "" {
		return nil, errors.New("Google OAuth credentials not configured")
	}
	return &oauth2.Config{
		ClientID:     u.cfg.GoogleClientID,
		ClientSecret: u.cfg.GoogleClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       GoogleScopes,
		Endpoint:     u.endpoint,
	}, nil
}

func (u *authUsecase) AuthURL(redirectURI string) (string, error) {
	cfg, err := u.oauthConfig(redirectURI)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

func (u *authUsecase) ExchangeCode(ctx context.Context, userID, code, redirectURI string) (*oauth2.Token, error) {
	cfg, err := u.oauthConfig(redirectURI)
	if err != nil {
		return nil, err
	}
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	scopes, _ := token.Extra("scope").(string)
	row := &domain.OAuthToken{
		UserID:       userID,
		Provider:     domain.ProviderGoogle,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
		Scopes:       scopes,
	}
	if row.ExpiresAt.IsZero() {
		row.ExpiresAt = time.Now().Add(time.Hour)
	}
	if err := u.tokenRepo.Upsert(row); err != nil {
		return nil, err
	}
	return token, nil
}

// GetValidAccessToken looks up the stored credential and refreshes it when
// expired. Two concurrent callers that both see an expired token will both
// refresh and both write; the second write wins and both tokens are valid,
// so the race is tolerated rather than locked.
func (u *authUsecase) GetValidAccessToken(ctx context.Context, userID, provider string) (string, error) {
	token, err := u.tokenRepo.FindByUserAndProvider(userID, provider)
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", ErrNotConnected
	}

	if !token.ExpiresAt.IsZero() && !token.ExpiresAt.After(time.Now()) {
		log.Printf("[TokenStore] %s access token expired, refreshing...", provider)
		return u.refresh(ctx, token)
	}
	return token.AccessToken, nil
}

func (u *authUsecase) refresh(ctx context.Context, token *domain.OAuthToken) (string, error) {
	cfg, err := u.oauthConfig("")
	if err != nil {
		return "", &RefreshError{Provider: token.Provider, Err: err}
	}

	// A token source seeded with only the refresh token performs the
	// refresh-token grant on the first Token() call.
	src := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: token.RefreshToken})
	fresh, err := src.Token()
	if err != nil {
		return "", &RefreshError{Provider: token.Provider, Err: err}
	}

	expiry := fresh.Expiry
	if expiry.IsZero() {
		expiry = time.Now().Add(time.Hour)
	}
	if err := u.tokenRepo.UpdateAccessToken(token.ID, fresh.AccessToken, expiry); err != nil {
		return "", &RefreshError{Provider: token.Provider, Err: err}
	}
	return fresh.AccessToken, nil
}
