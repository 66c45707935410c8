package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"briefdesk-backend/internal/auth/domain"
)

// ErrNotConnected is returned when no OAuth credential is stored for the
// provider. Callers surface it as a "please authorize" action.
var ErrNotConnected = errors.New("provider not connected, authorize at /api/oauth/authorize")

// RefreshError wraps a failed token refresh. No retry is attempted; the
// request that hit it fails.
type RefreshError struct {
	Provider string
	Err      error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("failed to refresh %s token: %v", e.Provider, e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }

// TokenStore produces currently-valid access tokens for external providers,
// refreshing and persisting them when expired.
type TokenStore interface {
	// GetValidAccessToken returns a bearer token for the provider, refreshing
	// the stored row once if it has expired
	GetValidAccessToken(ctx context.Context, userID, provider string) (string, error)
}

// OAuthFlow handles the authorization-code exchange with Google.
type OAuthFlow interface {
	// AuthURL builds the consent-screen redirect URL
	AuthURL(redirectURI string) (string, error)

	// ExchangeCode trades an authorization code for tokens and persists them
	ExchangeCode(ctx context.Context, userID, code, redirectURI string) (*oauth2.Token, error)
}

// UserService resolves the single default account, creating it when absent.
type UserService interface {
	EnsureDefaultUser() (*domain.User, error)
}
