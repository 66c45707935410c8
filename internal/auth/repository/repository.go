package repository

import (
	"time"

	"briefdesk-backend/internal/auth/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// FindByEmail finds a user by email, returns nil when absent
	FindByEmail(email string) (*domain.User, error)

	// FindByID finds a user by id, returns nil when absent
	FindByID(id string) (*domain.User, error)

	// EnsureByEmail returns the user with the given email, creating it when
	// absent. The create is a conflict-tolerant upsert so two concurrent
	// first requests cannot produce duplicate rows.
	EnsureByEmail(email, name, timezone string) (*domain.User, error)
}

// TokenRepository defines the interface for OAuth token data access
type TokenRepository interface {
	// FindByUserAndProvider returns the stored token row, nil when absent
	FindByUserAndProvider(userID, provider string) (*domain.OAuthToken, error)

	// Upsert stores the token, replacing any existing (user, provider) row
	Upsert(token *domain.OAuthToken) error

	// UpdateAccessToken persists a refreshed access token and expiry
	UpdateAccessToken(id, accessToken string, expiresAt time.Time) error
}
