package domain

import "time"

type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Timezone  string    `json:"timezone" gorm:"not null;default:America/New_York"`
	CreatedAt time.Time `json:"created_at"`
}

// OAuthToken holds the persisted credential for one external provider.
// At most one row exists per (user, provider); refreshes mutate it in place.
type OAuthToken struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"index:idx_oauth_user_provider,unique;not null"`
	Provider     string    `json:"provider" gorm:"index:idx_oauth_user_provider,unique;not null"`
	AccessToken  string    `json:"-" gorm:"not null"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	Scopes       string    `json:"scopes"`
	CreatedAt    time.Time `json:"created_at"`
}

const ProviderGoogle = "google"
