package repository

import (
	"briefdesk-backend/internal/settings/domain"
)

// SettingsRepository defines the interface for settings data access
type SettingsRepository interface {
	// FindByUserID returns the user's settings row, nil when absent
	FindByUserID(userID string) (*domain.Settings, error)

	// Upsert creates or updates the single settings row for the user
	Upsert(settings *domain.Settings) (*domain.Settings, error)
}
