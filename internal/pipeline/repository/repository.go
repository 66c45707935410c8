package repository

import (
	"briefdesk-backend/internal/pipeline/domain"
)

// DealRepository defines the interface for pipeline data access
type DealRepository interface {
	// FindActiveByUserID returns the user's deals, most recently updated first
	FindActiveByUserID(userID string) ([]*domain.Deal, error)

	// Create creates a new deal
	Create(deal *domain.Deal) error
}
