package repository

import (
	"briefdesk-backend/internal/email/domain"
)

// PriorityCacheRepository defines the interface for the email-priority
// memoization table
type PriorityCacheRepository interface {
	// FindByEmailID returns the cached row, nil when the email was never
	// classified
	FindByEmailID(emailID string) (*domain.PriorityCache, error)

	// Create inserts the computed label. The unique email_id index rejects
	// duplicate inserts from concurrent classifications of the same email.
	Create(entry *domain.PriorityCache) error
}
