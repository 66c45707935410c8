package repository

import (
	"time"

	"briefdesk-backend/internal/calendar/domain"
)

// EventCacheRepository defines the interface for the local event cache
type EventCacheRepository interface {
	// CacheEvents bulk-inserts events, ignoring (user, source, external id)
	// conflicts so re-caching the same day is idempotent
	CacheEvents(events []*domain.EventCache) error

	// FindToday returns cached events starting within the given day
	FindToday(userID string, dayStart, dayEnd time.Time) ([]*domain.EventCache, error)
}
