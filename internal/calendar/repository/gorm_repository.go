package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"briefdesk-backend/internal/calendar/domain"
)

// gormEventCacheRepository implements EventCacheRepository using GORM
type gormEventCacheRepository struct {
	db *gorm.DB
}

// NewGormEventCacheRepository creates a new GORM-based EventCacheRepository
func NewGormEventCacheRepository(db *gorm.DB) EventCacheRepository {
	return &gormEventCacheRepository{db: db}
}

func (r *gormEventCacheRepository) CacheEvents(events []*domain.EventCache) error {
	if len(events) == 0 {
		return nil
	}
	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		e.CreatedAt = time.Now()
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(events).Error
}

func (r *gormEventCacheRepository) FindToday(userID string, dayStart, dayEnd time.Time) ([]*domain.EventCache, error) {
	var events []*domain.EventCache
	err := r.db.Where("user_id = ? AND start_at >= ? AND start_at <= ?", userID, dayStart, dayEnd).
		Find(&events).Error
	return events, err
}
