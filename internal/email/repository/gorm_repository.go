package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"briefdesk-backend/internal/email/domain"
)

// gormPriorityCacheRepository implements PriorityCacheRepository using GORM
type gormPriorityCacheRepository struct {
	db *gorm.DB
}

// NewGormPriorityCacheRepository creates a new GORM-based PriorityCacheRepository
func NewGormPriorityCacheRepository(db *gorm.DB) PriorityCacheRepository {
	return &gormPriorityCacheRepository{db: db}
}

func (r *gormPriorityCacheRepository) FindByEmailID(emailID string) (*domain.PriorityCache, error) {
	var entry domain.PriorityCache
	err := r.db.Where("email_id = ?", emailID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *gormPriorityCacheRepository) Create(entry *domain.PriorityCache) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.AnalyzedAt = time.Now()
	return r.db.Create(entry).Error
}
