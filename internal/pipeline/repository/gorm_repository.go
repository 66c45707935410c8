package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"briefdesk-backend/internal/pipeline/domain"
)

// gormDealRepository implements DealRepository using GORM
type gormDealRepository struct {
	db *gorm.DB
}

// NewGormDealRepository creates a new GORM-based DealRepository
func NewGormDealRepository(db *gorm.DB) DealRepository {
	return &gormDealRepository{db: db}
}

func (r *gormDealRepository) FindActiveByUserID(userID string) ([]*domain.Deal, error) {
	var deals []*domain.Deal
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").Find(&deals).Error
	return deals, err
}

func (r *gormDealRepository) Create(deal *domain.Deal) error {
	if deal.ID == "" {
		deal.ID = uuid.New().String()
	}
	now := time.Now()
	deal.CreatedAt = now
	deal.UpdatedAt = now
	return r.db.Create(deal).Error
}
