package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"briefdesk-backend/internal/settings/domain"
)

// gormSettingsRepository implements SettingsRepository using GORM
type gormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM-based SettingsRepository
func NewGormSettingsRepository(db *gorm.DB) SettingsRepository {
	return &gormSettingsRepository{db: db}
}

func (r *gormSettingsRepository) FindByUserID(userID string) (*domain.Settings, error) {
	var settings domain.Settings
	err := r.db.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *gormSettingsRepository) Upsert(settings *domain.Settings) (*domain.Settings, error) {
	existing, err := r.FindByUserID(settings.UserID)
	if err != nil {
		return nil, err
	}
	settings.UpdatedAt = time.Now()
	if existing != nil {
		settings.ID = existing.ID
		if err := r.db.Save(settings).Error; err != nil {
			return nil, err
		}
		return settings, nil
	}
	settings.ID = uuid.New().String()
	if err := r.db.Create(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
