package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"briefdesk-backend/internal/auth/domain"
)

// userRepository implements UserRepository using GORM
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) EnsureByEmail(email, name, timezone string) (*domain.User, error) {
	user := &domain.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Timezone:  timezone,
		CreatedAt: time.Now(),
	}
	// Conflict on the unique email index means another request created the
	// row first; keep the existing one.
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(user).Error
	if err != nil {
		return nil, err
	}
	return r.FindByEmail(email)
}

// tokenRepository implements TokenRepository using GORM
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new instance of tokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) FindByUserAndProvider(userID, provider string) (*domain.OAuthToken, error) {
	var token domain.OAuthToken
	err := r.db.Where("user_id = ? AND provider = ?", userID, provider).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Upsert(token *domain.OAuthToken) error {
	existing, err := r.FindByUserAndProvider(token.UserID, token.Provider)
	if err != nil {
		return err
	}
	if existing != nil {
		token.ID = existing.ID
		token.CreatedAt = existing.CreatedAt
		return r.db.Save(token).Error
	}
	token.ID = uuid.New().String()
	token.CreatedAt = time.Now()
	return r.db.Create(token).Error
}

func (r *tokenRepository) UpdateAccessToken(id, accessToken string, expiresAt time.Time) error {
	return r.db.Model(&domain.OAuthToken{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"access_token": accessToken,
			"expires_at":   expiresAt,
		}).Error
}
