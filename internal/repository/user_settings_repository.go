package repository

import (
	"errors"

	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	"gorm.io/gorm"
)

type UserSettingsRepository struct {
	db *gorm.DB
}

func NewUserSettingsRepository(db *gorm.DB) *UserSettingsRepository {
	return &UserSettingsRepository{db: db}
}

// GetByUserID returns the user's settings row, creating it with defaults
// on first access.
func (r *UserSettingsRepository) GetByUserID(userID uint) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := r.db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.UserSettings{
			UserID:        userID,
			Notifications: true,
			QuantumAlerts: true,
		}
		if err := r.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *UserSettingsRepository) Update(settings *models.UserSettings) error {
	return r.db.Save(settings).Error
}

func (r *UserSettingsRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.UserSettings{}).Error
}
