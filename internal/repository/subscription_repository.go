package repository

import (
	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(purchase *models.SubscriptionPurchase) error {
	return r.db.Create(purchase).Error
}

func (r *SubscriptionRepository) GetBySessionID(sessionID string) (*models.SubscriptionPurchase, error) {
	var purchase models.SubscriptionPurchase
	if err := r.db.Where("stripe_session_id = ?", sessionID).First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *SubscriptionRepository) GetByUserID(userID uint) ([]models.SubscriptionPurchase, error) {
	var purchases []models.SubscriptionPurchase
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&purchases).Error
	return purchases, err
}

func (r *SubscriptionRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.SubscriptionPurchase{}).Error
}
