package models

import (
	"time"
)

type UserSettings struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"unique;not null"`
	Notifications   bool      `json:"notifications" gorm:"default:true"`
	MarketingEmails bool      `json:"marketing_emails" gorm:"default:false"`
	QuantumAlerts   bool      `json:"quantum_alerts" gorm:"default:true"`
	DataSharing     bool      `json:"data_sharing" gorm:"default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type UpdateSettingsRequest struct {
	Notifications   *bool `json:"notifications"`
	MarketingEmails *bool `json:"marketing_emails"`
	QuantumAlerts   *bool `json:"quantum_alerts"`
	DataSharing     *bool `json:"data_sharing"`
}
