package models

import (
	"time"
)

const (
	PurchaseStatusCompleted = "completed"
)

// SubscriptionPurchase is written by the Stripe webhook once a checkout
// session completes. Session creation itself persists nothing.
type SubscriptionPurchase struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"not null;index"`
	PlanID          string    `json:"plan_id" gorm:"not null"`
	Amount          int64     `json:"amount" gorm:"not null"`
	Currency        string    `json:"currency" gorm:"not null"`
	StripeSessionID string    `json:"stripe_session_id" gorm:"unique;not null"`
	Status          string    `json:"status" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
