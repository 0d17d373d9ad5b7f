package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	"github.com/quantumcloud/quantumcloud-backend/internal/repository"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BillingService records completed subscription purchases from Stripe
// webhook events and serves purchase history.
type BillingService struct {
	subscriptionRepo *repository.SubscriptionRepository
	logger           *zap.Logger
}

func NewBillingService(subscriptionRepo *repository.SubscriptionRepository, logger *zap.Logger) *BillingService {
	return &BillingService{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (s *BillingService) HandleStripeEvent(event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}
		return s.recordCompletedSession(&session)
	default:
		s.logger.Debug("ignoring stripe event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *BillingService) recordCompletedSession(session *stripe.CheckoutSession) error {
	// Stripe retries webhook delivery; an already recorded session is fine.
	if _, err := s.subscriptionRepo.GetBySessionID(session.ID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	userID, err := strconv.ParseUint(session.Metadata["user_id"], 10, 32)
	if err != nil {
		return fmt.Errorf("missing user_id metadata on session %s: %w", session.ID, err)
	}

	planID := session.Metadata["plan_id"]
	plan, ok := models.PlanByID(planID)
	if !ok {
		return fmt.Errorf("unknown plan_id %q on session %s", planID, session.ID)
	}

	purchase := &models.SubscriptionPurchase{
		UserID:          uint(userID),
		PlanID:          plan.ID,
		Amount:          plan.UnitAmount,
		Currency:        string(session.Currency),
		StripeSessionID: session.ID,
		Status:          models.PurchaseStatusCompleted,
	}

	if err := s.subscriptionRepo.Create(purchase); err != nil {
		return err
	}

	s.logger.Info("subscription purchase recorded",
		zap.Uint("user_id", purchase.UserID),
		zap.String("plan_id", purchase.PlanID),
		zap.String("session_id", session.ID))
	return nil
}

func (s *BillingService) GetPurchaseHistory(userID uint) ([]models.SubscriptionPurchase, error) {
	return s.subscriptionRepo.GetByUserID(userID)
}
