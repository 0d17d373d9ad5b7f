package controller

import (
	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	"github.com/quantumcloud/quantumcloud-backend/internal/service"
	"github.com/stripe/stripe-go/v74"
)

type BillingController struct {
	checkoutService *service.CheckoutService
	billingService  *service.BillingService
}

func NewBillingController(checkoutService *service.CheckoutService, billingService *service.BillingService) *BillingController {
	return &BillingController{
		checkoutService: checkoutService,
		billingService:  billingService,
	}
}

func (c *BillingController) CreateCheckoutSession(authHeader, planID, origin string) (*models.CheckoutSession, error) {
	return c.checkoutService.CreateSession(authHeader, planID, origin)
}

func (c *BillingController) HandleStripeEvent(event *stripe.Event) error {
	return c.billingService.HandleStripeEvent(event)
}

func (c *BillingController) GetPurchaseHistory(userID uint) ([]models.SubscriptionPurchase, error) {
	return c.billingService.GetPurchaseHistory(userID)
}
