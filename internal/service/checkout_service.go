package service

import (
	"strings"

	"github.com/quantumcloud/quantumcloud-backend/internal/config"
	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	"github.com/quantumcloud/quantumcloud-backend/pkg/payment"
	"github.com/stripe/stripe-go/v74"
)

// IdentityVerifier resolves a bearer token to a principal.
type IdentityVerifier interface {
	Verify(token string) (*models.Principal, error)
}

// PaymentGateway is the slice of the payment provider the checkout
// pipeline needs.
type PaymentGateway interface {
	LookupCustomerByEmail(email string) (string, error)
	CreateSubscriptionSession(p payment.SubscriptionSessionParams) (*stripe.CheckoutSession, error)
}

type CheckoutService struct {
	identity IdentityVerifier
	gateway  PaymentGateway
	cfg      config.StripeConfig
}

func NewCheckoutService(identity IdentityVerifier, gateway PaymentGateway, cfg config.StripeConfig) *CheckoutService {
	return &CheckoutService{
		identity: identity,
		gateway:  gateway,
		cfg:      cfg,
	}
}

// CreateSession runs the checkout pipeline: validate plan input, resolve
// the caller, check provider configuration, look up an existing billing
// customer, then open a hosted subscription session. Each step
// short-circuits with a tagged error; the order is part of the contract.
// Not idempotent: every successful call creates a fresh single-use session
// at the provider.
func (s *CheckoutService) CreateSession(authHeader, planID, origin string) (*models.CheckoutSession, error) {
	if planID == "" {
		return nil, &ValidationError{Reason: "Missing planId"}
	}

	if authHeader == "" {
		return nil, &AuthenticationError{Reason: "Not authenticated"}
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	principal, err := s.identity.Verify(token)
	if err != nil || principal == nil || principal.Email == "" {
		return nil, &AuthenticationError{Reason: "User not authenticated"}
	}

	if s.cfg.SecretKey == "" {
		return nil, &ConfigurationError{Reason: "Missing STRIPE_SECRET_KEY"}
	}

	plan, ok := models.PlanByID(planID)
	if !ok {
		return nil, &ValidationError{Reason: "Invalid planId"}
	}

	customerID, err := s.gateway.LookupCustomerByEmail(principal.Email)
	if err != nil {
		return nil, &UpstreamError{Cause: err}
	}

	if origin == "" {
		origin = config.DefaultFrontendOrigin
	}

	params := payment.SubscriptionSessionParams{
		CustomerID:  customerID,
		ProductName: plan.ProductName(),
		UnitAmount:  plan.UnitAmount,
		Currency:    s.cfg.Currency,
		Interval:    plan.Interval,
		SuccessURL:  origin + "/?checkout=success",
		CancelURL:   origin + "/?checkout=cancel",
		Metadata: map[string]string{
			"user_id": formatUserID(principal.UserID),
			"plan_id": plan.ID,
		},
	}
	if customerID == "" {
		params.CustomerEmail = principal.Email
	}

	session, err := s.gateway.CreateSubscriptionSession(params)
	if err != nil {
		return nil, &UpstreamError{Cause: err}
	}

	return &models.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}
