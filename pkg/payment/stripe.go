package payment

import (
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/customer"
)

type StripeService struct {
	secretKey string
}

func NewStripeService(secretKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		secretKey: secretKey,
	}
}

// SubscriptionSessionParams carries everything needed to open a hosted
// subscription checkout. Exactly one of CustomerID / CustomerEmail is set.
type SubscriptionSessionParams struct {
	CustomerID    string
	CustomerEmail string
	ProductName   string
	UnitAmount    int64
	Currency      string
	Interval      string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// LookupCustomerByEmail returns the id of an existing Stripe customer with
// the given email, or "" when there is none.
func (s *StripeService) LookupCustomerByEmail(email string) (string, error) {
	params := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	params.Limit = stripe.Int64(1)

	iter := customer.List(params)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", err
	}
	return "", nil
}

func (s *StripeService) CreateSubscriptionSession(p SubscriptionSessionParams) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.ProductName),
					},
					UnitAmount: stripe.Int64(p.UnitAmount),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(p.Interval),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}

	if p.CustomerID != "" {
		params.Customer = stripe.String(p.CustomerID)
	} else {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}

	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	return session.New(params)
}
