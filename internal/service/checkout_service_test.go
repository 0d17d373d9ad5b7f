package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/quantumcloud/quantumcloud-backend/internal/config"
	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	"github.com/quantumcloud/quantumcloud-backend/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
)

type fakeVerifier struct {
	principal *models.Principal
	err       error
}

func (f *fakeVerifier) Verify(token string) (*models.Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.principal, nil
}

type fakeGateway struct {
	customerID  string
	lookupErr   error
	createErr   error
	lookupCalls int
	createCalls int
	lastParams  payment.SubscriptionSessionParams
}

func (f *fakeGateway) LookupCustomerByEmail(email string) (string, error) {
	f.lookupCalls++
	return f.customerID, f.lookupErr
}

func (f *fakeGateway) CreateSubscriptionSession(p payment.SubscriptionSessionParams) (*stripe.CheckoutSession, error) {
	f.createCalls++
	f.lastParams = p
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &stripe.CheckoutSession{
		ID:  fmt.Sprintf("cs_test_%d", f.createCalls),
		URL: fmt.Sprintf("https://checkout.stripe.com/c/pay/cs_test_%d", f.createCalls),
	}, nil
}

func newTestCheckoutService(verifier IdentityVerifier, gateway PaymentGateway) *CheckoutService {
	return NewCheckoutService(verifier, gateway, config.StripeConfig{
		SecretKey: "sk_test_123",
		Currency:  "usd",
	})
}

func validVerifier() *fakeVerifier {
	return &fakeVerifier{principal: &models.Principal{UserID: 7, Email: "ada@example.com"}}
}

func TestCreateSessionAllKnownPlans(t *testing.T) {
	for _, plan := range models.Plans {
		t.Run(plan.ID, func(t *testing.T) {
			gateway := &fakeGateway{}
			svc := newTestCheckoutService(validVerifier(), gateway)

			session, err := svc.CreateSession("Bearer token", plan.ID, "https://app.quantumcloud.io")
			require.NoError(t, err)
			assert.NotEmpty(t, session.URL)
			assert.Equal(t, plan.UnitAmount, gateway.lastParams.UnitAmount)
			assert.Equal(t, "usd", gateway.lastParams.Currency)
			assert.Equal(t, "month", gateway.lastParams.Interval)
		})
	}
}

func TestCreateSessionUnknownPlan(t *testing.T) {
	gateway := &fakeGateway{}
	svc := newTestCheckoutService(validVerifier(), gateway)

	_, err := svc.CreateSession("Bearer token", "quantum-ultra", "")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Invalid planId", validationErr.Reason)
	assert.Zero(t, gateway.createCalls)
}

func TestCreateSessionMissingPlanID(t *testing.T) {
	gateway := &fakeGateway{}
	svc := newTestCheckoutService(validVerifier(), gateway)

	// planId is validated before the bearer token, so even an
	// unauthenticated request gets the validation error.
	_, err := svc.CreateSession("", "", "")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Missing planId", validationErr.Reason)
	assert.Zero(t, gateway.lookupCalls)
	assert.Zero(t, gateway.createCalls)
}

func TestCreateSessionMissingAuthHeader(t *testing.T) {
	gateway := &fakeGateway{}
	svc := newTestCheckoutService(validVerifier(), gateway)

	_, err := svc.CreateSession("", "quantum-pro", "")
	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Not authenticated", authErr.Reason)
	assert.Zero(t, gateway.lookupCalls)
	assert.Zero(t, gateway.createCalls)
}

func TestCreateSessionRejectedToken(t *testing.T) {
	gateway := &fakeGateway{}
	svc := newTestCheckoutService(&fakeVerifier{err: errors.New("token expired")}, gateway)

	_, err := svc.CreateSession("Bearer bad", "quantum-pro", "")
	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "User not authenticated", authErr.Reason)
	assert.Zero(t, gateway.lookupCalls)
}

func TestCreateSessionNilPrincipal(t *testing.T) {
	gateway := &fakeGateway{}
	// A verifier that returns neither a principal nor an error still fails
	// authentication instead of panicking.
	svc := newTestCheckoutService(&fakeVerifier{}, gateway)

	_, err := svc.CreateSession("Bearer token", "quantum-pro", "")
	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "User not authenticated", authErr.Reason)
	assert.Zero(t, gateway.lookupCalls)
}

func TestCreateSessionEmptyEmail(t *testing.T) {
	gateway := &fakeGateway{}
	svc := newTestCheckoutService(&fakeVerifier{principal: &models.Principal{UserID: 7}}, gateway)

	_, err := svc.CreateSession("Bearer token", "quantum-pro", "")
	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Zero(t, gateway.lookupCalls)
}

func TestCreateSessionMissingStripeKey(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewCheckoutService(validVerifier(), gateway, config.StripeConfig{Currency: "usd"})

	_, err := svc.CreateSession("Bearer token", "quantum-pro", "")
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Missing STRIPE_SECRET_KEY", cfgErr.Reason)
	assert.Zero(t, gateway.lookupCalls)
	assert.Zero(t, gateway.createCalls)
}

func TestCreateSessionExistingCustomer(t *testing.T) {
	gateway := &fakeGateway{customerID: "cus_123"}
	svc := newTestCheckoutService(validVerifier(), gateway)

	_, err := svc.CreateSession("Bearer token", "quantum-basic", "")
	require.NoError(t, err)
	assert.Equal(t, "cus_123", gateway.lastParams.CustomerID)
	assert.Empty(t, gateway.lastParams.CustomerEmail)
}

func TestCreateSessionNewCustomer(t *testing.T) {
	gateway := &fakeGateway{}
	svc := newTestCheckoutService(validVerifier(), gateway)

	_, err := svc.CreateSession("Bearer token", "quantum-basic", "")
	require.NoError(t, err)
	assert.Empty(t, gateway.lastParams.CustomerID)
	assert.Equal(t, "ada@example.com", gateway.lastParams.CustomerEmail)
}

func TestCreateSessionOriginFallback(t *testing.T) {
	gateway := &fakeGateway{}
	svc := newTestCheckoutService(validVerifier(), gateway)

	_, err := svc.CreateSession("Bearer token", "quantum-pro", "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5173/?checkout=success", gateway.lastParams.SuccessURL)
	assert.Equal(t, "http://localhost:5173/?checkout=cancel", gateway.lastParams.CancelURL)
}

func TestCreateSessionUsesRequestOrigin(t *testing.T) {
	gateway := &fakeGateway{}
	svc := newTestCheckoutService(validVerifier(), gateway)

	_, err := svc.CreateSession("Bearer token", "quantum-pro", "https://quantumcloud.io")
	require.NoError(t, err)
	assert.Equal(t, "https://quantumcloud.io/?checkout=success", gateway.lastParams.SuccessURL)
	assert.Equal(t, "https://quantumcloud.io/?checkout=cancel", gateway.lastParams.CancelURL)
}

func TestCreateSessionProductName(t *testing.T) {
	gateway := &fakeGateway{}
	svc := newTestCheckoutService(validVerifier(), gateway)

	_, err := svc.CreateSession("Bearer token", "quantum-enterprise", "")
	require.NoError(t, err)
	assert.Equal(t, "QuantumCloud ENTERPRISE Plan", gateway.lastParams.ProductName)
}

func TestCreateSessionUpstreamFailure(t *testing.T) {
	gateway := &fakeGateway{createErr: errors.New("stripe unavailable")}
	svc := newTestCheckoutService(validVerifier(), gateway)

	_, err := svc.CreateSession("Bearer token", "quantum-pro", "")
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
}

func TestCreateSessionCustomerLookupFailure(t *testing.T) {
	gateway := &fakeGateway{lookupErr: errors.New("stripe unavailable")}
	svc := newTestCheckoutService(validVerifier(), gateway)

	_, err := svc.CreateSession("Bearer token", "quantum-pro", "")
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Zero(t, gateway.createCalls)
}

func TestCreateSessionNotIdempotent(t *testing.T) {
	gateway := &fakeGateway{}
	svc := newTestCheckoutService(validVerifier(), gateway)

	first, err := svc.CreateSession("Bearer token", "quantum-pro", "")
	require.NoError(t, err)
	second, err := svc.CreateSession("Bearer token", "quantum-pro", "")
	require.NoError(t, err)

	assert.NotEqual(t, first.URL, second.URL)
	assert.Equal(t, 2, gateway.createCalls)
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, 401, StatusForError(&AuthenticationError{Reason: "nope"}))
	assert.Equal(t, 500, StatusForError(&ValidationError{Reason: "bad"}))
	assert.Equal(t, 500, StatusForError(&ConfigurationError{Reason: "missing"}))
	assert.Equal(t, 500, StatusForError(&UpstreamError{Cause: errors.New("down")}))
}
