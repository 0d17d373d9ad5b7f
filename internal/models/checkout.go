package models

type CheckoutRequest struct {
	PlanID string `json:"planId"`
}

// CheckoutSession is the hosted session created at the payment provider.
// Its lifecycle is owned by the provider; we only relay the URL.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
