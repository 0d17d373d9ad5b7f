package models

import (
	"strings"
)

// Plan is a subscription tier. The table is fixed at deploy time and
// immutable at runtime; prices are minor units (cents).
type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	UnitAmount  int64    `json:"unit_amount"`
	Interval    string   `json:"interval"`
	Features    []string `json:"features"`
	Popular     bool     `json:"popular"`
}

const planIDPrefix = "quantum-"

var Plans = []Plan{
	{
		ID:          "quantum-basic",
		Name:        "Quantum Basic",
		Description: "Entry-level quantum computing access",
		UnitAmount:  9900,
		Interval:    "month",
		Features:    []string{"100 Quantum Operations", "Basic Algorithm Library", "Email Support", "Community Access"},
	},
	{
		ID:          "quantum-pro",
		Name:        "Quantum Pro",
		Description: "Advanced quantum computing for businesses",
		UnitAmount:  29900,
		Interval:    "month",
		Features:    []string{"10,000 Quantum Operations", "Advanced Algorithm Library", "Priority Support", "Custom Algorithms", "API Access"},
		Popular:     true,
	},
	{
		ID:          "quantum-enterprise",
		Name:        "Quantum Enterprise",
		Description: "Enterprise-grade quantum solutions",
		UnitAmount:  99900,
		Interval:    "month",
		Features:    []string{"Unlimited Operations", "Full Algorithm Suite", "24/7 Dedicated Support", "Custom Integration", "SLA Guarantee", "Quantum Consulting"},
	},
}

func PlanByID(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// ProductName is the display name passed to the payment provider,
// e.g. "QuantumCloud PRO Plan" for quantum-pro.
func (p Plan) ProductName() string {
	return "QuantumCloud " + strings.ToUpper(strings.TrimPrefix(p.ID, planIDPrefix)) + " Plan"
}
