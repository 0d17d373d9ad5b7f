package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanTableInvariants(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range Plans {
		assert.False(t, seen[p.ID], "duplicate plan id %s", p.ID)
		seen[p.ID] = true
		assert.Greater(t, p.UnitAmount, int64(0), "plan %s must have a positive amount", p.ID)
		assert.Equal(t, "month", p.Interval)
	}
}

func TestPlanByID(t *testing.T) {
	plan, ok := PlanByID("quantum-pro")
	require.True(t, ok)
	assert.Equal(t, int64(29900), plan.UnitAmount)

	_, ok = PlanByID("quantum-ultra")
	assert.False(t, ok)

	_, ok = PlanByID("")
	assert.False(t, ok)
}

func TestPlanAmounts(t *testing.T) {
	expected := map[string]int64{
		"quantum-basic":      9900,
		"quantum-pro":        29900,
		"quantum-enterprise": 99900,
	}

	require.Len(t, Plans, len(expected))
	for id, amount := range expected {
		plan, ok := PlanByID(id)
		require.True(t, ok, "plan %s missing", id)
		assert.Equal(t, amount, plan.UnitAmount)
	}
}

func TestPlanProductName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"quantum-basic", "QuantumCloud BASIC Plan"},
		{"quantum-pro", "QuantumCloud PRO Plan"},
		{"quantum-enterprise", "QuantumCloud ENTERPRISE Plan"},
	}

	for _, tt := range tests {
		plan, ok := PlanByID(tt.id)
		require.True(t, ok)
		assert.Equal(t, tt.want, plan.ProductName())
	}
}
