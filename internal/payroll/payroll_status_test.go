package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-payroll/internal/payroll"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from payroll.Status
		to   payroll.Status
		ok   bool
	}{
		{payroll.StatusPending, payroll.StatusProcessed, true},
		{payroll.StatusPending, payroll.StatusPaid, true},
		{payroll.StatusPending, payroll.StatusCancelled, true},
		{payroll.StatusProcessed, payroll.StatusPaid, true},
		{payroll.StatusPaid, payroll.StatusReleased, true},

		{payroll.StatusPending, payroll.StatusReleased, false},
		{payroll.StatusPaid, payroll.StatusPending, false},
		{payroll.StatusPaid, payroll.StatusCancelled, false},
		{payroll.StatusReleased, payroll.StatusPaid, false},
		{payroll.StatusCancelled, payroll.StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, payroll.StatusReleased.Terminal())
	assert.True(t, payroll.StatusCancelled.Terminal())
	assert.False(t, payroll.StatusPending.Terminal())
	assert.False(t, payroll.StatusPaid.Terminal())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, payroll.StatusPending.Valid())
	assert.False(t, payroll.Status("DRAFT").Valid())
}
