package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"parkpass/internal/models"
	"parkpass/internal/pricing"
)

func TestComputeTicketPrice(t *testing.T) {
	price, err := pricing.ComputeTicketPrice("Single-Day Pass", 2, 10)
	assert.NoError(t, err)
	assert.InDelta(t, 495.0, price, 0.001) // 275 * 2 * 0.9

	price, err = pricing.ComputeTicketPrice("Annual Membership", 1, 0)
	assert.NoError(t, err)
	assert.InDelta(t, 1840.0, price, 0.001)

	price, err = pricing.ComputeTicketPrice("Group Ticket (10+)", 10, 20)
	assert.NoError(t, err)
	assert.InDelta(t, 1760.0, price, 0.001)
}

func TestComputeTicketPriceUnknownType(t *testing.T) {
	_, err := pricing.ComputeTicketPrice("Moon Pass", 1, 0)
	assert.Error(t, err)
}

func TestValidateVisitDate(t *testing.T) {
	assert.NoError(t, pricing.ValidateVisitDate("07/04/2025"))
	assert.NoError(t, pricing.ValidateVisitDate("12/31/1999")) // past dates allowed

	for _, bad := range []string{"", "2025-07-04", "13/01/2025", "07/32/2025", "July 4 2025"} {
		err := pricing.ValidateVisitDate(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)

		var vErr *models.ValidationError
		assert.ErrorAs(t, err, &vErr)
		assert.Equal(t, "visit_date", vErr.Field)
	}
}

func TestValidatePeopleCount(t *testing.T) {
	assert.NoError(t, pricing.ValidatePeopleCount(1))
	assert.NoError(t, pricing.ValidatePeopleCount(25))
	assert.Error(t, pricing.ValidatePeopleCount(0))
	assert.Error(t, pricing.ValidatePeopleCount(-3))
}
