// Package pricing computes ticket prices and validates purchase input.
package pricing

import (
	"fmt"
	"time"

	"parkpass/internal/catalog"
	"parkpass/internal/models"
)

// visitDateLayout is MM/DD/YYYY.
const visitDateLayout = "01/02/2006"

// ComputeTicketPrice returns basePrice * numPeople * (1 - discount/100)
// for the named ticket type.
func ComputeTicketPrice(ticketType string, numPeople int, discountPercent float64) (float64, error) {
	t, ok := catalog.Lookup(ticketType)
	if !ok {
		return 0, fmt.Errorf("unknown ticket type %q", ticketType)
	}
	return float64(t.BasePrice) * float64(numPeople) * (1 - discountPercent/100), nil
}

// ValidateVisitDate requires the exact MM/DD/YYYY format. Past dates
// are accepted; the reference system never range-checked them.
func ValidateVisitDate(date string) error {
	if date == "" {
		return &models.ValidationError{Field: "visit_date", Reason: "visit date is required"}
	}
	if _, err := time.Parse(visitDateLayout, date); err != nil {
		return &models.ValidationError{Field: "visit_date", Reason: "invalid date format, use MM/DD/YYYY"}
	}
	return nil
}

// ValidatePeopleCount rejects zero and negative party sizes.
func ValidatePeopleCount(n int) error {
	if n <= 0 {
		return &models.ValidationError{Field: "num_people", Reason: "number of people must be greater than zero"}
	}
	return nil
}
