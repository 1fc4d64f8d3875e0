package payment

import (
	"time"

	"github.com/google/uuid"

	"parkpass/internal/models"
)

// expiryLayout is MM/YY.
const expiryLayout = "01/06"

// CardGateway accepts a charge when the card number is exactly 16
// digits, the expiry parses as MM/YY and the CVV is exactly 3 digits.
// Whether the card has already expired is not checked.
type CardGateway struct{}

func (g *CardGateway) Charge(amount float64, req models.PaymentRequest) (*models.Receipt, error) {
	card := req.Card
	if len(card.Number) != 16 || !allDigits(card.Number) {
		return nil, &models.ValidationError{Field: "card_number", Reason: "card number must be 16 digits"}
	}
	if _, err := time.Parse(expiryLayout, card.Expiry); err != nil {
		return nil, &models.ValidationError{Field: "expiry", Reason: "expiry date must be in MM/YY format"}
	}
	if len(card.CVV) != 3 || !allDigits(card.CVV) {
		return nil, &models.ValidationError{Field: "cvv", Reason: "CVV must be 3 digits"}
	}

	return &models.Receipt{
		Reference: uuid.New().String(),
		Method:    models.MethodCreditCard,
		Amount:    amount,
		PaidAt:    time.Now(),
	}, nil
}
