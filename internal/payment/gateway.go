// Package payment simulates a payment gateway. A charge succeeds
// whenever its fields are well formed; no money moves and no external
// processor is contacted. A real gateway can replace either
// implementation behind the same interface.
package payment

import (
	"fmt"

	"parkpass/internal/models"
)

// Gateway settles a charge for the given amount using the details in
// the request. Malformed details return a *models.ValidationError.
type Gateway interface {
	Charge(amount float64, req models.PaymentRequest) (*models.Receipt, error)
}

// ForMethod selects the gateway for a payment method name.
func ForMethod(method string) (Gateway, error) {
	switch method {
	case models.MethodCreditCard:
		return &CardGateway{}, nil
	case models.MethodWallet:
		return &WalletGateway{}, nil
	default:
		return nil, fmt.Errorf("unsupported payment method %q", method)
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
