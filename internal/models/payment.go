package models

import (
	"fmt"
	"time"
)

// Payment method names accepted by the purchase flow.
const (
	MethodCreditCard = "credit_card"
	MethodWallet     = "wallet"
)

type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"` // MM/YY
	CVV    string `json:"cvv"`
}

type WalletDetails struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PaymentRequest carries the fields for whichever method was selected.
type PaymentRequest struct {
	Method string        `json:"method"`
	Card   CardDetails   `json:"card,omitempty"`
	Wallet WalletDetails `json:"wallet,omitempty"`
}

// Receipt is returned by a gateway after a successful charge. No money
// moves anywhere: the mock gateways issue a receipt whenever the
// payment fields are well formed.
type Receipt struct {
	Reference string    `json:"reference"`
	Method    string    `json:"method"`
	Amount    float64   `json:"amount"`
	PaidAt    time.Time `json:"paid_at"`
}

// ValidationError reports a single malformed input field.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
