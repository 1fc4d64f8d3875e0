package payment

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"parkpass/internal/models"
)

// WalletGateway accepts a charge when the wallet account looks like an
// email address and the secret is non-empty.
type WalletGateway struct{}

func (g *WalletGateway) Charge(amount float64, req models.PaymentRequest) (*models.Receipt, error) {
	wallet := req.Wallet
	if !strings.Contains(wallet.Email, "@") || !strings.Contains(wallet.Email, ".") {
		return nil, &models.ValidationError{Field: "wallet_email", Reason: "invalid wallet email format"}
	}
	if wallet.Password == "" {
		return nil, &models.ValidationError{Field: "wallet_password", Reason: "wallet password cannot be empty"}
	}

	return &models.Receipt{
		Reference: uuid.New().String(),
		Method:    models.MethodWallet,
		Amount:    amount,
		PaidAt:    time.Now(),
	}, nil
}
