// Package purchase keeps the history of completed ticket purchases and
// issues the gate pass for each one.
package purchase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"parkpass/internal/models"
	"parkpass/internal/purchase/qr"
)

type PassDBLayer interface {
	CreatePass(pass models.TicketPass) error
	GetPassByID(passID string) (*models.TicketPass, error)
	GetPassesByAccount(accountID int64) ([]models.TicketPass, error)
	DeletePassesByAccount(accountID int64) error
}

type Service struct {
	DB PassDBLayer
	QR *qr.Generator
}

func NewService(db PassDBLayer, qrGen *qr.Generator) *Service {
	return &Service{DB: db, QR: qrGen}
}

// PurchaseDetails is everything RecordPurchase needs beyond the payment
// receipt.
type PurchaseDetails struct {
	AccountID       int64
	TicketType      string
	VisitDate       string
	NumPeople       int
	BasePrice       int
	DiscountPercent float64
}

// RecordPurchase stores a new pass for a settled purchase. The QR code
// is generated before the insert so a pass is never stored without one.
func (s *Service) RecordPurchase(details PurchaseDetails, receipt *models.Receipt) (*models.TicketPass, error) {
	pass := models.TicketPass{
		PassID:          uuid.New().String(),
		AccountID:       details.AccountID,
		TicketType:      details.TicketType,
		VisitDate:       details.VisitDate,
		NumPeople:       details.NumPeople,
		BasePrice:       details.BasePrice,
		DiscountPercent: details.DiscountPercent,
		TotalPaid:       receipt.Amount,
		PaymentRef:      receipt.Reference,
		IssuedAt:        time.Now(),
	}

	qrBytes, err := s.QR.GenerateEncryptedQR(pass)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR: %w", err)
	}
	pass.QRCode = qrBytes

	if err := s.DB.CreatePass(pass); err != nil {
		return nil, fmt.Errorf("failed to store pass: %w", err)
	}
	return &pass, nil
}

// GetPass fetches one pass by ID.
func (s *Service) GetPass(passID string) (*models.TicketPass, error) {
	pass, err := s.DB.GetPassByID(passID)
	if err != nil {
		return nil, fmt.Errorf("pass %s not found: %w", passID, err)
	}
	return pass, nil
}

// PassesByAccount lists the purchase history for an account. An empty
// history is not an error.
func (s *Service) PassesByAccount(accountID int64) ([]models.TicketPass, error) {
	passes, err := s.DB.GetPassesByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch passes for account %d: %w", accountID, err)
	}
	return passes, nil
}

// ForgetAccount drops the purchase history for a deleted account.
func (s *Service) ForgetAccount(accountID int64) error {
	if err := s.DB.DeletePassesByAccount(accountID); err != nil {
		return fmt.Errorf("failed to delete passes for account %d: %w", accountID, err)
	}
	return nil
}
