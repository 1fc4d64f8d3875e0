package models

import (
	"time"

	"github.com/uptrace/bun"
)

// TicketPass is one completed purchase: the ticket type, the visit it
// covers and the payment that settled it. The QR code is the encrypted
// gate pass handed to the visitor.
type TicketPass struct {
	bun.BaseModel `bun:"table:ticket_passes"`

	PassID          string    `bun:"pass_id,pk" json:"pass_id"`
	AccountID       int64     `bun:"account_id" json:"account_id"`
	TicketType      string    `bun:"ticket_type" json:"ticket_type"`
	VisitDate       string    `bun:"visit_date" json:"visit_date"`
	NumPeople       int       `bun:"num_people" json:"num_people"`
	BasePrice       int       `bun:"base_price" json:"base_price"`
	DiscountPercent float64   `bun:"discount_percent" json:"discount_percent"`
	TotalPaid       float64   `bun:"total_paid" json:"total_paid"`
	PaymentRef      string    `bun:"payment_ref" json:"payment_ref"`
	QRCode          []byte    `bun:"qr_code" json:"qr_code,omitempty"`
	IssuedAt        time.Time `bun:"issued_at" json:"issued_at"`
}
