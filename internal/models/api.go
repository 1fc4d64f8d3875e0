package models

// Request/response shapes for the HTTP layer.

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string   `json:"token"`
	Account *Account `json:"account,omitempty"`
}

type UpdateAccountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PurchaseRequest struct {
	TicketType string         `json:"ticket_type"`
	VisitDate  string         `json:"visit_date"` // MM/DD/YYYY
	NumPeople  int            `json:"num_people"`
	Payment    PaymentRequest `json:"payment"`
}

type PurchaseResponse struct {
	Pass    *TicketPass `json:"pass"`
	Receipt *Receipt    `json:"receipt"`
}

type SetDiscountRequest struct {
	TicketType string  `json:"ticket_type"`
	Percentage float64 `json:"percentage"`
}

type SalesResponse struct {
	Date        string `json:"date"`
	TicketsSold int    `json:"tickets_sold"`
}
