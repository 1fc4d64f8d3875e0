package api

import (
	"fmt"
	"net/http"

	"parkpass/internal/auth"
	"parkpass/internal/catalog"
	"parkpass/internal/models"
	"parkpass/internal/payment"
	"parkpass/internal/pricing"
	"parkpass/internal/purchase"
	"parkpass/internal/utils"
)

// ListCatalog returns every purchasable ticket type.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Ticket types", catalog.All()))
}

// Purchase runs the full buy-ticket flow: validate the visit, price the
// tickets with the current discount, charge the mock gateway, bump the
// sales ledger and issue the pass.
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req models.PurchaseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	accountID := auth.AccountID(r.Context())
	account, ok := h.Registry.AccountByID(accountID)
	if !ok {
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("Purchase failed", "account no longer exists"))
		return
	}

	ticketType, ok := catalog.Lookup(req.TicketType)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Purchase failed", fmt.Sprintf("unknown ticket type %q", req.TicketType)))
		return
	}
	if err := pricing.ValidateVisitDate(req.VisitDate); err != nil {
		h.writeFailure(w, "Purchase failed", err)
		return
	}
	if err := pricing.ValidatePeopleCount(req.NumPeople); err != nil {
		h.writeFailure(w, "Purchase failed", err)
		return
	}

	discount := h.Registry.Discount(req.TicketType)
	total, err := pricing.ComputeTicketPrice(req.TicketType, req.NumPeople, discount)
	if err != nil {
		h.writeFailure(w, "Purchase failed", err)
		return
	}

	gateway, err := payment.ForMethod(req.Payment.Method)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Purchase failed", err.Error()))
		return
	}
	receipt, err := gateway.Charge(total, req.Payment)
	if err != nil {
		h.writeFailure(w, "Payment failed", err)
		return
	}

	if err := h.Registry.RecordTicketSale(req.VisitDate, req.NumPeople); err != nil {
		h.writeFailure(w, "Purchase failed", err)
		return
	}

	pass, err := h.Purchases.RecordPurchase(purchase.PurchaseDetails{
		AccountID:       account.ID,
		TicketType:      ticketType.Name,
		VisitDate:       req.VisitDate,
		NumPeople:       req.NumPeople,
		BasePrice:       ticketType.BasePrice,
		DiscountPercent: discount,
	}, receipt)
	if err != nil {
		h.writeFailure(w, "Purchase failed", err)
		return
	}

	if h.Logger != nil {
		h.Logger.LogPurchase("BUY", pass.PassID, fmt.Sprintf("%s x%d for account %d, paid %.2f", pass.TicketType, pass.NumPeople, account.ID, receipt.Amount))
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse(
		fmt.Sprintf("Payment of %.2f via %s was successful", receipt.Amount, receipt.Method),
		models.PurchaseResponse{Pass: pass, Receipt: receipt},
	))
}

// ListPurchases returns the authenticated visitor's purchase history.
func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	passes, err := h.Purchases.PassesByAccount(auth.AccountID(r.Context()))
	if err != nil {
		h.writeFailure(w, "Failed to fetch purchases", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Purchase history", passes))
}
