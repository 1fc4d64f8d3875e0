package api

import (
	"fmt"
	"net/http"

	"parkpass/internal/catalog"
	"parkpass/internal/models"
	"parkpass/internal/utils"
)

// Sales reports the tickets sold for an exact date. Dates never
// recorded read as zero.
func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Sales query failed", "date query parameter is required"))
		return
	}

	sold := h.Registry.SalesForDate(date)
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(
		fmt.Sprintf("Total tickets sold on %s: %d", date, sold),
		models.SalesResponse{Date: date, TicketsSold: sold},
	))
}

// SetDiscount overwrites the discount percentage for a catalog ticket
// type.
func (h *Handler) SetDiscount(w http.ResponseWriter, r *http.Request) {
	var req models.SetDiscountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if _, ok := catalog.Lookup(req.TicketType); !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Discount update failed", fmt.Sprintf("unknown ticket type %q", req.TicketType)))
		return
	}

	if err := h.Registry.SetDiscount(req.TicketType, req.Percentage); err != nil {
		h.writeFailure(w, "Discount update failed", err)
		return
	}

	h.logInfo("REGISTRY", fmt.Sprintf("Discount for %s updated to %g%%", req.TicketType, req.Percentage))
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(
		fmt.Sprintf("Discount for %s updated to %g%%", req.TicketType, req.Percentage),
		nil,
	))
}
