package api

import (
	"fmt"
	"net/http"

	"parkpass/internal/auth"
	"parkpass/internal/models"
	"parkpass/internal/utils"
)

// GetAccount returns the authenticated visitor's account details.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, ok := h.Registry.AccountByID(auth.AccountID(r.Context()))
	if !ok {
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("Account not found", "account no longer exists"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Account details", account))
}

// UpdateAccount overwrites name, email and password. All three fields
// are replaced wholesale; there is no partial update.
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Update failed", "all fields are required"))
		return
	}
	if !emailLooksValid(req.Email) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Update failed", "invalid email format"))
		return
	}

	accountID := auth.AccountID(r.Context())
	if err := h.Registry.ModifyAccount(accountID, req.Name, req.Email, req.Password); err != nil {
		h.writeFailure(w, "Update failed", err)
		return
	}

	account, _ := h.Registry.AccountByID(accountID)
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Account modified successfully", account))
}

// DeleteAccount removes the account and its purchase history. The
// delete is idempotent: a second call succeeds with nothing to do.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := auth.AccountID(r.Context())

	if err := h.Registry.DeleteAccount(accountID); err != nil {
		h.writeFailure(w, "Delete failed", err)
		return
	}
	if err := h.Purchases.ForgetAccount(accountID); err != nil {
		// The account itself is gone; report success but log the
		// orphaned history.
		h.logError("PURCHASE", fmt.Sprintf("Failed to delete passes for account %d: %v", accountID, err))
	}

	h.logInfo("REGISTRY", fmt.Sprintf("Account deleted: id %d", accountID))
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Account deleted successfully", nil))
}
