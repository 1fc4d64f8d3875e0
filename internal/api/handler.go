// Package api exposes the registry, catalog and purchase operations
// over HTTP. It is a thin presentation layer: every handler calls one
// operation and renders its outcome; nothing here touches the backing
// store directly.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"parkpass/internal/config"
	"parkpass/internal/logger"
	"parkpass/internal/models"
	"parkpass/internal/purchase"
	"parkpass/internal/registry"
	"parkpass/internal/utils"
)

type Handler struct {
	Registry  *registry.Registry
	Purchases *purchase.Service
	Config    *config.Config
	Logger    *logger.Logger
}

func NewHandler(reg *registry.Registry, purchases *purchase.Service, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{
		Registry:  reg,
		Purchases: purchases,
		Config:    cfg,
		Logger:    log,
	}
}

func (h *Handler) logError(category, message string) {
	if h.Logger != nil {
		h.Logger.Error(category, message)
	}
}

func (h *Handler) logInfo(category, message string) {
	if h.Logger != nil {
		h.Logger.Info(category, message)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return false
	}
	return true
}

// writeFailure maps domain errors onto status codes. Validation errors
// and duplicate emails are client faults; anything else is a 500.
func (h *Handler) writeFailure(w http.ResponseWriter, message string, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse(message, vErr.Error()))
	case errors.Is(err, registry.ErrDuplicateEmail):
		utils.WriteJSON(w, http.StatusConflict, utils.ErrorResponse(message, err.Error()))
	case errors.Is(err, registry.ErrAccountNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse(message, err.Error()))
	default:
		h.logError("API", message+": "+err.Error())
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse(message, err.Error()))
	}
}

// emailLooksValid applies the same loose shape check the original
// sign-up form used.
func emailLooksValid(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}
