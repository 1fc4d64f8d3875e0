package api

import (
	"fmt"
	"net/http"
	"strconv"

	"parkpass/internal/auth"
	"parkpass/internal/models"
	"parkpass/internal/utils"
)

// Register creates a new visitor account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Registration failed", "all fields are required"))
		return
	}
	if req.Password != req.ConfirmPassword {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Registration failed", "passwords do not match"))
		return
	}
	if !emailLooksValid(req.Email) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Registration failed", "invalid email format"))
		return
	}

	account, err := h.Registry.CreateAccount(req.Name, req.Email, req.Password)
	if err != nil {
		h.writeFailure(w, "Registration failed", err)
		return
	}

	h.logInfo("REGISTRY", fmt.Sprintf("Account created: %s (id %d)", account.Email, account.ID))
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Account created successfully", account))
}

// Login authenticates a visitor and issues a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, ok := h.Registry.Authenticate(req.Email, req.Password)
	if !ok {
		if h.Logger != nil {
			h.Logger.LogSecurity("LOGIN_FAILED", "invalid credentials for "+req.Email)
		}
		utils.WriteJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Login failed", "invalid email or password"))
		return
	}

	token, err := auth.IssueToken(
		[]byte(h.Config.Auth.JWTSecret),
		strconv.FormatInt(account.ID, 10),
		auth.RoleUser,
		h.Config.Auth.TokenTTL,
	)
	if err != nil {
		h.writeFailure(w, "Login failed", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(
		fmt.Sprintf("Welcome, %s!", account.Name),
		models.LoginResponse{Token: token, Account: account},
	))
}

// AdminLogin checks the configured admin credential and issues an admin
// token.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Username != h.Config.Auth.AdminUsername || req.Password != h.Config.Auth.AdminPassword {
		if h.Logger != nil {
			h.Logger.LogSecurity("ADMIN_LOGIN_FAILED", "invalid admin credentials for "+req.Username)
		}
		utils.WriteJSON(w, http.StatusUnauthorized, utils.ErrorResponse("Login failed", "invalid admin credentials"))
		return
	}

	token, err := auth.IssueToken(
		[]byte(h.Config.Auth.JWTSecret),
		req.Username,
		auth.RoleAdmin,
		h.Config.Auth.TokenTTL,
	)
	if err != nil {
		h.writeFailure(w, "Login failed", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Welcome, Admin!", models.LoginResponse{Token: token}))
}
