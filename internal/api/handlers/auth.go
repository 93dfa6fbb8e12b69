package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/trendwave/connect/internal/api/dto"
	"github.com/trendwave/connect/internal/auth"
)

type AuthHandler struct {
	authService auth.Authenticator
}

func NewAuthHandler(authService auth.Authenticator) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	resp, err := h.authService.Login(r.Context(), auth.LoginInput{
		TenantCode: req.Code(),
		Email:      req.Email,
		Password:   req.Password,
	})

	if err != nil {
		var locked *auth.AccountLockedError
		switch {
		case errors.As(err, &locked):
			retryAfter := int(locked.RetryAfter.Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeJSON(w, http.StatusLocked, dto.ErrorResponse{
				Error: "Account locked due to too many failed attempts. Try again in " +
					locked.RetryAfter.Round(time.Minute).String(),
				Details: map[string]string{"retry_after_seconds": strconv.Itoa(retryAfter)},
			})
		case errors.Is(err, auth.ErrInvalidCredentials):
			// Deliberately vague: never reveal which of the three
			// fields was wrong.
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid credentials"})
		case errors.Is(err, auth.ErrSuspendedTenant):
			writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "Organization is suspended"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Login failed"})
		}
		return
	}

	setSessionCookie(w, resp.Token)

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Token:  resp.Token,
		Tenant: dto.NewTenantDTO(resp.Tenant),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}

func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	issue, err := h.authService.RequestPasswordReset(r.Context(), req.TenantID, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrTenantNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "No matching organization found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Password reset request failed"})
		return
	}

	// The token is also delivered by email; returning it here keeps the
	// flow usable without a mail provider configured.
	writeJSON(w, http.StatusOK, dto.ResetRequestResponse{
		Message:    "Password reset issued. Check your email for the reset link.",
		ResetToken: issue.Token,
		ExpiresAt:  issue.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	err := h.authService.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidResetToken):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid or expired reset token"})
		case errors.Is(err, auth.ErrWeakPassword):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Password must be at least 8 characters"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Password reset failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Password updated. You can now log in."})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
