package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trendwave/connect/internal/api/dto"
	"github.com/trendwave/connect/internal/database/models"
	"github.com/trendwave/connect/internal/registry"
)

type RegisterHandler struct {
	registryService *registry.Service
}

func NewRegisterHandler(registryService *registry.Service) *RegisterHandler {
	return &RegisterHandler{registryService: registryService}
}

func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	result, err := h.registryService.Register(r.Context(), registry.RegisterInput{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		ContactEmail:       req.ContactEmail,
		AdminName:          req.AdminName,
		Type:               models.TenantType(req.Type),
		Profile:            models.JSONMap(req.Profile),
	})

	if err != nil {
		var conflict *registry.ConflictError
		switch {
		case errors.As(err, &conflict):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{
				Error:   "Organization already registered",
				Details: map[string]string{"field": conflict.Field},
			})
		case errors.Is(err, registry.ErrCodeExhausted):
			writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Registration temporarily unavailable"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Registration failed"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterResponse{
		TenantCode:   result.Tenant.Code,
		Status:       string(result.Tenant.Status),
		TempPassword: result.TempPassword,
		NextSteps:    result.NextSteps,
	})
}
