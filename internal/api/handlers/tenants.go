package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/trendwave/connect/internal/api/dto"
	"github.com/trendwave/connect/internal/database/models"
	"gorm.io/gorm"
)

// TenantHandler serves the administrative tenant endpoints behind auth.
type TenantHandler struct {
	db *gorm.DB
}

func NewTenantHandler(db *gorm.DB) *TenantHandler {
	return &TenantHandler{db: db}
}

func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	params := dto.PaginationParams{
		Page:    queryInt(r, "page"),
		PerPage: queryInt(r, "per_page"),
	}
	params.Normalize()

	query := h.db.WithContext(r.Context()).Model(&models.Tenant{})

	if t := r.URL.Query().Get("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if s := r.URL.Query().Get("status"); s != "" {
		query = query.Where("status = ?", s)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list tenants"})
		return
	}

	var tenants []models.Tenant
	if err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&tenants).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list tenants"})
		return
	}

	data := make([]dto.TenantDTO, 0, len(tenants))
	for i := range tenants {
		data = append(data, dto.NewTenantDTO(&tenants[i]))
	}

	totalPages := int(total) / params.PerPage
	if int(total)%params.PerPage > 0 {
		totalPages++
	}

	writeJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
	})
}

func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.fetch(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.NewTenantDTO(tenant))
}

// UpdateStatus is the admin approval/suspension path. First login also
// activates a pending tenant without this endpoint.
func (h *TenantHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.fetch(w, r)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	if err := h.db.WithContext(r.Context()).Model(tenant).
		Update("status", models.TenantStatus(req.Status)).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update status"})
		return
	}

	tenant.Status = models.TenantStatus(req.Status)
	writeJSON(w, http.StatusOK, dto.NewTenantDTO(tenant))
}

func (h *TenantHandler) fetch(w http.ResponseWriter, r *http.Request) (*models.Tenant, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid tenant ID"})
		return nil, false
	}

	var tenant models.Tenant
	if err := h.db.WithContext(r.Context()).First(&tenant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Tenant not found"})
		} else {
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load tenant"})
		}
		return nil, false
	}

	return &tenant, true
}

func queryInt(r *http.Request, key string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(key))
	return v
}
