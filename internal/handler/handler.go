package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
	"github.com/dmatsui/bookkeeping-service/internal/middleware"
	"github.com/dmatsui/bookkeeping-service/internal/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Accounts returns the visible accounts for the import and filter forms.
func (h *Handler) Accounts(w http.ResponseWriter, r *http.Request) {
	orgID, ok := middleware.OrganizationID(r.Context())
	if !ok {
		http.Error(w, "Missing organization", http.StatusUnauthorized)
		return
	}

	accounts, err := h.svc.VisibleAccounts(orgID)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the error taxonomy to HTTP statuses. Anything outside
// the taxonomy is a persistence or programming failure.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrParse):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
