package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dmatsui/bookkeeping-service/internal/apperr"
	"github.com/dmatsui/bookkeeping-service/internal/middleware"
	"github.com/dmatsui/bookkeeping-service/internal/service"
)

// maxUploadSize caps statement uploads at 32 MiB.
const maxUploadSize = 32 << 20

func (h *Handler) requestScope(w http.ResponseWriter, r *http.Request) (int64, bool) {
	orgID, ok := middleware.OrganizationID(r.Context())
	if !ok {
		http.Error(w, "Missing organization", http.StatusUnauthorized)
	}
	return orgID, ok
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid transaction id", apperr.ErrValidation)
	}
	return id, nil
}

// Import handles a multipart statement upload (account_id + file).
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, fmt.Errorf("%w: invalid upload: %v", apperr.ErrValidation, err))
		return
	}

	accountID, _ := strconv.ParseInt(r.FormValue("account_id"), 10, 64)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, fmt.Errorf("%w: select an account and a file", apperr.ErrValidation))
		return
	}
	defer file.Close()

	count, err := h.svc.Import(orgID, accountID, header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"imported": count,
		"message":  fmt.Sprintf("Imported %d transactions", count),
	})
}

// List returns imported transactions filtered by the query parameters,
// plus the visible accounts for the filter form.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	opts := service.ListOptions{
		AccountName: q.Get("account_name"),
		DateFrom:    q.Get("date_from"),
		DateTo:      q.Get("date_to"),
	}
	if v := q.Get("category_id"); v != "" {
		opts.CategoryID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := q.Get("status"); v != "" {
		status, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, fmt.Errorf("%w: invalid status", apperr.ErrValidation))
			return
		}
		opts.Status = &status
	}

	listing, err := h.svc.ListImportedTransactions(orgID, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

// Get returns one transaction with the category list, i.e. everything
// the classification form needs.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	txn, err := h.svc.GetImportedTransaction(orgID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	categories, err := h.svc.Categories(orgID)
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"transaction":          txn,
		"categories":           categories,
		"selected_category_id": txn.CategoryID,
	})
}

type postRequest struct {
	CategoryID     int64  `json:"category_id"`
	Description    string `json:"description"`
	CounterpartyID *int64 `json:"counterparty_id"`
	DepartmentID   *int64 `json:"department_id"`
	ItemID         *int64 `json:"item_id"`
	ProjectTagID   *int64 `json:"project_tag_id"`
	MemoTagID      *int64 `json:"memo_tag_id"`
}

// Post classifies a transaction and creates its journal and ledger entries.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", apperr.ErrValidation))
		return
	}

	entry, err := h.svc.Post(orgID, id, service.PostParams{
		CategoryID:     req.CategoryID,
		Description:    req.Description,
		CounterpartyID: req.CounterpartyID,
		DepartmentID:   req.DepartmentID,
		ItemID:         req.ItemID,
		ProjectTagID:   req.ProjectTagID,
		MemoTagID:      req.MemoTagID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":       "Transaction posted",
		"journal_entry": entry,
	})
}

// Reverse undoes a posting, returning the transaction to unclassified.
func (h *Handler) Reverse(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Reverse(orgID, id); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Posting reversed",
	})
}

// Delete removes a transaction and its linked entries. The response is
// machine readable: {success, message}, 404 for an unknown id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Delete(orgID, id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, apperr.ErrNotFound) {
			status = http.StatusNotFound
		}
		respondJSON(w, status, map[string]any{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Transaction deleted",
	})
}
