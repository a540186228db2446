package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"batitender/models"
)

// CreateTenderHandler handles POST /api/tenders/new.
func (h *Handler) CreateTenderHandler(w http.ResponseWriter, r *http.Request) {
	var tender models.Tender
	if !decodeJSON(w, r, &tender) {
		return
	}
	if err := validateTenderRequest(&tender); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.Store.GetProject(r.Context(), tender.ProjectID); err != nil {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	if err := h.Store.CreateTender(r.Context(), &tender); err != nil {
		http.Error(w, "Failed to create tender", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, tender)
}

func validateTenderRequest(t *models.Tender) error {
	if t.Name == "" || len(t.Name) > 100 {
		return errors.New("name is required and max length 100")
	}
	if t.ProjectID == "" {
		return errors.New("projectId is required")
	}
	if !models.ValidTenderType(t.Type) {
		return errors.New("invalid type")
	}
	if t.Deadline.IsZero() {
		return errors.New("deadline is required")
	}
	if t.EstimatedBudget < 0 {
		return errors.New("estimatedBudget must be non-negative")
	}
	return nil
}

// GetTendersHandler returns the tender list, optionally filtered by type.
func (h *Handler) GetTendersHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	var types []models.TenderType
	for _, v := range r.URL.Query()["type"] {
		if t := models.TenderType(v); models.ValidTenderType(t) {
			types = append(types, t)
		}
	}

	tenders, err := h.Store.GetTenders(r.Context(), types, params.Limit, params.Offset)
	if err != nil {
		http.Error(w, "Failed to get tenders", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, tenders)
}

// GetTenderSummaryHandler handles GET /api/tenders/{tenderId}/summary.
func (h *Handler) GetTenderSummaryHandler(w http.ResponseWriter, r *http.Request) {
	tenderID := chi.URLParam(r, "tenderId")

	tender, err := h.Store.GetTender(r.Context(), tenderID)
	if err != nil {
		http.Error(w, "Tender not found", http.StatusNotFound)
		return
	}

	sum, err := h.tenderSummary(r.Context(), tender)
	if err != nil {
		respondAggregateError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

// CloseTenderHandler handles PUT /api/tenders/{tenderId}/close — one of the
// two explicit status actions. A closed tender stays closed until relaunch.
func (h *Handler) CloseTenderHandler(w http.ResponseWriter, r *http.Request) {
	tenderID := chi.URLParam(r, "tenderId")

	tender, err := h.Store.GetTender(r.Context(), tenderID)
	if err != nil {
		http.Error(w, "Tender not found", http.StatusNotFound)
		return
	}
	if tender.Status == models.TenderAssigned {
		http.Error(w, "Tender is fully assigned", http.StatusBadRequest)
		return
	}
	if tender.Status == models.TenderClosed {
		http.Error(w, "Tender is already closed", http.StatusBadRequest)
		return
	}

	if err := h.Store.UpdateTenderStatus(r.Context(), tenderID, models.TenderClosed); err != nil {
		http.Error(w, "Failed to update tender status", http.StatusInternalServerError)
		return
	}
	h.Notifier.TenderStatusChanged(tenderID, tender.Status, models.TenderClosed)
	tender.Status = models.TenderClosed

	if err := h.refreshProject(r.Context(), tender.ProjectID); err != nil {
		http.Error(w, "Failed to refresh project", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, tender)
}

// RelaunchTenderHandler handles PUT /api/tenders/{tenderId}/relaunch: the
// tender reopens for bids, with a new deadline when the old one has passed.
func (h *Handler) RelaunchTenderHandler(w http.ResponseWriter, r *http.Request) {
	tenderID := chi.URLParam(r, "tenderId")

	var input struct {
		Deadline *time.Time `json:"deadline"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	tender, err := h.Store.GetTender(r.Context(), tenderID)
	if err != nil {
		http.Error(w, "Tender not found", http.StatusNotFound)
		return
	}
	if tender.Status != models.TenderClosed {
		http.Error(w, "Only a closed tender can be relaunched", http.StatusBadRequest)
		return
	}
	if input.Deadline == nil && !tender.Deadline.After(h.Now()) {
		http.Error(w, "A new deadline is required to relaunch", http.StatusBadRequest)
		return
	}
	if input.Deadline != nil {
		if err := h.Store.UpdateTenderDeadline(r.Context(), tenderID, *input.Deadline); err != nil {
			http.Error(w, "Failed to update deadline", http.StatusInternalServerError)
			return
		}
		tender.Deadline = *input.Deadline
	}

	if err := h.Store.UpdateTenderStatus(r.Context(), tenderID, models.TenderOpen); err != nil {
		http.Error(w, "Failed to update tender status", http.StatusInternalServerError)
		return
	}
	h.Notifier.TenderStatusChanged(tenderID, models.TenderClosed, models.TenderOpen)
	tender.Status = models.TenderOpen

	if err := h.refreshProject(r.Context(), tender.ProjectID); err != nil {
		http.Error(w, "Failed to refresh project", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, tender)
}
