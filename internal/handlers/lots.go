package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"batitender/internal/aggregate"
	"batitender/models"
)

// CreateLotHandler handles POST /api/lots/new.
func (h *Handler) CreateLotHandler(w http.ResponseWriter, r *http.Request) {
	var lot models.Lot
	if !decodeJSON(w, r, &lot) {
		return
	}
	if err := validateLotRequest(&lot); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tender, err := h.Store.GetTender(r.Context(), lot.TenderID)
	if err != nil {
		http.Error(w, "Tender not found", http.StatusNotFound)
		return
	}
	if tender.Status != models.TenderOpen {
		http.Error(w, "Tender is not open", http.StatusBadRequest)
		return
	}

	if err := h.Store.CreateLot(r.Context(), &lot); err != nil {
		http.Error(w, "Failed to create lot", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, lot)
}

func validateLotRequest(l *models.Lot) error {
	if l.Name == "" || len(l.Name) > 100 {
		return errors.New("name is required and max length 100")
	}
	if len(l.Description) > 500 {
		return errors.New("description max length 500")
	}
	if l.TenderID == "" {
		return errors.New("tenderId is required")
	}
	if l.EstimatedBudget < 0 {
		return errors.New("estimatedBudget must be non-negative")
	}
	return nil
}

// GetLotSummaryHandler handles GET /api/lots/{lotId}/summary.
func (h *Handler) GetLotSummaryHandler(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotId")

	lot, err := h.Store.GetLot(r.Context(), lotID)
	if err != nil {
		http.Error(w, "Lot not found", http.StatusNotFound)
		return
	}
	bids, err := h.Store.GetLotBids(r.Context(), lotID)
	if err != nil {
		http.Error(w, "Failed to get bids", http.StatusInternalServerError)
		return
	}

	sum, err := aggregate.AggregateLot(lot, bids)
	if err != nil {
		respondAggregateError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

// BidRow is one line of the bid comparison table: the bid plus its verdict
// and 1-based rank.
type BidRow struct {
	models.Bid
	Rank   int  `json:"rank"`
	IsBest bool `json:"isBest"`
}

// GetLotBidsHandler handles GET /api/lots/{lotId}/bids, the ranked
// comparison table for the award decision.
func (h *Handler) GetLotBidsHandler(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotId")

	if _, err := h.Store.GetLot(r.Context(), lotID); err != nil {
		http.Error(w, "Lot not found", http.StatusNotFound)
		return
	}
	bids, err := h.Store.GetLotBids(r.Context(), lotID)
	if err != nil {
		http.Error(w, "Failed to get bids", http.StatusInternalServerError)
		return
	}

	ranked := aggregate.RankBids(bids)
	rows := make([]BidRow, 0, len(ranked))
	for i := range ranked {
		ev := aggregate.EvaluateBid(&ranked[i], bids)
		rows = append(rows, BidRow{
			Bid:    ranked[i],
			Rank:   i + 1,
			IsBest: ev.IsBest,
		})
	}
	respondJSON(w, http.StatusOK, rows)
}

// UpdateLotWorkHandler handles PUT /api/lots/{lotId}/work. The flags are
// opaque execution-phase signals from site tracking; the derived status
// follows from them only once the lot is assigned.
func (h *Handler) UpdateLotWorkHandler(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "lotId")

	var input struct {
		Started   bool `json:"started"`
		Completed bool `json:"completed"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	lot, err := h.Store.GetLot(r.Context(), lotID)
	if err != nil {
		http.Error(w, "Lot not found", http.StatusNotFound)
		return
	}

	if err := h.Store.SetLotWorkFlags(r.Context(), lotID, input.Started, input.Completed); err != nil {
		http.Error(w, "Failed to update lot", http.StatusInternalServerError)
		return
	}
	lot.WorkStarted = input.Started
	lot.WorkCompleted = input.Completed

	if err := h.refreshFromLot(r.Context(), lot); err != nil {
		respondAggregateError(w, err)
		return
	}

	refreshed, err := h.Store.GetLot(r.Context(), lotID)
	if err != nil {
		http.Error(w, "Failed to reload lot", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, refreshed)
}
