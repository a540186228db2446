package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"batitender/models"
)

// CreateBidHandler handles POST /api/bids/new: a contractor submits a devis
// for a lot.
func (h *Handler) CreateBidHandler(w http.ResponseWriter, r *http.Request) {
	var bid models.Bid
	if !decodeJSON(w, r, &bid) {
		return
	}
	if err := validateBidRequest(&bid); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lot, err := h.Store.GetLot(r.Context(), bid.LotID)
	if err != nil {
		http.Error(w, "Lot not found", http.StatusNotFound)
		return
	}
	tender, err := h.Store.GetTender(r.Context(), lot.TenderID)
	if err != nil {
		http.Error(w, "Tender not found", http.StatusNotFound)
		return
	}
	if tender.Status != models.TenderOpen {
		http.Error(w, "Tender is not open for bids", http.StatusBadRequest)
		return
	}

	if bid.SubmissionDate.IsZero() {
		bid.SubmissionDate = h.Now()
	}
	if bid.Solvency == "" {
		bid.Solvency = models.SolvencyAverage
	}

	if err := h.Store.CreateBid(r.Context(), &bid); err != nil {
		http.Error(w, "Failed to create bid", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, bid)
}

func validateBidRequest(b *models.Bid) error {
	if b.LotID == "" {
		return errors.New("lotId is required")
	}
	if b.CompanyID == "" {
		return errors.New("companyId is required")
	}
	if b.CompanyName == "" || len(b.CompanyName) > 100 {
		return errors.New("companyName is required and max length 100")
	}
	if b.Amount < 0 {
		return errors.New("amount must be non-negative")
	}
	if b.AdminScore < 0 || b.AdminScore > 100 {
		return errors.New("adminScore must be between 0 and 100")
	}
	if b.Solvency != "" && !models.ValidSolvencyCategory(b.Solvency) {
		return errors.New("invalid solvency category")
	}
	return nil
}

// ReviseBidAmountHandler handles PATCH /api/bids/{bidId}/amount. The prior
// amount is retained as a quote version.
func (h *Handler) ReviseBidAmountHandler(w http.ResponseWriter, r *http.Request) {
	bidID := chi.URLParam(r, "bidId")

	var input struct {
		Amount *float64 `json:"amount"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.Amount == nil || *input.Amount < 0 {
		http.Error(w, "amount must be non-negative", http.StatusBadRequest)
		return
	}

	bid, err := h.Store.GetBid(r.Context(), bidID)
	if err != nil {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}
	if bid.Status == models.BidWithdrawn {
		http.Error(w, "Bid is withdrawn", http.StatusBadRequest)
		return
	}

	if err := h.Store.ReviseBidAmount(r.Context(), bid, *input.Amount); err != nil {
		http.Error(w, "Failed to revise bid amount", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, bid)
}

// GetQuoteVersionsHandler handles GET /api/bids/{bidId}/versions: the audit
// trail of amount revisions.
func (h *Handler) GetQuoteVersionsHandler(w http.ResponseWriter, r *http.Request) {
	bidID := chi.URLParam(r, "bidId")

	if _, err := h.Store.GetBid(r.Context(), bidID); err != nil {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}
	versions, err := h.Store.GetQuoteVersions(r.Context(), bidID)
	if err != nil {
		http.Error(w, "Failed to get quote versions", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, versions)
}

// SelectBidHandler handles PUT /api/bids/{bidId}/select: the acceptance
// action awarding the lot to this bid. The database's one-winner-per-lot
// index rejects a second selection, so a prior award is never silently
// overwritten.
func (h *Handler) SelectBidHandler(w http.ResponseWriter, r *http.Request) {
	bidID := chi.URLParam(r, "bidId")

	bid, err := h.Store.GetBid(r.Context(), bidID)
	if err != nil {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}
	if bid.Status == models.BidWithdrawn {
		http.Error(w, "Cannot select a withdrawn bid", http.StatusBadRequest)
		return
	}
	if !bid.Compliant {
		http.Error(w, "Cannot select a non-compliant bid", http.StatusBadRequest)
		return
	}
	if bid.Selected {
		http.Error(w, "Bid is already selected", http.StatusBadRequest)
		return
	}

	if err := h.Store.SelectBid(r.Context(), bidID); err != nil {
		http.Error(w, "Another bid is already selected for this lot", http.StatusConflict)
		return
	}
	bid.Selected = true
	bid.Status = models.BidApproved

	lot, err := h.Store.GetLot(r.Context(), bid.LotID)
	if err != nil {
		http.Error(w, "Lot not found", http.StatusNotFound)
		return
	}
	if err := h.refreshFromLot(r.Context(), lot); err != nil {
		respondAggregateError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bid)
}

// UnselectBidHandler handles PUT /api/bids/{bidId}/unselect, reverting an
// award before re-selection.
func (h *Handler) UnselectBidHandler(w http.ResponseWriter, r *http.Request) {
	bidID := chi.URLParam(r, "bidId")

	bid, err := h.Store.GetBid(r.Context(), bidID)
	if err != nil {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}
	if !bid.Selected {
		http.Error(w, "Bid is not selected", http.StatusBadRequest)
		return
	}

	if err := h.Store.UnselectBid(r.Context(), bidID); err != nil {
		http.Error(w, "Failed to unselect bid", http.StatusInternalServerError)
		return
	}
	bid.Selected = false
	bid.Status = models.BidPending

	lot, err := h.Store.GetLot(r.Context(), bid.LotID)
	if err != nil {
		http.Error(w, "Lot not found", http.StatusNotFound)
		return
	}
	if err := h.refreshFromLot(r.Context(), lot); err != nil {
		respondAggregateError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bid)
}

// WithdrawBidHandler handles PUT /api/bids/{bidId}/withdraw. Withdrawal is
// a status transition; the bid and its quote versions remain for audit.
func (h *Handler) WithdrawBidHandler(w http.ResponseWriter, r *http.Request) {
	bidID := chi.URLParam(r, "bidId")

	bid, err := h.Store.GetBid(r.Context(), bidID)
	if err != nil {
		http.Error(w, "Bid not found", http.StatusNotFound)
		return
	}
	if bid.Status == models.BidWithdrawn {
		http.Error(w, "Bid is already withdrawn", http.StatusBadRequest)
		return
	}

	if err := h.Store.WithdrawBid(r.Context(), bidID); err != nil {
		http.Error(w, "Failed to withdraw bid", http.StatusInternalServerError)
		return
	}
	bid.Status = models.BidWithdrawn
	bid.Selected = false

	lot, err := h.Store.GetLot(r.Context(), bid.LotID)
	if err != nil {
		http.Error(w, "Lot not found", http.StatusNotFound)
		return
	}
	if err := h.refreshFromLot(r.Context(), lot); err != nil {
		respondAggregateError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bid)
}
