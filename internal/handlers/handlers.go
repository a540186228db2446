package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"batitender/internal/aggregate"
	"batitender/models"
)

// Handler wires the HTTP layer to storage and the aggregation core. Loc is
// the configured time zone for calendar-day deadline comparisons; Now is
// swappable for tests.
type Handler struct {
	Store    StorageInterface
	Notifier Notifier
	Loc      *time.Location
	Now      func() time.Time
}

func NewHandler(store StorageInterface, notifier Notifier, loc *time.Location) *Handler {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{Store: store, Notifier: notifier, Loc: loc, Now: time.Now}
}

// PingHandler answers "ok" for liveness checks.
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return false
	}
	return true
}

// respondAggregateError maps core aggregation failures to HTTP statuses. A
// multiple-selection violation is a data-integrity conflict the caller must
// resolve; automated award logic stops until then.
func respondAggregateError(w http.ResponseWriter, err error) {
	var msErr *aggregate.MultipleSelectionError
	if errors.As(err, &msErr) {
		http.Error(w, "Data integrity violation: "+msErr.Error(), http.StatusConflict)
		return
	}
	http.Error(w, "Aggregation failed", http.StatusInternalServerError)
}

type PaginationParams struct {
	Limit  int
	Offset int
}

// parsePaginationParams reads limit and offset from the query with defaults
// and caps.
func parsePaginationParams(r *http.Request) PaginationParams {
	params := PaginationParams{Limit: 20, Offset: 0}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			params.Limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			params.Offset = o
		}
	}
	return params
}

// tenderSummary loads a tender's lots and bids and runs the aggregator over
// the snapshot. An explicit close sticks until relaunch: the derivation may
// promote a closed tender to assigned, but never silently reopen it.
func (h *Handler) tenderSummary(ctx context.Context, tender *models.Tender) (*aggregate.TenderSummary, error) {
	lots, err := h.Store.GetTenderLots(ctx, tender.ID)
	if err != nil {
		return nil, err
	}
	bidsByLot := make(map[string][]models.Bid, len(lots))
	for i := range lots {
		bids, err := h.Store.GetLotBids(ctx, lots[i].ID)
		if err != nil {
			return nil, err
		}
		bidsByLot[lots[i].ID] = bids
	}
	sum, err := aggregate.AggregateTender(tender, lots, bidsByLot, h.Now(), h.Loc)
	if err != nil {
		return nil, err
	}
	if tender.Status == models.TenderClosed && sum.Status == models.TenderOpen {
		sum.Status = models.TenderClosed
	}
	return sum, nil
}

// refreshLot recomputes a lot's derived status and persists the projection,
// notifying on transitions. Returns the fresh summary.
func (h *Handler) refreshLot(ctx context.Context, lot *models.Lot) (*aggregate.LotSummary, error) {
	bids, err := h.Store.GetLotBids(ctx, lot.ID)
	if err != nil {
		return nil, err
	}
	sum, err := aggregate.AggregateLot(lot, bids)
	if err != nil {
		return nil, err
	}

	company := ""
	if sum.Status != models.LotPending && sum.FavoriteBid != nil {
		company = sum.FavoriteBid.CompanyID
	}
	if sum.Status != lot.Status || company != lot.AssignedCompanyID {
		if err := h.Store.UpdateLotStatus(ctx, lot.ID, sum.Status, company); err != nil {
			return nil, err
		}
		if sum.Status != lot.Status {
			h.Notifier.LotStatusChanged(lot.ID, lot.Status, sum.Status)
		}
	}
	return sum, nil
}

// refreshTender recomputes the tender's derived status and persists the
// projection, notifying on transitions.
func (h *Handler) refreshTender(ctx context.Context, tender *models.Tender) (*aggregate.TenderSummary, error) {
	sum, err := h.tenderSummary(ctx, tender)
	if err != nil {
		return nil, err
	}

	if sum.Status != tender.Status {
		if err := h.Store.UpdateTenderStatus(ctx, tender.ID, sum.Status); err != nil {
			return nil, err
		}
		h.Notifier.TenderStatusChanged(tender.ID, tender.Status, sum.Status)
		tender.Status = sum.Status
	}
	return sum, nil
}

// refreshProject recomputes the project-level label and persists it.
func (h *Handler) refreshProject(ctx context.Context, projectID string) error {
	project, err := h.Store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	tenders, err := h.Store.GetProjectTenders(ctx, projectID)
	if err != nil {
		return err
	}
	summaries := make([]aggregate.TenderSummary, 0, len(tenders))
	for i := range tenders {
		sum, err := h.tenderSummary(ctx, &tenders[i])
		if err != nil {
			return err
		}
		summaries = append(summaries, *sum)
	}
	ps := aggregate.AggregateProject(project, summaries)
	if string(ps.Status) != project.Status {
		return h.Store.UpdateProjectStatus(ctx, projectID, string(ps.Status))
	}
	return nil
}

// refreshFromLot cascades a lot-level change up the hierarchy.
func (h *Handler) refreshFromLot(ctx context.Context, lot *models.Lot) error {
	if _, err := h.refreshLot(ctx, lot); err != nil {
		return err
	}
	tender, err := h.Store.GetTender(ctx, lot.TenderID)
	if err != nil {
		return err
	}
	if _, err := h.refreshTender(ctx, tender); err != nil {
		return err
	}
	return h.refreshProject(ctx, tender.ProjectID)
}
