package aggregate

import (
	"fmt"

	"batitender/models"
)

// Budget ratio keys exposed on lot summaries.
const (
	RatioPerSquareMeter = "per_m2"
	RatioPerDwelling    = "per_dwelling"
)

// MultipleSelectionError reports a lot whose snapshot carries more than one
// selected bid. The storage layer enforces at most one winner per lot, so
// hitting this means the snapshot is corrupt; aggregation for the lot is
// aborted rather than guessing a winner.
type MultipleSelectionError struct {
	LotID string
	Count int
}

func (e *MultipleSelectionError) Error() string {
	return fmt.Sprintf("lot %s has %d selected bids, expected at most one", e.LotID, e.Count)
}

// LotSummary is the derived view of a lot used by every dashboard.
type LotSummary struct {
	LotID         string             `json:"lotId"`
	Status        models.LotStatus   `json:"status"`
	FavoriteBid   *models.Bid        `json:"favoriteBid,omitempty"`
	BudgetRatios  map[string]float64 `json:"budgetRatios"`
	BidCount      int                `json:"bidCount"`
	CompliantBids int                `json:"compliantBids"`
}

// AggregateLot derives a lot's status, favorite bid and budget ratios from
// its bid set.
//
// Status: pending until exactly one bid is selected, then assigned; the
// execution-phase flags promote an assigned lot to in_progress or completed.
// An unassigned lot with stray work flags stays pending. Two selected bids
// are a data-integrity violation and return MultipleSelectionError.
//
// The favorite bid is the selected bid if there is one, else the cheapest
// compliant bid, else nil.
func AggregateLot(lot *models.Lot, bids []models.Bid) (*LotSummary, error) {
	var selected *models.Bid
	selectedCount := 0
	for i := range bids {
		if bids[i].Selected && inPlay(&bids[i]) {
			selected = &bids[i]
			selectedCount++
		}
	}
	if selectedCount > 1 {
		return nil, &MultipleSelectionError{LotID: lot.ID, Count: selectedCount}
	}

	status := models.LotPending
	if selectedCount == 1 {
		switch {
		case lot.WorkCompleted:
			status = models.LotCompleted
		case lot.WorkStarted:
			status = models.LotInProgress
		default:
			status = models.LotAssigned
		}
	}

	favorite := selected
	if favorite == nil {
		favorite = BestBid(bids)
	}

	return &LotSummary{
		LotID:         lot.ID,
		Status:        status,
		FavoriteBid:   favorite,
		BudgetRatios:  budgetRatios(lot),
		BidCount:      countInPlay(bids),
		CompliantBids: CountCompliant(bids),
	}, nil
}

// budgetRatios divides the lot's estimated budget by each named divisor.
// Zero or unset divisors omit the key instead of producing Inf/NaN.
func budgetRatios(lot *models.Lot) map[string]float64 {
	ratios := make(map[string]float64)
	if lot.SurfaceArea > 0 {
		ratios[RatioPerSquareMeter] = lot.EstimatedBudget / lot.SurfaceArea
	}
	if lot.DwellingCount > 0 {
		ratios[RatioPerDwelling] = lot.EstimatedBudget / lot.DwellingCount
	}
	return ratios
}

func countInPlay(bids []models.Bid) int {
	n := 0
	for i := range bids {
		if inPlay(&bids[i]) {
			n++
		}
	}
	return n
}
