package aggregate

import (
	"math"
	"time"

	"batitender/models"
)

// TenderSummary is the rolled-up view of a tender across all its lots.
type TenderSummary struct {
	TenderID           string              `json:"tenderId"`
	Status             models.TenderStatus `json:"status"`
	ProgressPercentage int                 `json:"progressPercentage"`
	TotalQuotesAmount  float64             `json:"totalQuotesAmount"`
	BudgetDelta        float64             `json:"budgetDelta"`
	// BudgetDeltaPct is |delta| as a percentage of the estimated budget,
	// nil when the estimated budget is zero.
	BudgetDeltaPct       *float64     `json:"budgetDeltaPct,omitempty"`
	LotCount             int          `json:"lotCount"`
	AssignedLots         int          `json:"assignedLots"`
	CompliantBids        int          `json:"compliantBids"`
	LotsWithoutCompliant int          `json:"lotsWithoutCompliantBid"`
	Lots                 []LotSummary `json:"lots,omitempty"`
}

// assignedOrLater reports lot statuses that count as awarded for progress
// and tender-status purposes. Execution phases imply the lot was assigned.
func assignedOrLater(s models.LotStatus) bool {
	return s == models.LotAssigned || s == models.LotInProgress || s == models.LotCompleted
}

// deadlinePassed compares at calendar-day granularity in loc. Deadline
// checks use days, not wall-clock instants, so a tender does not flap
// between open and closed around the submission cut-off.
func deadlinePassed(deadline, now time.Time, loc *time.Location) bool {
	if deadline.IsZero() {
		return false
	}
	d := deadline.In(loc)
	n := now.In(loc)
	dy, dm, dd := d.Date()
	ny, nm, nd := n.Date()
	day := time.Date(dy, dm, dd, 0, 0, 0, 0, loc)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, loc)
	return today.After(day)
}

// AggregateTender rolls up every lot of a tender into the tender's derived
// status, progress percentage, committed spend and budget delta.
//
// Status: assigned iff the tender has lots and all of them are assigned;
// otherwise closed once the deadline day has passed; otherwise open.
// Unresolved lots contribute nothing to the committed total, so an open
// tender never inflates spend with bids that may still lose.
//
// bidsByLot supplies each lot's sibling bid set keyed by lot ID. A lot with
// a corrupt selection aborts the whole call.
func AggregateTender(tender *models.Tender, lots []models.Lot, bidsByLot map[string][]models.Bid, now time.Time, loc *time.Location) (*TenderSummary, error) {
	if loc == nil {
		loc = time.UTC
	}

	sum := &TenderSummary{
		TenderID: tender.ID,
		LotCount: len(lots),
		Lots:     make([]LotSummary, 0, len(lots)),
	}

	for i := range lots {
		ls, err := AggregateLot(&lots[i], bidsByLot[lots[i].ID])
		if err != nil {
			return nil, err
		}
		if assignedOrLater(ls.Status) {
			sum.AssignedLots++
		}
		if ls.FavoriteBid != nil {
			sum.TotalQuotesAmount += ls.FavoriteBid.Amount
		}
		sum.CompliantBids += ls.CompliantBids
		if ls.CompliantBids == 0 {
			sum.LotsWithoutCompliant++
		}
		sum.Lots = append(sum.Lots, *ls)
	}

	switch {
	case sum.LotCount > 0 && sum.AssignedLots == sum.LotCount:
		sum.Status = models.TenderAssigned
	case deadlinePassed(tender.Deadline, now, loc):
		sum.Status = models.TenderClosed
	default:
		sum.Status = models.TenderOpen
	}

	// An empty tender is by definition not advanced. 100 is reserved for
	// fully assigned tenders, so near-complete ones round down to 99.
	if sum.LotCount > 0 {
		sum.ProgressPercentage = int(math.Round(100 * float64(sum.AssignedLots) / float64(sum.LotCount)))
		if sum.ProgressPercentage == 100 && sum.AssignedLots < sum.LotCount {
			sum.ProgressPercentage = 99
		}
	}

	sum.BudgetDelta = sum.TotalQuotesAmount - tender.EstimatedBudget
	if tender.EstimatedBudget > 0 {
		pct := math.Abs(sum.BudgetDelta) / tender.EstimatedBudget * 100
		sum.BudgetDeltaPct = &pct
	}

	return sum, nil
}
