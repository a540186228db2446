// Package aggregate derives statuses, progress and budget figures for the
// procurement hierarchy (project, tender, lot, bid). Every function is a pure
// computation over a read-only snapshot supplied by the caller: nothing here
// touches storage, mutates its inputs, or keeps state between calls, so the
// same snapshot always yields the same result.
package aggregate

import (
	"sort"

	"batitender/models"
)

// BidEvaluation is the per-bid verdict relative to its lot siblings.
type BidEvaluation struct {
	IsBest    bool `json:"isBest"`
	Compliant bool `json:"compliant"`
}

// inPlay reports whether a bid still participates in evaluation. Withdrawn
// bids keep their row and version history but are invisible to award logic.
func inPlay(b *models.Bid) bool {
	return b.Status != models.BidWithdrawn
}

// beats reports whether a takes precedence over b for the best-bid pick:
// lower amount wins, ties go to the earlier submission date, then to the
// lexicographically smaller ID. The order is total, so the pick is
// deterministic across runs.
func beats(a, b *models.Bid) bool {
	if a.Amount != b.Amount {
		return a.Amount < b.Amount
	}
	if !a.SubmissionDate.Equal(b.SubmissionDate) {
		return a.SubmissionDate.Before(b.SubmissionDate)
	}
	return a.ID < b.ID
}

// BestBid returns the cheapest compliant bid among the lot's bids, or nil if
// no compliant bid exists. Non-compliant and withdrawn bids are never best,
// whatever their amount.
func BestBid(bids []models.Bid) *models.Bid {
	var best *models.Bid
	for i := range bids {
		b := &bids[i]
		if !b.Compliant || !inPlay(b) {
			continue
		}
		if best == nil || beats(b, best) {
			best = b
		}
	}
	return best
}

// EvaluateBid classifies a single bid against the full sibling set of its
// lot. Compliance is taken verbatim from the reviewer's flag.
func EvaluateBid(bid *models.Bid, siblings []models.Bid) BidEvaluation {
	ev := BidEvaluation{Compliant: bid.Compliant}
	if best := BestBid(siblings); best != nil && best.ID == bid.ID {
		ev.IsBest = true
	}
	return ev
}

// RankBids orders a lot's bids for the comparison table: compliant bids
// first by ascending amount, then non-compliant ones by ascending amount,
// withdrawn bids last. The sort is stable and ties fall back to the same
// date-then-ID rule as the best-bid pick. The input slice is not modified.
func RankBids(bids []models.Bid) []models.Bid {
	ranked := make([]models.Bid, len(bids))
	copy(ranked, bids)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		if inPlay(a) != inPlay(b) {
			return inPlay(a)
		}
		if a.Compliant != b.Compliant {
			return a.Compliant
		}
		return beats(a, b)
	})
	return ranked
}

// CountCompliant returns the number of compliant bids still in play.
// Dashboards flag lots where this is zero as a warning state.
func CountCompliant(bids []models.Bid) int {
	n := 0
	for i := range bids {
		if bids[i].Compliant && inPlay(&bids[i]) {
			n++
		}
	}
	return n
}
