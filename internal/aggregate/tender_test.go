package aggregate_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"batitender/internal/aggregate"
	"batitender/models"
)

var paris = mustLocation("Europe/Paris")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func tender(id string, budget float64, deadline time.Time) models.Tender {
	return models.Tender{
		ID:              id,
		ProjectID:       "project-1",
		Name:            "Construction 24 logements",
		Type:            models.TenderConstruction,
		Deadline:        deadline,
		EstimatedBudget: budget,
	}
}

func assignedLot(id string, winner models.Bid) (models.Lot, []models.Bid) {
	l := lot(id, 100000)
	winner.Selected = true
	winner.LotID = id
	return l, []models.Bid{winner}
}

func TestAggregateTenderHalfAssigned(t *testing.T) {
	tn := tender("tender-1", 200000, day(30))
	l1, b1 := assignedLot("lot-1", bid("a", 95000, true, day(1)))
	l2 := lot("lot-2", 100000)

	sum, err := aggregate.AggregateTender(&tn, []models.Lot{l1, l2},
		map[string][]models.Bid{"lot-1": b1}, day(10), paris)
	require.NoError(t, err)

	require.Equal(t, models.TenderOpen, sum.Status)
	require.Equal(t, 50, sum.ProgressPercentage)
	require.Equal(t, 2, sum.LotCount)
	require.Equal(t, 1, sum.AssignedLots)
	// Only the resolved lot commits spend.
	require.Equal(t, 95000.0, sum.TotalQuotesAmount)
}

func TestAggregateTenderAllAssigned(t *testing.T) {
	tn := tender("tender-1", 200000, day(30))
	l1, b1 := assignedLot("lot-1", bid("a", 95000, true, day(1)))
	l2, b2 := assignedLot("lot-2", bid("b", 88000, true, day(2)))

	sum, err := aggregate.AggregateTender(&tn, []models.Lot{l1, l2},
		map[string][]models.Bid{"lot-1": b1, "lot-2": b2}, day(10), paris)
	require.NoError(t, err)

	require.Equal(t, models.TenderAssigned, sum.Status)
	require.Equal(t, 100, sum.ProgressPercentage)
	require.Equal(t, 183000.0, sum.TotalQuotesAmount)
	// 183000 - 200000: under budget, an "économie".
	require.Equal(t, -17000.0, sum.BudgetDelta)
	require.NotNil(t, sum.BudgetDeltaPct)
	require.InDelta(t, 8.5, *sum.BudgetDeltaPct, 0.001)
}

func TestAggregateTenderDeadline(t *testing.T) {
	tn := tender("tender-1", 200000, day(10))
	l := lot("lot-1", 100000)

	t.Run("deadline day itself is still open", func(t *testing.T) {
		now := time.Date(2026, time.March, 10, 23, 30, 0, 0, paris)
		sum, err := aggregate.AggregateTender(&tn, []models.Lot{l}, nil, now, paris)
		require.NoError(t, err)
		require.Equal(t, models.TenderOpen, sum.Status)
	})

	t.Run("closed the day after", func(t *testing.T) {
		now := time.Date(2026, time.March, 11, 0, 30, 0, 0, paris)
		sum, err := aggregate.AggregateTender(&tn, []models.Lot{l}, nil, now, paris)
		require.NoError(t, err)
		require.Equal(t, models.TenderClosed, sum.Status)
	})

	t.Run("all lots assigned overrides a passed deadline", func(t *testing.T) {
		la, ba := assignedLot("lot-1", bid("a", 95000, true, day(1)))
		sum, err := aggregate.AggregateTender(&tn, []models.Lot{la},
			map[string][]models.Bid{"lot-1": ba}, day(20), paris)
		require.NoError(t, err)
		require.Equal(t, models.TenderAssigned, sum.Status)
	})
}

func TestAggregateTenderEmpty(t *testing.T) {
	tn := tender("tender-1", 0, day(30))

	sum, err := aggregate.AggregateTender(&tn, nil, nil, day(1), paris)
	require.NoError(t, err)
	require.Equal(t, models.TenderOpen, sum.Status)
	require.Equal(t, 0, sum.ProgressPercentage)
	require.Equal(t, 0.0, sum.TotalQuotesAmount)
	// Percentage undefined on a zero budget.
	require.Nil(t, sum.BudgetDeltaPct)
}

func TestAggregateTenderProgressBounds(t *testing.T) {
	tn := tender("tender-1", 300000, day(30))
	l1, b1 := assignedLot("lot-1", bid("a", 95000, true, day(1)))
	lots := []models.Lot{l1, lot("lot-2", 100000), lot("lot-3", 100000)}

	sum, err := aggregate.AggregateTender(&tn, lots,
		map[string][]models.Bid{"lot-1": b1}, day(10), paris)
	require.NoError(t, err)
	require.GreaterOrEqual(t, sum.ProgressPercentage, 0)
	require.LessOrEqual(t, sum.ProgressPercentage, 100)
	// 1/3 rounds to 33, and 100 is reserved for all-assigned.
	require.Equal(t, 33, sum.ProgressPercentage)
	require.NotEqual(t, 100, sum.ProgressPercentage)
}

func TestAggregateTenderProgressNeverRoundsTo100(t *testing.T) {
	// 199 of 200 lots assigned rounds to 99, not 100.
	tn := tender("tender-1", 0, day(30))
	lots := make([]models.Lot, 0, 200)
	bidsByLot := map[string][]models.Bid{}
	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("lot-%03d", i)
		if i < 199 {
			l, b := assignedLot(id, bid(fmt.Sprintf("bid-%03d", i), 1000, true, day(1)))
			lots = append(lots, l)
			bidsByLot[id] = b
		} else {
			l := lot(id, 1000)
			lots = append(lots, l)
		}
	}

	sum, err := aggregate.AggregateTender(&tn, lots, bidsByLot, day(10), paris)
	require.NoError(t, err)
	require.Equal(t, 99, sum.ProgressPercentage)
}

func TestAggregateTenderQuoteQualitySignals(t *testing.T) {
	tn := tender("tender-1", 200000, day(30))
	l1 := lot("lot-1", 100000)
	l2 := lot("lot-2", 100000)
	bids := map[string][]models.Bid{
		"lot-1": {bid("a", 95000, true, day(1)), bid("b", 90000, false, day(2))},
		"lot-2": {bid("c", 99000, false, day(3))},
	}

	sum, err := aggregate.AggregateTender(&tn, []models.Lot{l1, l2}, bids, day(10), paris)
	require.NoError(t, err)
	require.Equal(t, 1, sum.CompliantBids)
	require.Equal(t, 1, sum.LotsWithoutCompliant)
}

func TestAggregateTenderPropagatesSelectionError(t *testing.T) {
	tn := tender("tender-1", 200000, day(30))
	l := lot("lot-1", 100000)
	b1 := bid("a", 95000, true, day(1))
	b1.Selected = true
	b2 := bid("b", 99000, true, day(2))
	b2.Selected = true

	_, err := aggregate.AggregateTender(&tn, []models.Lot{l},
		map[string][]models.Bid{"lot-1": {b1, b2}}, day(10), paris)

	var msErr *aggregate.MultipleSelectionError
	require.ErrorAs(t, err, &msErr)
}
