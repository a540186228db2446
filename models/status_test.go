package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"batitender/models"
)

func TestMapTenderStatus(t *testing.T) {
	cases := []struct {
		raw    string
		want   models.TenderStatus
		mapped bool
	}{
		{"ouvert", models.TenderOpen, true},
		{"OUVERT", models.TenderOpen, true},
		{"clôturé", models.TenderClosed, true},
		{"CLOTURÉ", models.TenderClosed, true},
		{"CLÔTURÉ", models.TenderClosed, true},
		{"attribué", models.TenderAssigned, true},
		{"Attribue", models.TenderAssigned, true},
		{"  ouvert  ", models.TenderOpen, true},
		{"", models.TenderOpen, true},
		{"n'importe quoi", models.TenderOpen, false},
	}
	for _, tc := range cases {
		got, ok := models.MapTenderStatus(tc.raw)
		require.Equal(t, tc.want, got, "raw=%q", tc.raw)
		require.Equal(t, tc.mapped, ok, "raw=%q", tc.raw)
	}
}

func TestMapLotStatus(t *testing.T) {
	cases := []struct {
		raw    string
		want   models.LotStatus
		mapped bool
	}{
		{"assigned", models.LotAssigned, true},
		{"ASSIGNED", models.LotAssigned, true},
		{"attribué", models.LotAssigned, true},
		{"", models.LotPending, true},
		{"en attente", models.LotPending, false},
	}
	for _, tc := range cases {
		got, ok := models.MapLotStatus(tc.raw)
		require.Equal(t, tc.want, got, "raw=%q", tc.raw)
		require.Equal(t, tc.mapped, ok, "raw=%q", tc.raw)
	}
}

func TestMapperIsTotal(t *testing.T) {
	// No input panics or errors; worst case is the fail-open default.
	for _, raw := range []string{"", " ", "éàü", "12345", "closed\n"} {
		s, _ := models.MapTenderStatus(raw)
		require.True(t, models.ValidTenderStatus(s))
		l, _ := models.MapLotStatus(raw)
		require.True(t, models.ValidLotStatus(l))
	}
}
