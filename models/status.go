package models

import "strings"

// Legacy imports carry free-text status strings in French ("ouvert",
// "clôturé", "attribué") with inconsistent casing and accents. The mappers
// normalize them to the canonical enums. Unrecognized input defaults to the
// open/pending side so unmapped rows stay visible in active lists; the
// returned bool tells the caller whether the token was recognized, so data-
// quality warnings can be logged without interrupting aggregation.

var tenderStatusTokens = map[string]TenderStatus{
	"ouvert":   TenderOpen,
	"open":     TenderOpen,
	"clôturé":  TenderClosed,
	"cloturé":  TenderClosed,
	"cloture":  TenderClosed,
	"closed":   TenderClosed,
	"attribué": TenderAssigned,
	"attribue": TenderAssigned,
	"assigned": TenderAssigned,
}

var lotStatusTokens = map[string]LotStatus{
	"assigned": LotAssigned,
	"attribué": LotAssigned,
	"attribue": LotAssigned,
}

// MapTenderStatus normalizes a raw tender status string. An empty string
// stands in for a missing value and maps to open.
func MapTenderStatus(raw string) (TenderStatus, bool) {
	if s, ok := tenderStatusTokens[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s, true
	}
	return TenderOpen, raw == ""
}

// MapLotStatus normalizes a raw two-state lot award status. Only the
// assigned tokens are recognized; everything else is pending. The richer
// lot lifecycle (in progress, completed) is derived by the aggregator, not
// by this mapper.
func MapLotStatus(raw string) (LotStatus, bool) {
	if s, ok := lotStatusTokens[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s, true
	}
	return LotPending, raw == ""
}
