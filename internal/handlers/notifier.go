package handlers

import (
	"log"

	"batitender/models"
)

// Notifier receives status transitions detected when a derived status
// diverges from the previously stored one. Delivery (mail, messaging,
// webhooks) is owned by whatever implements this; the default just logs.
type Notifier interface {
	TenderStatusChanged(tenderID string, from, to models.TenderStatus)
	LotStatusChanged(lotID string, from, to models.LotStatus)
}

type LogNotifier struct{}

func (LogNotifier) TenderStatusChanged(tenderID string, from, to models.TenderStatus) {
	log.Printf("tender %s status %s -> %s", tenderID, from, to)
}

func (LogNotifier) LotStatusChanged(lotID string, from, to models.LotStatus) {
	log.Printf("lot %s status %s -> %s", lotID, from, to)
}
