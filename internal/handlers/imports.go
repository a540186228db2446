package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"batitender/models"
)

// Legacy exports carry free-text statuses ("Ouvert", "CLOTURÉ", "attribué")
// and a two-state lot award field. Import maps them through the status
// mappers; unmapped tokens fall back to the open side and are reported back
// as warnings instead of failing the import.

type legacyLot struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	EstimatedBudget float64 `json:"estimatedBudget"`
	Status          string  `json:"status"`
	SurfaceArea     float64 `json:"surfaceArea"`
	DwellingCount   float64 `json:"dwellingCount"`
}

type legacyTender struct {
	Name            string      `json:"name"`
	Type            string      `json:"type"`
	Status          string      `json:"status"`
	Deadline        time.Time   `json:"deadline"`
	EstimatedBudget float64     `json:"estimatedBudget"`
	Lots            []legacyLot `json:"lots"`
}

type importResult struct {
	TendersImported int      `json:"tendersImported"`
	LotsImported    int      `json:"lotsImported"`
	Warnings        []string `json:"warnings"`
}

// ImportLegacyTendersHandler handles POST /api/projects/{projectId}/import:
// bulk load of tenders and lots from the previous tool. Mapped statuses are
// stored as the initial projection; once bids arrive, the derivation takes
// over as usual.
func (h *Handler) ImportLegacyTendersHandler(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")

	if _, err := h.Store.GetProject(r.Context(), projectID); err != nil {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	var input struct {
		Tenders []legacyTender `json:"tenders"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}

	result := importResult{Warnings: []string{}}
	for _, lt := range input.Tenders {
		status, ok := models.MapTenderStatus(lt.Status)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("tender %q: unmapped status %q, defaulting to open", lt.Name, lt.Status))
		}

		tenderType := models.TenderType(lt.Type)
		if !models.ValidTenderType(tenderType) {
			tenderType = models.TenderConstruction
		}
		tender := models.Tender{
			ProjectID:       projectID,
			Name:            lt.Name,
			Type:            tenderType,
			Deadline:        lt.Deadline,
			EstimatedBudget: lt.EstimatedBudget,
		}
		if err := h.Store.CreateTender(r.Context(), &tender); err != nil {
			http.Error(w, "Failed to import tender", http.StatusInternalServerError)
			return
		}
		if status != models.TenderOpen {
			if err := h.Store.UpdateTenderStatus(r.Context(), tender.ID, status); err != nil {
				http.Error(w, "Failed to import tender", http.StatusInternalServerError)
				return
			}
		}
		result.TendersImported++

		for _, ll := range lt.Lots {
			lotStatus, ok := models.MapLotStatus(ll.Status)
			if !ok {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("lot %q: unmapped status %q, defaulting to pending", ll.Name, ll.Status))
			}
			lot := models.Lot{
				TenderID:        tender.ID,
				Name:            ll.Name,
				Description:     ll.Description,
				EstimatedBudget: ll.EstimatedBudget,
				SurfaceArea:     ll.SurfaceArea,
				DwellingCount:   ll.DwellingCount,
			}
			if err := h.Store.CreateLot(r.Context(), &lot); err != nil {
				http.Error(w, "Failed to import lot", http.StatusInternalServerError)
				return
			}
			if lotStatus != models.LotPending {
				if err := h.Store.UpdateLotStatus(r.Context(), lot.ID, lotStatus, ""); err != nil {
					http.Error(w, "Failed to import lot", http.StatusInternalServerError)
					return
				}
			}
			result.LotsImported++
		}
	}

	respondJSON(w, http.StatusOK, result)
}
