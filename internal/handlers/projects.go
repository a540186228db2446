package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"batitender/internal/aggregate"
	"batitender/models"
)

// CreateProjectHandler handles POST /api/projects/new.
func (h *Handler) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if !decodeJSON(w, r, &project) {
		return
	}
	if err := validateProjectRequest(&project); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Store.CreateProject(r.Context(), &project); err != nil {
		http.Error(w, "Failed to create project", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func validateProjectRequest(p *models.Project) error {
	if p.Name == "" || len(p.Name) > 100 {
		return errors.New("name is required and max length 100")
	}
	if p.EstimatedBudget < 0 {
		return errors.New("estimatedBudget must be non-negative")
	}
	if !p.EndDate.IsZero() && !p.StartDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return errors.New("endDate must not precede startDate")
	}
	return nil
}

// GetProjectsHandler returns the paginated project list.
func (h *Handler) GetProjectsHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	projects, err := h.Store.GetProjects(r.Context(), params.Limit, params.Offset)
	if err != nil {
		http.Error(w, "Failed to get projects", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// GetProjectSummaryHandler rolls the whole project up: every tender is
// aggregated over its lots and bids, then the project aggregator runs over
// the tender summaries.
func (h *Handler) GetProjectSummaryHandler(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")

	project, err := h.Store.GetProject(r.Context(), projectID)
	if err != nil {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	tenders, err := h.Store.GetProjectTenders(r.Context(), projectID)
	if err != nil {
		http.Error(w, "Failed to get tenders", http.StatusInternalServerError)
		return
	}

	summaries := make([]aggregate.TenderSummary, 0, len(tenders))
	for i := range tenders {
		sum, err := h.tenderSummary(r.Context(), &tenders[i])
		if err != nil {
			respondAggregateError(w, err)
			return
		}
		summaries = append(summaries, *sum)
	}

	respondJSON(w, http.StatusOK, struct {
		*aggregate.ProjectSummary
		Tenders []aggregate.TenderSummary `json:"tenders"`
	}{
		ProjectSummary: aggregate.AggregateProject(project, summaries),
		Tenders:        summaries,
	})
}
