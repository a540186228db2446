package aggregate

import (
	"math"

	"batitender/models"
)

// ProjectStatus is a derived label for project lists. It mirrors the tender
// derivation one level up and is never stored as authoritative state.
type ProjectStatus string

const (
	ProjectNoActivity ProjectStatus = "no_activity"
	ProjectOpen       ProjectStatus = "open"
	ProjectClosed     ProjectStatus = "closed"
	ProjectAssigned   ProjectStatus = "assigned"
)

// ProjectSummary is the rolled-up view of a project across all its tenders.
type ProjectSummary struct {
	ProjectID          string        `json:"projectId"`
	Status             ProjectStatus `json:"status"`
	ProgressPercentage int           `json:"progressPercentage"`
	TenderCount        int           `json:"tenderCount"`
	TendersAssigned    int           `json:"tendersAssigned"`
}

// AggregateProject rolls up tender summaries into project-level progress and
// assignment counts. Progress is the arithmetic mean of the tenders'
// progress percentages, rounded; a project with no tenders is at 0 with the
// no_activity label.
func AggregateProject(project *models.Project, tenders []TenderSummary) *ProjectSummary {
	sum := &ProjectSummary{
		ProjectID:   project.ID,
		Status:      ProjectNoActivity,
		TenderCount: len(tenders),
	}
	if len(tenders) == 0 {
		return sum
	}

	total := 0
	anyOpen := false
	for i := range tenders {
		total += tenders[i].ProgressPercentage
		switch tenders[i].Status {
		case models.TenderAssigned:
			sum.TendersAssigned++
		case models.TenderOpen:
			anyOpen = true
		}
	}
	sum.ProgressPercentage = int(math.Round(float64(total) / float64(len(tenders))))

	switch {
	case sum.TendersAssigned == len(tenders):
		sum.Status = ProjectAssigned
	case anyOpen:
		sum.Status = ProjectOpen
	default:
		sum.Status = ProjectClosed
	}
	return sum
}
