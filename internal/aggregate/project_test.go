package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"batitender/internal/aggregate"
	"batitender/models"
)

func project(id string) models.Project {
	return models.Project{ID: id, Name: "Résidence Les Tilleuls"}
}

func tenderSummary(status models.TenderStatus, progress int) aggregate.TenderSummary {
	return aggregate.TenderSummary{Status: status, ProgressPercentage: progress}
}

func TestAggregateProjectEmpty(t *testing.T) {
	p := project("project-1")
	sum := aggregate.AggregateProject(&p, nil)

	require.Equal(t, aggregate.ProjectNoActivity, sum.Status)
	require.Equal(t, 0, sum.ProgressPercentage)
	require.Equal(t, 0, sum.TendersAssigned)
	require.Equal(t, 0, sum.TenderCount)
}

func TestAggregateProjectMeanProgress(t *testing.T) {
	p := project("project-1")
	sum := aggregate.AggregateProject(&p, []aggregate.TenderSummary{
		tenderSummary(models.TenderAssigned, 100),
		tenderSummary(models.TenderOpen, 50),
		tenderSummary(models.TenderOpen, 0),
	})

	require.Equal(t, 50, sum.ProgressPercentage)
	require.Equal(t, 1, sum.TendersAssigned)
	require.Equal(t, 3, sum.TenderCount)
	require.Equal(t, aggregate.ProjectOpen, sum.Status)
	require.LessOrEqual(t, sum.TendersAssigned, sum.TenderCount)
}

func TestAggregateProjectStatusLabels(t *testing.T) {
	p := project("project-1")

	allAssigned := aggregate.AggregateProject(&p, []aggregate.TenderSummary{
		tenderSummary(models.TenderAssigned, 100),
		tenderSummary(models.TenderAssigned, 100),
	})
	require.Equal(t, aggregate.ProjectAssigned, allAssigned.Status)
	require.Equal(t, 100, allAssigned.ProgressPercentage)

	wound := aggregate.AggregateProject(&p, []aggregate.TenderSummary{
		tenderSummary(models.TenderAssigned, 100),
		tenderSummary(models.TenderClosed, 50),
	})
	require.Equal(t, aggregate.ProjectClosed, wound.Status)
}

func TestAggregateProjectIdempotent(t *testing.T) {
	p := project("project-1")
	in := []aggregate.TenderSummary{
		tenderSummary(models.TenderOpen, 67),
		tenderSummary(models.TenderAssigned, 100),
	}
	first := aggregate.AggregateProject(&p, in)
	second := aggregate.AggregateProject(&p, in)
	require.Equal(t, first, second)
}
