package workflowstatshandler

import (
	"gorm.io/gorm"

	workflowhistoryhandler "hr-workflow-backend/lib/workflow-history"
	workflowinstancestore "hr-workflow-backend/lib/workflow-instance/store"
	"hr-workflow-backend/models"
	workflowapimodels "hr-workflow-backend/models/api/workflow"
)

type Provider interface {
	GetInstanceStats(spaceID string) (workflowapimodels.InstanceStatsView, error)
	GetHistoryStats(spaceID string) (workflowapimodels.HistoryStatsView, error)
}

func NewHandler(DB *gorm.DB, historyProvider workflowhistoryhandler.Provider) Provider {
	return impl{
		instanceStore:   workflowinstancestore.NewInstance(DB),
		historyProvider: historyProvider,
	}
}

type impl struct {
	instanceStore   workflowinstancestore.Provider
	historyProvider workflowhistoryhandler.Provider
}

func (i impl) GetInstanceStats(spaceID string) (workflowapimodels.InstanceStatsView, error) {
	recList, err := i.instanceStore.ListAll(spaceID)
	if err != nil {
		return workflowapimodels.InstanceStatsView{}, err
	}
	result := workflowapimodels.InstanceStatsView{
		Total:    int64(len(recList)),
		ByStatus: map[models.WorkflowStatus]int64{},
		ByType:   map[string]int64{},
	}
	var completed int64
	var totalSeconds float64
	for _, rec := range recList {
		result.ByStatus[rec.Status]++
		result.ByType[rec.WorkflowType]++
		if rec.Status == models.WorkflowStatusCompleted && rec.StartDate != nil && rec.EndDate != nil {
			completed++
			totalSeconds += rec.EndDate.Sub(*rec.StartDate).Seconds()
		}
	}
	// без завершенных процессов среднее остается нулевым
	if completed > 0 {
		result.AvgCompletionSeconds = totalSeconds / float64(completed)
	}
	return result, nil
}

func (i impl) GetHistoryStats(spaceID string) (workflowapimodels.HistoryStatsView, error) {
	return i.historyProvider.Stats(spaceID)
}
