package workflowapimodels

import (
	"hr-workflow-backend/models"
)

type InstanceStatsView struct {
	Total                int64                           `json:"total"`                  // всего процессов
	ByStatus             map[models.WorkflowStatus]int64 `json:"by_status"`              // количество по статусам
	ByType               map[string]int64                `json:"by_type"`                // количество по типам
	AvgCompletionSeconds float64                         `json:"avg_completion_seconds"` // среднее время завершения
}
