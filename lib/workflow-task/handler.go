package workflowtaskhandler

import (
	"time"

	"gorm.io/gorm"

	workflowinstancestore "hr-workflow-backend/lib/workflow-instance/store"
	"hr-workflow-backend/models"
	workflowapimodels "hr-workflow-backend/models/api/workflow"
)

type Provider interface {
	GetPendingTasks(spaceID, actorID string) ([]workflowapimodels.PendingTaskView, error)
}

func NewHandler(DB *gorm.DB) Provider {
	return impl{
		store: workflowinstancestore.NewInstance(DB),
	}
}

type impl struct {
	store workflowinstancestore.Provider
}

// GetPendingTasks - производное представление "кто должен действовать сейчас".
// Собирается по текущим этапам активных процессов при каждом вызове,
// пустой actorID - задачи всех исполнителей
func (i impl) GetPendingTasks(spaceID, actorID string) ([]workflowapimodels.PendingTaskView, error) {
	recList, err := i.store.ListActive(spaceID)
	if err != nil {
		return nil, err
	}
	result := []workflowapimodels.PendingTaskView{}
	for _, rec := range recList {
		_, step := rec.GetCurrentStep()
		if step == nil || step.Status != models.WStepStatusInProgress {
			continue
		}
		if actorID != "" && step.AssigneeID != actorID {
			continue
		}
		task := workflowapimodels.PendingTaskView{
			InstanceID:    rec.ID,
			InstanceName:  rec.Name,
			WorkflowType:  rec.WorkflowType,
			StepID:        step.StepID,
			StepName:      step.Name,
			StepIndex:     rec.CurrentStepIndex,
			AssigneeID:    step.AssigneeID,
			AssigneeRole:  step.AssigneeRole,
			InitiatorID:   rec.InitiatorID,
			InitiatorName: rec.InitiatorName,
			CreatedAt:     rec.CreatedAt,
		}
		if step.DueDuration > 0 && step.StartTime != nil {
			dueDate := step.StartTime.Add(time.Duration(step.DueDuration) * time.Second)
			task.DueDate = &dueDate
		}
		result = append(result, task)
	}
	return result, nil
}
