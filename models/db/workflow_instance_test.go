package dbmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hr-workflow-backend/models"
)

func testInstance() WorkflowInstance {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return WorkflowInstance{
		Steps: WorkflowSteps{
			{WorkflowStepSpec: WorkflowStepSpec{StepID: "step1", Name: "Руководитель"}, Status: models.WStepStatusInProgress, StartTime: &start},
			{WorkflowStepSpec: WorkflowStepSpec{StepID: "step2", Name: "HR"}, Status: models.WStepStatusPending},
			{WorkflowStepSpec: WorkflowStepSpec{StepID: "step3", Name: "Директор"}, Status: models.WStepStatusPending},
		},
		CurrentStepIndex: 0,
		Status:           models.WorkflowStatusActive,
	}
}

func TestGetCurrentStep(t *testing.T) {
	t.Run(`текущий этап в начале цепочки`, func(t *testing.T) {
		rec := testInstance()
		isLast, step := rec.GetCurrentStep()
		require.False(t, isLast)
		require.NotNil(t, step)
		require.Equal(t, "step1", step.StepID)
	})
	t.Run(`последний этап цепочки`, func(t *testing.T) {
		rec := testInstance()
		rec.CurrentStepIndex = 2
		isLast, step := rec.GetCurrentStep()
		require.True(t, isLast)
		require.NotNil(t, step)
		require.Equal(t, "step3", step.StepID)
	})
	t.Run(`указатель за пределами цепочки`, func(t *testing.T) {
		rec := testInstance()
		rec.CurrentStepIndex = 3
		isLast, step := rec.GetCurrentStep()
		require.True(t, isLast)
		require.Nil(t, step)

		rec.CurrentStepIndex = -1
		isLast, step = rec.GetCurrentStep()
		require.True(t, isLast)
		require.Nil(t, step)
	})
}

func TestAdvanceSteps(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	t.Run(`переход на следующий этап`, func(t *testing.T) {
		rec := testInstance()
		steps, newIndex, isLast := rec.AdvanceSteps(now)
		require.False(t, isLast)
		require.Equal(t, 1, newIndex)
		require.Equal(t, models.WStepStatusCompleted, steps[0].Status)
		require.NotNil(t, steps[0].EndTime)
		require.Equal(t, models.WStepStatusInProgress, steps[1].Status)
		require.NotNil(t, steps[1].StartTime)
		require.Equal(t, models.WStepStatusPending, steps[2].Status)
	})
	t.Run(`в работе всегда один этап`, func(t *testing.T) {
		rec := testInstance()
		steps, _, _ := rec.AdvanceSteps(now)
		inProgress := 0
		for _, step := range steps {
			if step.Status == models.WStepStatusInProgress {
				inProgress++
			}
		}
		require.Equal(t, 1, inProgress)
	})
	t.Run(`исходная запись не меняется`, func(t *testing.T) {
		rec := testInstance()
		_, _, _ = rec.AdvanceSteps(now)
		require.Equal(t, models.WStepStatusInProgress, rec.Steps[0].Status)
		require.Nil(t, rec.Steps[0].EndTime)
		require.Equal(t, models.WStepStatusPending, rec.Steps[1].Status)
	})
	t.Run(`завершение последнего этапа`, func(t *testing.T) {
		rec := testInstance()
		rec.Steps[0].Status = models.WStepStatusCompleted
		rec.Steps[1].Status = models.WStepStatusCompleted
		rec.Steps[2].Status = models.WStepStatusInProgress
		rec.CurrentStepIndex = 2
		steps, newIndex, isLast := rec.AdvanceSteps(now)
		require.True(t, isLast)
		require.Equal(t, 2, newIndex)
		for _, step := range steps {
			require.Equal(t, models.WStepStatusCompleted, step.Status)
		}
	})
	t.Run(`проход по всей цепочке без пропусков`, func(t *testing.T) {
		rec := testInstance()
		visited := []int{rec.CurrentStepIndex}
		for {
			isLast, _ := rec.GetCurrentStep()
			steps, newIndex, _ := rec.AdvanceSteps(now)
			rec.Steps = steps
			rec.CurrentStepIndex = newIndex
			if isLast {
				break
			}
			visited = append(visited, newIndex)
		}
		require.Equal(t, []int{0, 1, 2}, visited)
	})
}
