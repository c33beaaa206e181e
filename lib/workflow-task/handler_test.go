package workflowtaskhandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hr-workflow-backend/models"
	workflowapimodels "hr-workflow-backend/models/api/workflow"
	dbmodels "hr-workflow-backend/models/db"
)

type fakeInstanceStore struct {
	list []dbmodels.WorkflowInstance
	err  error
}

func (f fakeInstanceStore) Create(rec dbmodels.WorkflowInstance) (string, error) {
	return "", nil
}

func (f fakeInstanceStore) GetByID(spaceID, id string) (*dbmodels.WorkflowInstance, error) {
	return nil, nil
}

func (f fakeInstanceStore) List(spaceID string, filter workflowapimodels.InstanceFilter) ([]dbmodels.WorkflowInstance, error) {
	return nil, nil
}

func (f fakeInstanceStore) ListCount(spaceID string, filter workflowapimodels.InstanceFilter) (int64, error) {
	return 0, nil
}

func (f fakeInstanceStore) ListActive(spaceID string) ([]dbmodels.WorkflowInstance, error) {
	return f.list, f.err
}

func (f fakeInstanceStore) ListAll(spaceID string) ([]dbmodels.WorkflowInstance, error) {
	return f.list, f.err
}

func (f fakeInstanceStore) Update(spaceID, id string, updMap map[string]interface{}) error {
	return nil
}

func (f fakeInstanceStore) UpdateOnStep(spaceID, id string, expectedStepIndex int, updMap map[string]interface{}) error {
	return nil
}

func (f fakeInstanceStore) Delete(spaceID, id string) error {
	return nil
}

func activeInstance(id, assigneeID string, dueDuration int64, startTime *time.Time) dbmodels.WorkflowInstance {
	return dbmodels.WorkflowInstance{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   "space1",
		},
		Name:          "Согласование отпуска",
		WorkflowType:  "vacation",
		InitiatorID:   "initiator1",
		InitiatorName: "Иванов Иван",
		Steps: dbmodels.WorkflowSteps{
			{
				WorkflowStepSpec: dbmodels.WorkflowStepSpec{
					StepID:      "step1",
					Name:        "Руководитель",
					AssigneeID:  assigneeID,
					DueDuration: dueDuration,
				},
				Status:    models.WStepStatusInProgress,
				StartTime: startTime,
			},
			{
				WorkflowStepSpec: dbmodels.WorkflowStepSpec{StepID: "step2", Name: "HR"},
				Status:           models.WStepStatusPending,
			},
		},
		CurrentStepIndex: 0,
		Status:           models.WorkflowStatusActive,
	}
}

func TestGetPendingTasks(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	t.Run(`задача по текущему этапу активного процесса`, func(t *testing.T) {
		handler := impl{store: fakeInstanceStore{
			list: []dbmodels.WorkflowInstance{activeInstance("rec1", "user1", 0, &start)},
		}}
		list, err := handler.GetPendingTasks("space1", "")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "rec1", list[0].InstanceID)
		require.Equal(t, "step1", list[0].StepID)
		require.Equal(t, "Руководитель", list[0].StepName)
		require.Equal(t, "user1", list[0].AssigneeID)
		require.Nil(t, list[0].DueDate)
	})
	t.Run(`фильтр по исполнителю`, func(t *testing.T) {
		handler := impl{store: fakeInstanceStore{
			list: []dbmodels.WorkflowInstance{
				activeInstance("rec1", "user1", 0, &start),
				activeInstance("rec2", "user2", 0, &start),
			},
		}}
		list, err := handler.GetPendingTasks("space1", "user2")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "rec2", list[0].InstanceID)
	})
	t.Run(`этап не в работе - без задачи`, func(t *testing.T) {
		rec := activeInstance("rec1", "user1", 0, &start)
		rec.Steps[0].Status = models.WStepStatusPending
		handler := impl{store: fakeInstanceStore{list: []dbmodels.WorkflowInstance{rec}}}
		list, err := handler.GetPendingTasks("space1", "")
		require.NoError(t, err)
		require.Len(t, list, 0)
	})
	t.Run(`срок этапа от времени взятия в работу`, func(t *testing.T) {
		handler := impl{store: fakeInstanceStore{
			list: []dbmodels.WorkflowInstance{activeInstance("rec1", "user1", 3600, &start)},
		}}
		list, err := handler.GetPendingTasks("space1", "")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.NotNil(t, list[0].DueDate)
		require.Equal(t, start.Add(time.Hour), *list[0].DueDate)
	})
	t.Run(`срок не считается без времени старта`, func(t *testing.T) {
		handler := impl{store: fakeInstanceStore{
			list: []dbmodels.WorkflowInstance{activeInstance("rec1", "user1", 3600, nil)},
		}}
		list, err := handler.GetPendingTasks("space1", "")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Nil(t, list[0].DueDate)
	})
}
