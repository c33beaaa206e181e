package workflowstatshandler

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

func statInstance(workflowType string, status models.WorkflowStatus, startDate, endDate *time.Time) dbmodels.WorkflowInstance {
	return dbmodels.WorkflowInstance{
		WorkflowType: workflowType,
		Status:       status,
		StartDate:    startDate,
		EndDate:      endDate,
	}
}

func TestGetInstanceStats(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	endFast := start.Add(time.Hour)
	endSlow := start.Add(3 * time.Hour)
	t.Run(`счетчики по статусам и типам`, func(t *testing.T) {
		handler := impl{instanceStore: fakeInstanceStore{list: []dbmodels.WorkflowInstance{
			statInstance("vacation", models.WorkflowStatusActive, &start, nil),
			statInstance("vacation", models.WorkflowStatusCompleted, &start, &endFast),
			statInstance("dismissal", models.WorkflowStatusCancelled, &start, &endFast),
		}}}
		result, err := handler.GetInstanceStats("space1")
		require.NoError(t, err)
		require.Equal(t, int64(3), result.Total)
		require.Equal(t, int64(1), result.ByStatus[models.WorkflowStatusActive])
		require.Equal(t, int64(1), result.ByStatus[models.WorkflowStatusCompleted])
		require.Equal(t, int64(1), result.ByStatus[models.WorkflowStatusCancelled])
		require.Equal(t, int64(2), result.ByType["vacation"])
		require.Equal(t, int64(1), result.ByType["dismissal"])
	})
	t.Run(`среднее время только по завершенным`, func(t *testing.T) {
		handler := impl{instanceStore: fakeInstanceStore{list: []dbmodels.WorkflowInstance{
			statInstance("vacation", models.WorkflowStatusCompleted, &start, &endFast),
			statInstance("vacation", models.WorkflowStatusCompleted, &start, &endSlow),
			statInstance("vacation", models.WorkflowStatusCancelled, &start, &endSlow),
		}}}
		result, err := handler.GetInstanceStats("space1")
		require.NoError(t, err)
		require.Equal(t, (2 * time.Hour).Seconds(), result.AvgCompletionSeconds)
	})
	t.Run(`без завершенных процессов среднее нулевое`, func(t *testing.T) {
		handler := impl{instanceStore: fakeInstanceStore{list: []dbmodels.WorkflowInstance{
			statInstance("vacation", models.WorkflowStatusActive, &start, nil),
		}}}
		result, err := handler.GetInstanceStats("space1")
		require.NoError(t, err)
		require.Equal(t, float64(0), result.AvgCompletionSeconds)
	})
	t.Run(`пустой спейс`, func(t *testing.T) {
		handler := impl{instanceStore: fakeInstanceStore{}}
		result, err := handler.GetInstanceStats("space1")
		require.NoError(t, err)
		require.Equal(t, int64(0), result.Total)
		require.Empty(t, result.ByStatus)
		require.Empty(t, result.ByType)
	})
}
