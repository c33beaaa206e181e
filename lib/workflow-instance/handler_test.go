package workflowinstancehandler

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"hr-workflow-backend/models"
	workflowapimodels "hr-workflow-backend/models/api/workflow"
	dbmodels "hr-workflow-backend/models/db"
)

type fakeInstanceStore struct {
	rec *dbmodels.WorkflowInstance
	err error
}

func (f fakeInstanceStore) Create(rec dbmodels.WorkflowInstance) (string, error) {
	return "", nil
}

func (f fakeInstanceStore) GetByID(spaceID, id string) (*dbmodels.WorkflowInstance, error) {
	return f.rec, f.err
}

func (f fakeInstanceStore) List(spaceID string, filter workflowapimodels.InstanceFilter) ([]dbmodels.WorkflowInstance, error) {
	return nil, nil
}

func (f fakeInstanceStore) ListCount(spaceID string, filter workflowapimodels.InstanceFilter) (int64, error) {
	return 0, nil
}

func (f fakeInstanceStore) ListActive(spaceID string) ([]dbmodels.WorkflowInstance, error) {
	return nil, nil
}

func (f fakeInstanceStore) ListAll(spaceID string) ([]dbmodels.WorkflowInstance, error) {
	return nil, nil
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

type fakeTemplateStore struct {
	rec *dbmodels.WorkflowTemplate
	err error
}

func (f fakeTemplateStore) Create(rec dbmodels.WorkflowTemplate) (string, error) {
	return "", nil
}

func (f fakeTemplateStore) GetByID(spaceID, id string) (*dbmodels.WorkflowTemplate, error) {
	return f.rec, f.err
}

func (f fakeTemplateStore) GetActiveByType(spaceID, workflowType string) (*dbmodels.WorkflowTemplate, error) {
	return f.rec, f.err
}

func (f fakeTemplateStore) List(spaceID string, filter workflowapimodels.TemplateFilter) ([]dbmodels.WorkflowTemplate, error) {
	return nil, nil
}

func (f fakeTemplateStore) ListCount(spaceID string, filter workflowapimodels.TemplateFilter) (int64, error) {
	return 0, nil
}

func (f fakeTemplateStore) ListPublic(workflowType string) ([]dbmodels.WorkflowTemplate, error) {
	return nil, nil
}

func (f fakeTemplateStore) Update(spaceID, id string, updMap map[string]interface{}) error {
	return nil
}

func (f fakeTemplateStore) Delete(spaceID, id string) error {
	return nil
}

func engineInstance(status models.WorkflowStatus, assigneeID string) *dbmodels.WorkflowInstance {
	return &dbmodels.WorkflowInstance{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: "rec1"},
			SpaceID:   "space1",
		},
		Name: "Согласование отпуска",
		Steps: dbmodels.WorkflowSteps{
			{
				WorkflowStepSpec: dbmodels.WorkflowStepSpec{StepID: "step1", Name: "Руководитель", AssigneeID: assigneeID},
				Status:           models.WStepStatusInProgress,
			},
			{
				WorkflowStepSpec: dbmodels.WorkflowStepSpec{StepID: "step2", Name: "HR"},
				Status:           models.WStepStatusPending,
			},
		},
		CurrentStepIndex: 0,
		Status:           status,
	}
}

func TestAdvanceStepGuards(t *testing.T) {
	ctx := context.Background()
	t.Run(`процесс не найден`, func(t *testing.T) {
		handler := impl{store: fakeInstanceStore{}}
		_, err := handler.AdvanceStep(ctx, "space1", "rec1", "user1")
		require.True(t, errors.Is(err, models.ErrNotFound))
	})
	t.Run(`переход по завершенному процессу`, func(t *testing.T) {
		handler := impl{store: fakeInstanceStore{rec: engineInstance(models.WorkflowStatusCompleted, "")}}
		_, err := handler.AdvanceStep(ctx, "space1", "rec1", "user1")
		require.True(t, errors.Is(err, models.ErrInvalidState))
	})
	t.Run(`переход по отмененному процессу`, func(t *testing.T) {
		handler := impl{store: fakeInstanceStore{rec: engineInstance(models.WorkflowStatusCancelled, "")}}
		_, err := handler.AdvanceStep(ctx, "space1", "rec1", "user1")
		require.True(t, errors.Is(err, models.ErrInvalidState))
	})
	t.Run(`переход по черновику`, func(t *testing.T) {
		handler := impl{store: fakeInstanceStore{rec: engineInstance(models.WorkflowStatusDraft, "")}}
		_, err := handler.AdvanceStep(ctx, "space1", "rec1", "user1")
		require.True(t, errors.Is(err, models.ErrInvalidState))
	})
	t.Run(`за этап отвечает другой сотрудник`, func(t *testing.T) {
		handler := impl{store: fakeInstanceStore{rec: engineInstance(models.WorkflowStatusActive, "user2")}}
		_, err := handler.AdvanceStep(ctx, "space1", "rec1", "user1")
		require.True(t, errors.Is(err, models.ErrInvalidState))
	})
	t.Run(`некорректный указатель этапа`, func(t *testing.T) {
		rec := engineInstance(models.WorkflowStatusActive, "")
		rec.CurrentStepIndex = 5
		handler := impl{store: fakeInstanceStore{rec: rec}}
		_, err := handler.AdvanceStep(ctx, "space1", "rec1", "user1")
		require.True(t, errors.Is(err, models.ErrInvalidState))
	})
}

func TestCreateGuards(t *testing.T) {
	t.Run(`шаблон не найден`, func(t *testing.T) {
		handler := impl{templateStore: fakeTemplateStore{}}
		_, err := handler.Create("space1", "user1", "Иванов Иван", workflowapimodels.InstanceCreateData{TemplateID: "tpl1"})
		require.True(t, errors.Is(err, models.ErrNotFound))
	})
	t.Run(`шаблон без этапов`, func(t *testing.T) {
		template := &dbmodels.WorkflowTemplate{
			BaseSpaceModel: dbmodels.BaseSpaceModel{
				BaseModel: dbmodels.BaseModel{ID: "tpl1"},
				SpaceID:   "space1",
			},
			Name:         "Пустой шаблон",
			WorkflowType: "vacation",
		}
		handler := impl{templateStore: fakeTemplateStore{rec: template}}
		_, err := handler.Create("space1", "user1", "Иванов Иван", workflowapimodels.InstanceCreateData{TemplateID: "tpl1"})
		require.True(t, errors.Is(err, models.ErrValidation))
	})
}
