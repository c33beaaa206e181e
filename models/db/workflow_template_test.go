package dbmodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validTemplate() WorkflowTemplate {
	return WorkflowTemplate{
		BaseSpaceModel: BaseSpaceModel{
			SpaceID: "space1",
		},
		Name:         "Согласование отпуска",
		WorkflowType: "vacation",
		Steps: WorkflowStepSpecs{
			{StepID: "step1", Name: "Руководитель"},
			{StepID: "step2", Name: "HR", AssigneeID: "user2"},
		},
	}
}

func TestTemplateValidate(t *testing.T) {
	t.Run(`корректный шаблон`, func(t *testing.T) {
		rec := validTemplate()
		require.NoError(t, rec.Validate())
	})
	t.Run(`не указан спейс`, func(t *testing.T) {
		rec := validTemplate()
		rec.SpaceID = ""
		require.Error(t, rec.Validate())
	})
	t.Run(`не указано название`, func(t *testing.T) {
		rec := validTemplate()
		rec.Name = ""
		require.Error(t, rec.Validate())
	})
	t.Run(`не указан тип процесса`, func(t *testing.T) {
		rec := validTemplate()
		rec.WorkflowType = ""
		require.Error(t, rec.Validate())
	})
	t.Run(`шаблон без этапов`, func(t *testing.T) {
		rec := validTemplate()
		rec.Steps = nil
		require.Error(t, rec.Validate())
	})
	t.Run(`этап без идентификатора`, func(t *testing.T) {
		rec := validTemplate()
		rec.Steps[1].StepID = ""
		require.Error(t, rec.Validate())
	})
	t.Run(`этап без названия`, func(t *testing.T) {
		rec := validTemplate()
		rec.Steps[1].Name = ""
		require.Error(t, rec.Validate())
	})
	t.Run(`повтор идентификатора этапа`, func(t *testing.T) {
		rec := validTemplate()
		rec.Steps[1].StepID = rec.Steps[0].StepID
		require.Error(t, rec.Validate())
	})
}
