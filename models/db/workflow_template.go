package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// Шаблон процесса согласования - упорядоченная цепочка этапов
type WorkflowTemplate struct {
	BaseSpaceModel
	Name         string            `gorm:"type:varchar(255)"`
	WorkflowType string            `gorm:"type:varchar(100);index"`
	Steps        WorkflowStepSpecs `gorm:"type:jsonb"`
	IsActive     bool
	IsPublic     bool
}

// Спецификация этапа в шаблоне
type WorkflowStepSpec struct {
	StepID       string `json:"step_id"`
	Name         string `json:"name"`
	AssigneeID   string `json:"assignee_id,omitempty"`   // Конкретный исполнитель этапа
	AssigneeRole string `json:"assignee_role,omitempty"` // Либо ссылка на роль
	DueDuration  int64  `json:"due_duration,omitempty"`  // Срок на этап в секундах
}

type WorkflowStepSpecs []WorkflowStepSpec

func (j WorkflowStepSpecs) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *WorkflowStepSpecs) Scan(value any) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

func (t *WorkflowTemplate) Validate() error {
	if err := t.BaseSpaceModel.Validate(); err != nil {
		return err
	}
	if t.Name == "" {
		return errors.New("не указано название шаблона")
	}
	if t.WorkflowType == "" {
		return errors.New("не указан тип процесса")
	}
	if len(t.Steps) == 0 {
		return errors.New("шаблон не содержит этапов")
	}
	stepIds := map[string]bool{}
	for _, step := range t.Steps {
		if step.StepID == "" {
			return errors.New("не указан идентификатор этапа")
		}
		if step.Name == "" {
			return errors.Errorf("не указано название этапа %v", step.StepID)
		}
		if stepIds[step.StepID] {
			return errors.Errorf("этап %v указан повторно", step.StepID)
		}
		stepIds[step.StepID] = true
	}
	return nil
}
