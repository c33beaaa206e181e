package workflowapimodels

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	apimodels "hr-workflow-backend/models/api"
	dbmodels "hr-workflow-backend/models/db"
)

type WorkflowTemplateData struct {
	Name         string         `json:"name"`          // название шаблона
	WorkflowType string         `json:"workflow_type"` // тип процесса (leave-request, onboarding и тп)
	Steps        []StepSpecData `json:"steps"`         // упорядоченная цепочка этапов
	IsActive     *bool          `json:"is_active"`     // шаблон доступен для запуска процессов
	IsPublic     *bool          `json:"is_public"`     // шаблон виден всем спейсам
}

func (v WorkflowTemplateData) Validate() error {
	if v.Name == "" {
		return errors.New("отсутсвует название шаблона")
	}
	if v.WorkflowType == "" {
		return errors.New("отсутсвует тип процесса")
	}
	if len(v.Steps) == 0 {
		return errors.New("не указаны этапы процесса")
	}
	stepIds := map[string]bool{}
	for _, step := range v.Steps {
		if err := step.Validate(); err != nil {
			return err
		}
		if step.StepID != "" {
			if stepIds[step.StepID] {
				return errors.Errorf("этап %v указан повторно", step.StepID)
			}
			stepIds[step.StepID] = true
		}
	}
	return nil
}

type StepSpecData struct {
	StepID       string `json:"step_id"`                 // идентификатор этапа, уникален в рамках шаблона, генерируется если не указан
	Name         string `json:"name"`                    // название этапа
	AssigneeID   string `json:"assignee_id,omitempty"`   // конкретный исполнитель
	AssigneeRole string `json:"assignee_role,omitempty"` // либо ссылка на роль
	DueDuration  int64  `json:"due_duration,omitempty"`  // срок на этап в секундах
}

func (v StepSpecData) Validate() error {
	if v.Name == "" {
		return errors.New("отсутсвует название этапа")
	}
	if v.DueDuration < 0 {
		return errors.Errorf("некорректный срок этапа %v", v.StepID)
	}
	return nil
}

type WorkflowTemplateView struct {
	WorkflowTemplateData
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TemplateFilter struct {
	apimodels.Pagination
	WorkflowType string `json:"workflow_type"` // фильтр по типу процесса
	IsActive     *bool  `json:"is_active"`     // фильтр по признаку активности
	IsPublic     *bool  `json:"is_public"`     // фильтр по признаку публичности
}

func (v TemplateFilter) Validate() error {
	return v.Pagination.Validate()
}

func WorkflowTemplateConvert(rec dbmodels.WorkflowTemplate) WorkflowTemplateView {
	steps := make([]StepSpecData, 0, len(rec.Steps))
	for _, step := range rec.Steps {
		steps = append(steps, StepSpecData{
			StepID:       step.StepID,
			Name:         step.Name,
			AssigneeID:   step.AssigneeID,
			AssigneeRole: step.AssigneeRole,
			DueDuration:  step.DueDuration,
		})
	}
	isActive := rec.IsActive
	isPublic := rec.IsPublic
	return WorkflowTemplateView{
		WorkflowTemplateData: WorkflowTemplateData{
			Name:         rec.Name,
			WorkflowType: rec.WorkflowType,
			Steps:        steps,
			IsActive:     &isActive,
			IsPublic:     &isPublic,
		},
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func (v WorkflowTemplateData) ToSpecs() dbmodels.WorkflowStepSpecs {
	specs := make(dbmodels.WorkflowStepSpecs, 0, len(v.Steps))
	for _, step := range v.Steps {
		stepID := step.StepID
		if stepID == "" {
			stepID = uuid.NewString()
		}
		specs = append(specs, dbmodels.WorkflowStepSpec{
			StepID:       stepID,
			Name:         step.Name,
			AssigneeID:   step.AssigneeID,
			AssigneeRole: step.AssigneeRole,
			DueDuration:  step.DueDuration,
		})
	}
	return specs
}
