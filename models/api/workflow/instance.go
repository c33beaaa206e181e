package workflowapimodels

import (
	"time"

	"github.com/pkg/errors"

	"hr-workflow-backend/models"
	apimodels "hr-workflow-backend/models/api"
	dbmodels "hr-workflow-backend/models/db"
)

type InstanceCreateData struct {
	TemplateID      string `json:"template_id"`                 // шаблон процесса
	RelatedEntityID string `json:"related_entity_id,omitempty"` // связанная бизнес-сущность
	StartActive     *bool  `json:"start_active,omitempty"`      // запустить сразу, иначе черновик
}

func (v InstanceCreateData) Validate() error {
	if v.TemplateID == "" {
		return errors.New("отсутсвует ссылка на шаблон")
	}
	return nil
}

type InstanceUpdateData struct {
	Name            string `json:"name,omitempty"`              // новое название процесса
	RelatedEntityID string `json:"related_entity_id,omitempty"` // новая связанная сущность
}

func (v InstanceUpdateData) Validate() error {
	if v.Name == "" && v.RelatedEntityID == "" {
		return errors.New("не указаны данные для изменения")
	}
	return nil
}

type InstanceStatusData struct {
	Status    models.WorkflowStatus `json:"status"`
	StartDate *time.Time            `json:"start_date,omitempty"` // вместо текущего времени при переводе в работу
	EndDate   *time.Time            `json:"end_date,omitempty"`   // вместо текущего времени при завершении
}

func (v InstanceStatusData) Validate() error {
	if !v.Status.IsValid() {
		return errors.Errorf("неизвестный статус процесса: %v", v.Status)
	}
	return nil
}

type StepView struct {
	StepSpecData
	Status    models.WorkflowStepStatus `json:"status"`
	StartTime *time.Time                `json:"start_time,omitempty"`
	EndTime   *time.Time                `json:"end_time,omitempty"`
}

type InstanceView struct {
	ID               string                `json:"id"`
	TemplateID       string                `json:"template_id"`
	WorkflowType     string                `json:"workflow_type"`
	Name             string                `json:"name"`
	InitiatorID      string                `json:"initiator_id"`
	InitiatorName    string                `json:"initiator_name"`
	RelatedEntityID  string                `json:"related_entity_id,omitempty"`
	Steps            []StepView            `json:"steps"`
	CurrentStepIndex int                   `json:"current_step_index"`
	Status           models.WorkflowStatus `json:"status"`
	StartDate        *time.Time            `json:"start_date,omitempty"`
	EndDate          *time.Time            `json:"end_date,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

type InstanceFilter struct {
	apimodels.Pagination
	TemplateID      string                `json:"template_id"`       // фильтр по шаблону
	WorkflowType    string                `json:"workflow_type"`     // фильтр по типу процесса
	Status          models.WorkflowStatus `json:"status"`            // фильтр по статусу
	InitiatorID     string                `json:"initiator_id"`      // фильтр по инициатору
	RelatedEntityID string                `json:"related_entity_id"` // фильтр по связанной сущности
}

func (v InstanceFilter) Validate() error {
	if v.Status != "" && !v.Status.IsValid() {
		return errors.Errorf("неизвестный статус процесса: %v", v.Status)
	}
	return v.Pagination.Validate()
}

func WorkflowInstanceConvert(rec dbmodels.WorkflowInstance) InstanceView {
	steps := make([]StepView, 0, len(rec.Steps))
	for _, step := range rec.Steps {
		steps = append(steps, StepView{
			StepSpecData: StepSpecData{
				StepID:       step.StepID,
				Name:         step.Name,
				AssigneeID:   step.AssigneeID,
				AssigneeRole: step.AssigneeRole,
				DueDuration:  step.DueDuration,
			},
			Status:    step.Status,
			StartTime: step.StartTime,
			EndTime:   step.EndTime,
		})
	}
	return InstanceView{
		ID:               rec.ID,
		TemplateID:       rec.TemplateID,
		WorkflowType:     rec.WorkflowType,
		Name:             rec.Name,
		InitiatorID:      rec.InitiatorID,
		InitiatorName:    rec.InitiatorName,
		RelatedEntityID:  rec.RelatedEntityID,
		Steps:            steps,
		CurrentStepIndex: rec.CurrentStepIndex,
		Status:           rec.Status,
		StartDate:        rec.StartDate,
		EndDate:          rec.EndDate,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}
