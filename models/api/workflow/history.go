package workflowapimodels

import (
	"time"

	"github.com/pkg/errors"

	"hr-workflow-backend/models"
	apimodels "hr-workflow-backend/models/api"
	dbmodels "hr-workflow-backend/models/db"
)

type HistoryView struct {
	ID           string                `json:"id"`
	InstanceID   string                `json:"instance_id"`
	StepID       string                `json:"step_id,omitempty"`
	WorkflowType string                `json:"workflow_type"`
	Action       models.WorkflowAction `json:"action"`
	ActorID      string                `json:"actor_id"`
	Description  string                `json:"description"`
	CreatedAt    time.Time             `json:"created_at"`
}

type HistoryActorFilter struct {
	apimodels.Pagination
	ActorID string `json:"actor_id"` // автор действий
}

func (v HistoryActorFilter) Validate() error {
	if v.ActorID == "" {
		return errors.New("отсутсвует идентификатор пользователя")
	}
	return v.Pagination.Validate()
}

type HistorySearchFilter struct {
	Search string `json:"search"` // поиск по описанию действия
}

func (v HistorySearchFilter) Validate() error {
	if v.Search == "" {
		return errors.New("отсутсвует поисковая строка")
	}
	return nil
}

type HistoryStatsView struct {
	ByAction map[models.WorkflowAction]int64 `json:"by_action"` // количество записей по действиям
	ByType   map[string]int64                `json:"by_type"`   // количество записей по типам процессов
	Recent   []HistoryView                   `json:"recent"`    // последние записи
}

func WorkflowHistoryConvert(rec dbmodels.WorkflowHistory) HistoryView {
	return HistoryView{
		ID:           rec.ID,
		InstanceID:   rec.InstanceID,
		StepID:       rec.StepID,
		WorkflowType: rec.WorkflowType,
		Action:       rec.Action,
		ActorID:      rec.ActorID,
		Description:  rec.Description,
		CreatedAt:    rec.CreatedAt,
	}
}
