package dbmodels

import (
	"hr-workflow-backend/models"
)

// Запись истории процесса. Только добавление, записи не изменяются -
// история является единственным источником "что и когда произошло"
type WorkflowHistory struct {
	BaseSpaceModel
	InstanceID   string                `gorm:"type:varchar(36);index"`
	StepID       string                `gorm:"type:varchar(100)"`
	WorkflowType string                `gorm:"type:varchar(100);index"`
	Action       models.WorkflowAction `gorm:"type:varchar(30);index"`
	ActorID      string                `gorm:"type:varchar(36);index"`
	Description  string
}
