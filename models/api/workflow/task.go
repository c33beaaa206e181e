package workflowapimodels

import (
	"time"
)

// Ожидающая задача - текущий этап активного процесса и его исполнитель
type PendingTaskView struct {
	InstanceID    string     `json:"instance_id"`
	InstanceName  string     `json:"instance_name"`
	WorkflowType  string     `json:"workflow_type"`
	StepID        string     `json:"step_id"`
	StepName      string     `json:"step_name"`
	StepIndex     int        `json:"step_index"`
	AssigneeID    string     `json:"assignee_id,omitempty"`
	AssigneeRole  string     `json:"assignee_role,omitempty"`
	InitiatorID   string     `json:"initiator_id"`
	InitiatorName string     `json:"initiator_name"`
	CreatedAt     time.Time  `json:"created_at"`
	DueDate       *time.Time `json:"due_date,omitempty"` // срок этапа от момента его старта
}
