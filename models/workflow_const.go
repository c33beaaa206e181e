package models

// Статусы экземпляра процесса
type WorkflowStatus string

const (
	WorkflowStatusDraft     WorkflowStatus = "draft"     // Черновик
	WorkflowStatusActive    WorkflowStatus = "active"    // В работе
	WorkflowStatusCompleted WorkflowStatus = "completed" // Завершен
	WorkflowStatusCancelled WorkflowStatus = "cancelled" // Отменен
)

var workflowStatusMap = map[WorkflowStatus]bool{
	WorkflowStatusDraft:     true,
	WorkflowStatusActive:    true,
	WorkflowStatusCompleted: true,
	WorkflowStatusCancelled: true,
}

func (s WorkflowStatus) IsValid() bool {
	return workflowStatusMap[s]
}

// IsTerminal - конечный статус, переходы по этапам больше невозможны
func (s WorkflowStatus) IsTerminal() bool {
	return s == WorkflowStatusCompleted || s == WorkflowStatusCancelled
}

// Статусы этапа процесса
type WorkflowStepStatus string

const (
	WStepStatusPending    WorkflowStepStatus = "pending"     // Ожидает
	WStepStatusInProgress WorkflowStepStatus = "in_progress" // Текущий этап
	WStepStatusCompleted  WorkflowStepStatus = "completed"   // Завершен
)

// Действия в истории процесса
type WorkflowAction string

const (
	WFActionCreated       WorkflowAction = "created"        // Процесс создан
	WFActionAdvanced      WorkflowAction = "advanced"       // Переход на следующий этап
	WFActionCompleted     WorkflowAction = "completed"      // Процесс завершен
	WFActionCancelled     WorkflowAction = "cancelled"      // Процесс отменен
	WFActionStatusChanged WorkflowAction = "status_changed" // Статус изменен напрямую
	WFActionUpdated       WorkflowAction = "updated"        // Данные процесса изменены
)
