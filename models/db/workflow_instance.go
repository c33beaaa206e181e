package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"hr-workflow-backend/models"
)

// Экземпляр процесса - запущенная по шаблону цепочка этапов.
// Этапы и название копируются из шаблона при создании,
// последующие изменения шаблона на экземпляр не влияют.
type WorkflowInstance struct {
	BaseSpaceModel
	TemplateID       string                `gorm:"type:varchar(36);index"`
	WorkflowType     string                `gorm:"type:varchar(100);index"`
	Name             string                `gorm:"type:varchar(255)"`
	InitiatorID      string                `gorm:"type:varchar(36);index"`
	InitiatorName    string                `gorm:"type:varchar(255)"`
	RelatedEntityID  string                `gorm:"type:varchar(36);index"` // Связанная бизнес-сущность (заявка, отпуск и тп)
	Steps            WorkflowSteps         `gorm:"type:jsonb"`
	CurrentStepIndex int
	Status           models.WorkflowStatus `gorm:"type:varchar(20);index"`
	StartDate        *time.Time
	EndDate          *time.Time
}

// Этап экземпляра: спецификация из шаблона плюс ход выполнения
type WorkflowStep struct {
	WorkflowStepSpec
	Status    models.WorkflowStepStatus `json:"status"`
	StartTime *time.Time                `json:"start_time,omitempty"`
	EndTime   *time.Time                `json:"end_time,omitempty"`
}

type WorkflowSteps []WorkflowStep

func (j WorkflowSteps) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *WorkflowSteps) Scan(value any) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// GetCurrentStep возвращает признак последнего этапа и текущий этап
func (r WorkflowInstance) GetCurrentStep() (isLast bool, step *WorkflowStep) {
	if r.CurrentStepIndex < 0 || r.CurrentStepIndex >= len(r.Steps) {
		return true, nil
	}
	return r.CurrentStepIndex == len(r.Steps)-1, &r.Steps[r.CurrentStepIndex]
}

// AdvanceSteps строит состояние этапов после перехода: текущий этап завершается,
// следующий берется в работу. Возвращается новая копия этапов,
// загруженная запись не правится
func (r WorkflowInstance) AdvanceSteps(now time.Time) (steps WorkflowSteps, newIndex int, isLast bool) {
	steps = make(WorkflowSteps, len(r.Steps))
	copy(steps, r.Steps)
	isLast = r.CurrentStepIndex == len(r.Steps)-1
	steps[r.CurrentStepIndex].Status = models.WStepStatusCompleted
	steps[r.CurrentStepIndex].EndTime = &now
	newIndex = r.CurrentStepIndex
	if !isLast {
		newIndex++
		steps[newIndex].Status = models.WStepStatusInProgress
		steps[newIndex].StartTime = &now
	}
	return steps, newIndex, isLast
}
