package workflownotify

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"hr-workflow-backend/lib/smtp"
	dbmodels "hr-workflow-backend/models/db"
)

// RecipientResolver возвращает почту исполнителя этапа, пустая строка - без уведомления
type RecipientResolver func(spaceID, assigneeID string) string

type Provider interface {
	StepActivated(rec dbmodels.WorkflowInstance, step dbmodels.WorkflowStep)
}

func NewHandler(emailProvider smtp.Provider, resolver RecipientResolver) Provider {
	return impl{
		emailProvider: emailProvider,
		resolver:      resolver,
	}
}

type impl struct {
	emailProvider smtp.Provider
	resolver      RecipientResolver
}

// StepActivated уведомляет исполнителя о новом этапе.
// Ошибки отправки только логируются, переход этапа они не отменяют
func (i impl) StepActivated(rec dbmodels.WorkflowInstance, step dbmodels.WorkflowStep) {
	logger := log.
		WithField("space_id", rec.SpaceID).
		WithField("instance_id", rec.ID).
		WithField("step_id", step.StepID)
	if i.emailProvider == nil || i.resolver == nil {
		return
	}
	if step.AssigneeID == "" {
		return
	}
	to := i.resolver(rec.SpaceID, step.AssigneeID)
	if to == "" {
		logger.Debug("почта исполнителя этапа не определена, уведомление не отправлено")
		return
	}
	subject := "Требуется действие по процессу"
	message := fmt.Sprintf("Процесс: %v\r\nЭтап: %v\r\nИнициатор: %v", rec.Name, step.Name, rec.InitiatorName)
	err := i.emailProvider.SendEMail(rec.InitiatorName, to, message, subject)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления исполнителю этапа")
	}
}
