package workflowinstancehandler

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hr-workflow-backend/lib/utils/lock"
	workflowhistorystore "hr-workflow-backend/lib/workflow-history/store"
	workflowinstancestore "hr-workflow-backend/lib/workflow-instance/store"
	workflownotify "hr-workflow-backend/lib/workflow-notify"
	workflowtemplatestore "hr-workflow-backend/lib/workflow-template/store"
	"hr-workflow-backend/models"
	workflowapimodels "hr-workflow-backend/models/api/workflow"
	dbmodels "hr-workflow-backend/models/db"
)

// Максимальное ожидание блокировки процесса при конкурентных переходах
const advanceLockWait = 5 * time.Second

type Provider interface {
	Create(spaceID, userID, userName string, data workflowapimodels.InstanceCreateData) (workflowapimodels.InstanceView, error)
	GetByID(spaceID, id string) (workflowapimodels.InstanceView, error)
	List(spaceID string, filter workflowapimodels.InstanceFilter) (list []workflowapimodels.InstanceView, rowCount int64, err error)
	Update(spaceID, id, userID string, data workflowapimodels.InstanceUpdateData) error
	SetStatus(spaceID, id, userID string, data workflowapimodels.InstanceStatusData) (workflowapimodels.InstanceView, error)
	AdvanceStep(ctx context.Context, spaceID, id, userID string) (workflowapimodels.InstanceView, error)
	Delete(spaceID, id string) error
}

func NewHandler(DB *gorm.DB, notifier workflownotify.Provider) Provider {
	return impl{
		db:            DB,
		store:         workflowinstancestore.NewInstance(DB),
		templateStore: workflowtemplatestore.NewInstance(DB),
		notifier:      notifier,
	}
}

type impl struct {
	db            *gorm.DB
	store         workflowinstancestore.Provider
	templateStore workflowtemplatestore.Provider
	notifier      workflownotify.Provider
}

func (i impl) getLogger(spaceID, recID, userID string) *log.Entry {
	logger := log.
		WithField("space_id", spaceID).
		WithField("rec_id", recID).
		WithField("user_id", userID)
	return logger
}

// Create запускает процесс по шаблону. Этапы копируются в экземпляр,
// дальнейшие правки шаблона на запущенный процесс не влияют
func (i impl) Create(spaceID, userID, userName string, data workflowapimodels.InstanceCreateData) (workflowapimodels.InstanceView, error) {
	logger := i.getLogger(spaceID, "", userID)
	template, err := i.templateStore.GetByID(spaceID, data.TemplateID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения шаблона процесса")
		return workflowapimodels.InstanceView{}, err
	}
	if template == nil {
		return workflowapimodels.InstanceView{}, errors.Wrap(models.ErrNotFound, "шаблон не найден")
	}
	if len(template.Steps) == 0 {
		return workflowapimodels.InstanceView{}, errors.Wrap(models.ErrValidation, "шаблон не содержит этапов")
	}
	now := time.Now()
	steps := make(dbmodels.WorkflowSteps, 0, len(template.Steps))
	for _, spec := range template.Steps {
		steps = append(steps, dbmodels.WorkflowStep{
			WorkflowStepSpec: spec,
			Status:           models.WStepStatusPending,
		})
	}
	rec := dbmodels.WorkflowInstance{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		TemplateID:      template.ID,
		WorkflowType:    template.WorkflowType,
		Name:            template.Name,
		InitiatorID:     userID,
		InitiatorName:   userName,
		RelatedEntityID: data.RelatedEntityID,
		Steps:           steps,
		Status:          models.WorkflowStatusDraft,
	}
	startActive := true
	if data.StartActive != nil {
		startActive = *data.StartActive
	}
	if startActive {
		rec.Status = models.WorkflowStatusActive
		rec.StartDate = &now
		rec.Steps[0].Status = models.WStepStatusInProgress
		rec.Steps[0].StartTime = &now
	}
	var id string
	err = i.db.Transaction(func(tx *gorm.DB) error {
		store := workflowinstancestore.NewInstance(tx)
		id, err = store.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания процесса")
		}
		rec.ID = id
		description := fmt.Sprintf("процесс %v создан по шаблону %v", rec.Name, template.Name)
		return i.addHistory(tx, rec, "", models.WFActionCreated, userID, description)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания процесса")
		return workflowapimodels.InstanceView{}, err
	}
	i.getLogger(spaceID, id, userID).Info("создан процесс")
	if startActive {
		i.notifier.StepActivated(rec, rec.Steps[0])
	}
	return i.GetByID(spaceID, id)
}

func (i impl) GetByID(spaceID, id string) (workflowapimodels.InstanceView, error) {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return workflowapimodels.InstanceView{}, err
	}
	return workflowapimodels.WorkflowInstanceConvert(*rec), nil
}

func (i impl) List(spaceID string, filter workflowapimodels.InstanceFilter) ([]workflowapimodels.InstanceView, int64, error) {
	rowCount, err := i.store.ListCount(spaceID, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(spaceID, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]workflowapimodels.InstanceView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, workflowapimodels.WorkflowInstanceConvert(rec))
	}
	return result, rowCount, nil
}

// Update - частичное изменение отображаемых полей процесса
func (i impl) Update(spaceID, id, userID string, data workflowapimodels.InstanceUpdateData) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{}
	if data.Name != "" {
		updMap["name"] = data.Name
	}
	if data.RelatedEntityID != "" {
		updMap["related_entity_id"] = data.RelatedEntityID
	}
	if len(updMap) == 0 {
		return nil
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		store := workflowinstancestore.NewInstance(tx)
		if err := store.Update(spaceID, id, updMap); err != nil {
			return errors.Wrap(err, "ошибка обновления процесса")
		}
		return i.addHistory(tx, *rec, "", models.WFActionUpdated, userID, "изменены данные процесса")
	})
	if err != nil {
		i.getLogger(spaceID, id, userID).WithError(err).Error("ошибка обновления процесса")
		return err
	}
	i.getLogger(spaceID, id, userID).Info("обновлен процесс")
	return nil
}

// SetStatus - прямой административный перевод статуса без прохода по этапам.
// Повторный перевод в текущий статус - no-op. Состояние этапов не проверяется
// и не правится: при отмене на середине цепочки оставшиеся этапы теряют смысл
// и остаются как есть
func (i impl) SetStatus(spaceID, id, userID string, data workflowapimodels.InstanceStatusData) (workflowapimodels.InstanceView, error) {
	logger := i.getLogger(spaceID, id, userID)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return workflowapimodels.InstanceView{}, err
	}
	if rec.Status == data.Status {
		return workflowapimodels.WorkflowInstanceConvert(*rec), nil
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"status": data.Status,
	}
	switch {
	case data.Status == models.WorkflowStatusActive:
		start := now
		if data.StartDate != nil {
			start = *data.StartDate
		}
		updMap["start_date"] = &start
	case data.Status.IsTerminal():
		end := now
		if data.EndDate != nil {
			end = *data.EndDate
		}
		updMap["end_date"] = &end
	}
	action := models.WFActionStatusChanged
	switch data.Status {
	case models.WorkflowStatusCancelled:
		action = models.WFActionCancelled
	case models.WorkflowStatusCompleted:
		action = models.WFActionCompleted
	}
	stepID := ""
	if _, current := rec.GetCurrentStep(); current != nil {
		stepID = current.StepID
	}
	description := fmt.Sprintf("статус процесса изменен: %v -> %v", rec.Status, data.Status)
	err = i.db.Transaction(func(tx *gorm.DB) error {
		store := workflowinstancestore.NewInstance(tx)
		if err := store.Update(spaceID, id, updMap); err != nil {
			return errors.Wrap(err, "ошибка изменения статуса процесса")
		}
		return i.addHistory(tx, *rec, stepID, action, userID, description)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка изменения статуса процесса")
		return workflowapimodels.InstanceView{}, err
	}
	logger.WithField("status", data.Status).Info("изменен статус процесса")
	return i.GetByID(spaceID, id)
}

// AdvanceStep завершает текущий этап и передает процесс следующему,
// на последнем этапе - завершает процесс. Переходы по одному процессу
// сериализуются блокировкой, запись в БД дополнительно защищена условием
// на неизменность указателя этапа
func (i impl) AdvanceStep(ctx context.Context, spaceID, id, userID string) (workflowapimodels.InstanceView, error) {
	logger := i.getLogger(spaceID, id, userID)
	var updated dbmodels.WorkflowInstance
	var nextStep *dbmodels.WorkflowStep
	success, err := lock.WithDelay(ctx, advanceLockKey(id), advanceLockWait, func() error {
		rec, err := i.getRec(spaceID, id)
		if err != nil {
			return err
		}
		if rec.Status != models.WorkflowStatusActive {
			return errors.Wrapf(models.ErrInvalidState, "переход недоступен, статус процесса: %v", rec.Status)
		}
		isLast, current := rec.GetCurrentStep()
		if current == nil {
			return errors.Wrapf(models.ErrInvalidState, "некорректный указатель текущего этапа: %v", rec.CurrentStepIndex)
		}
		if current.AssigneeID != "" && current.AssigneeID != userID {
			return errors.Wrap(models.ErrInvalidState, "за текущий этап отвечает другой сотрудник")
		}
		now := time.Now()
		steps, newIndex, _ := rec.AdvanceSteps(now)

		updMap := map[string]interface{}{
			"steps": steps,
		}
		action := models.WFActionAdvanced
		var description string
		if isLast {
			updMap["status"] = models.WorkflowStatusCompleted
			updMap["end_date"] = &now
			action = models.WFActionCompleted
			description = fmt.Sprintf("завершен последний этап %v, процесс завершен", current.Name)
		} else {
			updMap["current_step_index"] = newIndex
			description = fmt.Sprintf("этап %v завершен, процесс передан на этап %v", current.Name, steps[newIndex].Name)
		}
		stepID := current.StepID
		err = i.db.Transaction(func(tx *gorm.DB) error {
			store := workflowinstancestore.NewInstance(tx)
			if err := store.UpdateOnStep(spaceID, id, rec.CurrentStepIndex, updMap); err != nil {
				return err
			}
			return i.addHistory(tx, *rec, stepID, action, userID, description)
		})
		if err != nil {
			return err
		}
		rec.Steps = steps
		rec.CurrentStepIndex = newIndex
		if !isLast {
			nextStep = &steps[newIndex]
		}
		updated = *rec
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка перехода этапа")
		return workflowapimodels.InstanceView{}, err
	}
	if !success {
		return workflowapimodels.InstanceView{}, errors.Wrap(models.ErrConcurrencyConflict, "процесс занят другим переходом")
	}
	logger.Info("выполнен переход этапа")
	if nextStep != nil {
		i.notifier.StepActivated(updated, *nextStep)
	}
	return i.GetByID(spaceID, id)
}

// Delete удаляет процесс вместе с его историей
func (i impl) Delete(spaceID, id string) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		store := workflowinstancestore.NewInstance(tx)
		historyStore := workflowhistorystore.NewInstance(tx)
		if err := store.Delete(spaceID, rec.ID); err != nil {
			return errors.Wrap(err, "ошибка удаления процесса")
		}
		return errors.Wrap(historyStore.DeleteByInstance(spaceID, rec.ID), "ошибка удаления истории процесса")
	})
	if err != nil {
		return err
	}
	log.
		WithField("space_id", spaceID).
		WithField("rec_id", id).
		Info("удален процесс")
	return nil
}

func (i impl) getRec(spaceID, id string) (*dbmodels.WorkflowInstance, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		i.getLogger(spaceID, id, "").WithError(err).Error("ошибка получения процесса")
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "процесс не найден")
	}
	return rec, nil
}

func (i impl) addHistory(tx *gorm.DB, rec dbmodels.WorkflowInstance, stepID string, action models.WorkflowAction, actorID, description string) error {
	historyStore := workflowhistorystore.NewInstance(tx)
	hRec := dbmodels.WorkflowHistory{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: rec.SpaceID,
		},
		InstanceID:   rec.ID,
		StepID:       stepID,
		WorkflowType: rec.WorkflowType,
		Action:       action,
		ActorID:      actorID,
		Description:  description,
	}
	_, err := historyStore.Create(hRec)
	if err != nil {
		return errors.Wrap(err, "ошибка добавления записи истории процесса")
	}
	return nil
}

func advanceLockKey(id string) string {
	return "wf_advance_" + id
}
