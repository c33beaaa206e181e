package workflowtemplatehandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	workflowtemplatestore "hr-workflow-backend/lib/workflow-template/store"
	"hr-workflow-backend/models"
	workflowapimodels "hr-workflow-backend/models/api/workflow"
	dbmodels "hr-workflow-backend/models/db"
)

type Provider interface {
	Create(spaceID string, data workflowapimodels.WorkflowTemplateData) (workflowapimodels.WorkflowTemplateView, error)
	GetByID(spaceID, id string) (workflowapimodels.WorkflowTemplateView, error)
	GetActiveByType(spaceID, workflowType string) (workflowapimodels.WorkflowTemplateView, error)
	List(spaceID string, filter workflowapimodels.TemplateFilter) (list []workflowapimodels.WorkflowTemplateView, rowCount int64, err error)
	ListPublic(workflowType string) (list []workflowapimodels.WorkflowTemplateView, err error)
	Update(spaceID, id string, data workflowapimodels.WorkflowTemplateData) error
	Delete(spaceID, id string) error
}

func NewHandler(DB *gorm.DB) Provider {
	return impl{
		store: workflowtemplatestore.NewInstance(DB),
	}
}

type impl struct {
	store workflowtemplatestore.Provider
}

func (i impl) getLogger(spaceID, recID string) *log.Entry {
	logger := log.
		WithField("space_id", spaceID).
		WithField("rec_id", recID)
	return logger
}

func (i impl) Create(spaceID string, data workflowapimodels.WorkflowTemplateData) (workflowapimodels.WorkflowTemplateView, error) {
	rec := dbmodels.WorkflowTemplate{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Name:         data.Name,
		WorkflowType: data.WorkflowType,
		Steps:        data.ToSpecs(),
		IsActive:     true,
	}
	if data.IsActive != nil {
		rec.IsActive = *data.IsActive
	}
	if data.IsPublic != nil {
		rec.IsPublic = *data.IsPublic
	}
	if err := rec.Validate(); err != nil {
		return workflowapimodels.WorkflowTemplateView{}, errors.Wrap(models.ErrValidation, err.Error())
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return workflowapimodels.WorkflowTemplateView{}, errors.Wrap(err, "ошибка создания шаблона процесса")
	}
	i.getLogger(spaceID, id).Info("создан шаблон процесса")
	return i.GetByID(spaceID, id)
}

func (i impl) GetByID(spaceID, id string) (workflowapimodels.WorkflowTemplateView, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return workflowapimodels.WorkflowTemplateView{}, err
	}
	if rec == nil {
		return workflowapimodels.WorkflowTemplateView{}, errors.Wrap(models.ErrNotFound, "шаблон не найден")
	}
	return workflowapimodels.WorkflowTemplateConvert(*rec), nil
}

// GetActiveByType возвращает действующий шаблон указанного типа.
// На тип процесса в спейсе полагается не более одного активного шаблона
func (i impl) GetActiveByType(spaceID, workflowType string) (workflowapimodels.WorkflowTemplateView, error) {
	rec, err := i.store.GetActiveByType(spaceID, workflowType)
	if err != nil {
		return workflowapimodels.WorkflowTemplateView{}, err
	}
	if rec == nil {
		return workflowapimodels.WorkflowTemplateView{}, errors.Wrap(models.ErrNotFound, "действующий шаблон не найден")
	}
	return workflowapimodels.WorkflowTemplateConvert(*rec), nil
}

func (i impl) List(spaceID string, filter workflowapimodels.TemplateFilter) ([]workflowapimodels.WorkflowTemplateView, int64, error) {
	rowCount, err := i.store.ListCount(spaceID, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(spaceID, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]workflowapimodels.WorkflowTemplateView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, workflowapimodels.WorkflowTemplateConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) ListPublic(workflowType string) ([]workflowapimodels.WorkflowTemplateView, error) {
	recList, err := i.store.ListPublic(workflowType)
	if err != nil {
		return nil, err
	}
	result := make([]workflowapimodels.WorkflowTemplateView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, workflowapimodels.WorkflowTemplateConvert(rec))
	}
	return result, nil
}

// Update - частичное изменение, заполненные поля заменяют сохраненные
func (i impl) Update(spaceID, id string, data workflowapimodels.WorkflowTemplateData) error {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.Wrap(models.ErrNotFound, "шаблон не найден")
	}
	updMap := map[string]interface{}{}
	if data.Name != "" {
		updMap["name"] = data.Name
	}
	if data.WorkflowType != "" {
		updMap["workflow_type"] = data.WorkflowType
	}
	if len(data.Steps) != 0 {
		stepIds := map[string]bool{}
		for _, step := range data.Steps {
			if err := step.Validate(); err != nil {
				return errors.Wrap(models.ErrValidation, err.Error())
			}
			if step.StepID == "" {
				continue
			}
			if stepIds[step.StepID] {
				return errors.Wrapf(models.ErrValidation, "этап %v указан повторно", step.StepID)
			}
			stepIds[step.StepID] = true
		}
		updMap["steps"] = data.ToSpecs()
	}
	if data.IsActive != nil {
		updMap["is_active"] = *data.IsActive
	}
	if data.IsPublic != nil {
		updMap["is_public"] = *data.IsPublic
	}
	err = i.store.Update(spaceID, id, updMap)
	if err != nil {
		return errors.Wrap(err, "ошибка обновления шаблона процесса")
	}
	i.getLogger(spaceID, id).Info("обновлен шаблон процесса")
	return nil
}

// Delete безусловно удаляет шаблон. Запущенные процессы хранят
// собственную копию этапов и от удаления шаблона не страдают
func (i impl) Delete(spaceID, id string) error {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.Wrap(models.ErrNotFound, "шаблон не найден")
	}
	err = i.store.Delete(spaceID, id)
	if err != nil {
		return errors.Wrap(err, "ошибка удаления шаблона процесса")
	}
	i.getLogger(spaceID, id).Info("удален шаблон процесса")
	return nil
}
