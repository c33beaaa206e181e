package workflowhistoryhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	workflowhistorystore "hr-workflow-backend/lib/workflow-history/store"
	"hr-workflow-backend/models"
	workflowapimodels "hr-workflow-backend/models/api/workflow"
	dbmodels "hr-workflow-backend/models/db"
)

const recentLimit = 10

type Provider interface {
	GetByID(spaceID, id string) (workflowapimodels.HistoryView, error)
	ListByInstance(spaceID, instanceID string) ([]workflowapimodels.HistoryView, error)
	ListByActor(spaceID string, filter workflowapimodels.HistoryActorFilter) (list []workflowapimodels.HistoryView, rowCount int64, err error)
	ListByInstanceStep(spaceID, instanceID, stepID string) ([]workflowapimodels.HistoryView, error)
	Search(spaceID, search string) ([]workflowapimodels.HistoryView, error)
	Stats(spaceID string) (workflowapimodels.HistoryStatsView, error)
	Delete(spaceID, id string) error
	DeleteByInstance(spaceID, instanceID string) error
}

func NewHandler(DB *gorm.DB) Provider {
	return impl{
		store: workflowhistorystore.NewInstance(DB),
	}
}

type impl struct {
	store workflowhistorystore.Provider
}

func (i impl) GetByID(spaceID, id string) (workflowapimodels.HistoryView, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return workflowapimodels.HistoryView{}, err
	}
	if rec == nil {
		return workflowapimodels.HistoryView{}, errors.Wrap(models.ErrNotFound, "запись истории не найдена")
	}
	return workflowapimodels.WorkflowHistoryConvert(*rec), nil
}

func (i impl) ListByInstance(spaceID, instanceID string) ([]workflowapimodels.HistoryView, error) {
	list, err := i.store.ListByInstance(spaceID, instanceID)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) ListByActor(spaceID string, filter workflowapimodels.HistoryActorFilter) ([]workflowapimodels.HistoryView, int64, error) {
	rowCount, err := i.store.ListByActorCount(spaceID, filter)
	if err != nil {
		return nil, 0, err
	}
	list, err := i.store.ListByActor(spaceID, filter)
	if err != nil {
		return nil, 0, err
	}
	return convertList(list), rowCount, nil
}

func (i impl) ListByInstanceStep(spaceID, instanceID, stepID string) ([]workflowapimodels.HistoryView, error) {
	list, err := i.store.ListByInstanceStep(spaceID, instanceID, stepID)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) Search(spaceID, search string) ([]workflowapimodels.HistoryView, error) {
	list, err := i.store.Search(spaceID, search)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) Stats(spaceID string) (workflowapimodels.HistoryStatsView, error) {
	byAction, err := i.store.CountByAction(spaceID)
	if err != nil {
		return workflowapimodels.HistoryStatsView{}, errors.Wrap(err, "ошибка получения статистики по действиям")
	}
	byType, err := i.store.CountByType(spaceID)
	if err != nil {
		return workflowapimodels.HistoryStatsView{}, errors.Wrap(err, "ошибка получения статистики по типам")
	}
	recent, err := i.store.ListRecent(spaceID, recentLimit)
	if err != nil {
		return workflowapimodels.HistoryStatsView{}, errors.Wrap(err, "ошибка получения последних записей истории")
	}
	return workflowapimodels.HistoryStatsView{
		ByAction: byAction,
		ByType:   byType,
		Recent:   convertList(recent),
	}, nil
}

// Delete - административная операция, в обычном ходе процесса история не удаляется
func (i impl) Delete(spaceID, id string) error {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.Wrap(models.ErrNotFound, "запись истории не найдена")
	}
	err = i.store.Delete(spaceID, id)
	if err != nil {
		return errors.Wrap(err, "ошибка удаления записи истории")
	}
	log.
		WithField("space_id", spaceID).
		WithField("rec_id", id).
		Info("удалена запись истории процесса")
	return nil
}

func (i impl) DeleteByInstance(spaceID, instanceID string) error {
	err := i.store.DeleteByInstance(spaceID, instanceID)
	if err != nil {
		return errors.Wrap(err, "ошибка удаления истории процесса")
	}
	log.
		WithField("space_id", spaceID).
		WithField("instance_id", instanceID).
		Info("удалена история процесса")
	return nil
}

func convertList(list []dbmodels.WorkflowHistory) []workflowapimodels.HistoryView {
	result := make([]workflowapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, workflowapimodels.WorkflowHistoryConvert(rec))
	}
	return result
}
