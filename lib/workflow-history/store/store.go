package workflowhistorystore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hr-workflow-backend/models"
	workflowapimodels "hr-workflow-backend/models/api/workflow"
	dbmodels "hr-workflow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkflowHistory) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.WorkflowHistory, err error)
	ListByInstance(spaceID, instanceID string) (list []dbmodels.WorkflowHistory, err error)
	ListByActor(spaceID string, filter workflowapimodels.HistoryActorFilter) (list []dbmodels.WorkflowHistory, err error)
	ListByActorCount(spaceID string, filter workflowapimodels.HistoryActorFilter) (count int64, err error)
	ListByInstanceStep(spaceID, instanceID, stepID string) (list []dbmodels.WorkflowHistory, err error)
	Search(spaceID, search string) (list []dbmodels.WorkflowHistory, err error)
	CountByAction(spaceID string) (result map[models.WorkflowAction]int64, err error)
	CountByType(spaceID string) (result map[string]int64, err error)
	ListRecent(spaceID string, limit int) (list []dbmodels.WorkflowHistory, err error)
	Delete(spaceID, id string) error
	DeleteByInstance(spaceID, instanceID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkflowHistory) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.WorkflowHistory, error) {
	rec := dbmodels.WorkflowHistory{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListByInstance - каноническая лента процесса, от старых записей к новым
func (i impl) ListByInstance(spaceID, instanceID string) (list []dbmodels.WorkflowHistory, err error) {
	list = []dbmodels.WorkflowHistory{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("instance_id = ?", instanceID).
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListByActor(spaceID string, filter workflowapimodels.HistoryActorFilter) (list []dbmodels.WorkflowHistory, err error) {
	list = []dbmodels.WorkflowHistory{}
	tx := i.db.
		Where("space_id = ?", spaceID).
		Where("actor_id = ?", filter.ActorID).
		Order("created_at DESC")
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	tx = tx.Limit(limit).Offset(offset)
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListByActorCount(spaceID string, filter workflowapimodels.HistoryActorFilter) (count int64, err error) {
	var rowCount int64
	err = i.db.
		Model(dbmodels.WorkflowHistory{}).
		Where("space_id = ?", spaceID).
		Where("actor_id = ?", filter.ActorID).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения общего количества записей истории")
	}
	return rowCount, nil
}

func (i impl) ListByInstanceStep(spaceID, instanceID, stepID string) (list []dbmodels.WorkflowHistory, err error) {
	list = []dbmodels.WorkflowHistory{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("instance_id = ?", instanceID).
		Where("step_id = ?", stepID).
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) Search(spaceID, search string) (list []dbmodels.WorkflowHistory, err error) {
	list = []dbmodels.WorkflowHistory{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("LOWER(description) like ?", "%"+strings.ToLower(search)+"%").
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) CountByAction(spaceID string) (map[models.WorkflowAction]int64, error) {
	rows := []struct {
		Action models.WorkflowAction
		Cnt    int64
	}{}
	err := i.db.
		Model(dbmodels.WorkflowHistory{}).
		Select("action, count(*) as cnt").
		Where("space_id = ?", spaceID).
		Group("action").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	result := make(map[models.WorkflowAction]int64, len(rows))
	for _, row := range rows {
		result[row.Action] = row.Cnt
	}
	return result, nil
}

func (i impl) CountByType(spaceID string) (map[string]int64, error) {
	rows := []struct {
		WorkflowType string
		Cnt          int64
	}{}
	err := i.db.
		Model(dbmodels.WorkflowHistory{}).
		Select("workflow_type, count(*) as cnt").
		Where("space_id = ?", spaceID).
		Group("workflow_type").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.WorkflowType] = row.Cnt
	}
	return result, nil
}

func (i impl) ListRecent(spaceID string, limit int) (list []dbmodels.WorkflowHistory, err error) {
	list = []dbmodels.WorkflowHistory{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.WorkflowHistory{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) DeleteByInstance(spaceID, instanceID string) error {
	rec := dbmodels.WorkflowHistory{}
	err := i.db.Model(&dbmodels.WorkflowHistory{}).
		Where("space_id = ?", spaceID).
		Where("instance_id = ?", instanceID).
		Delete(&rec).Error
	if err != nil {
		return err
	}
	return nil
}
