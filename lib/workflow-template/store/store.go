package workflowtemplatestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	workflowapimodels "hr-workflow-backend/models/api/workflow"
	dbmodels "hr-workflow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkflowTemplate) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.WorkflowTemplate, err error)
	GetActiveByType(spaceID, workflowType string) (rec *dbmodels.WorkflowTemplate, err error)
	List(spaceID string, filter workflowapimodels.TemplateFilter) (list []dbmodels.WorkflowTemplate, err error)
	ListCount(spaceID string, filter workflowapimodels.TemplateFilter) (count int64, err error)
	ListPublic(workflowType string) (list []dbmodels.WorkflowTemplate, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	Delete(spaceID, id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.WorkflowTemplate) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.WorkflowTemplate, error) {
	rec := dbmodels.WorkflowTemplate{}
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

func (i impl) GetActiveByType(spaceID, workflowType string) (*dbmodels.WorkflowTemplate, error) {
	rec := dbmodels.WorkflowTemplate{}
	err := i.db.
		Where("space_id = ?", spaceID).
		Where("workflow_type = ?", workflowType).
		Where("is_active = true").
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

func (i impl) List(spaceID string, filter workflowapimodels.TemplateFilter) (list []dbmodels.WorkflowTemplate, err error) {
	list = []dbmodels.WorkflowTemplate{}
	tx := i.db.
		Model(dbmodels.WorkflowTemplate{}).
		Where("space_id = ?", spaceID).
		Order("created_at DESC")
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	i.setPage(tx, page, limit)
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(spaceID string, filter workflowapimodels.TemplateFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.WorkflowTemplate{}).
		Where("space_id = ?", spaceID)
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения общего количества шаблонов")
	}
	return rowCount, nil
}

func (i impl) ListPublic(workflowType string) (list []dbmodels.WorkflowTemplate, err error) {
	list = []dbmodels.WorkflowTemplate{}
	tx := i.db.
		Model(dbmodels.WorkflowTemplate{}).
		Where("is_public = true").
		Where("is_active = true").
		Order("created_at DESC")
	if workflowType != "" {
		tx = tx.Where("workflow_type = ?", workflowType)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.WorkflowTemplate{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.WorkflowTemplate{
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

func (i impl) addFilter(tx *gorm.DB, filter workflowapimodels.TemplateFilter) {
	if filter.WorkflowType != "" {
		tx = tx.Where("workflow_type = ?", filter.WorkflowType)
	}
	if filter.IsActive != nil {
		tx = tx.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsPublic != nil {
		tx = tx.Where("is_public = ?", *filter.IsPublic)
	}
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}
