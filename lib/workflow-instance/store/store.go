package workflowinstancestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hr-workflow-backend/models"
	workflowapimodels "hr-workflow-backend/models/api/workflow"
	dbmodels "hr-workflow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.WorkflowInstance) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.WorkflowInstance, err error)
	List(spaceID string, filter workflowapimodels.InstanceFilter) (list []dbmodels.WorkflowInstance, err error)
	ListCount(spaceID string, filter workflowapimodels.InstanceFilter) (count int64, err error)
	ListActive(spaceID string) (list []dbmodels.WorkflowInstance, err error)
	ListAll(spaceID string) (list []dbmodels.WorkflowInstance, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	UpdateOnStep(spaceID, id string, expectedStepIndex int, updMap map[string]interface{}) error
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

func (i impl) Create(rec dbmodels.WorkflowInstance) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.WorkflowInstance, error) {
	rec := dbmodels.WorkflowInstance{}
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

func (i impl) List(spaceID string, filter workflowapimodels.InstanceFilter) (list []dbmodels.WorkflowInstance, err error) {
	list = []dbmodels.WorkflowInstance{}
	tx := i.db.
		Model(dbmodels.WorkflowInstance{}).
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

func (i impl) ListCount(spaceID string, filter workflowapimodels.InstanceFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(dbmodels.WorkflowInstance{}).
		Where("space_id = ?", spaceID)
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения общего количества процессов")
	}
	return rowCount, nil
}

func (i impl) ListActive(spaceID string) (list []dbmodels.WorkflowInstance, err error) {
	list = []dbmodels.WorkflowInstance{}
	err = i.db.
		Model(dbmodels.WorkflowInstance{}).
		Where("space_id = ?", spaceID).
		Where("status = ?", models.WorkflowStatusActive).
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

func (i impl) ListAll(spaceID string) (list []dbmodels.WorkflowInstance, err error) {
	list = []dbmodels.WorkflowInstance{}
	err = i.db.
		Model(dbmodels.WorkflowInstance{}).
		Where("space_id = ?", spaceID).
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

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.WorkflowInstance{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

// UpdateOnStep применяет изменения только если указатель текущего этапа
// не изменился с момента чтения. Ноль затронутых строк - конкурентный переход
func (i impl) UpdateOnStep(spaceID, id string, expectedStepIndex int, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.WorkflowInstance{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Where("current_step_index = ?", expectedStepIndex).
		Where("status = ?", models.WorkflowStatusActive).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.ErrConcurrencyConflict
	}
	return nil
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.WorkflowInstance{
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

func (i impl) addFilter(tx *gorm.DB, filter workflowapimodels.InstanceFilter) {
	if filter.TemplateID != "" {
		tx = tx.Where("template_id = ?", filter.TemplateID)
	}
	if filter.WorkflowType != "" {
		tx = tx.Where("workflow_type = ?", filter.WorkflowType)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.InitiatorID != "" {
		tx = tx.Where("initiator_id = ?", filter.InitiatorID)
	}
	if filter.RelatedEntityID != "" {
		tx = tx.Where("related_entity_id = ?", filter.RelatedEntityID)
	}
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}
