package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "hr-workflow-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.WorkflowTemplate{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkflowTemplate")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkflowInstance{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkflowInstance")
	}
	if err := DB.AutoMigrate(&dbmodels.WorkflowHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры WorkflowHistory")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
