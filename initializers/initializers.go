package initializers

import (
	"strings"

	"hr-workflow-backend/config"
	"hr-workflow-backend/db"
	"hr-workflow-backend/fiberlog"
	workflowhistoryhandler "hr-workflow-backend/lib/workflow-history"
	workflowinstancehandler "hr-workflow-backend/lib/workflow-instance"
	workflownotify "hr-workflow-backend/lib/workflow-notify"
	workflowstatshandler "hr-workflow-backend/lib/workflow-stats"
	workflowtaskhandler "hr-workflow-backend/lib/workflow-task"
	workflowtemplatehandler "hr-workflow-backend/lib/workflow-template"
)

var LoggerConfig *fiberlog.Config

// Services собирает провайдеры сервисов для передачи в роутеры
type Services struct {
	TemplateProvider workflowtemplatehandler.Provider
	InstanceProvider workflowinstancehandler.Provider
	HistoryProvider  workflowhistoryhandler.Provider
	TaskProvider     workflowtaskhandler.Provider
	StatsProvider    workflowstatshandler.Provider
}

func InitAllServices() *Services {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	emailProvider := InitSmtp()
	notifier := workflownotify.NewHandler(emailProvider, emailResolver)

	historyProvider := workflowhistoryhandler.NewHandler(db.DB)
	return &Services{
		TemplateProvider: workflowtemplatehandler.NewHandler(db.DB),
		InstanceProvider: workflowinstancehandler.NewHandler(db.DB, notifier),
		HistoryProvider:  historyProvider,
		TaskProvider:     workflowtaskhandler.NewHandler(db.DB),
		StatsProvider:    workflowstatshandler.NewHandler(db.DB, historyProvider),
	}
}

// emailResolver определяет почту исполнителя этапа.
// Справочник сотрудников ведёт внешняя система, поэтому уведомляем
// только когда исполнитель задан почтовым адресом
func emailResolver(spaceID, assigneeID string) string {
	if strings.Contains(assigneeID, "@") {
		return assigneeID
	}
	return ""
}
