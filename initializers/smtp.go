package initializers

import (
	"hr-workflow-backend/config"
	"hr-workflow-backend/lib/smtp"
)

func InitSmtp() smtp.Provider {
	return smtp.NewProvider(config.Conf.Smtp.User, config.Conf.Smtp.Password,
		config.Conf.Smtp.Host, config.Conf.Smtp.Port, *config.Conf.Smtp.TLSEnabled)
}
