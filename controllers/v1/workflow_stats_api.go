package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-workflow-backend/controllers"
	workflowstatshandler "hr-workflow-backend/lib/workflow-stats"
	"hr-workflow-backend/middleware"
	apimodels "hr-workflow-backend/models/api"
)

type workflowStatsApiController struct {
	controllers.BaseAPIController
	provider workflowstatshandler.Provider
}

func InitWorkflowStatsApiRouters(app *fiber.App, provider workflowstatshandler.Provider) {
	controller := workflowStatsApiController{
		provider: provider,
	}
	app.Route("stats", func(router fiber.Router) {
		router.Get("processes", controller.instanceStats)
		router.Get("history", controller.historyStats)
	})
}

// @Summary Статистика по процессам
// @Tags Статистика процессов
// @Description Количество процессов по статусам и типам, среднее время завершения
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.InstanceStatsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/stats/processes [get]
func (c *workflowStatsApiController) instanceStats(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	result, err := c.provider.GetInstanceStats(spaceID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения статистики процессов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Статистика по истории
// @Tags Статистика процессов
// @Description Количество записей истории по действиям и типам, последние события
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.HistoryStatsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/stats/history [get]
func (c *workflowStatsApiController) historyStats(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	result, err := c.provider.GetHistoryStats(spaceID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения статистики истории")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
