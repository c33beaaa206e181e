package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-workflow-backend/controllers"
	workflowtaskhandler "hr-workflow-backend/lib/workflow-task"
	"hr-workflow-backend/middleware"
	apimodels "hr-workflow-backend/models/api"
)

type workflowTaskApiController struct {
	controllers.BaseAPIController
	provider workflowtaskhandler.Provider
}

func InitWorkflowTaskApiRouters(app *fiber.App, provider workflowtaskhandler.Provider) {
	controller := workflowTaskApiController{
		provider: provider,
	}
	app.Route("tasks", func(router fiber.Router) {
		router.Get("pending", controller.pending)
	})
}

// @Summary Ожидающие задачи
// @Tags Задачи процессов
// @Description Текущие этапы активных процессов. my=true - только задачи текущего пользователя,
// @Description actor_id - задачи указанного исполнителя
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   my					query	bool	false	"only current user tasks"
// @Param   actor_id			query	string	false	"assignee user ID"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.PendingTaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/tasks/pending [get]
func (c *workflowTaskApiController) pending(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	actorID := ctx.Query("actor_id", "")
	if ctx.QueryBool("my", false) {
		actorID = middleware.GetUserID(ctx)
	}
	list, err := c.provider.GetPendingTasks(spaceID, actorID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка задач")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
