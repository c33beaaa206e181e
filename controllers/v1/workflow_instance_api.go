package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-workflow-backend/controllers"
	workflowhistoryhandler "hr-workflow-backend/lib/workflow-history"
	workflowinstancehandler "hr-workflow-backend/lib/workflow-instance"
	"hr-workflow-backend/middleware"
	apimodels "hr-workflow-backend/models/api"
	workflowapimodels "hr-workflow-backend/models/api/workflow"
)

type workflowInstanceApiController struct {
	controllers.BaseAPIController
	provider        workflowinstancehandler.Provider
	historyProvider workflowhistoryhandler.Provider
}

func InitWorkflowInstanceApiRouters(app *fiber.App, provider workflowinstancehandler.Provider, historyProvider workflowhistoryhandler.Provider) {
	controller := workflowInstanceApiController{
		provider:        provider,
		historyProvider: historyProvider,
	}
	app.Route("processes", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Post("advance", controller.advance)
			idRoute.Post("status", controller.setStatus)
			idRoute.Get("history", controller.history)
			idRoute.Get("steps/:stepId/history", controller.stepHistory)
		})
	})
}

// @Summary Запуск процесса
// @Tags Процессы
// @Description Создание процесса по шаблону, по умолчанию процесс сразу в работе
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body 				body	workflowapimodels.InstanceCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.InstanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/processes [post]
func (c *workflowInstanceApiController) create(ctx *fiber.Ctx) error {
	var payload workflowapimodels.InstanceCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	userName := middleware.GetUserName(ctx)
	result, err := c.provider.Create(spaceID, userID, userName, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания процесса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Список процессов
// @Tags Процессы
// @Description Список процессов с фильтром и пагинацией
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	workflowapimodels.InstanceFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]workflowapimodels.InstanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/processes/list [post]
func (c *workflowInstanceApiController) list(ctx *fiber.Ctx) error {
	var payload workflowapimodels.InstanceFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, rowCount, err := c.provider.List(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка процессов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Процесс
// @Tags Процессы
// @Description Процесс по идентификатору
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.InstanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/processes/{id} [get]
func (c *workflowInstanceApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	result, err := c.provider.GetByID(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения процесса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Изменение процесса
// @Tags Процессы
// @Description Частичное изменение отображаемых полей процесса
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body 				body	workflowapimodels.InstanceUpdateData	true	"request body"
// @Param   id          		path    string  								true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/processes/{id} [put]
func (c *workflowInstanceApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.InstanceUpdateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = c.provider.Update(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения процесса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление процесса
// @Tags Процессы
// @Description Удаление процесса вместе с его историей
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/processes/{id} [delete]
func (c *workflowInstanceApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	err = c.provider.Delete(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления процесса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Переход на следующий этап
// @Tags Процессы
// @Description Завершение текущего этапа, на последнем этапе процесс завершается
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.InstanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/processes/{id}/advance [post]
func (c *workflowInstanceApiController) advance(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	result, err := c.provider.AdvanceStep(ctx.UserContext(), spaceID, id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка перехода этапа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Прямое изменение статуса
// @Tags Процессы
// @Description Административный перевод статуса без прохода по этапам
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body 				body	workflowapimodels.InstanceStatusData	true	"request body"
// @Param   id          		path    string  								true    "rec ID"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.InstanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/processes/{id}/status [post]
func (c *workflowInstanceApiController) setStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.InstanceStatusData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	result, err := c.provider.SetStatus(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения статуса процесса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary История процесса
// @Tags Процессы
// @Description Лента событий процесса от старых к новым
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/processes/{id}/history [get]
func (c *workflowInstanceApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := c.historyProvider.ListByInstance(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории процесса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary История этапа процесса
// @Tags Процессы
// @Description События процесса по конкретному этапу
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Param   stepId          	path    string	true    "step ID"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/processes/{id}/steps/{stepId}/history [get]
func (c *workflowInstanceApiController) stepHistory(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stepID, err := c.GetIDByKey(ctx, "stepId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := c.historyProvider.ListByInstanceStep(spaceID, id, stepID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории этапа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
