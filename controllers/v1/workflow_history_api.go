package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-workflow-backend/controllers"
	workflowhistoryhandler "hr-workflow-backend/lib/workflow-history"
	"hr-workflow-backend/middleware"
	apimodels "hr-workflow-backend/models/api"
	workflowapimodels "hr-workflow-backend/models/api/workflow"
)

type workflowHistoryApiController struct {
	controllers.BaseAPIController
	provider workflowhistoryhandler.Provider
}

func InitWorkflowHistoryApiRouters(app *fiber.App, provider workflowhistoryhandler.Provider) {
	controller := workflowHistoryApiController{
		provider: provider,
	}
	app.Route("history", func(router fiber.Router) {
		router.Post("search", controller.search)
		router.Post("actor_list", controller.actorList)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", middleware.SpaceAdminRequired(), controller.delete)
		})
	})
}

// @Summary Поиск по истории
// @Tags История процессов
// @Description Поиск записей истории по описанию действия в рамках спейса
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body 				body	workflowapimodels.HistorySearchFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/history/search [post]
func (c *workflowHistoryApiController) search(ctx *fiber.Ctx) error {
	var payload workflowapimodels.HistorySearchFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, err := c.provider.Search(spaceID, payload.Search)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка поиска по истории")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary История действий пользователя
// @Tags История процессов
// @Description Записи истории по автору действий, от новых к старым
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body 				body	workflowapimodels.HistoryActorFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]workflowapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/history/actor_list [post]
func (c *workflowHistoryApiController) actorList(ctx *fiber.Ctx) error {
	var payload workflowapimodels.HistoryActorFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, rowCount, err := c.provider.ListByActor(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Запись истории
// @Tags История процессов
// @Description Запись истории по идентификатору
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/history/{id} [get]
func (c *workflowHistoryApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	result, err := c.provider.GetByID(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записи истории")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Удаление записи истории
// @Tags История процессов
// @Description Административное удаление записи, доступно администратору спейса
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/history/{id} [delete]
func (c *workflowHistoryApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	err = c.provider.Delete(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления записи истории")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
