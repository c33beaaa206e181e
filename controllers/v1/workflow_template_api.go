package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-workflow-backend/controllers"
	workflowtemplatehandler "hr-workflow-backend/lib/workflow-template"
	"hr-workflow-backend/middleware"
	apimodels "hr-workflow-backend/models/api"
	workflowapimodels "hr-workflow-backend/models/api/workflow"
)

type workflowTemplateApiController struct {
	controllers.BaseAPIController
	provider workflowtemplatehandler.Provider
}

func InitWorkflowTemplateApiRouters(app *fiber.App, provider workflowtemplatehandler.Provider) {
	controller := workflowTemplateApiController{
		provider: provider,
	}
	app.Route("templates", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Get("public", controller.listPublic)
		router.Get("by_type/:type", controller.getActiveByType)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Создание шаблона процесса
// @Tags Шаблоны процессов
// @Description Создание шаблона процесса
// @Param   Authorization		header	string										true	"Authorization token"
// @Param	body 				body	workflowapimodels.WorkflowTemplateData		true	"request body"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.WorkflowTemplateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/templates [post]
func (c *workflowTemplateApiController) create(ctx *fiber.Ctx) error {
	var payload workflowapimodels.WorkflowTemplateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	result, err := c.provider.Create(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания шаблона процесса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Список шаблонов процессов
// @Tags Шаблоны процессов
// @Description Список шаблонов процессов с фильтром и пагинацией
// @Param   Authorization		header	string								true	"Authorization token"
// @Param	body 				body	workflowapimodels.TemplateFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]workflowapimodels.WorkflowTemplateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/templates/list [post]
func (c *workflowTemplateApiController) list(ctx *fiber.Ctx) error {
	var payload workflowapimodels.TemplateFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	list, rowCount, err := c.provider.List(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка шаблонов процессов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Список публичных шаблонов
// @Tags Шаблоны процессов
// @Description Список публичных активных шаблонов, опциональный фильтр по типу
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   type				query	string	false	"workflow type"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.WorkflowTemplateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/templates/public [get]
func (c *workflowTemplateApiController) listPublic(ctx *fiber.Ctx) error {
	workflowType := ctx.Query("type", "")
	list, err := c.provider.ListPublic(workflowType)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка публичных шаблонов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Действующий шаблон по типу процесса
// @Tags Шаблоны процессов
// @Description Единственный активный шаблон указанного типа в спейсе
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   type          		path    string	true    "workflow type"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.WorkflowTemplateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/templates/by_type/{type} [get]
func (c *workflowTemplateApiController) getActiveByType(ctx *fiber.Ctx) error {
	workflowType, err := c.GetIDByKey(ctx, "type")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	result, err := c.provider.GetActiveByType(spaceID, workflowType)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения действующего шаблона")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Шаблон процесса
// @Tags Шаблоны процессов
// @Description Шаблон процесса по идентификатору
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.WorkflowTemplateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/templates/{id} [get]
func (c *workflowTemplateApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	result, err := c.provider.GetByID(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения шаблона процесса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Изменение шаблона процесса
// @Tags Шаблоны процессов
// @Description Частичное изменение шаблона, заполненные поля заменяют сохраненные
// @Param   Authorization		header	string									true	"Authorization token"
// @Param	body 				body	workflowapimodels.WorkflowTemplateData	true	"request body"
// @Param   id          		path    string  								true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/templates/{id} [put]
func (c *workflowTemplateApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.WorkflowTemplateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	err = c.provider.Update(spaceID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения шаблона процесса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление шаблона процесса
// @Tags Шаблоны процессов
// @Description Удаление шаблона, запущенные процессы сохраняют свою копию этапов
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   id          		path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/templates/{id} [delete]
func (c *workflowTemplateApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	err = c.provider.Delete(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления шаблона процесса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
