package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rental-system/internal/dto"
	"rental-system/internal/services"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/utils"
)

type ClientController struct {
	clientService services.ClientServiceInterface
	logger        *zap.Logger
}

func NewClientController(clientService services.ClientServiceInterface, logger *zap.Logger) *ClientController {
	return &ClientController{clientService: clientService, logger: logger}
}

func (c *ClientController) GetClients(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.clientService.GetClients(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Список клиентов успешно получен", http.StatusOK, total)
}

func (c *ClientController) FindClient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.clientService.FindClient(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Клиент успешно найден", http.StatusOK)
}

func (c *ClientController) CreateClient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var in dto.CreateClientDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.clientService.CreateClient(reqCtx, in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Клиент успешно создан", http.StatusCreated)
}

func (c *ClientController) UpdateClient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var in dto.UpdateClientDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.clientService.UpdateClient(reqCtx, id, in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Клиент успешно обновлён", http.StatusOK)
}

func (c *ClientController) DeleteClient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.clientService.DeleteClient(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Клиент успешно удалён", http.StatusOK)
}
