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

type EquipmentHistoryController struct {
	historyService services.EquipmentHistoryServiceInterface
	logger         *zap.Logger
}

func NewEquipmentHistoryController(historyService services.EquipmentHistoryServiceInterface, logger *zap.Logger) *EquipmentHistoryController {
	return &EquipmentHistoryController{historyService: historyService, logger: logger}
}

// GetHistory отдаёт журнал оборудования от старых записей к новым.
func (c *EquipmentHistoryController) GetHistory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	list, err := c.historyService.GetHistory(reqCtx, id, ctx.QueryParam("limit"), ctx.QueryParam("offset"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "История оборудования успешно получена", http.StatusOK)
}

func (c *EquipmentHistoryController) AppendEntry(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var in dto.CreateEquipmentHistoryDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.historyService.AppendEntry(reqCtx, id, in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Запись истории успешно добавлена", http.StatusCreated)
}
