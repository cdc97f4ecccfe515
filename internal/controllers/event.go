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

type EventController struct {
	eventService    services.EventServiceInterface
	calendarService services.CalendarServiceInterface
	logger          *zap.Logger
}

func NewEventController(
	eventService services.EventServiceInterface,
	calendarService services.CalendarServiceInterface,
	logger *zap.Logger,
) *EventController {
	return &EventController{
		eventService:    eventService,
		calendarService: calendarService,
		logger:          logger,
	}
}

func (c *EventController) GetEvents(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.eventService.GetEvents(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "Список мероприятий успешно получен", http.StatusOK, total)
}

func (c *EventController) FindEvent(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.eventService.FindEvent(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Мероприятие успешно найдено", http.StatusOK)
}

func (c *EventController) CreateEvent(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var in dto.CreateEventDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.eventService.CreateEvent(reqCtx, in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Мероприятие успешно создано", http.StatusCreated)
}

func (c *EventController) UpdateEvent(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var in dto.UpdateEventDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.eventService.UpdateEvent(reqCtx, id, in)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Мероприятие успешно обновлено", http.StatusOK)
}

func (c *EventController) DeleteEvent(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.eventService.DeleteEvent(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Мероприятие успешно удалено", http.StatusOK)
}

func (c *EventController) AssignEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var in dto.AssignEquipmentDTO
	if err := ctx.Bind(&in); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil),
			c.logger,
		)
	}
	if err := ctx.Validate(&in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.eventService.AssignEquipment(reqCtx, id, in); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Оборудование успешно забронировано", http.StatusCreated)
}

// GetCalendarFeed отдаёт публичную iCalendar-ленту предстоящих мероприятий.
func (c *EventController) GetCalendarFeed(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	feed, err := c.calendarService.BuildFeed(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
