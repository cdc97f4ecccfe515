package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rental-system/internal/controllers"
	"rental-system/internal/services"
)

// runCalendarRouter регистрирует мероприятия. Лента feed.ics публичная,
// календарные приложения не умеют авторизоваться токеном.
func runCalendarRouter(
	api *echo.Group,
	calendarService services.CalendarServiceInterface,
	eventService services.EventServiceInterface,
	logger *zap.Logger,
	secureGroup *echo.Group,
) {
	eventCtrl := controllers.NewEventController(eventService, calendarService, logger)

	api.GET("/events/feed.ics", eventCtrl.GetCalendarFeed)

	secureGroup.GET("/events", eventCtrl.GetEvents)
	secureGroup.GET("/events/:id", eventCtrl.FindEvent)
	secureGroup.POST("/events", eventCtrl.CreateEvent)
	secureGroup.PUT("/events/:id", eventCtrl.UpdateEvent)
	secureGroup.DELETE("/events/:id", eventCtrl.DeleteEvent)
	secureGroup.POST("/events/:id/equipment", eventCtrl.AssignEquipment)
}
