package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"rental-system/internal/repositories"
)

type CalendarServiceInterface interface {
	BuildFeed(ctx context.Context) (string, error)
}

// CalendarService отдаёт предстоящие мероприятия вместе с забронированным
// оборудованием в виде iCalendar-ленты.
type CalendarService struct {
	eventRepo repositories.EventRepositoryInterface
	logger    *zap.Logger
}

func NewCalendarService(eventRepo repositories.EventRepositoryInterface, logger *zap.Logger) CalendarServiceInterface {
	return &CalendarService{eventRepo: eventRepo, logger: logger}
}

func (s *CalendarService) BuildFeed(ctx context.Context) (string, error) {
	events, err := s.eventRepo.GetUpcomingEvents(ctx)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//rental-system//Календарь мероприятий//RU")

	now := time.Now()
	for _, e := range events {
		ev := cal.AddEvent(fmt.Sprintf("event-%d@rental-system", e.ID))
		ev.SetDtStampTime(now)
		ev.SetStartAt(e.Date)
		ev.SetEndAt(e.Date.Add(24 * time.Hour))
		ev.SetSummary(e.Name)
		if e.Location.Valid {
			ev.SetLocation(e.Location.String)
		}
		if len(e.EquipmentNames) > 0 {
			ev.SetDescription("Оборудование: " + strings.Join(e.EquipmentNames, ", "))
		}
	}

	s.logger.Debug("Календарная лента сформирована", zap.Int("events", len(events)))
	return cal.Serialize(), nil
}
