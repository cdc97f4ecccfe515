package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"rental-system/internal/authz"
	"rental-system/internal/dto"
	"rental-system/internal/entities"
	"rental-system/internal/repositories"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/types"
	"rental-system/pkg/utils"
)

type EventServiceInterface interface {
	GetEvents(ctx context.Context, filter types.Filter) ([]dto.EventDTO, uint64, error)
	FindEvent(ctx context.Context, id uint64) (*dto.EventDTO, error)
	CreateEvent(ctx context.Context, in dto.CreateEventDTO) (*dto.EventDTO, error)
	UpdateEvent(ctx context.Context, id uint64, in dto.UpdateEventDTO) (*dto.EventDTO, error)
	DeleteEvent(ctx context.Context, id uint64) error
	AssignEquipment(ctx context.Context, eventID uint64, in dto.AssignEquipmentDTO) error
}

type EventService struct {
	txManager     repositories.TxManagerInterface
	eventRepo     repositories.EventRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	historyRepo   repositories.EquipmentHistoryRepositoryInterface
	clientRepo    repositories.ClientRepositoryInterface
	gatekeeper    *authz.Gatekeeper
	logger        *zap.Logger
}

func NewEventService(
	txManager repositories.TxManagerInterface,
	eventRepo repositories.EventRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	historyRepo repositories.EquipmentHistoryRepositoryInterface,
	clientRepo repositories.ClientRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) EventServiceInterface {
	return &EventService{
		txManager:     txManager,
		eventRepo:     eventRepo,
		equipmentRepo: equipmentRepo,
		historyRepo:   historyRepo,
		clientRepo:    clientRepo,
		gatekeeper:    gatekeeper,
		logger:        logger,
	}
}

func (s *EventService) authorize(ctx context.Context, permission string) error {
	perms, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return err
	}
	if !s.gatekeeper.Can(perms, permission) {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *EventService) GetEvents(ctx context.Context, filter types.Filter) ([]dto.EventDTO, uint64, error) {
	list, total, err := s.eventRepo.GetEvents(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.EventDTO, 0, len(list))
	for _, e := range list {
		result = append(result, newEventDTO(e))
	}
	return result, total, nil
}

func (s *EventService) FindEvent(ctx context.Context, id uint64) (*dto.EventDTO, error) {
	e, err := s.eventRepo.FindEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	res := newEventDTO(*e)
	return &res, nil
}

func (s *EventService) CreateEvent(ctx context.Context, in dto.CreateEventDTO) (*dto.EventDTO, error) {
	if err := s.authorize(ctx, authz.EventsCreate); err != nil {
		return nil, err
	}

	if in.ClientID != nil {
		if _, err := s.clientRepo.FindClient(ctx, *in.ClientID); err != nil {
			return nil, err
		}
	}

	event := entities.Event{
		Name:     in.Name,
		Date:     in.Date,
		Location: null.StringFromPtr(in.Location),
		ClientID: in.ClientID,
	}

	id, err := s.eventRepo.CreateEvent(ctx, &event)
	if err != nil {
		s.logger.Error("Ошибка при создании мероприятия", zap.Error(err))
		return nil, err
	}

	return s.FindEvent(ctx, id)
}

func (s *EventService) UpdateEvent(ctx context.Context, id uint64, in dto.UpdateEventDTO) (*dto.EventDTO, error) {
	if err := s.authorize(ctx, authz.EventsUpdate); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.FindEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		event.Name = *in.Name
	}
	if in.Date != nil {
		event.Date = *in.Date
	}
	if in.Location != nil {
		event.Location = null.StringFrom(*in.Location)
	}
	if in.ClientID != nil {
		if _, err := s.clientRepo.FindClient(ctx, *in.ClientID); err != nil {
			return nil, err
		}
		event.ClientID = in.ClientID
	}

	if err := s.eventRepo.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}

	return s.FindEvent(ctx, id)
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint64) error {
	if err := s.authorize(ctx, authz.EventsDelete); err != nil {
		return err
	}
	return s.eventRepo.DeleteEvent(ctx, id)
}

// AssignEquipment бронирует оборудование на мероприятие. Бронь и запись
// EVENT_USE в истории оборудования фиксируются одной транзакцией.
func (s *EventService) AssignEquipment(ctx context.Context, eventID uint64, in dto.AssignEquipmentDTO) error {
	if err := s.authorize(ctx, authz.EventsUpdate); err != nil {
		return err
	}

	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	event, err := s.eventRepo.FindEvent(ctx, eventID)
	if err != nil {
		return err
	}

	eq, err := s.equipmentRepo.FindEquipment(ctx, in.EquipmentID)
	if err != nil {
		return err
	}

	eventDate := event.Date
	entry := &entities.EquipmentHistory{
		EquipmentID:   eq.ID,
		EquipmentName: eq.Name,
		UserID:        userID,
		Action:        entities.HistoryActionEventUse,
		EventID:       &event.ID,
		EventName:     null.StringFrom(event.Name),
		EventDate:     &eventDate,
		EventLocation: event.Location,
		Detail:        null.StringFrom("Забронировано на мероприятие «" + event.Name + "»"),
		CreatedAt:     time.Now(),
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		booking := &entities.EventBooking{EventID: event.ID, EquipmentID: eq.ID}
		if err := s.eventRepo.CreateBookingInTx(ctx, tx, booking); err != nil {
			return err
		}
		return s.historyRepo.CreateInTx(ctx, tx, entry)
	})
	if err != nil {
		s.logger.Error("Ошибка при бронировании оборудования",
			zap.Uint64("eventID", eventID), zap.Uint64("equipmentID", in.EquipmentID), zap.Error(err))
		return err
	}

	s.logger.Info("Оборудование забронировано",
		zap.Uint64("eventID", eventID), zap.Uint64("equipmentID", in.EquipmentID))
	return nil
}

func newEventDTO(e entities.Event) dto.EventDTO {
	return dto.EventDTO{
		ID:        e.ID,
		Name:      e.Name,
		Date:      e.Date.Format("2006-01-02"),
		Location:  nullStringPtr(e.Location),
		ClientID:  e.ClientID,
		CreatedAt: formatEntityTime(e.CreatedAt),
		UpdatedAt: formatEntityTime(e.UpdatedAt),
	}
}
