package services

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"rental-system/internal/authz"
	"rental-system/internal/dto"
	"rental-system/internal/entities"
	"rental-system/internal/repositories"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/utils"
)

var knownHistoryActions = map[string]struct{}{
	entities.HistoryActionCreate:       {},
	entities.HistoryActionEdit:         {},
	entities.HistoryActionEventUse:     {},
	entities.HistoryActionRelocation:   {},
	entities.HistoryActionStatusChange: {},
}

type EquipmentHistoryServiceInterface interface {
	GetHistory(ctx context.Context, equipmentID uint64, limitStr, offsetStr string) ([]dto.EquipmentHistoryDTO, error)
	AppendEntry(ctx context.Context, equipmentID uint64, in dto.CreateEquipmentHistoryDTO) error
}

type EquipmentHistoryService struct {
	historyRepo   repositories.EquipmentHistoryRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	gatekeeper    *authz.Gatekeeper
	logger        *zap.Logger
}

func NewEquipmentHistoryService(
	historyRepo repositories.EquipmentHistoryRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) EquipmentHistoryServiceInterface {
	return &EquipmentHistoryService{
		historyRepo:   historyRepo,
		equipmentRepo: equipmentRepo,
		gatekeeper:    gatekeeper,
		logger:        logger,
	}
}

// validateHistoryEntry проверяет вид действия и обязательные поля вида.
func validateHistoryEntry(in dto.CreateEquipmentHistoryDTO) error {
	if _, ok := knownHistoryActions[in.Action]; !ok {
		return apperrors.NewHttpError(http.StatusBadRequest, "Неизвестный вид действия: "+in.Action, nil, nil)
	}

	switch in.Action {
	case entities.HistoryActionEdit:
		if len(in.Changes) == 0 {
			return apperrors.NewHttpError(http.StatusBadRequest, "Запись EDIT требует непустой список изменений", nil, nil)
		}
	case entities.HistoryActionEventUse:
		if in.EventID == nil {
			return apperrors.NewHttpError(http.StatusBadRequest, "Запись EVENT_USE требует идентификатор мероприятия", nil, nil)
		}
	}

	return nil
}

func (s *EquipmentHistoryService) AppendEntry(ctx context.Context, equipmentID uint64, in dto.CreateEquipmentHistoryDTO) error {
	perms, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return err
	}
	if !s.gatekeeper.Can(perms, authz.EquipmentHistoryCreate) {
		return apperrors.ErrForbidden
	}

	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	if err := validateHistoryEntry(in); err != nil {
		return err
	}

	eq, err := s.equipmentRepo.FindEquipment(ctx, equipmentID)
	if err != nil {
		return err
	}

	createdAt := time.Now()
	if in.CreatedAt != nil {
		createdAt = *in.CreatedAt
	}

	changes := make([]entities.FieldChange, 0, len(in.Changes))
	for _, ch := range in.Changes {
		changes = append(changes, entities.FieldChange{Field: ch.Field, Old: ch.Old, New: ch.New})
	}

	entry := &entities.EquipmentHistory{
		EquipmentID:   eq.ID,
		EquipmentName: eq.Name,
		UserID:        userID,
		Action:        in.Action,
		Changes:       changes,
		EventID:       in.EventID,
		EventName:     null.StringFromPtr(in.EventName),
		EventDate:     in.EventDate,
		EventLocation: null.StringFromPtr(in.EventLocation),
		Detail:        null.StringFromPtr(in.Detail),
		OldValue:      null.StringFromPtr(in.OldValue),
		NewValue:      null.StringFromPtr(in.NewValue),
		CreatedAt:     createdAt,
	}

	if err := s.historyRepo.Create(ctx, entry); err != nil {
		s.logger.Error("Ошибка при добавлении записи истории", zap.Uint64("equipmentID", equipmentID), zap.Error(err))
		return err
	}

	s.logger.Info("Запись истории добавлена", zap.Uint64("equipmentID", equipmentID), zap.String("action", in.Action))
	return nil
}

func (s *EquipmentHistoryService) GetHistory(ctx context.Context, equipmentID uint64, limitStr, offsetStr string) ([]dto.EquipmentHistoryDTO, error) {
	perms, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !s.gatekeeper.Can(perms, authz.EquipmentHistoryView) {
		return nil, apperrors.ErrForbidden
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	offset, _ := strconv.Atoi(offsetStr)
	if offset < 0 {
		offset = 0
	}

	// Проверяем, что оборудование существует, прежде чем отдавать пустую историю.
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	items, err := s.historyRepo.FindByEquipmentID(ctx, equipmentID, uint64(limit), uint64(offset))
	if err != nil {
		return nil, err
	}

	result := make([]dto.EquipmentHistoryDTO, 0, len(items))
	for _, item := range items {
		result = append(result, newEquipmentHistoryDTO(item))
	}
	return result, nil
}

func newEquipmentHistoryDTO(item repositories.EquipmentHistoryItem) dto.EquipmentHistoryDTO {
	fio := "Неизвестный пользователь"
	if item.ActorFio.Valid {
		fio = item.ActorFio.String
	}

	res := dto.EquipmentHistoryDTO{
		ID:            item.ID,
		EquipmentID:   item.EquipmentID,
		EquipmentName: item.EquipmentName,
		Action:        item.Action,
		Actor:         dto.ShortUserDTO{ID: item.UserID, Fio: fio},
		Detail:        nullStringPtr(item.Detail),
		OldValue:      nullStringPtr(item.OldValue),
		NewValue:      nullStringPtr(item.NewValue),
		CreatedAt:     item.CreatedAt.Format("02.01.2006 / 15:04"),
	}

	for _, ch := range item.Changes {
		res.Changes = append(res.Changes, dto.FieldChangeDTO{Field: ch.Field, Old: ch.Old, New: ch.New})
	}

	if item.EventID != nil {
		event := &dto.HistoryEventDTO{
			ID:       *item.EventID,
			Name:     item.EventName.String,
			Location: nullStringPtr(item.EventLocation),
		}
		if item.EventDate != nil {
			event.Date = item.EventDate.Format("02.01.2006")
		}
		res.Event = event
	}

	return res
}
