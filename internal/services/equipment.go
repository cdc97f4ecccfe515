package services

import (
	"context"
	"net/http"
	"strconv"
	"strings"
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

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, in dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, in dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) error
	AttachPhoto(ctx context.Context, id uint64, path string) error
}

type EquipmentService struct {
	txManager     repositories.TxManagerInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	historyRepo   repositories.EquipmentHistoryRepositoryInterface
	gatekeeper    *authz.Gatekeeper
	logger        *zap.Logger
}

func NewEquipmentService(
	txManager repositories.TxManagerInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	historyRepo repositories.EquipmentHistoryRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		txManager:     txManager,
		equipmentRepo: equipmentRepo,
		historyRepo:   historyRepo,
		gatekeeper:    gatekeeper,
		logger:        logger,
	}
}

func (s *EquipmentService) authorize(ctx context.Context, permission string) error {
	perms, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return err
	}
	if !s.gatekeeper.Can(perms, permission) {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	list, total, err := s.equipmentRepo.GetEquipments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.EquipmentDTO, 0, len(list))
	for _, e := range list {
		result = append(result, newEquipmentDTO(e))
	}
	return result, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	e, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	res := newEquipmentDTO(*e)
	return &res, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, in dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := s.authorize(ctx, authz.EquipmentCreate); err != nil {
		return nil, err
	}

	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	eq := entities.Equipment{
		Name:               in.Name,
		Brand:              null.StringFromPtr(in.Brand),
		Model:              null.StringFromPtr(in.Model),
		SerialNumber:       null.StringFromPtr(in.SerialNumber),
		RentalPrice:        in.RentalPrice,
		InvestmentPrice:    in.InvestmentPrice,
		WeightKg:           in.WeightKg,
		Location:           null.StringFromPtr(in.Location),
		Owned:              in.Owned,
		OutOfService:       in.OutOfService,
		OutOfServiceReason: null.StringFromPtr(in.OutOfServiceReason),
		CategoryID:         in.CategoryID,
	}

	if err := validateOutOfService(&eq); err != nil {
		return nil, err
	}

	var newID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.equipmentRepo.CreateEquipmentInTx(ctx, tx, &eq)
		if err != nil {
			return err
		}
		newID = id

		entry := &entities.EquipmentHistory{
			EquipmentID:   id,
			EquipmentName: eq.Name,
			UserID:        userID,
			Action:        entities.HistoryActionCreate,
			NewValue:      null.StringFrom(eq.Name),
			CreatedAt:     time.Now(),
		}
		return s.historyRepo.CreateInTx(ctx, tx, entry)
	})
	if err != nil {
		s.logger.Error("Ошибка при создании оборудования", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Оборудование создано", zap.Uint64("id", newID), zap.String("name", eq.Name))
	return s.FindEquipment(ctx, newID)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, in dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := s.authorize(ctx, authz.EquipmentUpdate); err != nil {
		return nil, err
	}

	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	original, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	merged, changes := mergeEquipment(original, in)
	if len(changes) == 0 {
		res := newEquipmentDTO(*original)
		return &res, nil
	}

	if err := validateOutOfService(&merged); err != nil {
		return nil, err
	}

	entries := buildHistoryEntries(original, &merged, changes, userID)

	// Обновление и записи истории — единая транзакция: мутация
	// отслеживаемого поля не может зафиксироваться без своей записи.
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.equipmentRepo.UpdateEquipmentInTx(ctx, tx, &merged); err != nil {
			return err
		}
		for _, entry := range entries {
			if err := s.historyRepo.CreateInTx(ctx, tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Ошибка при обновлении оборудования", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	return s.FindEquipment(ctx, id)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	if err := s.authorize(ctx, authz.EquipmentDelete); err != nil {
		return err
	}
	return s.equipmentRepo.DeleteEquipment(ctx, id)
}

func (s *EquipmentService) AttachPhoto(ctx context.Context, id uint64, path string) error {
	if err := s.authorize(ctx, authz.EquipmentUpdate); err != nil {
		return err
	}
	return s.equipmentRepo.UpdatePhotoPath(ctx, id, path)
}

func validateOutOfService(eq *entities.Equipment) error {
	if eq.OutOfService && strings.TrimSpace(eq.OutOfServiceReason.String) == "" {
		return apperrors.NewHttpError(http.StatusBadRequest, "Для оборудования, выведенного из эксплуатации, требуется причина", nil, nil)
	}
	if !eq.OutOfService {
		eq.OutOfServiceReason = null.String{}
	}
	return nil
}

// mergeEquipment накладывает частичное обновление на запись и собирает
// список фактических изменений по полям.
func mergeEquipment(original *entities.Equipment, upd dto.UpdateEquipmentDTO) (entities.Equipment, []entities.FieldChange) {
	merged := *original
	var changes []entities.FieldChange

	record := func(field, oldVal, newVal string) {
		changes = append(changes, entities.FieldChange{Field: field, Old: oldVal, New: newVal})
	}

	if upd.Name != nil && *upd.Name != merged.Name {
		record("name", merged.Name, *upd.Name)
		merged.Name = *upd.Name
	}
	if upd.Brand != nil && *upd.Brand != merged.Brand.String {
		record("brand", merged.Brand.String, *upd.Brand)
		merged.Brand = null.StringFrom(*upd.Brand)
	}
	if upd.Model != nil && *upd.Model != merged.Model.String {
		record("model", merged.Model.String, *upd.Model)
		merged.Model = null.StringFrom(*upd.Model)
	}
	if upd.SerialNumber != nil && *upd.SerialNumber != merged.SerialNumber.String {
		record("serial_number", merged.SerialNumber.String, *upd.SerialNumber)
		merged.SerialNumber = null.StringFrom(*upd.SerialNumber)
	}
	if upd.RentalPrice != nil && *upd.RentalPrice != merged.RentalPrice {
		record("rental_price", formatPrice(merged.RentalPrice), formatPrice(*upd.RentalPrice))
		merged.RentalPrice = *upd.RentalPrice
	}
	if upd.InvestmentPrice != nil && *upd.InvestmentPrice != merged.InvestmentPrice {
		record("investment_price", formatPrice(merged.InvestmentPrice), formatPrice(*upd.InvestmentPrice))
		merged.InvestmentPrice = *upd.InvestmentPrice
	}
	if upd.WeightKg != nil && *upd.WeightKg != merged.WeightKg {
		record("weight_kg", strconv.FormatFloat(merged.WeightKg, 'f', -1, 64), strconv.FormatFloat(*upd.WeightKg, 'f', -1, 64))
		merged.WeightKg = *upd.WeightKg
	}
	if upd.Location != nil && *upd.Location != merged.Location.String {
		record("location", merged.Location.String, *upd.Location)
		merged.Location = null.StringFrom(*upd.Location)
	}
	if upd.Owned != nil && *upd.Owned != merged.Owned {
		record("owned", strconv.FormatBool(merged.Owned), strconv.FormatBool(*upd.Owned))
		merged.Owned = *upd.Owned
	}
	if upd.OutOfService != nil && *upd.OutOfService != merged.OutOfService {
		record("out_of_service", strconv.FormatBool(merged.OutOfService), strconv.FormatBool(*upd.OutOfService))
		merged.OutOfService = *upd.OutOfService
	}
	if upd.OutOfServiceReason != nil && *upd.OutOfServiceReason != merged.OutOfServiceReason.String {
		record("out_of_service_reason", merged.OutOfServiceReason.String, *upd.OutOfServiceReason)
		merged.OutOfServiceReason = null.StringFrom(*upd.OutOfServiceReason)
	}
	if upd.CategoryID != nil && (merged.CategoryID == nil || *merged.CategoryID != *upd.CategoryID) {
		oldVal := ""
		if merged.CategoryID != nil {
			oldVal = strconv.FormatUint(*merged.CategoryID, 10)
		}
		record("category_id", oldVal, strconv.FormatUint(*upd.CategoryID, 10))
		merged.CategoryID = upd.CategoryID
	}

	return merged, changes
}

// buildHistoryEntries раскладывает изменения по видам записей:
// location — RELOCATION, статус — STATUS_CHANGE, остальное — общий EDIT.
func buildHistoryEntries(original, merged *entities.Equipment, changes []entities.FieldChange, userID uint64) []*entities.EquipmentHistory {
	now := time.Now()
	base := func(action string) *entities.EquipmentHistory {
		return &entities.EquipmentHistory{
			EquipmentID:   merged.ID,
			EquipmentName: merged.Name,
			UserID:        userID,
			Action:        action,
			CreatedAt:     now,
		}
	}

	var entries []*entities.EquipmentHistory
	var editChanges []entities.FieldChange
	hasStatusChange := false

	for _, ch := range changes {
		switch ch.Field {
		case "location":
			entry := base(entities.HistoryActionRelocation)
			entry.OldValue = null.StringFrom(ch.Old)
			entry.NewValue = null.StringFrom(ch.New)
			entry.Detail = null.StringFrom("Оборудование перемещено")
			entries = append(entries, entry)
		case "out_of_service", "out_of_service_reason":
			hasStatusChange = true
		default:
			editChanges = append(editChanges, ch)
		}
	}

	if hasStatusChange {
		entry := base(entities.HistoryActionStatusChange)
		entry.OldValue = null.StringFrom(describeServiceStatus(!original.OutOfService, original.OutOfServiceReason.String))
		entry.NewValue = null.StringFrom(describeServiceStatus(!merged.OutOfService, merged.OutOfServiceReason.String))
		if merged.OutOfService {
			entry.Detail = merged.OutOfServiceReason
		}
		entries = append(entries, entry)
	}

	if len(editChanges) > 0 {
		entry := base(entities.HistoryActionEdit)
		entry.Changes = editChanges
		entries = append(entries, entry)
	}

	return entries
}

func describeServiceStatus(inService bool, reason string) string {
	if inService {
		return "в эксплуатации"
	}
	if reason != "" {
		return "выведено из эксплуатации: " + reason
	}
	return "выведено из эксплуатации"
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func nullStringPtr(ns null.String) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func formatEntityTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02, 15:04:05")
}

func newEquipmentDTO(e entities.Equipment) dto.EquipmentDTO {
	res := dto.EquipmentDTO{
		ID:                 e.ID,
		Name:               e.Name,
		Brand:              nullStringPtr(e.Brand),
		Model:              nullStringPtr(e.Model),
		SerialNumber:       nullStringPtr(e.SerialNumber),
		RentalPrice:        formatPrice(e.RentalPrice),
		InvestmentPrice:    formatPrice(e.InvestmentPrice),
		WeightKg:           e.WeightKg,
		Location:           nullStringPtr(e.Location),
		Owned:              e.Owned,
		OutOfService:       e.OutOfService,
		OutOfServiceReason: nullStringPtr(e.OutOfServiceReason),
		CategoryID:         e.CategoryID,
		CreatedAt:          formatEntityTime(e.CreatedAt),
		UpdatedAt:          formatEntityTime(e.UpdatedAt),
	}
	if e.PhotoPath.Valid {
		url := "/uploads/" + e.PhotoPath.String
		res.PhotoURL = &url
	}
	return res
}
