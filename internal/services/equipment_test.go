package services

import (
	"errors"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rental-system/internal/authz"
	"rental-system/internal/dto"
	"rental-system/internal/entities"
	apperrors "rental-system/pkg/errors"
)

func newEquipmentServiceForTest(eqRepo *fakeEquipmentRepo, histRepo *fakeHistoryRepo) EquipmentServiceInterface {
	return NewEquipmentService(&fakeTxManager{}, eqRepo, histRepo, authz.NewGatekeeper(), zap.NewNop())
}

func managerPerms() map[string]bool {
	return map[string]bool{
		authz.EquipmentCreate:     true,
		authz.EquipmentView:       true,
		authz.EquipmentUpdate:     true,
		authz.EquipmentDelete:     true,
		authz.EquipmentPricesView: true,
	}
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func TestCreateEquipmentWritesCreateHistoryEntry(t *testing.T) {
	eqRepo := newFakeEquipmentRepo()
	histRepo := &fakeHistoryRepo{}
	svc := newEquipmentServiceForTest(eqRepo, histRepo)
	ctx := authCtx(7, managerPerms())

	res, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{
		Name:        "Колонка JBL",
		RentalPrice: 150.5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Колонка JBL", res.Name)
	assert.Equal(t, "150.50", res.RentalPrice)

	require.Len(t, histRepo.entries, 1)
	entry := histRepo.entries[0]
	assert.Equal(t, entities.HistoryActionCreate, entry.Action)
	assert.Equal(t, res.ID, entry.EquipmentID)
	assert.Equal(t, uint64(7), entry.UserID)
	assert.Equal(t, "Колонка JBL", entry.EquipmentName)
}

func TestCreateEquipmentOutOfServiceRequiresReason(t *testing.T) {
	svc := newEquipmentServiceForTest(newFakeEquipmentRepo(), &fakeHistoryRepo{})
	ctx := authCtx(7, managerPerms())

	_, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{
		Name:         "Сломанный свет",
		OutOfService: true,
	})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestCreateEquipmentForbiddenWithoutPermission(t *testing.T) {
	svc := newEquipmentServiceForTest(newFakeEquipmentRepo(), &fakeHistoryRepo{})
	ctx := authCtx(7, map[string]bool{authz.EquipmentView: true})

	_, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{Name: "Пульт"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdateEquipmentLocationChangeWritesRelocation(t *testing.T) {
	eqRepo := newFakeEquipmentRepo()
	eqRepo.add(entities.Equipment{Name: "Прожектор", Location: null.StringFrom("Склад А")})
	histRepo := &fakeHistoryRepo{}
	svc := newEquipmentServiceForTest(eqRepo, histRepo)
	ctx := authCtx(3, managerPerms())

	_, err := svc.UpdateEquipment(ctx, 1, dto.UpdateEquipmentDTO{Location: strPtr("Склад Б")})
	require.NoError(t, err)

	require.Len(t, histRepo.entries, 1)
	entry := histRepo.entries[0]
	assert.Equal(t, entities.HistoryActionRelocation, entry.Action)
	assert.Equal(t, "Склад А", entry.OldValue.String)
	assert.Equal(t, "Склад Б", entry.NewValue.String)
}

func TestUpdateEquipmentStatusChangeWritesStatusChange(t *testing.T) {
	eqRepo := newFakeEquipmentRepo()
	eqRepo.add(entities.Equipment{Name: "Генератор"})
	histRepo := &fakeHistoryRepo{}
	svc := newEquipmentServiceForTest(eqRepo, histRepo)
	ctx := authCtx(3, managerPerms())

	_, err := svc.UpdateEquipment(ctx, 1, dto.UpdateEquipmentDTO{
		OutOfService:       boolPtr(true),
		OutOfServiceReason: strPtr("сгорела обмотка"),
	})
	require.NoError(t, err)

	require.Len(t, histRepo.entries, 1)
	entry := histRepo.entries[0]
	assert.Equal(t, entities.HistoryActionStatusChange, entry.Action)
	assert.Equal(t, "в эксплуатации", entry.OldValue.String)
	assert.Equal(t, "выведено из эксплуатации: сгорела обмотка", entry.NewValue.String)
	assert.Equal(t, "сгорела обмотка", entry.Detail.String)
}

func TestUpdateEquipmentFieldEditWritesEditWithChanges(t *testing.T) {
	eqRepo := newFakeEquipmentRepo()
	eqRepo.add(entities.Equipment{Name: "Микшер", RentalPrice: 100})
	histRepo := &fakeHistoryRepo{}
	svc := newEquipmentServiceForTest(eqRepo, histRepo)
	ctx := authCtx(3, managerPerms())

	_, err := svc.UpdateEquipment(ctx, 1, dto.UpdateEquipmentDTO{
		Name:        strPtr("Микшер Behringer"),
		RentalPrice: f64Ptr(120),
	})
	require.NoError(t, err)

	require.Len(t, histRepo.entries, 1)
	entry := histRepo.entries[0]
	assert.Equal(t, entities.HistoryActionEdit, entry.Action)
	require.Len(t, entry.Changes, 2)
	assert.Equal(t, "name", entry.Changes[0].Field)
	assert.Equal(t, "Микшер", entry.Changes[0].Old)
	assert.Equal(t, "Микшер Behringer", entry.Changes[0].New)
	assert.Equal(t, "rental_price", entry.Changes[1].Field)
	assert.Equal(t, "100.00", entry.Changes[1].Old)
	assert.Equal(t, "120.00", entry.Changes[1].New)
}

func TestUpdateEquipmentNoopSkipsHistory(t *testing.T) {
	eqRepo := newFakeEquipmentRepo()
	eqRepo.add(entities.Equipment{Name: "Стойка", RentalPrice: 10})
	histRepo := &fakeHistoryRepo{}
	svc := newEquipmentServiceForTest(eqRepo, histRepo)
	ctx := authCtx(3, managerPerms())

	res, err := svc.UpdateEquipment(ctx, 1, dto.UpdateEquipmentDTO{Name: strPtr("Стойка")})
	require.NoError(t, err)
	assert.Equal(t, "Стойка", res.Name)
	assert.Empty(t, histRepo.entries)
}

func TestUpdateEquipmentHistoryFailureAbortsUpdate(t *testing.T) {
	eqRepo := newFakeEquipmentRepo()
	eqRepo.add(entities.Equipment{Name: "Кабель"})
	histRepo := &fakeHistoryRepo{createErr: errors.New("история недоступна")}
	svc := newEquipmentServiceForTest(eqRepo, histRepo)
	ctx := authCtx(3, managerPerms())

	_, err := svc.UpdateEquipment(ctx, 1, dto.UpdateEquipmentDTO{Name: strPtr("Кабель XLR")})
	require.Error(t, err)
}

func TestDeleteEquipmentMissingIDIsNotFound(t *testing.T) {
	svc := newEquipmentServiceForTest(newFakeEquipmentRepo(), &fakeHistoryRepo{})
	ctx := authCtx(3, managerPerms())

	err := svc.DeleteEquipment(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateEquipmentMissingIDIsNotFound(t *testing.T) {
	svc := newEquipmentServiceForTest(newFakeEquipmentRepo(), &fakeHistoryRepo{})
	ctx := authCtx(3, managerPerms())

	_, err := svc.UpdateEquipment(ctx, 42, dto.UpdateEquipmentDTO{Name: strPtr("Нет такого")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
