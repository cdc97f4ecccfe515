package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rental-system/internal/authz"
	"rental-system/internal/dto"
	"rental-system/internal/entities"
	apperrors "rental-system/pkg/errors"
)

func newHistoryServiceForTest(eqRepo *fakeEquipmentRepo, histRepo *fakeHistoryRepo) EquipmentHistoryServiceInterface {
	return NewEquipmentHistoryService(histRepo, eqRepo, authz.NewGatekeeper(), zap.NewNop())
}

func historyPerms() map[string]bool {
	return map[string]bool{
		authz.EquipmentHistoryView:   true,
		authz.EquipmentHistoryCreate: true,
	}
}

func TestAppendEntryUnknownActionRejected(t *testing.T) {
	eqRepo := newFakeEquipmentRepo()
	eqRepo.add(entities.Equipment{Name: "Проектор"})
	svc := newHistoryServiceForTest(eqRepo, &fakeHistoryRepo{})
	ctx := authCtx(1, historyPerms())

	err := svc.AppendEntry(ctx, 1, dto.CreateEquipmentHistoryDTO{Action: "REPAINT"})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestAppendEntryEditRequiresChanges(t *testing.T) {
	eqRepo := newFakeEquipmentRepo()
	eqRepo.add(entities.Equipment{Name: "Проектор"})
	svc := newHistoryServiceForTest(eqRepo, &fakeHistoryRepo{})
	ctx := authCtx(1, historyPerms())

	err := svc.AppendEntry(ctx, 1, dto.CreateEquipmentHistoryDTO{Action: entities.HistoryActionEdit})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestAppendEntryEventUseRequiresEventID(t *testing.T) {
	eqRepo := newFakeEquipmentRepo()
	eqRepo.add(entities.Equipment{Name: "Проектор"})
	svc := newHistoryServiceForTest(eqRepo, &fakeHistoryRepo{})
	ctx := authCtx(1, historyPerms())

	err := svc.AppendEntry(ctx, 1, dto.CreateEquipmentHistoryDTO{Action: entities.HistoryActionEventUse})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestAppendEntryUnknownEquipmentIsNotFound(t *testing.T) {
	svc := newHistoryServiceForTest(newFakeEquipmentRepo(), &fakeHistoryRepo{})
	ctx := authCtx(1, historyPerms())

	err := svc.AppendEntry(ctx, 99, dto.CreateEquipmentHistoryDTO{Action: entities.HistoryActionCreate})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAppendEntryForbiddenWithoutPermission(t *testing.T) {
	eqRepo := newFakeEquipmentRepo()
	eqRepo.add(entities.Equipment{Name: "Проектор"})
	svc := newHistoryServiceForTest(eqRepo, &fakeHistoryRepo{})
	ctx := authCtx(1, map[string]bool{authz.EquipmentHistoryView: true})

	err := svc.AppendEntry(ctx, 1, dto.CreateEquipmentHistoryDTO{Action: entities.HistoryActionCreate})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAppendEntryDenormalizesNameAndSetsTimestamp(t *testing.T) {
	eqRepo := newFakeEquipmentRepo()
	eqRepo.add(entities.Equipment{Name: "Дым-машина"})
	histRepo := &fakeHistoryRepo{}
	svc := newHistoryServiceForTest(eqRepo, histRepo)
	ctx := authCtx(5, historyPerms())

	before := time.Now()
	err := svc.AppendEntry(ctx, 1, dto.CreateEquipmentHistoryDTO{
		Action: entities.HistoryActionRelocation,
		Detail: strPtr("Перевезена на площадку"),
	})
	require.NoError(t, err)

	require.Len(t, histRepo.entries, 1)
	entry := histRepo.entries[0]
	assert.Equal(t, "Дым-машина", entry.EquipmentName)
	assert.Equal(t, uint64(5), entry.UserID)
	assert.False(t, entry.CreatedAt.Before(before))
}

func TestAppendEntryHonorsExplicitTimestamp(t *testing.T) {
	eqRepo := newFakeEquipmentRepo()
	eqRepo.add(entities.Equipment{Name: "Дым-машина"})
	histRepo := &fakeHistoryRepo{}
	svc := newHistoryServiceForTest(eqRepo, histRepo)
	ctx := authCtx(5, historyPerms())

	explicit := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	err := svc.AppendEntry(ctx, 1, dto.CreateEquipmentHistoryDTO{
		Action:    entities.HistoryActionCreate,
		CreatedAt: &explicit,
	})
	require.NoError(t, err)
	require.Len(t, histRepo.entries, 1)
	assert.True(t, histRepo.entries[0].CreatedAt.Equal(explicit))
}

func TestGetHistoryUnknownEquipmentIsNotFound(t *testing.T) {
	svc := newHistoryServiceForTest(newFakeEquipmentRepo(), &fakeHistoryRepo{})
	ctx := authCtx(1, historyPerms())

	_, err := svc.GetHistory(ctx, 99, "", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetHistoryFallsBackToUnknownActor(t *testing.T) {
	eqRepo := newFakeEquipmentRepo()
	eqRepo.add(entities.Equipment{Name: "Сцена"})
	histRepo := &fakeHistoryRepo{}
	svc := newHistoryServiceForTest(eqRepo, histRepo)
	ctx := authCtx(2, historyPerms())

	require.NoError(t, svc.AppendEntry(ctx, 1, dto.CreateEquipmentHistoryDTO{Action: entities.HistoryActionCreate}))

	list, err := svc.GetHistory(ctx, 1, "10", "0")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Неизвестный пользователь", list[0].Actor.Fio)
	assert.Equal(t, uint64(2), list[0].Actor.ID)
}
