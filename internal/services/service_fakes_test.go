package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"rental-system/internal/entities"
	"rental-system/internal/repositories"
	"rental-system/pkg/contextkeys"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/types"
)

// authCtx собирает контекст аутентифицированного пользователя, как это
// делает auth-middleware.
func authCtx(userID uint64, perms map[string]bool) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserPermissionsMapKey, perms)
}

// fakeTxManager выполняет fn сразу, без настоящей транзакции.
type fakeTxManager struct {
	err error
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(nil)
}

type fakeEquipmentRepo struct {
	items   map[uint64]*entities.Equipment
	nextID  uint64
	deleted []uint64
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: make(map[uint64]*entities.Equipment), nextID: 1}
}

func (r *fakeEquipmentRepo) add(eq entities.Equipment) *entities.Equipment {
	if eq.ID == 0 {
		eq.ID = r.nextID
	}
	if eq.ID >= r.nextID {
		r.nextID = eq.ID + 1
	}
	r.items[eq.ID] = &eq
	return r.items[eq.ID]
}

func (r *fakeEquipmentRepo) GetEquipments(_ context.Context, _ types.Filter) ([]entities.Equipment, uint64, error) {
	list, err := r.GetAllEquipments(context.Background())
	return list, uint64(len(list)), err
}

func (r *fakeEquipmentRepo) GetAllEquipments(_ context.Context) ([]entities.Equipment, error) {
	list := make([]entities.Equipment, 0, len(r.items))
	for id := uint64(1); id < r.nextID; id++ {
		if eq, ok := r.items[id]; ok {
			list = append(list, *eq)
		}
	}
	return list, nil
}

func (r *fakeEquipmentRepo) FindEquipment(_ context.Context, id uint64) (*entities.Equipment, error) {
	eq, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *eq
	return &copied, nil
}

func (r *fakeEquipmentRepo) CreateEquipmentInTx(_ context.Context, _ pgx.Tx, eq *entities.Equipment) (uint64, error) {
	created := r.add(*eq)
	return created.ID, nil
}

func (r *fakeEquipmentRepo) UpdateEquipmentInTx(_ context.Context, _ pgx.Tx, eq *entities.Equipment) error {
	if _, ok := r.items[eq.ID]; !ok {
		return apperrors.ErrNotFound
	}
	copied := *eq
	r.items[eq.ID] = &copied
	return nil
}

func (r *fakeEquipmentRepo) UpdatePhotoPath(_ context.Context, id uint64, path string) error {
	eq, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	eq.PhotoPath.SetValid(path)
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(_ context.Context, id uint64) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeHistoryRepo struct {
	entries   []*entities.EquipmentHistory
	createErr error
}

func (r *fakeHistoryRepo) Create(_ context.Context, h *entities.EquipmentHistory) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.entries = append(r.entries, h)
	return nil
}

func (r *fakeHistoryRepo) CreateInTx(_ context.Context, _ pgx.Tx, h *entities.EquipmentHistory) error {
	return r.Create(context.Background(), h)
}

func (r *fakeHistoryRepo) FindByEquipmentID(_ context.Context, equipmentID uint64, limit, offset uint64) ([]repositories.EquipmentHistoryItem, error) {
	var items []repositories.EquipmentHistoryItem
	for _, h := range r.entries {
		if h.EquipmentID == equipmentID {
			items = append(items, repositories.EquipmentHistoryItem{EquipmentHistory: *h})
		}
	}
	if offset >= uint64(len(items)) {
		return nil, nil
	}
	items = items[offset:]
	if uint64(len(items)) > limit {
		items = items[:limit]
	}
	return items, nil
}

type fakeCategoryRepo struct {
	categories []entities.Category
}

func (r *fakeCategoryRepo) GetCategories(_ context.Context) ([]entities.Category, error) {
	return r.categories, nil
}

func (r *fakeCategoryRepo) FindCategory(_ context.Context, id uint64) (*entities.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			copied := c
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeCategoryRepo) CreateCategory(_ context.Context, category *entities.Category) (uint64, error) {
	category.ID = uint64(len(r.categories) + 1)
	r.categories = append(r.categories, *category)
	return category.ID, nil
}

func (r *fakeCategoryRepo) UpdateCategory(_ context.Context, category *entities.Category) error {
	for i, c := range r.categories {
		if c.ID == category.ID {
			r.categories[i] = *category
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *fakeCategoryRepo) DeleteCategory(_ context.Context, id uint64) error {
	for i, c := range r.categories {
		if c.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}
