package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rental-system/internal/entities"
	apperrors "rental-system/pkg/errors"
)

func TestEquipmentRepository_CreatedRecordAppearsInList(t *testing.T) {
	pool := requireTestDB(t)
	repo := NewEquipmentRepository(pool, zap.NewNop())
	txManager := NewTxManager(pool)
	ctx := context.Background()

	var id uint64
	err := txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		id, txErr = repo.CreateEquipmentInTx(ctx, tx, &entities.Equipment{
			Name:        "Колонка JBL EON715",
			RentalPrice: 1500,
			Owned:       true,
		})
		return txErr
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	list, err := repo.GetAllEquipments(ctx)
	require.NoError(t, err)

	found := false
	for _, e := range list {
		if e.ID == id {
			found = true
			assert.Equal(t, "Колонка JBL EON715", e.Name)
			assert.Equal(t, float64(1500), e.RentalPrice)
		}
	}
	assert.True(t, found, "созданная запись должна присутствовать в списке")
}

func TestEquipmentRepository_DeleteMissingIDIsNotFound(t *testing.T) {
	pool := requireTestDB(t)
	repo := NewEquipmentRepository(pool, zap.NewNop())

	err := repo.DeleteEquipment(context.Background(), 999999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
