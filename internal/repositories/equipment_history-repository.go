package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-system/internal/entities"
)

// EquipmentHistoryItem — запись истории, обогащённая данными актора.
type EquipmentHistoryItem struct {
	entities.EquipmentHistory
	ActorFio sql.NullString `db:"actor_fio"`
}

// Репозиторий только добавляет и читает: методов изменения или
// удаления записей истории не существует.
type EquipmentHistoryRepositoryInterface interface {
	Create(ctx context.Context, h *entities.EquipmentHistory) error
	CreateInTx(ctx context.Context, tx pgx.Tx, h *entities.EquipmentHistory) error
	FindByEquipmentID(ctx context.Context, equipmentID uint64, limit, offset uint64) ([]EquipmentHistoryItem, error)
}

type EquipmentHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentHistoryRepository(storage *pgxpool.Pool) EquipmentHistoryRepositoryInterface {
	return &EquipmentHistoryRepository{storage: storage}
}

const historyInsertQuery = `
	INSERT INTO equipment_history (equipment_id, equipment_name, user_id, action, changes, event_id, event_name, event_date, event_location, detail, old_value, new_value, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

func historyInsertArgs(h *entities.EquipmentHistory) ([]interface{}, error) {
	var changes []byte
	if len(h.Changes) > 0 {
		var err error
		changes, err = json.Marshal(h.Changes)
		if err != nil {
			return nil, fmt.Errorf("не удалось сериализовать изменения: %w", err)
		}
	}

	return []interface{}{
		h.EquipmentID, h.EquipmentName, h.UserID, h.Action, changes,
		h.EventID, h.EventName, h.EventDate, h.EventLocation,
		h.Detail, h.OldValue, h.NewValue, h.CreatedAt,
	}, nil
}

func (r *EquipmentHistoryRepository) Create(ctx context.Context, h *entities.EquipmentHistory) error {
	args, err := historyInsertArgs(h)
	if err != nil {
		return err
	}
	_, err = r.storage.Exec(ctx, historyInsertQuery, args...)
	return err
}

func (r *EquipmentHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, h *entities.EquipmentHistory) error {
	args, err := historyInsertArgs(h)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, historyInsertQuery, args...)
	return err
}

// FindByEquipmentID возвращает записи в каноническом порядке:
// по возрастанию времени, при равенстве — по id.
func (r *EquipmentHistoryRepository) FindByEquipmentID(ctx context.Context, equipmentID uint64, limit, offset uint64) ([]EquipmentHistoryItem, error) {
	query := `
		SELECT
			h.id, h.equipment_id, h.equipment_name, h.user_id, h.action, h.changes,
			h.event_id, h.event_name, h.event_date, h.event_location,
			h.detail, h.old_value, h.new_value, h.created_at,
			u.fio AS actor_fio
		FROM equipment_history h
		LEFT JOIN users u ON u.id = h.user_id
		WHERE h.equipment_id = $1
		ORDER BY h.created_at ASC, h.id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.storage.Query(ctx, query, equipmentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []EquipmentHistoryItem
	for rows.Next() {
		var h EquipmentHistoryItem
		var changes []byte
		if err := rows.Scan(
			&h.ID, &h.EquipmentID, &h.EquipmentName, &h.UserID, &h.Action, &changes,
			&h.EventID, &h.EventName, &h.EventDate, &h.EventLocation,
			&h.Detail, &h.OldValue, &h.NewValue, &h.CreatedAt,
			&h.ActorFio,
		); err != nil {
			return nil, err
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &h.Changes); err != nil {
				return nil, fmt.Errorf("не удалось разобрать изменения записи %d: %w", h.ID, err)
			}
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
