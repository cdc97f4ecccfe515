package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"rental-system/internal/entities"
	"rental-system/internal/infrastructure/bd"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/types"
)

const equipmentTable = "equipment"
const equipmentFields = "id, name, brand, model, serial_number, rental_price, investment_price, weight_kg, location, owned, out_of_service, out_of_service_reason, category_id, photo_path, created_at, updated_at"

var equipmentFilterColumns = map[string]string{
	"name":           "name",
	"location":       "location",
	"owned":          "owned",
	"out_of_service": "out_of_service",
	"category_id":    "category_id",
	"created_at":     "created_at",
}

var equipmentSearchColumns = []string{"name", "brand", "model", "serial_number", "location"}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	GetAllEquipments(ctx context.Context) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipmentInTx(ctx context.Context, tx pgx.Tx, eq *entities.Equipment) (uint64, error)
	UpdateEquipmentInTx(ctx context.Context, tx pgx.Tx, eq *entities.Equipment) error
	UpdatePhotoPath(ctx context.Context, id uint64, path string) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Name, &e.Brand, &e.Model, &e.SerialNumber,
		&e.RentalPrice, &e.InvestmentPrice, &e.WeightKg,
		&e.Location, &e.Owned, &e.OutOfService, &e.OutOfServiceReason,
		&e.CategoryID, &e.PhotoPath, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := psql.Select(equipmentFields).From(equipmentTable)
	builder = bd.ApplySearch(builder, filter.Search, equipmentSearchColumns)
	builder = bd.ApplyListParams(builder, filter, equipmentFilterColumns)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("id ASC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []entities.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countBuilder := psql.Select("COUNT(*)").From(equipmentTable)
	countBuilder = bd.ApplySearch(countBuilder, filter.Search, equipmentSearchColumns)
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, equipmentFilterColumns)

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *EquipmentRepository) GetAllEquipments(ctx context.Context) ([]entities.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id ASC", equipmentFields, equipmentTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", equipmentFields, equipmentTable)
	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentRepository) CreateEquipmentInTx(ctx context.Context, tx pgx.Tx, eq *entities.Equipment) (uint64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, brand, model, serial_number, rental_price, investment_price, weight_kg, location, owned, out_of_service, out_of_service_reason, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, equipmentTable)

	var id uint64
	err := tx.QueryRow(ctx, query,
		eq.Name, eq.Brand, eq.Model, eq.SerialNumber,
		eq.RentalPrice, eq.InvestmentPrice, eq.WeightKg,
		eq.Location, eq.Owned, eq.OutOfService, eq.OutOfServiceReason,
		eq.CategoryID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipmentInTx(ctx context.Context, tx pgx.Tx, eq *entities.Equipment) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, brand = $2, model = $3, serial_number = $4, rental_price = $5, investment_price = $6, weight_kg = $7, location = $8, owned = $9, out_of_service = $10, out_of_service_reason = $11, category_id = $12, updated_at = CURRENT_TIMESTAMP
		WHERE id = $13
	`, equipmentTable)

	result, err := tx.Exec(ctx, query,
		eq.Name, eq.Brand, eq.Model, eq.SerialNumber,
		eq.RentalPrice, eq.InvestmentPrice, eq.WeightKg,
		eq.Location, eq.Owned, eq.OutOfService, eq.OutOfServiceReason,
		eq.CategoryID, eq.ID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) UpdatePhotoPath(ctx context.Context, id uint64, path string) error {
	query := fmt.Sprintf("UPDATE %s SET photo_path = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2", equipmentTable)

	result, err := r.storage.Exec(ctx, query, path, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", equipmentTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	// Повторное удаление того же id — это not found, а не no-op.
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
