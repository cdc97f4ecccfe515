package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-system/internal/entities"
	apperrors "rental-system/pkg/errors"
)

const categoryTable = "categories"
const categoryFields = "id, name, parent_id, created_at, updated_at"

type CategoryRepositoryInterface interface {
	GetCategories(ctx context.Context) ([]entities.Category, error)
	FindCategory(ctx context.Context, id uint64) (*entities.Category, error)
	CreateCategory(ctx context.Context, category *entities.Category) (uint64, error)
	UpdateCategory(ctx context.Context, category *entities.Category) error
	DeleteCategory(ctx context.Context, id uint64) error
}

type CategoryRepository struct {
	storage *pgxpool.Pool
}

func NewCategoryRepository(storage *pgxpool.Pool) CategoryRepositoryInterface {
	return &CategoryRepository{storage: storage}
}

func (r *CategoryRepository) GetCategories(ctx context.Context) ([]entities.Category, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id ASC", categoryFields, categoryTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.Category
	for rows.Next() {
		var c entities.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CategoryRepository) FindCategory(ctx context.Context, id uint64) (*entities.Category, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", categoryFields, categoryTable)

	var c entities.Category
	err := r.storage.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category *entities.Category) (uint64, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, parent_id) VALUES ($1, $2) RETURNING id", categoryTable)

	var id uint64
	if err := r.storage.QueryRow(ctx, query, category.Name, category.ParentID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category *entities.Category) error {
	query := fmt.Sprintf("UPDATE %s SET name = $1, parent_id = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3", categoryTable)

	result, err := r.storage.Exec(ctx, query, category.Name, category.ParentID, category.ID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", categoryTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
