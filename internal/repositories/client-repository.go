package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-system/internal/entities"
	"rental-system/internal/infrastructure/bd"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/types"
)

const clientTable = "clients"
const clientFields = "id, name, contact_name, phone, email, created_at, updated_at"

var clientFilterColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

type ClientRepositoryInterface interface {
	GetClients(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error)
	FindClient(ctx context.Context, id uint64) (*entities.Client, error)
	CreateClient(ctx context.Context, client *entities.Client) (uint64, error)
	UpdateClient(ctx context.Context, client *entities.Client) error
	DeleteClient(ctx context.Context, id uint64) error
}

type ClientRepository struct {
	storage *pgxpool.Pool
}

func NewClientRepository(storage *pgxpool.Pool) ClientRepositoryInterface {
	return &ClientRepository{storage: storage}
}

func (r *ClientRepository) GetClients(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := psql.Select(clientFields).From(clientTable)
	builder = bd.ApplySearch(builder, filter.Search, []string{"name", "contact_name", "phone", "email"})
	builder = bd.ApplyListParams(builder, filter, clientFilterColumns)
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

	var list []entities.Client
	for rows.Next() {
		var c entities.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactName, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total uint64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", clientTable)
	if err := r.storage.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *ClientRepository) FindClient(ctx context.Context, id uint64) (*entities.Client, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", clientFields, clientTable)

	var c entities.Client
	err := r.storage.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.ContactName, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) CreateClient(ctx context.Context, client *entities.Client) (uint64, error) {
	query := fmt.Sprintf("INSERT INTO %s (name, contact_name, phone, email) VALUES ($1, $2, $3, $4) RETURNING id", clientTable)

	var id uint64
	if err := r.storage.QueryRow(ctx, query, client.Name, client.ContactName, client.Phone, client.Email).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ClientRepository) UpdateClient(ctx context.Context, client *entities.Client) error {
	query := fmt.Sprintf("UPDATE %s SET name = $1, contact_name = $2, phone = $3, email = $4, updated_at = CURRENT_TIMESTAMP WHERE id = $5", clientTable)

	result, err := r.storage.Exec(ctx, query, client.Name, client.ContactName, client.Phone, client.Email, client.ID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) DeleteClient(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", clientTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
