package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-system/internal/entities"
	apperrors "rental-system/pkg/errors"
)

type UserRepositoryInterface interface {
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByLogin(ctx context.Context, login string) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

const userFields = "id, fio, login, password_hash, role_id, created_at, updated_at"

func (r *UserRepository) scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Fio, &u.Login, &u.PasswordHash, &u.RoleID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	return r.scanUser(r.storage.QueryRow(ctx, "SELECT "+userFields+" FROM users WHERE id = $1", id))
}

func (r *UserRepository) FindUserByLogin(ctx context.Context, login string) (*entities.User, error) {
	return r.scanUser(r.storage.QueryRow(ctx, "SELECT "+userFields+" FROM users WHERE login = $1", login))
}
