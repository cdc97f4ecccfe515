package seeders

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"rental-system/pkg/utils"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание пользователя 'admin'...")

	login := "admin"
	var userID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE login = $1", login).Scan(&userID)
	if err == nil {
		log.Println("    - Пользователь admin уже существует. Пропускаем.")
		return nil
	}

	var roleID uint64
	if err := db.QueryRow(ctx, "SELECT id FROM roles WHERE name = 'Администратор' LIMIT 1").Scan(&roleID); err != nil {
		return fmt.Errorf("не найдена роль 'Администратор': %w", err)
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
		log.Println("    - ADMIN_PASSWORD не задан, используется пароль по умолчанию")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("не удалось захэшировать пароль: %w", err)
	}

	_, err = db.Exec(ctx,
		"INSERT INTO users (fio, login, password_hash, role_id) VALUES ($1, $2, $3, $4)",
		"Администратор системы", login, hash, roleID,
	)
	if err != nil {
		return fmt.Errorf("не удалось создать администратора: %w", err)
	}
	return nil
}
