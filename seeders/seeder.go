package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCore наполняет справочники прав и ролей.
func SeedCore(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Запуск наполнения базовых справочников...")

	if err := seedPermissions(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения прав: %v", err)
	}
	if err := seedRoles(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения ролей: %v", err)
	}
	if err := seedRolePermissions(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения связей ролей и прав: %v", err)
	}

	log.Println("Наполнение базовых справочников завершено")
}

// SeedAdmin создаёт суперпользователя, если его ещё нет.
func SeedAdmin(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Запуск создания администратора...")

	if err := seedAdminUser(ctx, db); err != nil {
		log.Fatalf("Ошибка создания администратора: %v", err)
	}

	log.Println("Создание администратора завершено")
}
