package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var roleNames = []string{"Администратор", "Менеджер", "Кладовщик"}

func seedRoles(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение ролей...")

	for _, name := range roleNames {
		_, err := db.Exec(ctx,
			"INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING",
			name,
		)
		if err != nil {
			return fmt.Errorf("не удалось вставить роль %q: %w", name, err)
		}
	}
	return nil
}
