package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"rental-system/internal/authz"
)

// Администратор получает суперправо, менеджер работает со всем, кроме
// удаления, кладовщик видит склад без цен.
var rolePermissionCodes = map[string][]string{
	"Администратор": {authz.Superuser},
	"Менеджер": {
		authz.EquipmentCreate, authz.EquipmentView, authz.EquipmentUpdate,
		authz.EquipmentPricesView, authz.EquipmentHistoryView, authz.EquipmentHistoryCreate,
		authz.EventsCreate, authz.EventsView, authz.EventsUpdate,
		authz.CatalogsCreate, authz.CatalogsView, authz.CatalogsUpdate,
		authz.ReportsView,
	},
	"Кладовщик": {
		authz.EquipmentView, authz.EquipmentHistoryView, authz.EquipmentHistoryCreate,
		authz.EventsView, authz.CatalogsView,
	},
}

func seedRolePermissions(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение связей ролей и прав...")

	for roleName, codes := range rolePermissionCodes {
		var roleID uint64
		if err := db.QueryRow(ctx, "SELECT id FROM roles WHERE name = $1", roleName).Scan(&roleID); err != nil {
			return fmt.Errorf("не найдена роль %q: %w", roleName, err)
		}

		for _, code := range codes {
			var permissionID uint64
			if err := db.QueryRow(ctx, "SELECT id FROM permissions WHERE code = $1", code).Scan(&permissionID); err != nil {
				return fmt.Errorf("не найдено право %q: %w", code, err)
			}
			_, err := db.Exec(ctx,
				"INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
				roleID, permissionID,
			)
			if err != nil {
				return fmt.Errorf("не удалось связать роль %q с правом %q: %w", roleName, code, err)
			}
		}
	}
	return nil
}
