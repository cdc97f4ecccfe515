package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"rental-system/internal/authz"
)

var permissionDescriptions = map[string]string{
	authz.Superuser:              "Полный доступ ко всем операциям",
	authz.EquipmentCreate:        "Создание оборудования",
	authz.EquipmentView:          "Просмотр оборудования",
	authz.EquipmentUpdate:        "Редактирование оборудования",
	authz.EquipmentDelete:        "Удаление оборудования",
	authz.EquipmentPricesView:    "Просмотр цен оборудования",
	authz.EquipmentHistoryView:   "Просмотр истории оборудования",
	authz.EquipmentHistoryCreate: "Добавление записей в историю оборудования",
	authz.EventsCreate:           "Создание мероприятий",
	authz.EventsView:             "Просмотр мероприятий",
	authz.EventsUpdate:           "Редактирование мероприятий",
	authz.EventsDelete:           "Удаление мероприятий",
	authz.CatalogsCreate:         "Создание записей в справочниках",
	authz.CatalogsView:           "Просмотр справочников",
	authz.CatalogsUpdate:         "Редактирование справочников",
	authz.CatalogsDelete:         "Удаление записей из справочников",
	authz.ReportsView:            "Выгрузка отчётов",
}

func seedPermissions(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение прав...")

	for code, description := range permissionDescriptions {
		_, err := db.Exec(ctx,
			"INSERT INTO permissions (code, description) VALUES ($1, $2) ON CONFLICT (code) DO NOTHING",
			code, description,
		)
		if err != nil {
			return fmt.Errorf("не удалось вставить право %q: %w", code, err)
		}
	}
	return nil
}
