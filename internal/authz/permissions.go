package authz

// --- СПИСОК ВСЕХ ПЕРМИШЕНОВ В СИСТЕМЕ ---

const (
	// Глобальные
	Superuser = "superuser"

	// Оборудование (Equipment)
	EquipmentCreate     = "equipment:create"
	EquipmentView       = "equipment:view"
	EquipmentUpdate     = "equipment:update"
	EquipmentDelete     = "equipment:delete"
	EquipmentPricesView = "equipment:prices:view"

	// История оборудования (Equipment history)
	EquipmentHistoryView   = "equipment:history:view"
	EquipmentHistoryCreate = "equipment:history:create"

	// Мероприятия (Events)
	EventsCreate = "events:create"
	EventsView   = "events:view"
	EventsUpdate = "events:update"
	EventsDelete = "events:delete"

	// Справочники (Catalogs: категории, клиенты)
	CatalogsCreate = "catalogs:create"
	CatalogsView   = "catalogs:view"
	CatalogsUpdate = "catalogs:update"
	CatalogsDelete = "catalogs:delete"

	// Отчеты (Reports)
	ReportsView = "reports:view"
)
