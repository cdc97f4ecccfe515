package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Действия, фиксируемые в истории оборудования.
const (
	HistoryActionCreate       = "CREATE"
	HistoryActionEdit         = "EDIT"
	HistoryActionEventUse     = "EVENT_USE"
	HistoryActionRelocation   = "RELOCATION"
	HistoryActionStatusChange = "STATUS_CHANGE"
)

// FieldChange — одно изменение поля внутри записи EDIT.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// EquipmentHistory — неизменяемая запись одного перехода состояния.
// Имя оборудования денормализовано, чтобы история переживала переименования.
type EquipmentHistory struct {
	ID            uint64        `db:"id"`
	EquipmentID   uint64        `db:"equipment_id"`
	EquipmentName string        `db:"equipment_name"`
	UserID        uint64        `db:"user_id"`
	Action        string        `db:"action"`
	Changes       []FieldChange `db:"-"`
	EventID       *uint64       `db:"event_id"`
	EventName     null.String   `db:"event_name"`
	EventDate     *time.Time    `db:"event_date"`
	EventLocation null.String   `db:"event_location"`
	Detail        null.String   `db:"detail"`
	OldValue      null.String   `db:"old_value"`
	NewValue      null.String   `db:"new_value"`
	CreatedAt     time.Time     `db:"created_at"`
}
