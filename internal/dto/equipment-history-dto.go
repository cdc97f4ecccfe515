package dto

import "time"

type FieldChangeDTO struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

type HistoryEventDTO struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Date     string  `json:"date"`
	Location *string `json:"location,omitempty"`
}

// CreateEquipmentHistoryDTO — тело ручного добавления записи истории.
// Поля, обязательные для конкретного действия, проверяются в сервисе.
type CreateEquipmentHistoryDTO struct {
	Action        string           `json:"action" validate:"required"`
	Changes       []FieldChangeDTO `json:"changes,omitempty"`
	EventID       *uint64          `json:"event_id,omitempty"`
	EventName     *string          `json:"event_name,omitempty"`
	EventDate     *time.Time       `json:"event_date,omitempty"`
	EventLocation *string          `json:"event_location,omitempty"`
	Detail        *string          `json:"detail,omitempty"`
	OldValue      *string          `json:"old_value,omitempty"`
	NewValue      *string          `json:"new_value,omitempty"`
	CreatedAt     *time.Time       `json:"created_at,omitempty"`
}

type EquipmentHistoryDTO struct {
	ID            uint64           `json:"id"`
	EquipmentID   uint64           `json:"equipment_id"`
	EquipmentName string           `json:"equipment_name"`
	Action        string           `json:"action"`
	Actor         ShortUserDTO     `json:"actor"`
	Changes       []FieldChangeDTO `json:"changes,omitempty"`
	Event         *HistoryEventDTO `json:"event,omitempty"`
	Detail        *string          `json:"detail,omitempty"`
	OldValue      *string          `json:"old_value,omitempty"`
	NewValue      *string          `json:"new_value,omitempty"`
	CreatedAt     string           `json:"created_at"`
}
