package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"rental-system/pkg/types"
)

type Event struct {
	ID       uint64      `json:"id" db:"id"`
	Name     string      `json:"name" db:"name"`
	Date     time.Time   `json:"date" db:"date"`
	Location null.String `json:"location" db:"location"`
	ClientID *uint64     `json:"client_id" db:"client_id"`

	types.BaseEntity

	// Связанные данные (не колонки в таблице)
	Client *Client `json:"-" db:"-"`
}

type EventBooking struct {
	ID          uint64    `json:"id" db:"id"`
	EventID     uint64    `json:"event_id" db:"event_id"`
	EquipmentID uint64    `json:"equipment_id" db:"equipment_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
