package dto

import "time"

type CreateEventDTO struct {
	Name     string    `json:"name" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
	Location *string   `json:"location,omitempty"`
	ClientID *uint64   `json:"client_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateEventDTO struct {
	Name     *string    `json:"name,omitempty"      validate:"omitempty,min=1"`
	Date     *time.Time `json:"date,omitempty"`
	Location *string    `json:"location,omitempty"`
	ClientID *uint64    `json:"client_id,omitempty" validate:"omitempty,gt=0"`
}

type AssignEquipmentDTO struct {
	EquipmentID uint64 `json:"equipment_id" validate:"required,gt=0"`
}

type EventDTO struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	Location  *string `json:"location,omitempty"`
	ClientID  *uint64 `json:"client_id,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
