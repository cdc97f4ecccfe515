package entities

import (
	"github.com/aarondl/null/v8"

	"rental-system/pkg/types"
)

type Equipment struct {
	ID              uint64      `json:"id" db:"id"`
	Name            string      `json:"name" db:"name"`
	Brand           null.String `json:"brand" db:"brand"`
	Model           null.String `json:"model" db:"model"`
	SerialNumber    null.String `json:"serial_number" db:"serial_number"`
	RentalPrice     float64     `json:"rental_price" db:"rental_price"`
	InvestmentPrice float64     `json:"investment_price" db:"investment_price"`
	WeightKg        float64     `json:"weight_kg" db:"weight_kg"`
	Location        null.String `json:"location" db:"location"`
	Owned           bool        `json:"owned" db:"owned"`
	OutOfService    bool        `json:"out_of_service" db:"out_of_service"`
	// Причина обязательна, пока out_of_service = true.
	OutOfServiceReason null.String `json:"out_of_service_reason" db:"out_of_service_reason"`
	CategoryID         *uint64     `json:"category_id" db:"category_id"`
	PhotoPath          null.String `json:"photo_path" db:"photo_path"`

	types.BaseEntity

	// Запланированные использования (не колонка в таблице)
	Bookings []EventBooking `json:"-" db:"-"`
}
