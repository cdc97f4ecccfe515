package dto

type CreateEquipmentDTO struct {
	Name               string  `json:"name" validate:"required"`
	Brand              *string `json:"brand,omitempty"`
	Model              *string `json:"model,omitempty"`
	SerialNumber       *string `json:"serial_number,omitempty"`
	RentalPrice        float64 `json:"rental_price" validate:"gte=0"`
	InvestmentPrice    float64 `json:"investment_price" validate:"gte=0"`
	WeightKg           float64 `json:"weight_kg" validate:"gte=0"`
	Location           *string `json:"location,omitempty"`
	Owned              bool    `json:"owned"`
	OutOfService       bool    `json:"out_of_service"`
	OutOfServiceReason *string `json:"out_of_service_reason,omitempty"`
	CategoryID         *uint64 `json:"category_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateEquipmentDTO struct {
	Name               *string  `json:"name,omitempty"               validate:"omitempty,min=1"`
	Brand              *string  `json:"brand,omitempty"              validate:"omitempty"`
	Model              *string  `json:"model,omitempty"              validate:"omitempty"`
	SerialNumber       *string  `json:"serial_number,omitempty"      validate:"omitempty"`
	RentalPrice        *float64 `json:"rental_price,omitempty"       validate:"omitempty,gte=0"`
	InvestmentPrice    *float64 `json:"investment_price,omitempty"   validate:"omitempty,gte=0"`
	WeightKg           *float64 `json:"weight_kg,omitempty"          validate:"omitempty,gte=0"`
	Location           *string  `json:"location,omitempty"           validate:"omitempty"`
	Owned              *bool    `json:"owned,omitempty"              validate:"omitempty"`
	OutOfService       *bool    `json:"out_of_service,omitempty"     validate:"omitempty"`
	OutOfServiceReason *string  `json:"out_of_service_reason,omitempty" validate:"omitempty"`
	CategoryID         *uint64  `json:"category_id,omitempty"        validate:"omitempty,gt=0"`
}

// EquipmentDTO — ответное представление. Цены отдаются строками,
// чтобы на границе их можно было заменить заглушкой для ролей без доступа.
type EquipmentDTO struct {
	ID                 uint64  `json:"id"`
	Name               string  `json:"name"`
	Brand              *string `json:"brand,omitempty"`
	Model              *string `json:"model,omitempty"`
	SerialNumber       *string `json:"serial_number,omitempty"`
	RentalPrice        string  `json:"rental_price"`
	InvestmentPrice    string  `json:"investment_price"`
	WeightKg           float64 `json:"weight_kg"`
	Location           *string `json:"location,omitempty"`
	Owned              bool    `json:"owned"`
	OutOfService       bool    `json:"out_of_service"`
	OutOfServiceReason *string `json:"out_of_service_reason,omitempty"`
	CategoryID         *uint64 `json:"category_id,omitempty"`
	PhotoURL           *string `json:"photo_url,omitempty"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

type ShortEquipmentDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
