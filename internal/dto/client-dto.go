package dto

type CreateClientDTO struct {
	Name        string  `json:"name" validate:"required"`
	ContactName *string `json:"contact_name,omitempty"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
}

type UpdateClientDTO struct {
	Name        *string `json:"name,omitempty"  validate:"omitempty,min=1"`
	ContactName *string `json:"contact_name,omitempty"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,phone"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
}

type ClientDTO struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	ContactName *string `json:"contact_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
