package entities

import (
	"github.com/aarondl/null/v8"

	"rental-system/pkg/types"
)

type Client struct {
	ID          uint64      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	ContactName null.String `json:"contact_name" db:"contact_name"`
	Phone       null.String `json:"phone" db:"phone"`
	Email       null.String `json:"email" db:"email"`

	types.BaseEntity
}
