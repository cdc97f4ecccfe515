package entities

import "rental-system/pkg/types"

type Category struct {
	ID       uint64  `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	ParentID *uint64 `json:"parent_id" db:"parent_id"`

	types.BaseEntity
}
