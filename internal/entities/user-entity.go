package entities

import "rental-system/pkg/types"

type User struct {
	ID           uint64 `json:"id" db:"id"`
	Fio          string `json:"fio" db:"fio"`
	Login        string `json:"login" db:"login"`
	PasswordHash string `json:"-" db:"password_hash"`
	RoleID       uint64 `json:"role_id" db:"role_id"`

	types.BaseEntity
}

type Role struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Permission struct {
	ID   uint64 `json:"id" db:"id"`
	Code string `json:"code" db:"code"`
}
