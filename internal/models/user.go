package models

import (
	"time"
)

type User struct {
	ID           int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Username     string
	PasswordHash string
	IsActive     bool
	LastLogin    *time.Time // nil until the first successful login
}
