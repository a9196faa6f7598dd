package domain

import "time"

type Role string

const (
	RoleGuest Role = "guest"
	RoleStaff Role = "staff"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
