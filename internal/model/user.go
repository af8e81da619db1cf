package model

import "time"

// Role determines which dashboard and operations a user may reach.
type Role string

const (
	RoleClient  Role = "client"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// User represents a bank user. Users are never deleted; admins may
// block and unblock them.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'client';index"`
	Name         string    `json:"name" gorm:"size:255"`
	Email        string    `json:"email" gorm:"size:255"`
	IsBlocked    bool      `json:"is_blocked" gorm:"default:false;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Accounts []Account `json:"accounts,omitempty" gorm:"foreignKey:OwnerUsername;references:Username"`
}
