package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"unique"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"unique"`
	Role      string `json:"role"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}

type UserSession struct {
	gorm.Model
	UserID         uint64    `json:"user_id" gorm:"index"`
	SessionID      string    `json:"session_id" gorm:"index"`
	DeviceID       string    `json:"device_id"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
	IsActive       bool      `json:"is_active"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type LoginLog struct {
	gorm.Model
	UserID        *uint64    `json:"user_id"`
	SessionID     string     `json:"session_id"`
	Username      string     `json:"username"`
	LoginAt       *time.Time `json:"login_at"`
	LogoutAt      *time.Time `json:"logout_at"`
	IPAddress     string     `json:"ip_address"`
	UserAgent     string     `json:"user_agent"`
	LoginStatus   string     `json:"login_status"`
	FailureReason *string    `json:"failure_reason"`
}
