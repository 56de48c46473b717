package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AccountRoleHR    = "hr"
	AccountRoleStaff = "staff"
)

// Account is a dashboard login for HR and staff. TokenVersion invalidates
// issued JWTs when a password changes.
type Account struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	Password     string     `gorm:"not null" json:"-"`
	TokenVersion int64      `gorm:"default:1" json:"-"`
	Role         string     `gorm:"default:'staff'" json:"role"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (a *Account) BeforeCreate(tx *gorm.DB) (err error) {
	if a.Password != "" {
		a.Password, err = HashPassword(a.Password)
	}
	return
}
