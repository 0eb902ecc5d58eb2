package models

import (
	"time"

	"gorm.io/gorm"
)

// User model
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"type:varchar(256);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// UserSummary is the compact user payload embedded in the login response.
type UserSummary struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// UserPayload is the full public user payload returned on registration.
type UserPayload struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserSummary `json:"user"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Message string      `json:"message"`
	User    UserPayload `json:"user"`
}

// Migrate function for auto migration
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Product{}, &User{})
}
