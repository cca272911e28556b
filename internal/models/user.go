package models

import "time"

// User is a business account. All clients, invoices, payments and
// settings hang off a user; tenants never see each other's data.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email    string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Role     string `gorm:"size:50;not null;default:'user'" json:"role"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`
}
