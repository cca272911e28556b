package models

import "time"

// Activity is one line of the append-only audit trail.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	UserID uint `gorm:"index;not null" json:"user_id"`

	Action     string `gorm:"size:50;not null" json:"action"` // created, updated, deleted
	EntityType string `gorm:"size:50;not null" json:"entity_type"`
	EntityID   uint   `gorm:"not null" json:"entity_id"`
	Details    string `gorm:"size:500" json:"details,omitempty"`
}
