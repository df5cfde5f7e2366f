package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Notification is one entry of the dashboard notification feed.
type Notification struct {
	ID        uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID             `gorm:"type:uuid;not null;index" json:"user_id"`
	Actor     string                `gorm:"size:255" json:"actor"`
	Type      enum.NotificationType `gorm:"default:1" json:"type"`
	Message   string                `gorm:"type:text;not null" json:"message"`
	Details   string                `gorm:"type:text" json:"details"`
	Read      bool                  `gorm:"default:false" json:"read"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	DeletedAt gorm.DeletedAt        `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new notification
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
