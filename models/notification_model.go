package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationBookingConfirmation = "booking_confirmation"
	NotificationBookingCancellation = "booking_cancellation"
	NotificationBookingReminder     = "booking_reminder"
	NotificationStationUpdate       = "station_update"
	NotificationSystemAlert         = "system_alert"
)

const (
	PriorityLow      = "low"
	PriorityNormal   = "normal"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

const RelatedEntityBooking = "Booking"

type Notification struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipientNIC string    `gorm:"size:20;not null;index" json:"recipient_nic"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Type         string    `gorm:"size:30;not null;index" json:"type"`

	RelatedEntityID   *string `gorm:"size:64;index" json:"related_entity_id"`
	RelatedEntityType *string `gorm:"size:30" json:"related_entity_type"`

	IsRead   bool   `gorm:"default:false" json:"is_read"`
	Priority string `gorm:"size:10;not null;default:'normal'" json:"priority"`

	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at"`

	Meta datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
