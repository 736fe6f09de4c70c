package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StationTypeAC = "AC"
	StationTypeDC = "DC"
)

const (
	StationStatusActive      = "active"
	StationStatusInactive    = "inactive"
	StationStatusMaintenance = "maintenance"
)

type ChargingStation struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Location string    `gorm:"size:255;not null" json:"location"`
	Type     string    `gorm:"size:2;not null" json:"type"`

	TotalSlots     int    `gorm:"not null" json:"total_slots"`
	AvailableSlots int    `gorm:"not null" json:"available_slots"`
	Status         string `gorm:"size:20;not null;default:'active'" json:"status"`

	PricePerHour decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_per_hour"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *ChargingStation) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
