package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleBackoffice = "backoffice"
	RoleOperator   = "operator"
	RoleOwner      = "owner"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	NIC       string    `gorm:"size:20;not null;unique" json:"nic"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Email     string    `gorm:"size:255;not null;unique" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'owner'" json:"role"`

	IsActive              bool    `gorm:"default:true" json:"is_active"`
	ReactivationRequested bool    `gorm:"default:false" json:"reactivation_requested"`
	PhoneNumber           *string `gorm:"size:20" json:"phone_number"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
