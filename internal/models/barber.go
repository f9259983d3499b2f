package models

import (
	"time"

	"github.com/google/uuid"
)

type Barber struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Email       string     `gorm:"size:100" json:"email"`
	Phone       string     `gorm:"size:20" json:"phone"`
	Specialties []string   `gorm:"serializer:json" json:"specialties"`

	Barbershops  []Barbershop   `gorm:"many2many:barber_barbershops;" json:"barbershops,omitempty"`
	WorkingHours []WorkingHours `gorm:"constraint:OnDelete:CASCADE;" json:"working_hours,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
