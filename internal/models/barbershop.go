package models

import (
	"time"

	"github.com/google/uuid"
)

type Barbershop struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Address      string     `gorm:"size:255" json:"address"`
	Phone        string     `gorm:"size:20" json:"phone"`
	AdminID      *uuid.UUID `gorm:"type:uuid;index" json:"admin_id"`
	Subdomain    *string    `gorm:"size:63;uniqueIndex:ux_barbershops_subdomain" json:"subdomain,omitempty"`
	CustomDomain *string    `gorm:"size:255;uniqueIndex:ux_barbershops_custom_domain" json:"custom_domain,omitempty"`
	Timezone     string     `gorm:"size:64" json:"timezone"`

	Services []Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Barbers  []Barber  `gorm:"many2many:barber_barbershops;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
