package models

import (
	"time"

	"github.com/google/uuid"
)

type WorkingHours struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarberID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_barber_weekday;not null" json:"barber_id"`

	Weekday   int    `gorm:"uniqueIndex:idx_barber_weekday" json:"weekday"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	IsWorking bool   `json:"is_working"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
