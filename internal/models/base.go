package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (b *Barbershop) BeforeCreate(_ *gorm.DB) error   { assignID(&b.ID); return nil }
func (b *Barber) BeforeCreate(_ *gorm.DB) error       { assignID(&b.ID); return nil }
func (s *Service) BeforeCreate(_ *gorm.DB) error      { assignID(&s.ID); return nil }
func (b *Booking) BeforeCreate(_ *gorm.DB) error      { assignID(&b.ID); return nil }
func (u *User) BeforeCreate(_ *gorm.DB) error         { assignID(&u.ID); return nil }
func (w *WorkingHours) BeforeCreate(_ *gorm.DB) error { assignID(&w.ID); return nil }
func (a *AuditLog) BeforeCreate(_ *gorm.DB) error     { assignID(&a.ID); return nil }
