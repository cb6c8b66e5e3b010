package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is an offering from the catalog that can be booked for events.
type Service struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"size:200;not null" json:"name"`
	Category      Category  `gorm:"size:20;not null;index" json:"category"`
	Description   string    `gorm:"type:text" json:"description"`
	Price         Money     `gorm:"type:numeric(10,2);not null" json:"price"`
	DurationHours int       `gorm:"not null" json:"durationHours"`
	IsAvailable   bool      `gorm:"not null" json:"isAvailable"`
}

func (s *Service) BeforeSave(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if !s.Category.Valid() {
		return invalidChoice("service", "category", s.Category)
	}
	if s.DurationHours < 0 {
		return &ConstraintError{Entity: "service", Field: "duration_hours", Message: "must be zero or positive"}
	}
	s.Price = NewMoney(s.Price.Decimal)
	return nil
}
