package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event belongs to exactly one client and is removed together with it.
type Event struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"clientId"`
	Client      *Client     `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"client,omitempty"`
	Name        string      `gorm:"size:200;not null" json:"name"`
	EventType   Category    `gorm:"size:20;not null;index" json:"eventType"`
	Date        time.Time   `gorm:"not null;index" json:"date"`
	Location    string      `gorm:"size:300;not null" json:"location"`
	Budget      Money       `gorm:"type:numeric(12,2);not null" json:"budget"`
	GuestCount  int         `gorm:"not null" json:"guestCount"`
	Status      EventStatus `gorm:"size:20;not null;index" json:"status"`
	Description string      `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"<-:create;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (e *Event) BeforeSave(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = EventStatusPlanned
	}
	if !e.Status.Valid() {
		return invalidChoice("event", "status", e.Status)
	}
	if !e.EventType.Valid() {
		return invalidChoice("event", "event_type", e.EventType)
	}
	e.Budget = NewMoney(e.Budget.Decimal)
	return nil
}

// EventService books a catalog service for an event. Price is copied from the
// service when the booking is made and does not follow later price changes.
type EventService struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index" json:"eventId"`
	Event     *Event    `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"serviceId"`
	Service   *Service  `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"service,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     Money     `gorm:"type:numeric(10,2);not null" json:"price"`
}

func (es *EventService) TotalPrice() Money {
	return es.Price.Times(es.Quantity)
}

func (es *EventService) BeforeSave(tx *gorm.DB) error {
	if es.ID == uuid.Nil {
		es.ID = uuid.New()
	}
	if es.Quantity == 0 {
		es.Quantity = 1
	}
	if es.Quantity < 0 {
		return &ConstraintError{Entity: "event_service", Field: "quantity", Message: "must be positive"}
	}
	es.Price = NewMoney(es.Price.Decimal)
	return nil
}

// EventServicesTotal sums TotalPrice over bookings.
func EventServicesTotal(items []EventService) Money {
	total := ZeroMoney()
	for i := range items {
		total = total.Plus(items[i].TotalPrice())
	}
	return total
}
