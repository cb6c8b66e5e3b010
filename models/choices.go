package models

// Enumerations hold stable identifiers only. Display labels belong to the
// presentation layer.

type ClientStatus string

const (
	ClientStatusNew       ClientStatus = "new"
	ClientStatusActive    ClientStatus = "active"
	ClientStatusCompleted ClientStatus = "completed"
	ClientStatusArchived  ClientStatus = "archived"
)

var ClientStatuses = []ClientStatus{
	ClientStatusNew,
	ClientStatusActive,
	ClientStatusCompleted,
	ClientStatusArchived,
}

func (s ClientStatus) Valid() bool {
	for _, v := range ClientStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Category classifies both services and events (Event.EventType).
type Category string

const (
	CategoryWedding    Category = "wedding"
	CategoryCorporate  Category = "corporate"
	CategoryBirthday   Category = "birthday"
	CategoryConference Category = "conference"
	CategoryOther      Category = "other"
)

var Categories = []Category{
	CategoryWedding,
	CategoryCorporate,
	CategoryBirthday,
	CategoryConference,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type EventStatus string

const (
	EventStatusPlanned    EventStatus = "planned"
	EventStatusConfirmed  EventStatus = "confirmed"
	EventStatusInProgress EventStatus = "in_progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusCancelled  EventStatus = "cancelled"
)

var EventStatuses = []EventStatus{
	EventStatusPlanned,
	EventStatusConfirmed,
	EventStatusInProgress,
	EventStatusCompleted,
	EventStatusCancelled,
}

func (s EventStatus) Valid() bool {
	for _, v := range EventStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Active reports whether the event still counts as work in progress on the
// dashboard.
func (s EventStatus) Active() bool {
	return s == EventStatusPlanned || s == EventStatusConfirmed || s == EventStatusInProgress
}

// Upcoming reports whether the event is listed among upcoming events.
func (s EventStatus) Upcoming() bool {
	return s == EventStatusPlanned || s == EventStatusConfirmed
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}
