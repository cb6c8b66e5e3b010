package repository

import (
	"context"
	"fmt"
	"time"

	"eventpro-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	UpcomingEventsLimit = 5
	UpcomingTasksLimit  = 10
	HomeServicesLimit   = 6
	HomeEventsLimit     = 3
)

var (
	activeEventStatuses = []string{
		string(models.EventStatusPlanned),
		string(models.EventStatusConfirmed),
		string(models.EventStatusInProgress),
	}
	upcomingEventStatuses = []string{
		string(models.EventStatusPlanned),
		string(models.EventStatusConfirmed),
	}
)

// Dashboard is a read-only snapshot computed on demand.
type Dashboard struct {
	TotalClients   int64          `json:"totalClients"`
	TotalEvents    int64          `json:"totalEvents"`
	ActiveEvents   int64          `json:"activeEvents"`
	TotalRevenue   models.Money   `json:"totalRevenue"`
	UpcomingEvents []models.Event `json:"upcomingEvents"`
	UpcomingTasks  []models.Task  `json:"upcomingTasks"`
}

func (s *Store) Dashboard(ctx context.Context) (*Dashboard, error) {
	db := s.conn(ctx)
	d := &Dashboard{}

	if err := db.Model(&models.Client{}).Count(&d.TotalClients).Error; err != nil {
		return nil, fmt.Errorf("count clients: %w", err)
	}
	if err := db.Model(&models.Event{}).Count(&d.TotalEvents).Error; err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	if err := db.Model(&models.Event{}).Where("status IN ?", activeEventStatuses).Count(&d.ActiveEvents).Error; err != nil {
		return nil, fmt.Errorf("count active events: %w", err)
	}

	revenue, err := sumBudget(db.Model(&models.Event{}))
	if err != nil {
		return nil, err
	}
	d.TotalRevenue = revenue

	if d.UpcomingEvents, err = s.UpcomingEvents(ctx, UpcomingEventsLimit); err != nil {
		return nil, err
	}
	if d.UpcomingTasks, err = s.UpcomingTasks(ctx, UpcomingTasksLimit); err != nil {
		return nil, err
	}
	return d, nil
}

// UpcomingEvents returns planned or confirmed events by ascending date.
func (s *Store) UpcomingEvents(ctx context.Context, limit int) ([]models.Event, error) {
	events := make([]models.Event, 0, limit)
	err := s.conn(ctx).
		Preload("Client").
		Where("status IN ?", upcomingEventStatuses).
		Order("date").Order("id").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("upcoming events: %w", err)
	}
	return events, nil
}

// UpcomingTasks returns incomplete tasks by ascending due date.
func (s *Store) UpcomingTasks(ctx context.Context, limit int) ([]models.Task, error) {
	tasks := make([]models.Task, 0, limit)
	err := s.conn(ctx).
		Preload("Event").
		Preload("AssignedTo").
		Where("is_completed = ?", false).
		Order("due_date").Order("id").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("upcoming tasks: %w", err)
	}
	return tasks, nil
}

// sumBudget adds up the budget column of q; no rows yields zero.
func sumBudget(q *gorm.DB) (models.Money, error) {
	var total decimal.NullDecimal
	if err := q.Select("SUM(budget)").Row().Scan(&total); err != nil {
		return models.Money{}, fmt.Errorf("sum budget: %w", err)
	}
	if !total.Valid {
		return models.ZeroMoney(), nil
	}
	return models.NewMoney(total.Decimal), nil
}

// Home is the public landing snapshot: a few available services and the
// latest events.
type Home struct {
	Services     []models.Service `json:"services"`
	RecentEvents []models.Event   `json:"recentEvents"`
}

func (s *Store) Home(ctx context.Context) (*Home, error) {
	services, err := s.ListServices(ctx, ServiceFilter{AvailableOnly: true, Page: Page{Limit: HomeServicesLimit}})
	if err != nil {
		return nil, err
	}
	events := make([]models.Event, 0, HomeEventsLimit)
	err = s.conn(ctx).Preload("Client").Order("created_at DESC").Order("id").Limit(HomeEventsLimit).Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	return &Home{Services: services, RecentEvents: events}, nil
}

type CategoryRevenue struct {
	EventType models.Category `json:"eventType"`
	Events    int64           `json:"events"`
	Revenue   models.Money    `json:"revenue"`
}

type ServiceRevenue struct {
	ServiceID uuid.UUID    `json:"serviceId"`
	Name      string       `json:"name"`
	Quantity  int64        `json:"quantity"`
	Revenue   models.Money `json:"revenue"`
}

// RevenueBetween sums budgets of events dated in [from, to).
func (s *Store) RevenueBetween(ctx context.Context, from, to time.Time) (models.Money, error) {
	return sumBudget(s.conn(ctx).Model(&models.Event{}).Where("date >= ? AND date < ?", from, to))
}

func (s *Store) RevenueByEventType(ctx context.Context) ([]CategoryRevenue, error) {
	rows := make([]CategoryRevenue, 0)
	err := s.conn(ctx).Model(&models.Event{}).
		Select("event_type, COUNT(*) AS events, SUM(budget) AS revenue").
		Group("event_type").
		Order("event_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("revenue by event type: %w", err)
	}
	return rows, nil
}

// TopServices ranks services by booked total (quantity x snapshot price).
func (s *Store) TopServices(ctx context.Context, limit int) ([]ServiceRevenue, error) {
	rows := make([]ServiceRevenue, 0, limit)
	err := s.conn(ctx).Table("event_services").
		Select("event_services.service_id AS service_id, services.name AS name, " +
			"SUM(event_services.quantity) AS quantity, " +
			"SUM(event_services.quantity * event_services.price) AS revenue").
		Joins("JOIN services ON services.id = event_services.service_id").
		Group("event_services.service_id, services.name").
		Order("revenue DESC").Order("services.name").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top services: %w", err)
	}
	return rows, nil
}
