package validation

import (
	"eventpro-backend/models"

	"github.com/google/uuid"
)

// Decimal field sizes.
const (
	priceDigits  = 10
	budgetDigits = 12
)

type ClientInput struct {
	FirstName string `form:"first_name" json:"first_name" validate:"required,max=100"`
	LastName  string `form:"last_name" json:"last_name" validate:"required,max=100"`
	Email     string `form:"email" json:"email" validate:"required,email,max=254"`
	Phone     string `form:"phone" json:"phone" validate:"required,max=20"`
	Company   string `form:"company" json:"company" validate:"max=200"`
	Status    string `form:"status" json:"status" validate:"omitempty,client_status"`
	Notes     string `form:"notes" json:"notes"`
}

// ValidateClient returns a client ready to be saved or a *models.ValidationError.
// current is the stored client on an edit and nil on create. An empty status
// keeps the current one, or defaults to new.
func ValidateClient(in ClientInput, current *models.Client) (*models.Client, error) {
	trim(&in.FirstName, &in.LastName, &in.Email, &in.Phone, &in.Company, &in.Status)
	verr := models.NewValidationError()
	check(in, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	status := models.ClientStatus(in.Status)
	switch {
	case status != "":
	case current != nil:
		status = current.Status
	default:
		status = models.ClientStatusNew
	}
	return &models.Client{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Status:    status,
		Notes:     in.Notes,
	}, nil
}

type ServiceInput struct {
	Name          string `form:"name" json:"name" validate:"required,max=200"`
	Category      string `form:"category" json:"category" validate:"required,category"`
	Description   string `form:"description" json:"description" validate:"required"`
	Price         string `form:"price" json:"price" validate:"required"`
	DurationHours string `form:"duration_hours" json:"duration_hours"`
	IsAvailable   string `form:"is_available" json:"is_available"`
}

// ValidateService returns a catalog service. Omitted availability and duration
// keep the values of current on an edit; on create they default to true and
// zero hours.
func ValidateService(in ServiceInput, current *models.Service) (*models.Service, error) {
	trim(&in.Name, &in.Category, &in.Price, &in.DurationHours, &in.IsAvailable)
	verr := models.NewValidationError()
	check(in, verr)
	duration, available := 0, true
	if current != nil {
		duration, available = current.DurationHours, current.IsAvailable
	}
	svc := &models.Service{
		Name:          in.Name,
		Category:      models.Category(in.Category),
		Description:   in.Description,
		Price:         parseMoney("price", in.Price, priceDigits, verr),
		DurationHours: parseInt("duration_hours", in.DurationHours, duration, 0, verr),
		IsAvailable:   parseBool("is_available", in.IsAvailable, available, verr),
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return svc, nil
}

type EventInput struct {
	ClientID    string `form:"client" json:"client" validate:"required,uuid"`
	Name        string `form:"name" json:"name" validate:"required,max=200"`
	EventType   string `form:"event_type" json:"event_type" validate:"required,category"`
	Date        string `form:"date" json:"date" validate:"required"`
	Location    string `form:"location" json:"location" validate:"required,max=300"`
	Budget      string `form:"budget" json:"budget" validate:"required"`
	GuestCount  string `form:"guest_count" json:"guest_count" validate:"required"`
	Status      string `form:"status" json:"status" validate:"omitempty,event_status"`
	Description string `form:"description" json:"description"`
}

// ValidateEvent returns an event; the client reference is checked by the store.
// An empty status keeps the status of current, or defaults to planned.
func ValidateEvent(in EventInput, current *models.Event) (*models.Event, error) {
	trim(&in.ClientID, &in.Name, &in.EventType, &in.Date, &in.Location, &in.Budget, &in.GuestCount, &in.Status)
	verr := models.NewValidationError()
	check(in, verr)
	status := models.EventStatus(in.Status)
	switch {
	case status != "":
	case current != nil:
		status = current.Status
	default:
		status = models.EventStatusPlanned
	}
	event := &models.Event{
		ClientID:    parseUUID(in.ClientID),
		Name:        in.Name,
		EventType:   models.Category(in.EventType),
		Date:        parseTime("date", in.Date, verr),
		Location:    in.Location,
		Budget:      parseMoney("budget", in.Budget, budgetDigits, verr),
		GuestCount:  parseInt("guest_count", in.GuestCount, 0, 0, verr),
		Status:      status,
		Description: in.Description,
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return event, nil
}

type BookingInput struct {
	ServiceID string `form:"service" json:"service" validate:"required,uuid"`
	Quantity  string `form:"quantity" json:"quantity"`
	Price     string `form:"price" json:"price"`
}

// Booking is a validated request to attach a service to an event. A nil Price
// means the service's current price is snapshotted.
type Booking struct {
	ServiceID uuid.UUID
	Quantity  int
	Price     *models.Money
}

func ValidateBooking(in BookingInput) (*Booking, error) {
	trim(&in.ServiceID, &in.Quantity, &in.Price)
	verr := models.NewValidationError()
	check(in, verr)
	b := &Booking{
		ServiceID: parseUUID(in.ServiceID),
		Quantity:  parseInt("quantity", in.Quantity, 1, 1, verr),
	}
	if in.Price != "" {
		price := parseMoney("price", in.Price, priceDigits, verr)
		b.Price = &price
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return b, nil
}

type TaskInput struct {
	EventID     string `form:"event" json:"event" validate:"required,uuid"`
	Title       string `form:"title" json:"title" validate:"required,max=200"`
	Description string `form:"description" json:"description"`
	DueDate     string `form:"due_date" json:"due_date" validate:"required"`
	Priority    string `form:"priority" json:"priority" validate:"omitempty,priority"`
	AssignedTo  string `form:"assigned_to" json:"assigned_to" validate:"omitempty,uuid"`
}

// ValidateTask returns a task. An empty priority keeps the priority of current,
// or defaults to medium. The assignee is optional.
func ValidateTask(in TaskInput, current *models.Task) (*models.Task, error) {
	trim(&in.EventID, &in.Title, &in.DueDate, &in.Priority, &in.AssignedTo)
	verr := models.NewValidationError()
	check(in, verr)
	priority := models.Priority(in.Priority)
	switch {
	case priority != "":
	case current != nil:
		priority = current.Priority
	default:
		priority = models.PriorityMedium
	}
	task := &models.Task{
		EventID:     parseUUID(in.EventID),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     parseTime("due_date", in.DueDate, verr),
		Priority:    priority,
	}
	if in.AssignedTo != "" {
		if id := parseUUID(in.AssignedTo); id != uuid.Nil {
			task.AssignedToID = &id
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return task, nil
}
