package controllers

import (
	"net/http"

	"eventpro-backend/models"
	"eventpro-backend/repository"
	"eventpro-backend/services"
	"eventpro-backend/utils"
	"eventpro-backend/validation"

	"github.com/gin-gonic/gin"
)

var eventRefs = map[string]string{"client": "client"}

func (h *Handler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()
	p := pageFromQuery(c)
	clientID, ok := queryID(c, "client")
	if !ok {
		c.JSON(http.StatusOK, p.response([]models.Event{}, 0))
		return
	}
	filter := repository.EventFilter{
		Status:   c.Query("status"),
		Type:     c.Query("type"),
		ClientID: clientID,
		Search:   c.Query("search"),
	}

	total, err := h.store.CountEvents(ctx, filter)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	filter.Page = p.bounds()
	events, err := h.store.ListEvents(ctx, filter)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, p.response(events, total))
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var input validation.EventInput
	if err := bindInput(c, &input); err != nil {
		badInput(c, err)
		return
	}
	event, err := validation.ValidateEvent(input, nil)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	if err := h.store.CreateEvent(c.Request.Context(), event); err != nil {
		utils.RespondWithStoreError(c, referenceError(err, eventRefs))
		return
	}
	h.feed.Publish(c.Request.Context(), services.EventCreated, event.ID)

	c.JSON(http.StatusCreated, event)
}

// GetEvent returns the event with its client, booked services, services total
// and tasks.
func (h *Handler) GetEvent(c *gin.Context) {
	id, ok := pathID(c, "id", "event")
	if !ok {
		return
	}
	detail, err := h.store.EventDetail(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	id, ok := pathID(c, "id", "event")
	if !ok {
		return
	}
	var input validation.EventInput
	if err := bindInput(c, &input); err != nil {
		badInput(c, err)
		return
	}
	current, err := h.store.GetEvent(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	in, err := validation.ValidateEvent(input, current)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	event, err := h.store.UpdateEvent(c.Request.Context(), id, in)
	if err != nil {
		utils.RespondWithStoreError(c, referenceError(err, eventRefs))
		return
	}
	h.feed.Publish(c.Request.Context(), services.EventUpdated, event.ID)

	c.JSON(http.StatusOK, event)
}

type statusInput struct {
	Status string `form:"status"`
}

// SetEventStatus moves the event through its lifecycle without resubmitting
// the whole form.
func (h *Handler) SetEventStatus(c *gin.Context) {
	id, ok := pathID(c, "id", "event")
	if !ok {
		return
	}
	var input statusInput
	if err := bindInput(c, &input); err != nil {
		badInput(c, err)
		return
	}
	status := models.EventStatus(input.Status)
	if !status.Valid() {
		verr := models.NewValidationError()
		verr.Add("status", "Select a valid choice. "+input.Status+" is not one of the available choices.")
		utils.RespondWithStoreError(c, verr)
		return
	}
	event, err := h.store.SetEventStatus(c.Request.Context(), id, status)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	h.feed.Publish(c.Request.Context(), services.EventUpdated, event.ID)

	c.JSON(http.StatusOK, event)
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c, "id", "event")
	if !ok {
		return
	}
	if err := h.store.DeleteEvent(c.Request.Context(), id); err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	h.feed.Publish(c.Request.Context(), services.EventDeleted, id)

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// BookService attaches a catalog service to the event at the service's
// current price unless a price is given.
func (h *Handler) BookService(c *gin.Context) {
	eventID, ok := pathID(c, "id", "event")
	if !ok {
		return
	}
	var input validation.BookingInput
	if err := bindInput(c, &input); err != nil {
		badInput(c, err)
		return
	}
	b, err := validation.ValidateBooking(input)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	booking, err := h.store.BookService(c.Request.Context(), eventID, b.ServiceID, b.Quantity, b.Price)
	if err != nil {
		utils.RespondWithStoreError(c, referenceError(err, map[string]string{"service": "service"}))
		return
	}
	h.feed.Publish(c.Request.Context(), services.EventUpdated, eventID)

	c.JSON(http.StatusCreated, bookingResponse(booking))
}

func (h *Handler) RemoveBooking(c *gin.Context) {
	eventID, ok := pathID(c, "id", "event")
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "bookingId", "event service")
	if !ok {
		return
	}
	if err := h.store.RemoveBooking(c.Request.Context(), eventID, bookingID); err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	h.feed.Publish(c.Request.Context(), services.EventUpdated, eventID)

	c.JSON(http.StatusOK, gin.H{"message": "Service removed from event"})
}

type bookingView struct {
	*models.EventService
	TotalPrice models.Money `json:"totalPrice"`
}

func bookingResponse(es *models.EventService) bookingView {
	return bookingView{EventService: es, TotalPrice: es.TotalPrice()}
}
