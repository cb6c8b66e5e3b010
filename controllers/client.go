package controllers

import (
	"net/http"

	"eventpro-backend/repository"
	"eventpro-backend/services"
	"eventpro-backend/utils"
	"eventpro-backend/validation"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListClients(c *gin.Context) {
	ctx := c.Request.Context()
	p := pageFromQuery(c)
	filter := repository.ClientFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	total, err := h.store.CountClients(ctx, filter)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	filter.Page = p.bounds()
	clients, err := h.store.ListClients(ctx, filter)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, p.response(clients, total))
}

func (h *Handler) CreateClient(c *gin.Context) {
	var input validation.ClientInput
	if err := bindInput(c, &input); err != nil {
		badInput(c, err)
		return
	}
	client, err := validation.ValidateClient(input, nil)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	if err := h.store.CreateClient(c.Request.Context(), client); err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	h.feed.Publish(c.Request.Context(), services.ClientCreated, client.ID)

	c.JSON(http.StatusCreated, client)
}

// GetClient returns the client with its events, latest date first.
func (h *Handler) GetClient(c *gin.Context) {
	id, ok := pathID(c, "id", "client")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	client, err := h.store.GetClient(ctx, id)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	events, err := h.store.ClientEvents(ctx, id)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client, "events": events})
}

func (h *Handler) UpdateClient(c *gin.Context) {
	id, ok := pathID(c, "id", "client")
	if !ok {
		return
	}
	var input validation.ClientInput
	if err := bindInput(c, &input); err != nil {
		badInput(c, err)
		return
	}
	current, err := h.store.GetClient(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	in, err := validation.ValidateClient(input, current)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	client, err := h.store.UpdateClient(c.Request.Context(), id, in)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	h.feed.Publish(c.Request.Context(), services.ClientUpdated, client.ID)

	c.JSON(http.StatusOK, client)
}

// DeleteClient also removes the client's events with their bookings and tasks.
func (h *Handler) DeleteClient(c *gin.Context) {
	id, ok := pathID(c, "id", "client")
	if !ok {
		return
	}
	if err := h.store.DeleteClient(c.Request.Context(), id); err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	h.feed.Publish(c.Request.Context(), services.ClientDeleted, id)

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
