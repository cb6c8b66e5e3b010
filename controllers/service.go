package controllers

import (
	"net/http"
	"strconv"

	"eventpro-backend/repository"
	"eventpro-backend/services"
	"eventpro-backend/utils"
	"eventpro-backend/validation"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListServices(c *gin.Context) {
	ctx := c.Request.Context()
	p := pageFromQuery(c)
	availableOnly, _ := strconv.ParseBool(c.Query("available"))
	filter := repository.ServiceFilter{
		Category:      c.Query("category"),
		AvailableOnly: availableOnly,
		Search:        c.Query("search"),
	}

	total, err := h.store.CountServices(ctx, filter)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	filter.Page = p.bounds()
	list, err := h.store.ListServices(ctx, filter)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, p.response(list, total))
}

func (h *Handler) CreateService(c *gin.Context) {
	var input validation.ServiceInput
	if err := bindInput(c, &input); err != nil {
		badInput(c, err)
		return
	}
	svc, err := validation.ValidateService(input, nil)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	if err := h.store.CreateService(c.Request.Context(), svc); err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	h.feed.Publish(c.Request.Context(), services.ServiceCreated, svc.ID)

	c.JSON(http.StatusCreated, svc)
}

func (h *Handler) GetService(c *gin.Context) {
	id, ok := pathID(c, "id", "service")
	if !ok {
		return
	}
	svc, err := h.store.GetService(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// UpdateService changes the catalog entry only; existing bookings keep the
// price they were made at.
func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := pathID(c, "id", "service")
	if !ok {
		return
	}
	var input validation.ServiceInput
	if err := bindInput(c, &input); err != nil {
		badInput(c, err)
		return
	}
	current, err := h.store.GetService(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	in, err := validation.ValidateService(input, current)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	svc, err := h.store.UpdateService(c.Request.Context(), id, in)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	h.feed.Publish(c.Request.Context(), services.ServiceUpdated, svc.ID)

	c.JSON(http.StatusOK, svc)
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := pathID(c, "id", "service")
	if !ok {
		return
	}
	if err := h.store.DeleteService(c.Request.Context(), id); err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	h.feed.Publish(c.Request.Context(), services.ServiceDeleted, id)

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
