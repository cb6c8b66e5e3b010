package controllers

import (
	"net/http"
	"strconv"

	"eventpro-backend/models"
	"eventpro-backend/repository"
	"eventpro-backend/services"
	"eventpro-backend/utils"
	"eventpro-backend/validation"

	"github.com/gin-gonic/gin"
)

var taskRefs = map[string]string{"event": "event", "user": "assigned_to"}

func (h *Handler) ListTasks(c *gin.Context) {
	ctx := c.Request.Context()
	p := pageFromQuery(c)
	eventID, ok := queryID(c, "event")
	if !ok {
		c.JSON(http.StatusOK, p.response([]models.Task{}, 0))
		return
	}
	filter := repository.TaskFilter{
		EventID:  eventID,
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
	}
	if done, err := strconv.ParseBool(c.Query("completed")); err == nil {
		filter.Completed = &done
	}

	total, err := h.store.CountTasks(ctx, filter)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	filter.Page = p.bounds()
	tasks, err := h.store.ListTasks(ctx, filter)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, p.response(tasks, total))
}

func (h *Handler) CreateTask(c *gin.Context) {
	var input validation.TaskInput
	if err := bindInput(c, &input); err != nil {
		badInput(c, err)
		return
	}
	task, err := validation.ValidateTask(input, nil)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	if err := h.store.CreateTask(c.Request.Context(), task); err != nil {
		utils.RespondWithStoreError(c, referenceError(err, taskRefs))
		return
	}
	h.feed.Publish(c.Request.Context(), services.TaskCreated, task.ID)

	c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c *gin.Context) {
	id, ok := pathID(c, "id", "task")
	if !ok {
		return
	}
	task, err := h.store.GetTask(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c, "id", "task")
	if !ok {
		return
	}
	var input validation.TaskInput
	if err := bindInput(c, &input); err != nil {
		badInput(c, err)
		return
	}
	current, err := h.store.GetTask(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	in, err := validation.ValidateTask(input, current)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	task, err := h.store.UpdateTask(c.Request.Context(), id, in)
	if err != nil {
		utils.RespondWithStoreError(c, referenceError(err, taskRefs))
		return
	}
	h.feed.Publish(c.Request.Context(), services.TaskUpdated, task.ID)

	c.JSON(http.StatusOK, task)
}

func (h *Handler) CompleteTask(c *gin.Context) {
	h.setTaskCompleted(c, true)
}

func (h *Handler) ReopenTask(c *gin.Context) {
	h.setTaskCompleted(c, false)
}

func (h *Handler) setTaskCompleted(c *gin.Context, done bool) {
	id, ok := pathID(c, "id", "task")
	if !ok {
		return
	}
	task, err := h.store.SetTaskCompleted(c.Request.Context(), id, done)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	h.feed.Publish(c.Request.Context(), services.TaskUpdated, task.ID)

	c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c, "id", "task")
	if !ok {
		return
	}
	if err := h.store.DeleteTask(c.Request.Context(), id); err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	h.feed.Publish(c.Request.Context(), services.TaskDeleted, id)

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// TaskReminders lists the reminder audit trail of a task.
func (h *Handler) TaskReminders(c *gin.Context) {
	id, ok := pathID(c, "id", "task")
	if !ok {
		return
	}
	logs, err := h.store.TaskReminders(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
