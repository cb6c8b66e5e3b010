package controllers

import (
	"net/http"

	"eventpro-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview returns totals, revenue and what is coming up next.
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	dashboard, err := h.store.Dashboard(c.Request.Context())
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *Handler) GetReportAnalytics(c *gin.Context) {
	report, err := h.reports.Build(c.Request.Context())
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetHome is the public landing snapshot.
func (h *Handler) GetHome(c *gin.Context) {
	home, err := h.home.Get(c.Request.Context())
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, home)
}

func (h *Handler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	body := gin.H{"status": "ok", "database": "up", "cache": "disabled"}

	if err := h.store.Ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
		body["database"] = "down"
	}
	if h.cache != nil {
		body["cache"] = "up"
		if err := h.cache.Ping(ctx); err != nil {
			body["cache"] = "down"
		}
	}
	c.JSON(status, body)
}
