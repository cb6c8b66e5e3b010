package controllers

import (
	"net/http"

	"eventpro-backend/models"
	"eventpro-backend/utils"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// SyncIdentity records the authenticated account as a local user so tasks
// can be assigned to it. It must run after utils.AuthMiddleware.
func (h *Handler) SyncIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := utils.CurrentClaims(c)
		if !ok {
			utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		user, err := h.store.SyncUser(c.Request.Context(), &models.User{
			Subject: claims.Subject,
			Email:   claims.Email,
			Name:    claims.Name,
			Phone:   claims.Phone,
		}, h.clock.Now())
		if err != nil {
			utils.RespondWithStoreError(c, err)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := c.Get(userKey)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	c.JSON(http.StatusOK, user)
}
