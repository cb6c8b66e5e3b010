package utils

import (
	"errors"
	"net/http"

	"eventpro-backend/models"

	"github.com/gin-gonic/gin"
)

func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// RespondWithStoreError maps domain errors onto HTTP statuses. Anything
// unexpected is attached to the context for the error middleware and hidden
// from the client.
func RespondWithStoreError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, models.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrConstraint):
		RespondWithError(c, http.StatusConflict, err.Error())
	default:
		_ = c.Error(err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
