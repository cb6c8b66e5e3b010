package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"eventpro-backend/consumer"
	"eventpro-backend/models"
	"eventpro-backend/repository"
	"eventpro-backend/utils"

	"github.com/gin-gonic/gin"
)

const searchLimit = 20

// SearchClients queries the Elasticsearch mirror and falls back to the
// database when the mirror is absent or failing.
func (h *Handler) SearchClients(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, []models.Client{})
		return
	}
	ctx := c.Request.Context()

	if h.search != nil {
		hits, err := h.search.Search(ctx, consumer.ClientsIndex, map[string]interface{}{
			"size": searchLimit,
			"query": map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":     q,
					"fields":    []string{"fullName^2", "firstName", "lastName", "email", "company"},
					"fuzziness": "AUTO",
				},
			},
		})
		if err == nil {
			clients := make([]models.Client, 0, len(hits))
			for _, hit := range hits {
				var client models.Client
				if err := json.Unmarshal(hit, &client); err == nil {
					clients = append(clients, client)
				}
			}
			c.JSON(http.StatusOK, clients)
			return
		}
		slog.Warn("client search fell back to database", "error", err)
	}

	clients, err := h.store.ListClients(ctx, repository.ClientFilter{
		Search: q,
		Page:   repository.Page{Limit: searchLimit},
	})
	if err != nil {
		utils.RespondWithStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}
