package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"eventpro-backend/clock"
	"eventpro-backend/models"
	"eventpro-backend/repository"
	"eventpro-backend/services"
	"eventpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

// Deps are the collaborators of the HTTP handlers. Search and Cache may be nil.
type Deps struct {
	Store   *repository.Store
	Home    *services.HomeService
	Reports *services.ReportService
	Feed    *services.ActivityFeed
	Search  utils.ElasticsearchClient
	Cache   utils.RedisClient
	Clock   clock.Clock
}

type Handler struct {
	store   *repository.Store
	home    *services.HomeService
	reports *services.ReportService
	feed    *services.ActivityFeed
	search  utils.ElasticsearchClient
	cache   utils.RedisClient
	clock   clock.Clock
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		store:   d.Store,
		home:    d.Home,
		reports: d.Reports,
		feed:    d.Feed,
		search:  d.Search,
		cache:   d.Cache,
		clock:   d.Clock,
	}
}

// pathID parses the named path parameter, answering 404 for a malformed id.
func pathID(c *gin.Context, name, entity string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondWithStoreError(c, &models.NotFoundError{Entity: entity, ID: raw})
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional uuid query parameter. A malformed value matches
// nothing rather than everything.
func queryID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// bindInput fills a string-typed input struct from a form post or a JSON
// object whose values are scalars. Type checks happen in the validation
// package so every field error is reported together.
func bindInput(c *gin.Context, dst any) error {
	if c.ContentType() != binding.MIMEJSON {
		return c.ShouldBindWith(dst, binding.Form)
	}
	var raw map[string]any
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	form := make(map[string][]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
		case string:
			form[k] = []string{val}
		case json.Number:
			form[k] = []string{val.String()}
		case bool:
			form[k] = []string{strconv.FormatBool(val)}
		default:
			return fmt.Errorf("field %q must be a string, number or boolean", k)
		}
	}
	return binding.MapFormWithTag(dst, form, "form")
}

func badInput(c *gin.Context, err error) {
	utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
}

// referenceError turns a missing referenced row into a field error, the way a
// form reports an invalid choice.
func referenceError(err error, fields map[string]string) error {
	var nf *models.NotFoundError
	if !errors.As(err, &nf) {
		return err
	}
	field, ok := fields[nf.Entity]
	if !ok {
		return err
	}
	verr := models.NewValidationError()
	verr.Add(field, "Select a valid choice. That choice is not one of the available choices.")
	return verr
}
