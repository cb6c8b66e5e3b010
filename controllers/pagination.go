package controllers

import (
	"math"
	"strconv"

	"eventpro-backend/repository"

	"github.com/gin-gonic/gin"
)

// PaginatedResponse wraps every list endpoint.
type PaginatedResponse struct {
	Data        interface{} `json:"data"`
	TotalRows   int64       `json:"totalRows"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	PageSize    int         `json:"pageSize"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps the offset well inside an int32.
	MaxPage = math.MaxInt32 / MaxPageSize
)

type pageRequest struct {
	page     int
	pageSize int
}

func pageFromQuery(c *gin.Context) pageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	switch {
	case page > MaxPage:
		page = MaxPage
	case page <= 0:
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	switch {
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	case pageSize <= 0:
		pageSize = DefaultPageSize
	}
	return pageRequest{page: page, pageSize: pageSize}
}

func (p pageRequest) bounds() repository.Page {
	return repository.Page{Limit: p.pageSize, Offset: (p.page - 1) * p.pageSize}
}

func (p pageRequest) response(data interface{}, totalRows int64) PaginatedResponse {
	totalPages := 0
	if totalRows > 0 {
		totalPages = int(math.Ceil(float64(totalRows) / float64(p.pageSize)))
	}
	return PaginatedResponse{
		Data:        data,
		TotalRows:   totalRows,
		TotalPages:  totalPages,
		CurrentPage: p.page,
		PageSize:    p.pageSize,
	}
}
