package utils

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaginationParams struct {
	Page     int  `json:"page" form:"page"`
	PageSize int  `json:"page_size" form:"page_size"`
	Clamped  bool `json:"-"`
}

type PaginationMeta struct {
	Page         int   `json:"page"`
	PageSize     int   `json:"page_size"`
	Total        int64 `json:"total"`
	TotalPages   int   `json:"total_pages"`
	HasNext      bool  `json:"has_next"`
	HasPrevious  bool  `json:"has_previous"`
	NextPage     *int  `json:"next_page,omitempty"`
	PreviousPage *int  `json:"previous_page,omitempty"`
}

// GetPaginationParams parses page/page_size with the standard window.
// Non-numeric or sub-minimum values are rejected; a page_size above the
// ceiling is clamped, not rejected, and the clamp is recorded.
func GetPaginationParams(c *gin.Context) (*PaginationParams, error) {
	return parsePaginationParams(c, DefaultPageSize, MaxPageSize)
}

// GetUserPaginationParams parses page/page_size with the tighter window used
// by user listings.
func GetUserPaginationParams(c *gin.Context) (*PaginationParams, error) {
	return parsePaginationParams(c, UserDefaultPageSize, UserMaxPageSize)
}

func parsePaginationParams(c *gin.Context, defaultSize, maxSize int) (*PaginationParams, error) {
	page, err := parsePositiveInt(c.DefaultQuery("page", "1"), "page")
	if err != nil {
		return nil, err
	}

	pageSize, err := parsePositiveInt(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)), "page_size")
	if err != nil {
		return nil, err
	}

	params := &PaginationParams{Page: page, PageSize: pageSize}
	if params.PageSize > maxSize {
		params.PageSize = maxSize
		params.Clamped = true
	}

	return params, nil
}

func parsePositiveInt(value, field string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", field)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s must be at least 1", field)
	}
	return n, nil
}

func (p *PaginationParams) GetSkip() int {
	return (p.Page - 1) * p.PageSize
}

func (p *PaginationParams) GetLimit() int {
	return p.PageSize
}

// FindOptions builds find options for a source-ordered page: the given sort
// plus the window's skip and limit.
func (p *PaginationParams) FindOptions(sort bson.D) *options.FindOptions {
	return options.Find().
		SetSort(sort).
		SetSkip(int64(p.GetSkip())).
		SetLimit(int64(p.GetLimit()))
}

func CreatePaginationMeta(params *PaginationParams, total int64) *PaginationMeta {
	totalPages := int(math.Ceil(float64(total) / float64(params.PageSize)))

	meta := &PaginationMeta{
		Page:        params.Page,
		PageSize:    params.PageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     params.Page < totalPages,
		HasPrevious: params.Page > 1,
	}

	if meta.HasNext {
		nextPage := params.Page + 1
		meta.NextPage = &nextPage
	}

	if meta.HasPrevious {
		previousPage := params.Page - 1
		meta.PreviousPage = &previousPage
	}

	return meta
}

// PageSlice windows an in-memory ordered result set. Pages past the end
// yield an empty slice, never an error.
func PageSlice[T any](items []T, params *PaginationParams) []T {
	start := params.GetSkip()
	if start >= len(items) {
		return []T{}
	}
	end := start + params.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
