package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListMetadata annotates a listing with what was actually applied and how
// long it took. Its shape is part of the response contract.
type ListMetadata struct {
	QueryTimeSeconds float64                `json:"query_time_seconds"`
	TotalResults     int64                  `json:"total_results"`
	FiltersApplied   map[string]interface{} `json:"filters_applied"`
	Timestamp        time.Time              `json:"timestamp"`
}

// ListResponse is the paginated collection envelope: results plus the total
// matched count, next/previous page numbers, and query metadata.
type ListResponse struct {
	Results  interface{}   `json:"results"`
	Count    int64         `json:"count"`
	Next     *int          `json:"next"`
	Previous *int          `json:"previous"`
	Metadata *ListMetadata `json:"metadata,omitempty"`
}

func PaginatedResponse(c *gin.Context, results interface{}, meta *PaginationMeta, metadata *ListMetadata) {
	c.JSON(http.StatusOK, ListResponse{
		Results:  results,
		Count:    meta.Total,
		Next:     meta.NextPage,
		Previous: meta.PreviousPage,
		Metadata: metadata,
	})
}

func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, APIResponse{
		Status: StatusError,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now(),
	})
}

func ValidationErrorResponse(c *gin.Context, errors map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   ErrValidationFailed,
		"details": errors,
	})
}

// DatasetTooLargeResponse rejects a distance sort whose candidate set
// exceeds the cap, telling the caller the actual count and how to proceed.
func DatasetTooLargeResponse(c *gin.Context, currentCount, maxLimit int64) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":         "Too many results for distance sorting. Please add filters to reduce results.",
		"current_count": currentCount,
		"max_limit":     maxLimit,
		"suggestion":    "Try adding filters like status, date_from, date_to, or pickup_time_from to reduce the dataset size.",
	})
}

func InternalServerErrorResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", ErrInternalServer)
}

func UnauthorizedResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", ErrUnauthorized)
}

func ForbiddenResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", ErrForbidden)
}

func NotFoundResponse(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", resource+" not found")
}

func ConflictResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message)
}

func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
